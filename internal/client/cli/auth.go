package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/client/services"
)

// Login asks for an email and logs in. From the register or verify views
// it only returns to the login view.
func (a *App) Login(ctx context.Context) error {
	if a.auth.Status() != models.Unauthenticated {
		return a.BackToLogin(ctx)
	}

	email, err := a.askUntil("E-mail", validEmail)
	if err != nil {
		return err
	}

	err = a.exclusive(func() error { return a.auth.Login(ctx, email) })
	if errors.Is(err, errBusy) {
		return err
	}
	if err != nil {
		a.logger.Info(ctx, "login failed", "reason", services.Reason(err), "error", err)
		a.println(messageFor(err, msgLoginFail))
		return err
	}

	a.enterDashboard(ctx)
	return nil
}

func (a *App) BackToLogin(ctx context.Context) error {
	return a.auth.GoToLogin(ctx)
}

// Register opens the register view when needed and asks for the new
// user's details.
func (a *App) Register(ctx context.Context) error {
	if a.auth.Status() == models.Unauthenticated {
		if err := a.auth.GoToRegister(ctx); err != nil {
			return err
		}
	}

	var u models.User
	var err error
	if u.Name, err = a.askUntil("Nome Completo", required); err != nil {
		return err
	}
	if u.Placa, err = a.askUntil("Placa do carro", validPlaca); err != nil {
		return err
	}
	u.Placa = strings.ToUpper(strings.TrimSpace(u.Placa))
	cep, err := a.askUntil("CEP", validCEP)
	if err != nil {
		return err
	}
	u.Cep = services.FormatCEP(cep)
	if u.Email, err = a.askUntil("E-mail", validEmail); err != nil {
		return err
	}

	err = a.exclusive(func() error { return a.auth.Register(ctx, u) })
	if errors.Is(err, errBusy) {
		return err
	}
	if err != nil {
		a.logger.Info(ctx, "registration failed", "reason", services.Reason(err), "error", err)
		a.println(messageFor(err, msgRegisterFail))
		return err
	}
	return nil
}

// Verify asks for the emailed code and completes the registration.
func (a *App) Verify(ctx context.Context) error {
	code, err := a.ask("Código de verificação")
	if err != nil {
		return err
	}

	err = a.exclusive(func() error { return a.auth.Verify(ctx, code) })
	if errors.Is(err, errBusy) {
		return err
	}
	if err != nil {
		a.logger.Info(ctx, "verification failed", "reason", services.Reason(err), "error", err)
		a.println(messageFor(err, msgAPIError))
		if services.Reason(err) == services.ReasonEmailExists {
			a.println(msgGoToLogin)
		}
		return err
	}

	a.enterDashboard(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	return nil
}
