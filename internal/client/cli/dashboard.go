package cli

import (
	"context"

	"github.com/dmitrijs2005/revisapp/internal/client/services"
	"github.com/dmitrijs2005/revisapp/internal/common"
)

const minSearchDigits = 5

// enterDashboard greets a first-time user and loads the workshops for the
// session postal code.
func (a *App) enterDashboard(ctx context.Context) {
	u, ok := a.auth.User()
	if !ok {
		return
	}

	first, err := a.workshops.FirstVisit(ctx)
	if err != nil {
		a.logger.Warn(ctx, "first visit flag unavailable", "error", err)
	}
	if first {
		a.println()
		a.println(header(titleWelcome))
		a.printf("Olá! Estamos felizes em ter você por aqui. Encontre as melhores oficinas credenciadas para o seu veículo com placa %s.\n", u.Placa)
	}

	if len(common.DigitsOnly(u.Cep)) < minSearchDigits {
		a.println("Use a busca para encontrar oficinas: search <cep>")
		return
	}
	_ = a.showWorkshops(ctx, u.Cep)
}

// Search lists workshops near cep, asking for it when empty.
func (a *App) Search(ctx context.Context, cep string) error {
	if cep == "" {
		var err error
		if cep, err = a.ask("Digite o CEP desejado"); err != nil {
			return err
		}
	}

	return a.exclusive(func() error { return a.showWorkshops(ctx, cep) })
}

func (a *App) showWorkshops(ctx context.Context, cep string) error {
	cep = services.FormatCEP(cep)
	if len(common.DigitsOnly(cep)) < minSearchDigits {
		a.println(msgNoWorkshopsTitle)
		a.println(msgUseSearch)
		return nil
	}

	shops, err := a.workshops.FindWorkshops(ctx, cep)
	if err != nil {
		a.logger.Warn(ctx, "workshop search failed", "cep", cep, "error", err)
		a.println(msgWorkshopsErr)
		return err
	}

	a.println()
	a.printf("Oficinas encontradas para o CEP: %s\n", cep)
	if len(shops) == 0 {
		a.println(msgNoWorkshopsTitle)
		a.printf("Não encontramos oficinas para a região do CEP %s. Tente buscar em outra localidade.\n", cep)
		return nil
	}
	for i, s := range shops {
		a.printf("%d. %s\n", i+1, s.String())
	}
	return nil
}

// Profile prints the session user.
func (a *App) Profile(_ context.Context) error {
	u, ok := a.auth.User()
	if !ok {
		return nil
	}
	a.printf("Nome:   %s\nE-mail: %s\nPlaca:  %s\nCEP:    %s\n", u.Name, u.Email, u.Placa, u.Cep)
	return nil
}
