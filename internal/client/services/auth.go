// Package services contains application services for the RevisApp client.
// This file defines the session state machine: login against the user
// directory with local fallbacks, registration with an emailed code,
// verification, and logout.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/diagnostics"
	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/client/notify"
	"github.com/dmitrijs2005/revisapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/revisapp/internal/common"
	"github.com/dmitrijs2005/revisapp/internal/logging"
)

// TopicAuthStatus carries (from, to models.AuthStatus) on every transition.
const TopicAuthStatus = "auth:status"

const codeLength = 6

// AuthService defines the session operations for the CLI.
//
// Contract:
//   - GoToRegister / GoToLogin: switch between the login and register forms.
//   - Login: authenticate an email against the directory, falling back to
//     locally cached registration data.
//   - Register: email a 6-digit code and wait for it in Verifying.
//   - Verify: check the code and create the user in the directory.
//   - Logout: remember the user for the next login and clear the session.
//
// Errors map to reason codes through Reason.
type AuthService interface {
	Status() models.AuthStatus
	User() (models.User, bool)

	GoToRegister(ctx context.Context) error
	GoToLogin(ctx context.Context) error
	Login(ctx context.Context, email string) error
	Register(ctx context.Context, user models.User) error
	Verify(ctx context.Context, code string) error
	Logout(ctx context.Context) error
}

// AuthDeps are the collaborators of NewAuthService. Directory, Sender and
// Store are required.
type AuthDeps struct {
	Directory client.Directory
	Sender    notify.Sender
	Store     kv.Store
	// Bus is optional; a private bus is created when nil.
	Bus         evbus.Bus
	Diagnostics *diagnostics.Collector
	Logger      logging.Logger
}

// authService keeps the session. mu guards the fields and is never held
// across directory or email calls.
type authService struct {
	dir    client.Directory
	sender notify.Sender
	store  kv.Store
	bus    evbus.Bus
	diag   *diagnostics.Collector
	logger logging.Logger

	mu     sync.Mutex
	status models.AuthStatus
	user   *models.User
	code   string
}

// NewAuthService restores the saved session, if any, and returns the
// service. A corrupt session record is deleted and the service starts
// Unauthenticated; a store failure is returned.
func NewAuthService(ctx context.Context, deps AuthDeps) (AuthService, error) {
	if deps.Directory == nil || deps.Sender == nil || deps.Store == nil {
		return nil, errors.New("auth service: directory, sender and store are required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	if deps.Bus == nil {
		deps.Bus = evbus.New()
	}
	if deps.Diagnostics == nil {
		deps.Diagnostics = diagnostics.NewCollector(ctx, nil, deps.Logger, 0)
	}

	a := &authService{
		dir:    deps.Directory,
		sender: deps.Sender,
		store:  deps.Store,
		bus:    deps.Bus,
		diag:   deps.Diagnostics,
		logger: deps.Logger,
		status: models.Unauthenticated,
	}

	var saved models.User
	found, err := kv.GetJSON(ctx, a.store, kv.KeySession, &saved)
	switch {
	case err != nil && found:
		a.logger.Warn(ctx, "discarding corrupt session record", "error", err)
		if err := a.store.Delete(ctx, kv.KeySession); err != nil {
			return nil, fmt.Errorf("delete corrupt session: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("restore session: %w", err)
	case found:
		a.user = &saved
		a.status = models.Authenticated
	}

	return a, nil
}

func (a *authService) Status() models.AuthStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// User returns the session user, or the pending one while verifying.
func (a *authService) User() (models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

// transitionLocked sets the new state and publishes it after releasing
// mu. It must be called with mu held.
func (a *authService) transitionLocked(ctx context.Context, to models.AuthStatus) {
	from := a.status
	a.status = to
	a.mu.Unlock()

	if from == to {
		return
	}
	a.logger.Debug(ctx, "auth status changed", "from", from.String(), "to", to.String())
	a.bus.Publish(TopicAuthStatus, from, to)
}

func (a *authService) GoToRegister(ctx context.Context) error {
	a.mu.Lock()
	if a.status != models.Unauthenticated {
		st := a.status
		a.mu.Unlock()
		return fmt.Errorf("%w: register from %s", ErrInvalidTransition, st)
	}
	a.transitionLocked(ctx, models.Registering)
	return nil
}

func (a *authService) GoToLogin(ctx context.Context) error {
	a.mu.Lock()
	switch a.status {
	case models.Authenticated:
		a.mu.Unlock()
		return fmt.Errorf("%w: login form while authenticated", ErrInvalidTransition)
	case models.Unauthenticated:
		a.mu.Unlock()
		return nil
	case models.Registering, models.Verifying:
		a.user = nil
		a.code = ""
		a.transitionLocked(ctx, models.Unauthenticated)
		return nil
	default:
		st := a.status
		a.mu.Unlock()
		panic(fmt.Sprintf("unexpected auth status %s", st))
	}
}

// readUser loads a cached User. Corrupt records are logged and reported
// as absent.
func (a *authService) readUser(ctx context.Context, key string) (*models.User, error) {
	var u models.User
	found, err := kv.GetJSON(ctx, a.store, key, &u)
	if err != nil {
		if found {
			a.logger.Warn(ctx, "ignoring corrupt cached user", "key", key, "error", err)
			return nil, nil
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

// Login joins the directory record for email with the plate and postal
// code cached on this device. The plate comes from the pending
// registration or, failing that, from the last logged-out user with the
// same email. When the directory does not know the email, or cannot be
// reached, the pending registration alone is enough to log in.
func (a *authService) Login(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	if st := a.Status(); st != models.Unauthenticated {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, st)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, email)
	}

	// local store failures are reported like an unreachable directory
	reg, err := a.readUser(ctx, kv.RegistrationKey(email))
	if err != nil {
		return fmt.Errorf("%w: read registration: %w", client.ErrNetwork, err)
	}

	var placa, localCep string
	if reg != nil {
		placa, localCep = reg.Placa, reg.Cep
	}

	if placa == "" {
		last, err := a.readUser(ctx, kv.KeyLastUser)
		if err != nil {
			return fmt.Errorf("%w: read last user: %w", client.ErrNetwork, err)
		}
		if last != nil && models.SameEmail(last.Email, email) {
			placa = last.Placa
		}
	}

	users, dirErr := a.dir.ListUsers(ctx)
	if dirErr != nil {
		a.logger.Warn(ctx, "user directory unavailable", "error", dirErr)
	}

	if dirErr == nil {
		for _, du := range users {
			if !models.SameEmail(du.Email, email) {
				continue
			}
			cep := du.Cep()
			if cep == "" {
				cep = localCep
			}
			return a.completeLogin(ctx, models.User{
				Name:  du.Name,
				Email: du.Email,
				Cep:   cep,
				Placa: placa,
			})
		}
	}

	if reg != nil {
		u := *reg
		u.Placa = placa
		return a.completeLogin(ctx, u)
	}

	if dirErr != nil {
		return fmt.Errorf("login %s: %w", email, dirErr)
	}
	return fmt.Errorf("login %s: %w", email, ErrNotFound)
}

func (a *authService) completeLogin(ctx context.Context, u models.User) error {
	if err := kv.SetJSON(ctx, a.store, kv.KeySession, u); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := a.store.Delete(ctx, kv.KeyLastUser); err != nil {
		a.logger.Warn(ctx, "failed to clear last user", "error", err)
	}

	a.diag.Info(context.WithoutCancel(ctx), "login succeeded", map[string]string{"email": u.Email})

	a.mu.Lock()
	a.user = &u
	a.code = ""
	a.transitionLocked(ctx, models.Authenticated)
	return nil
}

// Register emails a fresh 6-digit code to u.Email. Only after the send
// succeeds is the pending registration stored and the state moved to
// Verifying.
func (a *authService) Register(ctx context.Context, u models.User) error {
	if st := a.Status(); st != models.Registering {
		return fmt.Errorf("%w: register from %s", ErrInvalidTransition, st)
	}

	u, err := normalizeUser(u)
	if err != nil {
		return err
	}

	code, err := common.GenerateNumericCode(codeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := a.sender.SendVerificationCode(ctx, u.Name, u.Email, code); err != nil {
		a.diag.Error(context.WithoutCancel(ctx), "registration failed", err)
		if !errors.Is(err, notify.ErrSendFailed) {
			err = fmt.Errorf("%w: %w", notify.ErrSendFailed, err)
		}
		return err
	}

	if err := kv.SetJSON(ctx, a.store, kv.RegistrationKey(u.Email), u); err != nil {
		return fmt.Errorf("save registration: %w", err)
	}

	a.mu.Lock()
	a.user = &u
	a.code = code
	a.transitionLocked(ctx, models.Verifying)
	return nil
}

// Verify checks code against the one last emailed and, on a match, creates
// the pending user in the directory.
func (a *authService) Verify(ctx context.Context, code string) error {
	a.mu.Lock()
	want, pending := a.code, a.user
	verifying := a.status == models.Verifying
	a.mu.Unlock()

	if !verifying || pending == nil || want == "" ||
		subtle.ConstantTimeCompare([]byte(code), []byte(want)) != 1 {
		return ErrInvalidCode
	}
	u := *pending

	if err := a.dir.CreateUser(ctx, u); err != nil {
		a.diag.Error(context.WithoutCancel(ctx), "API registration failed", err)
		if errors.Is(err, client.ErrDuplicateEmail) {
			return fmt.Errorf("%w: %w", ErrEmailExists, err)
		}
		if !errors.Is(err, client.ErrAPI) {
			err = fmt.Errorf("%w: %w", client.ErrAPI, err)
		}
		return err
	}

	// The user may have left the verify form or logged out while the
	// directory call was running. mu stays held over the local session write.
	a.mu.Lock()
	if a.status != models.Verifying || a.user != pending {
		st := a.status
		a.mu.Unlock()
		return fmt.Errorf("%w: verification finished in %s", ErrInvalidTransition, st)
	}
	if err := kv.SetJSON(ctx, a.store, kv.KeySession, u); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("%w: save session: %w", client.ErrAPI, err)
	}
	a.code = ""
	a.transitionLocked(ctx, models.Authenticated)
	return nil
}

// Logout copies the session record to the last-user slot and clears the
// session and the onboarding flag. It succeeds from any state.
func (a *authService) Logout(ctx context.Context) error {
	current, err := a.store.Get(ctx, kv.KeySession)
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if current != nil {
		if err := a.store.Set(ctx, kv.KeyLastUser, current); err != nil {
			return fmt.Errorf("save last user: %w", err)
		}
	}
	if err := a.store.Delete(ctx, kv.KeySession, kv.KeyFirstVisit); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	a.mu.Lock()
	a.user = nil
	a.code = ""
	a.transitionLocked(ctx, models.Unauthenticated)
	return nil
}
