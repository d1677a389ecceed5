package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	evbus "github.com/asaskevich/EventBus"
	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/config"
	"github.com/dmitrijs2005/revisapp/internal/client/diagnostics"
	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/client/notify"
	"github.com/dmitrijs2005/revisapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/revisapp/internal/client/services"
	"github.com/dmitrijs2005/revisapp/internal/logging"
)

var errBusy = errors.New("operation in progress")

type App struct {
	config    *config.Config
	store     kv.Store
	diag      *diagnostics.Collector
	bus       evbus.Bus
	auth      services.AuthService
	workshops services.WorkshopService
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// busy is set while a remote operation runs.
	busy atomic.Bool
}

// NewApp opens the configured store and wires every service the REPL uses.
// The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	httpClient := &http.Client{}
	sender := func(diag *diagnostics.Collector) notify.Sender {
		return notify.NewEmailJS(notify.EmailJSConfig{
			Endpoint:   c.EmailJS.Endpoint,
			ServiceID:  c.EmailJS.ServiceID,
			TemplateID: c.EmailJS.TemplateID,
			PublicKey:  c.EmailJS.PublicKey,
			PrivateKey: c.EmailJS.PrivateKey,
			Timeout:    c.RequestTimeout,
		}, httpClient, diag, logger.With("component", "emailjs"))
	}
	return newApp(ctx, c, logger, httpClient, sender)
}

func newApp(
	ctx context.Context,
	c *config.Config,
	logger logging.Logger,
	httpClient *http.Client,
	senderFn func(*diagnostics.Collector) notify.Sender,
) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	store, err := kv.New(ctx, kv.Config{Driver: c.StoreDriver, DSN: c.StoreDSN, RedisPrefix: c.RedisPrefix})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	diag := diagnostics.NewCollector(ctx, store, logger, c.LogCapacity)

	dir := client.NewHTTPDirectory(client.Config{
		UsersBaseURL:    c.UsersBaseURL,
		RegistryBaseURL: c.RegistryBaseURL,
		CreatePath:      c.CreatePath,
		Timeout:         c.RequestTimeout,
	}, httpClient, diag, logger.With("component", "directory"))

	bus := evbus.New()

	auth, err := services.NewAuthService(ctx, services.AuthDeps{
		Directory:   dir,
		Sender:      senderFn(diag),
		Store:       store,
		Bus:         bus,
		Diagnostics: diag,
		Logger:      logger.With("component", "auth"),
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := &App{
		config:    c,
		store:     store,
		diag:      diag,
		bus:       bus,
		auth:      auth,
		workshops: services.NewWorkshopService(dir, store, diag),
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	if err := bus.Subscribe(services.TopicAuthStatus, a.onStatusChange); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("subscribe %s: %w", services.TopicAuthStatus, err)
	}

	return a, nil
}

func (a *App) onStatusChange(_, to models.AuthStatus) {
	a.render(to)
}

// Run shows the current view and serves commands until exit, EOF or ctx
// cancellation.
func (a *App) Run(ctx context.Context) {
	a.diag.Info(ctx, "RevisApp started", map[string]string{"store": a.config.StoreDriver})

	if isTerminal() {
		a.println("RevisApp CLI (digite 'help' para ver os comandos)")
	}

	status := a.auth.Status()
	a.render(status)
	if status == models.Authenticated {
		a.enterDashboard(ctx)
	}

	runREPL(ctx, a, a.promptText, a.reader)
}

func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) Status() models.AuthStatus {
	return a.auth.Status()
}

func (a *App) promptText() string {
	if !isTerminal() {
		return ""
	}
	return fmt.Sprintf("revisapp (%s) > ", a.auth.Status())
}

// exclusive runs fn unless another operation is still running.
func (a *App) exclusive(fn func() error) error {
	if !a.busy.CompareAndSwap(false, true) {
		a.println(msgBusy)
		return errBusy
	}
	defer a.busy.Store(false)
	return fn()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// askUntil repeats prompt until check accepts the answer. check returns the
// message to show for a rejected answer, or "" to accept it.
func (a *App) askUntil(prompt string, check func(string) string) (string, error) {
	for {
		s, err := a.ask(prompt)
		if err != nil {
			return "", err
		}
		msg := check(s)
		if msg == "" {
			return s, nil
		}
		a.println(msg)
	}
}

func required(s string) string {
	if strings.TrimSpace(s) == "" {
		return msgRequired
	}
	return ""
}

func validEmail(s string) string {
	if msg := required(s); msg != "" {
		return msg
	}
	if !services.ValidEmail(s) {
		return msgInvalidEmail
	}
	return ""
}

func validPlaca(s string) string {
	if msg := required(s); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(strings.TrimSpace(s)) > services.MaxPlacaLen {
		return msgPlacaTooLong
	}
	return ""
}

func validCEP(s string) string {
	return required(services.FormatCEP(s))
}
