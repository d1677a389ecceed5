package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/revisapp/internal/client/diagnostics"
	"github.com/dmitrijs2005/revisapp/internal/logging"
	"github.com/dmitrijs2005/revisapp/internal/netx"
	"github.com/google/uuid"
)

const (
	DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

	placeholderPrefix = "YOUR_"
	defaultTimeout    = 15 * time.Second
)

// EmailJSConfig holds the EmailJS account identifiers.
type EmailJSConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as accessToken when set.
	PrivateKey string
	Timeout    time.Duration
}

// Configured reports whether every identifier is set to a real value.
func (c EmailJSConfig) Configured() bool {
	for _, v := range []string{c.ServiceID, c.TemplateID, c.PublicKey} {
		if v == "" || strings.HasPrefix(v, placeholderPrefix) {
			return false
		}
	}
	return true
}

// EmailJS sends verification codes through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	http   *http.Client
	diag   *diagnostics.Collector
	logger logging.Logger
}

// NewEmailJS returns a sender for cfg. Nil httpClient, diag and logger get defaults.
func NewEmailJS(cfg EmailJSConfig, httpClient *http.Client, diag *diagnostics.Collector, logger logging.Logger) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if diag == nil {
		diag = diagnostics.NewCollector(context.Background(), nil, logger, 0)
	}
	return &EmailJS{cfg: cfg, http: httpClient, diag: diag, logger: logger}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendVerificationCode posts the code through EmailJS. Without credentials
// the send is simulated: the code is logged and nil returned.
func (e *EmailJS) SendVerificationCode(ctx context.Context, name, email, code string) error {
	logCtx := context.WithoutCancel(ctx)

	if !e.cfg.Configured() {
		e.logger.Warn(ctx, "emailjs is not configured, simulating send", "email", email, "code", code)
		e.diag.Info(logCtx, "EmailJS not configured. Simulated verification email to "+email, nil)
		return nil
	}

	body := emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"name":  name,
			"email": email,
			"code":  code,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	id := uuid.NewString()
	// the payload carries the code and credentials; log the recipient only
	e.diag.APICall(logCtx, id, http.MethodPost, e.cfg.Endpoint, map[string]string{"email": email})

	resp, err := netx.DoJSON(ctx, e.http, http.MethodPost, e.cfg.Endpoint, body)
	if err != nil {
		e.diag.RequestError(logCtx, id, "failed to send verification email", err)
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	e.diag.APIResponse(logCtx, id, e.cfg.Endpoint, resp.StatusCode, string(resp.Body))

	if !resp.OK() {
		err := fmt.Errorf("emailjs: %s: %s", resp.Status, strings.TrimSpace(string(resp.Body)))
		e.diag.RequestError(logCtx, id, "failed to send verification email", err)
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	e.logger.Info(ctx, "verification email sent", "email", email)
	return nil
}

var (
	_ Sender = (*EmailJS)(nil)
	_ Sender = (*Noop)(nil)
)
