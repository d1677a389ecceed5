package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/revisapp/internal/client/diagnostics"
	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/common"
	"github.com/dmitrijs2005/revisapp/internal/logging"
	"github.com/dmitrijs2005/revisapp/internal/netx"
	"github.com/google/uuid"
)

const (
	UsersPath         = "/public/api/usuarios"
	DefaultCreatePath = "/api/usuarios/revisapp"
	LegacyCreatePath  = "/api/usuarios/cadastrar"
	WorkshopsPath     = "/api/oficinas/cep/"

	DefaultTimeout = 15 * time.Second

	cepPrefixLen     = 5
	duplicateMarker  = "email já cadastrado"
	maxLoggedBodyLen = 2048
)

// Config locates the user directory and the workshop registry.
type Config struct {
	UsersBaseURL    string
	RegistryBaseURL string
	// CreatePath defaults to DefaultCreatePath. Paths ending in /cadastrar
	// take the legacy payload with a "nome" key.
	CreatePath string
	Timeout    time.Duration
}

// HTTPDirectory is the Directory backed by the remote JSON APIs.
type HTTPDirectory struct {
	cfg    Config
	http   *http.Client
	diag   *diagnostics.Collector
	logger logging.Logger
}

// NewHTTPDirectory builds the directory client. httpClient may be nil; diag
// may be nil, in which case entries are kept in a private in-memory
// collector.
func NewHTTPDirectory(cfg Config, httpClient *http.Client, diag *diagnostics.Collector, logger logging.Logger) *HTTPDirectory {
	if cfg.CreatePath == "" {
		cfg.CreatePath = DefaultCreatePath
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.UsersBaseURL = strings.TrimRight(cfg.UsersBaseURL, "/")
	cfg.RegistryBaseURL = strings.TrimRight(cfg.RegistryBaseURL, "/")

	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if diag == nil {
		diag = diagnostics.NewCollector(context.Background(), nil, logger, 0)
	}

	return &HTTPDirectory{cfg: cfg, http: httpClient, diag: diag, logger: logger}
}

// call performs one bounded round trip and records it. Diagnostics are
// written with a context that outlives the request deadline.
func (d *HTTPDirectory) call(ctx context.Context, method, url string, body any) (*netx.Response, error) {
	logCtx := context.WithoutCancel(ctx)
	id := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	d.diag.APICall(logCtx, id, method, url, body)

	resp, err := netx.DoJSON(ctx, d.http, method, url, body)
	if err != nil {
		d.diag.RequestError(logCtx, id, fmt.Sprintf("%s %s failed", method, url), err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, url, err)
	}

	d.diag.APIResponse(logCtx, id, url, resp.StatusCode, loggableBody(resp.Body))
	return resp, nil
}

// loggableBody keeps JSON bodies as JSON and truncates anything else.
func loggableBody(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	s := strings.ToValidUTF8(string(b), "\uFFFD")
	if len(s) > maxLoggedBodyLen {
		s = s[:maxLoggedBodyLen]
		for !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
		s += "…"
	}
	return s
}

func (d *HTTPDirectory) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	url := d.cfg.UsersBaseURL + UsersPath

	resp, err := d.call(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: list users: %s", ErrNetwork, resp.Status)
	}

	var users []models.DirectoryUser
	if err := json.Unmarshal(resp.Body, &users); err != nil {
		d.diag.Error(context.WithoutCancel(ctx), "invalid user list", err)
		return nil, fmt.Errorf("%w: decode user list: %w", ErrNetwork, err)
	}
	return users, nil
}

func (d *HTTPDirectory) createPayload(u models.User) map[string]string {
	nameKey := "name"
	if strings.HasSuffix(d.cfg.CreatePath, "/cadastrar") {
		nameKey = "nome"
	}
	return map[string]string{
		nameKey: u.Name,
		"email": u.Email,
		"cep":   u.Cep,
		"placa": strings.ToUpper(u.Placa),
	}
}

func (d *HTTPDirectory) CreateUser(ctx context.Context, u models.User) error {
	url := d.cfg.RegistryBaseURL + d.cfg.CreatePath

	resp, err := d.call(ctx, http.MethodPost, url, d.createPayload(u))
	if err != nil {
		return err
	}
	if resp.OK() {
		return nil
	}

	if strings.Contains(strings.ToLower(string(resp.Body)), duplicateMarker) {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, common.NormalizeEmail(u.Email))
	}
	return fmt.Errorf("%w: create user: %s", ErrAPI, resp.Status)
}

type workshopsResponse struct {
	Status   string `json:"status"`
	Oficinas []struct {
		Nome     flexString `json:"nome"`
		Endereco flexString `json:"endereco"`
		Telefone flexString `json:"telefone"`
	} `json:"oficinas"`
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (d *HTTPDirectory) FindWorkshops(ctx context.Context, cep string) ([]models.Workshop, error) {
	digits := common.DigitsOnly(cep)
	if len(digits) < cepPrefixLen {
		return []models.Workshop{}, nil
	}
	prefix := digits[:cepPrefixLen]
	url := d.cfg.RegistryBaseURL + WorkshopsPath + prefix

	resp, err := d.call(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: find workshops: %s", ErrAPI, resp.Status)
	}

	var payload workshopsResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		d.logger.Warn(ctx, "unexpected workshops payload", "cep", prefix, "error", err)
		return []models.Workshop{}, nil
	}
	if payload.Status != "success" || payload.Oficinas == nil {
		d.logger.Info(ctx, "no workshops found", "cep", prefix)
		return []models.Workshop{}, nil
	}

	out := make([]models.Workshop, 0, len(payload.Oficinas))
	for _, o := range payload.Oficinas {
		out = append(out, models.Workshop{
			Name:    string(o.Nome),
			Address: string(o.Endereco),
			Phone:   string(o.Telefone),
		})
	}
	d.logger.Info(ctx, "workshops loaded", "cep", prefix, "count", len(out))
	return out, nil
}

var _ Directory = (*HTTPDirectory)(nil)
