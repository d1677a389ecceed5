package config

import "time"

// EmailJS holds the email provider credentials. Values starting with
// "YOUR_" count as unset.
type EmailJS struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
}

// Config holds runtime settings for the RevisApp CLI.
//
// Fields:
//   - UsersBaseURL: base URL of the user directory (list users).
//   - RegistryBaseURL: base URL of the registry (create user, workshops).
//   - CreatePath: path of the create-user endpoint.
//   - RequestTimeout: upper bound for every remote call.
//   - StoreDriver / StoreDSN / RedisPrefix: local key-value store.
//   - LogCapacity: size of the diagnostic log ring.
//   - LogLevel: console log level (debug, info, warn, error).
//   - ExportDir: default target directory of "logs export".
type Config struct {
	UsersBaseURL    string
	RegistryBaseURL string
	CreatePath      string
	RequestTimeout  time.Duration

	StoreDriver string
	StoreDSN    string
	RedisPrefix string

	LogCapacity int
	LogLevel    string
	ExportDir   string

	EmailJS EmailJS
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.UsersBaseURL = "https://dansis-ia.com"
	c.RegistryBaseURL = "https://pink-chough-163744.hostingersite.com"
	c.CreatePath = "/api/usuarios/revisapp"
	c.RequestTimeout = 15 * time.Second

	c.StoreDriver = "sqlite"
	c.StoreDSN = "revisapp.db"
	c.RedisPrefix = "revisapp:"

	c.LogCapacity = 100
	c.LogLevel = "info"
	c.ExportDir = "."

	c.EmailJS = EmailJS{
		Endpoint:   "https://api.emailjs.com/api/v1.0/email/send",
		ServiceID:  "YOUR_SERVICE_ID",
		TemplateID: "YOUR_TEMPLATE_ID",
		PublicKey:  "YOUR_PUBLIC_KEY",
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
