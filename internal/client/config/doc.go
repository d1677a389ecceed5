// Package config loads runtime configuration for the RevisApp CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. REVISAPP_* environment variables, also read from a dotenv file: the
//     one given with -env, or ./.env when present (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   user directory base URL
//	-w string   registry base URL
//	-e string   create-user endpoint path
//	-t int      request timeout (seconds)
//	-s string   store driver
//	-p string   store DSN
//	-v string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either
// a string like "15s" or integer nanoseconds:
//
//	{
//	  "users_base_url": "https://dansis-ia.com",
//	  "registry_base_url": "https://pink-chough-163744.hostingersite.com",
//	  "create_path": "/api/usuarios/revisapp",
//	  "request_timeout": "15s",
//	  "store_driver": "bolt",
//	  "store_dsn": "data/revisapp.bolt",
//	  "log_capacity": 100,
//	  "emailjs": {"service_id": "...", "template_id": "...", "public_key": "..."}
//	}
//
// Primary API
//
//   - type Config                    : all runtime settings
//   - func LoadConfig() *Config      : defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()  : sets sensible defaults
package config
