package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/revisapp/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Environment variables read by parseEnv.
const (
	EnvUsersURL        = "REVISAPP_USERS_URL"
	EnvRegistryURL     = "REVISAPP_REGISTRY_URL"
	EnvCreatePath      = "REVISAPP_CREATE_PATH"
	EnvRequestTimeout  = "REVISAPP_REQUEST_TIMEOUT"
	EnvStoreDriver     = "REVISAPP_STORE_DRIVER"
	EnvStoreDSN        = "REVISAPP_STORE_DSN"
	EnvRedisPrefix     = "REVISAPP_REDIS_PREFIX"
	EnvLogCapacity     = "REVISAPP_LOG_CAPACITY"
	EnvLogLevel        = "REVISAPP_LOG_LEVEL"
	EnvExportDir       = "REVISAPP_EXPORT_DIR"
	EnvEmailJSEndpoint = "REVISAPP_EMAILJS_ENDPOINT"
	EnvEmailJSService  = "REVISAPP_EMAILJS_SERVICE_ID"
	EnvEmailJSTemplate = "REVISAPP_EMAILJS_TEMPLATE_ID"
	EnvEmailJSPublic   = "REVISAPP_EMAILJS_PUBLIC_KEY"
	EnvEmailJSPrivate  = "REVISAPP_EMAILJS_PRIVATE_KEY"
)

// parseEnv overlays Config with REVISAPP_* variables.
//
// Values come from the process environment and from a dotenv file: the one
// named by -env, or ./.env when it exists. Process variables win over the
// file, as with godotenv.Load.
//
// Panics when an explicitly named file cannot be read or a numeric value
// does not parse.
func parseEnv(cfg *Config) {
	file := flagx.EnvFileFlag()
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	fileVars, err := godotenv.Read(file)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		fileVars = nil
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	applyEnv(cfg, lookup)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvUsersURL, &cfg.UsersBaseURL)
	str(EnvRegistryURL, &cfg.RegistryBaseURL)
	str(EnvCreatePath, &cfg.CreatePath)
	str(EnvStoreDriver, &cfg.StoreDriver)
	str(EnvStoreDSN, &cfg.StoreDSN)
	str(EnvRedisPrefix, &cfg.RedisPrefix)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvExportDir, &cfg.ExportDir)
	str(EnvEmailJSEndpoint, &cfg.EmailJS.Endpoint)
	str(EnvEmailJSService, &cfg.EmailJS.ServiceID)
	str(EnvEmailJSTemplate, &cfg.EmailJS.TemplateID)
	str(EnvEmailJSPublic, &cfg.EmailJS.PublicKey)
	str(EnvEmailJSPrivate, &cfg.EmailJS.PrivateKey)

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvLogCapacity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.LogCapacity = n
	}
}
