package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/revisapp/internal/flagx"
	"github.com/dmitrijs2005/revisapp/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero values mean "not given" and leave the Config untouched. The timeout
// uses timex.Duration, so it may be a string like "15s" or integer
// nanoseconds.
type JsonConfig struct {
	UsersBaseURL    string          `json:"users_base_url"`
	RegistryBaseURL string          `json:"registry_base_url"`
	CreatePath      string          `json:"create_path"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`

	StoreDriver string `json:"store_driver"`
	StoreDSN    string `json:"store_dsn"`
	RedisPrefix string `json:"redis_prefix"`

	LogCapacity int    `json:"log_capacity"`
	LogLevel    string `json:"log_level"`
	ExportDir   string `json:"export_dir"`

	EmailJS struct {
		Endpoint   string `json:"endpoint"`
		ServiceID  string `json:"service_id"`
		TemplateID string `json:"template_id"`
		PublicKey  string `json:"public_key"`
		PrivateKey string `json:"private_key"`
	} `json:"emailjs"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.UsersBaseURL, jc.UsersBaseURL)
	set(&cfg.RegistryBaseURL, jc.RegistryBaseURL)
	set(&cfg.CreatePath, jc.CreatePath)
	set(&cfg.StoreDriver, jc.StoreDriver)
	set(&cfg.StoreDSN, jc.StoreDSN)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.ExportDir, jc.ExportDir)
	set(&cfg.EmailJS.Endpoint, jc.EmailJS.Endpoint)
	set(&cfg.EmailJS.ServiceID, jc.EmailJS.ServiceID)
	set(&cfg.EmailJS.TemplateID, jc.EmailJS.TemplateID)
	set(&cfg.EmailJS.PublicKey, jc.EmailJS.PublicKey)
	set(&cfg.EmailJS.PrivateKey, jc.EmailJS.PrivateKey)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.LogCapacity > 0 {
		cfg.LogCapacity = jc.LogCapacity
	}
}
