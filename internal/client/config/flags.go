package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/revisapp/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   user directory base URL
//	-w string   registry (workshops, create user) base URL
//	-e string   create-user endpoint path
//	-t int      request timeout in seconds
//	-s string   store driver: sqlite, bolt, redis, memory
//	-p string   store DSN (file path or redis host:port)
//	-v string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-w", "-e", "-t", "-s", "-p", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UsersBaseURL, "u", cfg.UsersBaseURL, "user directory base URL")
	fs.StringVar(&cfg.RegistryBaseURL, "w", cfg.RegistryBaseURL, "registry base URL")
	fs.StringVar(&cfg.CreatePath, "e", cfg.CreatePath, "create-user endpoint path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver (sqlite, bolt, redis, memory)")
	fs.StringVar(&cfg.StoreDSN, "p", cfg.StoreDSN, "store DSN")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
