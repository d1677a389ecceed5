package kv

import (
	"context"
	"fmt"
)

// Driver identifiers accepted by New.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selects and parameterises a driver. DSN is a file path for sqlite
// and bolt and a host:port address for redis; memory ignores it.
type Config struct {
	Driver      string
	DSN         string
	RedisPrefix string
}

// New opens the store described by cfg. An empty driver means sqlite.
func New(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		s   Store
		err error
	)
	switch driver {
	case DriverSQLite:
		s, err = asStore(OpenSQLite(ctx, cfg.DSN))
	case DriverBolt:
		s, err = asStore(OpenBolt(cfg.DSN))
	case DriverRedis:
		s, err = asStore(OpenRedis(ctx, cfg.DSN, cfg.RedisPrefix))
	case DriverMemory:
		s = NewMemoryRepository()
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// asStore drops the typed nil a failed constructor returns, so callers
// never see a non-nil Store holding a nil pointer.
func asStore[T Store](s T, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
