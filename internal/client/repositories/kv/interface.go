// Package kv is the device-local key-value store that stands in for a
// backend: it keeps the session, the last logged-out user, pending
// registrations, the onboarding flag and the diagnostic log buffer.
//
// Drivers: sqlite (default), bolt, redis and memory. See New.
package kv

import (
	"context"
	"errors"
)

// Store is a string-keyed byte store. Implementations must be safe for use
// from several goroutines.
type Store interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or overwrites key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes all given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var ErrUnknownDriver = errors.New("unknown store driver")
