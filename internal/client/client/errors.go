package client

import "errors"

// Sentinel errors returned by HTTPDirectory.
var (
	ErrNetwork        = errors.New("directory unreachable")
	ErrAPI            = errors.New("directory api error")
	ErrDuplicateEmail = errors.New("email already registered")
)
