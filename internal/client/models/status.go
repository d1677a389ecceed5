package models

import "fmt"

// AuthStatus is the session state. Exactly four values exist; code that
// switches on it must handle all of them.
type AuthStatus int

const (
	Unauthenticated AuthStatus = iota
	Registering
	Verifying
	Authenticated
)

func (s AuthStatus) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Registering:
		return "registering"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("AuthStatus(%d)", int(s))
	}
}

// Valid reports whether s is one of the four declared states.
func (s AuthStatus) Valid() bool {
	return s >= Unauthenticated && s <= Authenticated
}
