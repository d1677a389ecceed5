package services

import (
	"errors"

	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/notify"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("user not found")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
)

// Reason codes reported to the presentation layer.
const (
	ReasonNetwork      = "network"
	ReasonNotFound     = "not_found"
	ReasonInvalidCode  = "invalid_code"
	ReasonEmailExists  = "email_exists"
	ReasonAPIError     = "api_error"
	ReasonSendFailed   = "send_failed"
	ReasonInvalidInput = "invalid_input"
)

// Reason maps an error returned by this package to its reason code.
// Unrecognised errors and nil give "".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmailExists):
		return ReasonEmailExists
	case errors.Is(err, ErrInvalidCode):
		return ReasonInvalidCode
	case errors.Is(err, ErrInvalidInput):
		return ReasonInvalidInput
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, notify.ErrSendFailed):
		return ReasonSendFailed
	case errors.Is(err, client.ErrAPI):
		return ReasonAPIError
	case errors.Is(err, client.ErrNetwork):
		return ReasonNetwork
	default:
		return ""
	}
}
