// Package notify delivers one-time verification codes by email.
package notify

import (
	"context"
	"errors"
)

// ErrSendFailed wraps every failed delivery.
var ErrSendFailed = errors.New("failed to send verification email")

// Sender delivers a verification code to a new user.
type Sender interface {
	SendVerificationCode(ctx context.Context, name, email, code string) error
}

// Noop accepts every send. Sent records the last code per address so tests
// can read it back.
type Noop struct {
	Sent map[string]string
}

func (n *Noop) SendVerificationCode(_ context.Context, _, email, code string) error {
	if n.Sent == nil {
		n.Sent = make(map[string]string)
	}
	n.Sent[email] = code
	return nil
}
