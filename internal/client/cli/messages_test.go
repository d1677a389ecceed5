package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/notify"
	"github.com/dmitrijs2005/revisapp/internal/client/services"
	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("login: %w", client.ErrNetwork), msgNetwork},
		{services.ErrNotFound, msgNotFound},
		{services.ErrEmailExists, msgEmailExists},
		{client.ErrAPI, msgAPIError},
		{services.ErrInvalidCode, msgInvalidCode},
		{notify.ErrSendFailed, msgSendFailed},
		{fmt.Errorf("%w: name is required", services.ErrInvalidInput), msgInvalidInput},
		{errors.New("disk full"), "fallback"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, messageFor(tt.err, "fallback"), tt.err.Error())
	}
}
