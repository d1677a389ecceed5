package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"  a@b.com ", true},
		{"", false},
		{"ab.com", false},
		{"@b.com", false},
		{"a@", false},
		{"a@b@c", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), tt.in)
	}
}
