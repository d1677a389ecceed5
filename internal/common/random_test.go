package common

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func TestGenerateNumericCode_SixDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		require.Truef(t, sixDigits.MatchString(code), "bad code %q", code)
	}
}

func TestGenerateNumericCode_ZeroLength(t *testing.T) {
	code, err := GenerateNumericCode(0)
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestGenerateNumericCode_EntropyHint(t *testing.T) {
	a, _ := GenerateNumericCode(12)
	b, _ := GenerateNumericCode(12)
	if a == b {
		t.Logf("warning: two 12-digit codes are identical; extremely unlikely")
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "01310100", DigitsOnly("01310-100"))
	assert.Equal(t, "", DigitsOnly("abc"))
	assert.Equal(t, "123", DigitsOnly(" 1a2b3 "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
}
