// Package common contains small helpers shared by client packages.
package common

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateNumericCode returns a string of exactly n random decimal digits
// drawn from crypto/rand. The first digit is never zero, so the code keeps
// its length when shown as a number. n <= 0 yields "".
func GenerateNumericCode(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		limit, offset := int64(10), int64(0)
		if i == 0 {
			limit, offset = 9, 1
		}
		d, err := rand.Int(rand.Reader, big.NewInt(limit))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64() + offset))
	}
	return sb.String(), nil
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
