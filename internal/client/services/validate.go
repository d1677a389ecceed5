package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// MaxPlacaLen is the longest accepted licence plate.
const MaxPlacaLen = 8

var validate = validator.New(validator.WithRequiredStructEnabled())

// registration is the shape a new user must satisfy.
type registration struct {
	Name  string `validate:"required"`
	Placa string `validate:"required,max=8"`
	Cep   string `validate:"required"`
	Email string `validate:"required,email"`
}

// ValidEmail reports whether email, ignoring surrounding blanks, is an
// address.
func ValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// normalizeUser trims every field of u and checks that all are filled in.
func normalizeUser(u models.User) (models.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Placa = strings.TrimSpace(u.Placa)
	u.Cep = strings.TrimSpace(u.Cep)
	u.Email = strings.TrimSpace(u.Email)

	err := validate.Struct(registration{Name: u.Name, Placa: u.Placa, Cep: u.Cep, Email: u.Email})
	if err == nil {
		return u, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return u, fmt.Errorf("%w: %s fails %q", ErrInvalidInput, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
	}
	return u, fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
