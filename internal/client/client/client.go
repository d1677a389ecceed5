package client

import (
	"context"

	"github.com/dmitrijs2005/revisapp/internal/client/models"
)

// Directory is the remote user directory and workshop registry.
type Directory interface {
	ListUsers(ctx context.Context) ([]models.DirectoryUser, error)
	CreateUser(ctx context.Context, user models.User) error
	// FindWorkshops returns an empty slice, without a request, when cep has
	// fewer than five digits.
	FindWorkshops(ctx context.Context, cep string) ([]models.Workshop, error)
}
