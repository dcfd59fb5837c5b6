package repository

import (
	"context"

	"focozero-data/internal/domain"
)

// UsersRepository lookups against the field-staff table. Account
// management and authentication live in the gateway service; this
// engine only resolves references and roles.
type UsersRepository interface {
	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
