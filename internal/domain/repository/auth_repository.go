package repository

import (
	"context"
	"errors"

	"plaza/internal/domain/entity"
)

// ErrAuthNotFound is returned when an authentication method is not found.
var ErrAuthNotFound = errors.New("authentication method not found")

// AuthRepository defines the operations for stored credentials.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error)
}
