// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is a domain-specific error returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when the unique username index rejects an insert.
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user with its profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user with its profile by login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user together with its profile.
	Create(ctx context.Context, user *entity.User) error
}
