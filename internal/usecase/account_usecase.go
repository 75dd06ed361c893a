// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"plaza/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open a plaza account.
type RegisterInput struct {
	Username        string
	Password        string
	PasswordConfirm string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user with its profile.
type RegisterOutput struct {
	User *entity.User
}

// SessionOutput returns the generated tokens after a successful login or rotation.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AccountUsecase covers registration and cookie sessions.
type AccountUsecase interface {
	// Register creates the user, its password credential and its profile in one transaction.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	// Logout revokes the refresh token. Unknown tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error
	// Authenticate resolves a valid access token to its user.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	// Refresh rotates a refresh token into a new session.
	Refresh(ctx context.Context, refreshToken string) (*SessionOutput, error)
}
