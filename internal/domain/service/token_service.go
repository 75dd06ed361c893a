package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username,omitempty"`
	Type     string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, username string) (accessToken string, refreshToken string, err error)

	// ValidateToken checks the signature and expiry of a token of either type.
	ValidateToken(tokenString string) (*Claims, error)

	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
