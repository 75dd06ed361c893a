package repository

import (
	"context"
	"time"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository keeps one row per signed in browser. Only the SHA-256
// of a token is stored, so lookups go by hash.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash consumes a token. ErrRefreshTokenNotFound means another
	// request consumed it first.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// PruneExpiredRefreshTokens drops the resident's sessions that expired before now.
	PruneExpiredRefreshTokens(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
}
