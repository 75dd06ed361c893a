package repository

import (
	"context"
	"errors"
	"time"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrProfileNotFound is returned when no profile row exists for a user.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInsufficientCoins is returned when a conditional debit matches no row.
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// ProfileDetails are the user-editable profile fields. Nil fields are left untouched.
type ProfileDetails struct {
	Nickname  *string
	Bio       *string
	AvatarKey *string
}

// ProfileRepository mutates balances only through conditional updates.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	UpdateDetails(ctx context.Context, userID uuid.UUID, details ProfileDetails) error

	// Debit subtracts amount only when coins >= amount; otherwise ErrInsufficientCoins.
	Debit(ctx context.Context, userID uuid.UUID, amount int) error

	// Credit adds amount to the balance.
	Credit(ctx context.Context, userID uuid.UUID, amount int) error

	// ClaimCheckin grants the reward unless last_checkin already equals day.
	// It reports false when the day was already claimed.
	ClaimCheckin(ctx context.Context, userID uuid.UUID, day time.Time, coins, experience int) (bool, error)
}
