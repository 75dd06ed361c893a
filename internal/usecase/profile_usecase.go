package usecase

import (
	"context"
	"io"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// AvatarUpload is an image file received from a multipart form.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UpdateProfileInput carries the editable profile fields. Nil Avatar keeps the current one.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Nickname string
	Bio      string
	Avatar   *AvatarUpload
}

// CheckinOutput reports the balance after a successful check-in.
type CheckinOutput struct {
	CoinsGained      int
	ExperienceGained int
	Profile          *entity.Profile
}

// ProfileUsecase manages the per-account game state page.
type ProfileUsecase interface {
	// GetProfile loads the user and profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)
	// DailyCheckin claims today's reward, ErrAlreadyCheckedIn on the second attempt.
	DailyCheckin(ctx context.Context, userID uuid.UUID) (*CheckinOutput, error)
	// TipQRCode renders the PNG other players scan to tip this user.
	TipQRCode(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
