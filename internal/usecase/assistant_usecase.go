package usecase

import (
	"context"

	"github.com/google/uuid"
)

// AssistantUsecase relays plaza chat to the remote model.
type AssistantUsecase interface {
	// Chat returns the assistant reply. Remote failures come back as an in-character
	// reply with a nil error; only an empty message or an unknown user is an error.
	Chat(ctx context.Context, userID uuid.UUID, message string) (string, error)
}
