package service

import "context"

// TextGenerator is the remote generative-text service behind the plaza assistant.
type TextGenerator interface {
	// GenerateText sends a fully rendered prompt and returns the model's reply.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
