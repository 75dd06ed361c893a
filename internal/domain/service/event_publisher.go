package service

import (
	"context"

	"plaza/internal/domain/entity"
)

// EventPublisher ships committed economy changes to downstream consumers.
type EventPublisher interface {
	PublishEconomyEvent(ctx context.Context, event *entity.EconomyEvent) error
	Close() error
}
