package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/service"
)

// publishEvent emits a committed economy event. Failures are logged and swallowed.
func publishEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *entity.EconomyEvent) {
	if publisher == nil {
		return
	}
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := publisher.PublishEconomyEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish economy event",
			slog.String("type", string(event.Type)),
			slog.String("userID", event.UserID.String()),
			slog.Any("error", err))
	}
}
