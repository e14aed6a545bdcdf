package shared

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// PublishAfterCommit sends one event per booking. The transaction has already
// committed, so failures are only logged.
func PublishAfterCommit(ctx context.Context, pub EventPublisher, eventType string, bookingIDs ...uuid.UUID) {
	for _, id := range bookingIDs {
		if err := pub.Publish(ctx, eventType, id); err != nil {
			slog.Warn("failed to publish booking event",
				"event_type", eventType,
				"booking_id", id,
				"error", err,
			)
		}
	}
}
