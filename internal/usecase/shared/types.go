package shared

import (
	"context"

	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingStarted   = "booking.started"
	EventBookingEnded     = "booking.ended"
)

// RateProvider converts amounts using rates expressed against one anchor
// unit. Unknown codes fail with errs.ErrUnknownCurrency.
type RateProvider interface {
	Convert(ctx context.Context, from, to string, amount int64) (float64, error)
}

// EventPublisher delivers notifications after commit. Callers log failures
// and never roll back on them.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, bookingID uuid.UUID) error
}
