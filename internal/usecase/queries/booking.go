package queries

import (
	"context"

	"stayledger/internal/domain/booking"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, after string, limit int) (*BookingPage, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

// GetBooking is visible to the booking's guest and to the room's host.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error) {
	var found *booking.Booking
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.GuestID() != actorID {
			rm, err := tx.Rooms().FindByID(ctx, b.RoomID())
			if err != nil {
				return err
			}
			if !rm.IsHostedBy(actorID) {
				return errs.ErrForbidden
			}
		}
		found = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID, after string, limit int) (*BookingPage, error) {
	key, err := DecodeAfterCursor(after)
	if err != nil {
		return nil, err
	}
	limit = ValidateLimit(limit)

	var rows []*booking.Booking
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		// one extra row tells whether another page exists
		var err error
		rows, err = tx.Bookings().ListByGuest(ctx, guestID, key, limit+1)
		return err
	})
	if err != nil {
		return nil, err
	}

	page := &BookingPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt(), last.ID())
	}
	return page, nil
}
