package commands

import (
	"context"
	"log/slog"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/clock"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Approve(ctx context.Context, bookingID, hostID uuid.UUID) (*booking.Booking, error)
	Reject(ctx context.Context, bookingID, hostID uuid.UUID) (*booking.Booking, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
	}
}

// authorizer decides whether actorID may act on b.
type authorizer func(b *booking.Booking, rm *room.Room, actorID uuid.UUID) bool

func hostOnly(_ *booking.Booking, rm *room.Room, actorID uuid.UUID) bool {
	return rm.IsHostedBy(actorID)
}

func guestOrHost(b *booking.Booking, rm *room.Room, actorID uuid.UUID) bool {
	return b.GuestID() == actorID || rm.IsHostedBy(actorID)
}

func (uc *bookingCommandsImpl) Approve(ctx context.Context, bookingID, hostID uuid.UUID) (*booking.Booking, error) {
	return uc.changeStatus(ctx, bookingID, hostID, booking.StatusReserved, hostOnly, shared.EventBookingApproved)
}

func (uc *bookingCommandsImpl) Reject(ctx context.Context, bookingID, hostID uuid.UUID) (*booking.Booking, error) {
	return uc.changeStatus(ctx, bookingID, hostID, booking.StatusRejected, hostOnly, shared.EventBookingRejected)
}

// Cancel does not reopen the nights in the availability ledger. Hosts reopen
// them explicitly.
func (uc *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (*booking.Booking, error) {
	return uc.changeStatus(ctx, bookingID, actorID, booking.StatusCancelled, guestOrHost, shared.EventBookingCancelled)
}

func (uc *bookingCommandsImpl) changeStatus(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	to booking.Status,
	allowed authorizer,
	eventType string,
) (*booking.Booking, error) {
	var (
		updated *booking.Booking
		trigger booking.Trigger
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		rm, err := tx.Rooms().FindByID(ctx, b.RoomID())
		if err != nil {
			return err
		}
		if !allowed(b, rm, actorID) {
			return errs.ErrForbidden
		}

		from := b.Status()
		trigger, err = b.ChangeStatus(to, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, from); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking status changed",
		"booking_id", updated.ID(),
		"status", updated.Status().String(),
		"trigger", string(trigger),
	)
	shared.PublishAfterCommit(ctx, uc.publisher, eventType, updated.ID())
	return updated, nil
}
