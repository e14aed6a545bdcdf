package commands

import (
	"context"
	"log/slog"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"
	"stayledger/internal/pkg/clock"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReserveInput struct {
	RoomID         uuid.UUID
	GuestID        uuid.UUID
	DateRange      ledger.DateRange
	NumberOfGuests int
	// QuotedPrice is the amount the guest saw, in Currency.
	QuotedPrice int64
	Currency    string
}

type ReservationCommands interface {
	Reserve(ctx context.Context, in ReserveInput) (*booking.Booking, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	checker   *shared.AvailabilityChecker
	pricing   *shared.PriceCalculator
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	checker *shared.AvailabilityChecker,
	pricing *shared.PriceCalculator,
	publisher shared.EventPublisher,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		checker:   checker,
		pricing:   pricing,
		publisher: publisher,
		clock:     clk,
	}
}

// Reserve runs the whole reservation in one transaction. The availability
// rows overlapping the stay stay locked from the check until commit, so two
// guests racing for overlapping nights are serialised and the second one sees
// the nights already closed.
func (uc *reservationCommandsImpl) Reserve(ctx context.Context, in ReserveInput) (*booking.Booking, error) {
	if in.DateRange.IsZero() {
		return nil, errs.ErrInvalidRange
	}

	var created *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := loadRoom(ctx, tx, in.RoomID)
		if err != nil {
			return err
		}

		available, err := uc.checker.IsFullyAvailableLocked(ctx, tx.Availability(), in.RoomID, in.DateRange)
		if err != nil {
			return err
		}
		if !available {
			return errs.Wrapf(errs.ErrDatesUnavailable, "room %s %s", in.RoomID, in.DateRange)
		}

		if !rm.Accommodates(in.NumberOfGuests) {
			return errs.Wrapf(errs.ErrGuestCountExceeded, "%d guests, room allows %d", in.NumberOfGuests, rm.MaxGuests())
		}

		quote, err := uc.pricing.Quote(ctx, tx.Pricing(), rm, in.DateRange, in.Currency)
		if err != nil {
			return err
		}
		if quote.Amount != in.QuotedPrice {
			return errs.NewPriceChanged(in.QuotedPrice, quote.Amount)
		}

		now := uc.clock.Now()
		if err := shared.WriteLedger(ctx, tx.Availability(), in.RoomID, []ledger.DateRange{in.DateRange}, false, now); err != nil {
			return err
		}

		b, err := booking.NewBooking(booking.NewBookingParams{
			RoomID:         in.RoomID,
			GuestID:        in.GuestID,
			DateRange:      in.DateRange,
			NumberOfGuests: in.NumberOfGuests,
			QuotedPrice:    quote.Amount,
			Currency:       quote.Currency,
			TimeZoneID:     rm.TimeZoneID(),
		}, now)
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking requested",
		"booking_id", created.ID(),
		"room_id", created.RoomID(),
		"date_range", created.DateRange().String(),
	)
	shared.PublishAfterCommit(ctx, uc.publisher, shared.EventBookingCreated, created.ID())
	return created, nil
}
