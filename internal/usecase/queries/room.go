package queries

import (
	"context"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomQueries interface {
	Quote(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange, currency string) (*shared.Quote, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) (bool, error)
	ListLedger(ctx context.Context, hostID, roomID uuid.UUID, window ledger.DateRange) (*LedgerView, error)
}

type roomQueriesImpl struct {
	uow     shared.UnitOfWork
	checker *shared.AvailabilityChecker
	pricing *shared.PriceCalculator
}

func NewRoomQueries(uow shared.UnitOfWork, checker *shared.AvailabilityChecker, pricing *shared.PriceCalculator) RoomQueries {
	return &roomQueriesImpl{uow: uow, checker: checker, pricing: pricing}
}

func (q *roomQueriesImpl) Quote(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange, currency string) (*shared.Quote, error) {
	if dr.IsZero() {
		return nil, errs.ErrInvalidRange
	}

	var quote shared.Quote
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := activeRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}
		quote, err = q.pricing.Quote(ctx, tx.Pricing(), rm, dr, currency)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (q *roomQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) (bool, error) {
	if dr.IsZero() {
		return false, errs.ErrInvalidRange
	}

	var available bool
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := activeRoom(ctx, tx, roomID); err != nil {
			return err
		}
		var err error
		available, err = q.checker.IsFullyAvailable(ctx, tx.Availability(), roomID, dr)
		return err
	})
	return available, err
}

func (q *roomQueriesImpl) ListLedger(ctx context.Context, hostID, roomID uuid.UUID, window ledger.DateRange) (*LedgerView, error) {
	if window.IsZero() {
		return nil, errs.ErrInvalidRange
	}

	view := &LedgerView{Window: window}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rm, err := activeRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if !rm.IsHostedBy(hostID) {
			return errs.ErrForbidden
		}

		if view.Availability, err = tx.Availability().FindOverlapping(ctx, roomID, window); err != nil {
			return errs.Wrap(err, "load availability records")
		}
		if view.Pricing, err = tx.Pricing().FindOverlapping(ctx, roomID, window); err != nil {
			return errs.Wrap(err, "load pricing records")
		}
		ledger.SortByStart(view.Availability)
		ledger.SortByStart(view.Pricing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func activeRoom(ctx context.Context, tx shared.Tx, roomID uuid.UUID) (*room.Room, error) {
	rm, err := tx.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm.IsDeleted() {
		return nil, errs.Wrapf(errs.ErrRoomNotFound, "room %s is deleted", roomID)
	}
	return rm, nil
}
