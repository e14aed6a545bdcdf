package commands

import (
	"context"
	"log/slog"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/clock"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetAvailabilityInput struct {
	HostID    uuid.UUID
	RoomID    uuid.UUID
	Ranges    []ledger.DateRange
	Available bool
}

type SetPricingInput struct {
	HostID        uuid.UUID
	RoomID        uuid.UUID
	Ranges        []ledger.DateRange
	PricePerNight int64
}

type LedgerCommands interface {
	SetAvailability(ctx context.Context, in SetAvailabilityInput) error
	SetPricing(ctx context.Context, in SetPricingInput) error
}

type ledgerCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	horizonDays int
}

func NewLedgerCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.LedgerConfig) LedgerCommands {
	return &ledgerCommandsImpl{
		uow:         uow,
		clock:       clk,
		horizonDays: cfg.HorizonDays,
	}
}

func (uc *ledgerCommandsImpl) SetAvailability(ctx context.Context, in SetAvailabilityInput) error {
	if err := validateRanges(in.Ranges); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		if _, err := uc.hostedRoomInHorizon(ctx, tx, in.RoomID, in.HostID, in.Ranges, now); err != nil {
			return err
		}
		return shared.WriteLedger(ctx, tx.Availability(), in.RoomID, in.Ranges, in.Available, now)
	})
	if err != nil {
		return err
	}

	slog.Info("availability updated",
		"room_id", in.RoomID,
		"ranges", len(in.Ranges),
		"available", in.Available,
	)
	return nil
}

func (uc *ledgerCommandsImpl) SetPricing(ctx context.Context, in SetPricingInput) error {
	if in.PricePerNight <= 0 {
		return errs.ErrInvalidPrice
	}
	if err := validateRanges(in.Ranges); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		if _, err := uc.hostedRoomInHorizon(ctx, tx, in.RoomID, in.HostID, in.Ranges, now); err != nil {
			return err
		}
		return shared.WriteLedger(ctx, tx.Pricing(), in.RoomID, in.Ranges, in.PricePerNight, now)
	})
	if err != nil {
		return err
	}

	slog.Info("pricing updated",
		"room_id", in.RoomID,
		"ranges", len(in.Ranges),
		"price_per_night", in.PricePerNight,
	)
	return nil
}

func (uc *ledgerCommandsImpl) hostedRoomInHorizon(
	ctx context.Context,
	tx shared.Tx,
	roomID, hostID uuid.UUID,
	ranges []ledger.DateRange,
	now time.Time,
) (*room.Room, error) {
	rm, err := loadHostedRoom(ctx, tx, roomID, hostID)
	if err != nil {
		return nil, err
	}
	for _, dr := range ranges {
		if !rm.WithinHorizon(dr, now, uc.horizonDays) {
			return nil, errs.Wrapf(errs.ErrOutsideHorizon, "range %s", dr)
		}
	}
	return rm, nil
}

func validateRanges(ranges []ledger.DateRange) error {
	if len(ranges) == 0 {
		return errs.Wrap(errs.ErrInvalidRange, "no ranges given")
	}
	for _, dr := range ranges {
		if dr.IsZero() {
			return errs.ErrInvalidRange
		}
	}
	return nil
}
