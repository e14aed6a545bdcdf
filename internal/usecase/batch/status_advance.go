package batch

import (
	"context"
	"log/slog"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/tzmidnight"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type AdvanceSummary struct {
	Tick    time.Time
	Zones   []string
	Changes []shared.StatusChange
	Updated int64
}

// StatusAdvanceJob moves bookings across their check-in and check-out
// boundaries at local midnight. Each run only touches bookings in the zones
// whose midnight falls on the current tick.
type StatusAdvanceJob struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	tick      time.Duration
}

func NewStatusAdvanceJob(uow shared.UnitOfWork, publisher shared.EventPublisher, cfg config.BatchConfig) *StatusAdvanceJob {
	return &StatusAdvanceJob{
		uow:       uow,
		publisher: publisher,
		tick:      cfg.TickInterval,
	}
}

// Run never returns an error. Failures are logged and the next tick retries,
// since the UPDATE is guarded by the current status.
func (j *StatusAdvanceJob) Run(ctx context.Context, now time.Time) AdvanceSummary {
	summary := AdvanceSummary{Tick: tzmidnight.RoundToTick(now, j.tick)}

	err := j.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		summary.Zones = nil
		summary.Changes = nil
		summary.Updated = 0

		entries, err := tx.Midnights().LoadAll(ctx)
		if err != nil {
			return errs.Wrap(err, "load midnight index")
		}
		zones := tzmidnight.NewIndex(entries).ZonesAt(summary.Tick)
		if len(zones) == 0 {
			return nil
		}
		summary.Zones = zones

		bookings, err := tx.Bookings().FindForAutoAdvance(ctx, zones, booking.AutoAdvanceStatuses)
		if err != nil {
			return errs.Wrap(err, "find bookings to advance")
		}

		for _, b := range bookings {
			change, ok := j.nextChange(b, summary.Tick)
			if ok {
				summary.Changes = append(summary.Changes, change)
			}
		}
		if len(summary.Changes) == 0 {
			return nil
		}

		summary.Updated, err = tx.Bookings().BulkUpdateStatus(ctx, summary.Changes)
		return err
	})
	if err != nil {
		slog.Error("status advance batch failed",
			"tick", summary.Tick,
			"zones", summary.Zones,
			"error", err,
		)
		return AdvanceSummary{Tick: summary.Tick, Zones: summary.Zones}
	}

	var started, ended []uuid.UUID
	for _, c := range summary.Changes {
		switch c.To {
		case booking.StatusOngoing:
			started = append(started, c.BookingID)
		case booking.StatusEnded:
			ended = append(ended, c.BookingID)
		}
	}
	shared.PublishAfterCommit(ctx, j.publisher, shared.EventBookingStarted, started...)
	shared.PublishAfterCommit(ctx, j.publisher, shared.EventBookingEnded, ended...)

	if len(summary.Zones) > 0 {
		slog.Info("status advance batch finished",
			"tick", summary.Tick,
			"zones", summary.Zones,
			"started", len(started),
			"ended", len(ended),
			"updated", summary.Updated,
		)
	}
	return summary
}

func (j *StatusAdvanceJob) nextChange(b *booking.Booking, tick time.Time) (shared.StatusChange, bool) {
	today, err := b.LocalToday(tick)
	if err != nil {
		slog.Warn("skipping booking with unknown time zone",
			"booking_id", b.ID(),
			"time_zone_id", b.TimeZoneID(),
			"error", err,
		)
		return shared.StatusChange{}, false
	}

	to, ok := booking.NextAutoStatus(b, today)
	if !ok {
		return shared.StatusChange{}, false
	}
	if _, err := booking.Transition(b.Status(), to); err != nil {
		return shared.StatusChange{}, false
	}
	return shared.StatusChange{
		BookingID: b.ID(),
		From:      b.Status(),
		To:        to,
		At:        tick,
	}, true
}
