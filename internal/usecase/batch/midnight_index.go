package batch

import (
	"context"
	"log/slog"
	"time"

	"stayledger/internal/domain/tzmidnight"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"
)

type IndexSummary struct {
	Entries []tzmidnight.Entry
	Skipped []string
}

// MidnightIndexJob recomputes the UTC time-of-day of the next local midnight
// for every time zone that has bookings or rooms. Running it daily absorbs
// DST shifts.
type MidnightIndexJob struct {
	uow  shared.UnitOfWork
	tick time.Duration
}

func NewMidnightIndexJob(uow shared.UnitOfWork, cfg config.BatchConfig) *MidnightIndexJob {
	return &MidnightIndexJob{uow: uow, tick: cfg.TickInterval}
}

// Run computes from the tick boundary nearest to now, the same instant the
// status batch rounds to, so a midnight on that tick stays in the index
// whichever of the two jobs commits first.
func (j *MidnightIndexJob) Run(ctx context.Context, now time.Time) IndexSummary {
	var summary IndexSummary
	from := tzmidnight.RoundToTick(now, j.tick)

	err := j.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		summary = IndexSummary{}

		zones, err := tx.Midnights().TimeZonesInUse(ctx)
		if err != nil {
			return errs.Wrap(err, "list time zones in use")
		}
		for _, zone := range zones {
			entry, err := tzmidnight.Compute(zone, from)
			if err != nil {
				summary.Skipped = append(summary.Skipped, zone)
				continue
			}
			summary.Entries = append(summary.Entries, entry)
		}
		return tx.Midnights().ReplaceAll(ctx, summary.Entries)
	})
	if err != nil {
		slog.Error("midnight index refresh failed", "error", err)
		return IndexSummary{}
	}

	for _, zone := range summary.Skipped {
		slog.Warn("skipping unknown time zone", "time_zone_id", zone)
	}
	slog.Info("midnight index refreshed",
		"zones", len(summary.Entries),
		"skipped", len(summary.Skipped),
	)
	return summary
}
