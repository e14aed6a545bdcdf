package repository

import (
	"context"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/tzmidnight"
	"stayledger/internal/infra"
	"stayledger/internal/infra/db"
	"stayledger/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type MidnightRepository struct {
	db db.DBTX
}

func NewMidnightRepository(dbtx db.DBTX) *MidnightRepository {
	return &MidnightRepository{db: dbtx}
}

// TimeZonesInUse lists the zones of live rooms and of bookings the status
// batch may still advance.
func (r *MidnightRepository) TimeZonesInUse(ctx context.Context) ([]string, error) {
	const query = `
		SELECT time_zone_id FROM room WHERE deleted_at IS NULL
		UNION
		SELECT time_zone_id FROM booking WHERE status = ANY($1)
		ORDER BY 1`

	rows, err := r.db.Query(ctx, query, statusStrings(booking.AutoAdvanceStatuses))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list time zones in use", err)
	}
	zones, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan time zones", err)
	}
	return zones, nil
}

func (r *MidnightRepository) ReplaceAll(ctx context.Context, entries []tzmidnight.Entry) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM timezone_midnight`); err != nil {
		return infra.WrapRepoErr("failed to clear midnight index", err)
	}
	if len(entries) == 0 {
		return nil
	}

	const query = `
		INSERT INTO timezone_midnight (time_zone_id, utc_midnight, next_midnight_at, following_midnight_at, computed_at)
		VALUES ($1, $2, $3, $4, $5)`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.TimeZoneID,
			pgtype.Time{Microseconds: e.UTCMidnight.Microseconds(), Valid: true},
			pgconv.TimeToPgtype(e.NextMidnight),
			pgconv.TimeToPgtype(e.FollowingMidnight),
			pgconv.TimeToPgtype(e.ComputedAt),
		)
	}
	results := r.db.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return infra.WrapRepoErr("failed to insert midnight entry", err)
		}
	}
	if err := results.Close(); err != nil {
		return infra.WrapRepoErr("failed to insert midnight entries", err)
	}
	return nil
}

func (r *MidnightRepository) LoadAll(ctx context.Context) ([]tzmidnight.Entry, error) {
	const query = `
		SELECT time_zone_id, utc_midnight, next_midnight_at, following_midnight_at, computed_at
		FROM timezone_midnight
		ORDER BY time_zone_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load midnight index", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tzmidnight.Entry, error) {
		var (
			e                 tzmidnight.Entry
			utcMidnight       pgtype.Time
			nextMidnight      pgtype.Timestamptz
			followingMidnight pgtype.Timestamptz
			computedAt        pgtype.Timestamptz
		)
		if err := row.Scan(&e.TimeZoneID, &utcMidnight, &nextMidnight, &followingMidnight, &computedAt); err != nil {
			return e, err
		}
		e.UTCMidnight = time.Duration(utcMidnight.Microseconds) * time.Microsecond
		e.NextMidnight = pgconv.TimeFromPgtype(nextMidnight)
		e.FollowingMidnight = pgconv.TimeFromPgtype(followingMidnight)
		e.ComputedAt = pgconv.TimeFromPgtype(computedAt)
		return e, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan midnight index", err)
	}
	return entries, nil
}
