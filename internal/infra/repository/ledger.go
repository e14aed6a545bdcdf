package repository

import (
	"context"
	"fmt"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/infra"
	"stayledger/internal/infra/db"
	"stayledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ledgerTable names the table and value column backing one ledger kind.
// Both tables share the shape (id, room_id, date_range, <value>, updated_at)
// and carry an exclusion constraint on (room_id, date_range).
type ledgerTable struct {
	name        string
	valueColumn string
}

var (
	availabilityTable = ledgerTable{name: "availability", valueColumn: "is_available"}
	pricingTable      = ledgerTable{name: "pricing", valueColumn: "price_per_night"}
)

// LedgerRepository is the generic storage for Record[V]. It is bound to the
// DBTX it was created with, normally a transaction from the unit of work.
type LedgerRepository[V ledger.Value] struct {
	table ledgerTable
	db    db.DBTX
}

func newLedgerRepository[V ledger.Value](table ledgerTable, dbtx db.DBTX) *LedgerRepository[V] {
	return &LedgerRepository[V]{table: table, db: dbtx}
}

func (r *LedgerRepository[V]) selectColumns() string {
	return "id, room_id, date_range, " + r.table.valueColumn + ", updated_at"
}

func (r *LedgerRepository[V]) FindOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.Record[V], error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE room_id = $1 AND date_range && $2
		ORDER BY lower(date_range)`,
		r.selectColumns(), r.table.name)

	return r.query(ctx, "failed to find overlapping "+r.table.name+" records", query,
		pgconv.UUIDToPgtype(roomID), pgconv.DateRangeToPgtype(dr))
}

func (r *LedgerRepository[V]) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.table.name)
	if _, err := r.db.Exec(ctx, query, pgconv.UUIDsToPgtype(ids)); err != nil {
		return infra.WrapRepoErr("failed to delete "+r.table.name+" records", err)
	}
	return nil
}

// Insert writes records in one round trip. The exclusion constraint rejects
// the batch with 23P01 when a concurrent writer got there first.
func (r *LedgerRepository[V]) Insert(ctx context.Context, records []ledger.Record[V]) error {
	if len(records) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, room_id, date_range, %s, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		r.table.name, r.table.valueColumn)

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			pgconv.UUIDToPgtype(rec.ID),
			pgconv.UUIDToPgtype(rec.RoomID),
			pgconv.DateRangeToPgtype(rec.Range),
			rec.Value,
			pgconv.TimeToPgtype(rec.UpdatedAt),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return infra.WrapRepoErr("failed to insert "+r.table.name+" record", err)
		}
	}
	if err := results.Close(); err != nil {
		return infra.WrapRepoErr("failed to insert "+r.table.name+" records", err)
	}
	return nil
}

func (r *LedgerRepository[V]) query(ctx context.Context, msg, query string, args ...any) ([]ledger.Record[V], error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	records, err := pgx.CollectRows(rows, scanRecord[V])
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return records, nil
}

func scanRecord[V ledger.Value](row pgx.CollectableRow) (ledger.Record[V], error) {
	var (
		rec       ledger.Record[V]
		id        pgtype.UUID
		roomID    pgtype.UUID
		dateRange pgtype.Range[pgtype.Date]
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &roomID, &dateRange, &rec.Value, &updatedAt); err != nil {
		return rec, err
	}
	dr, err := pgconv.DateRangeFromPgtype(dateRange)
	if err != nil {
		return rec, err
	}
	rec.ID = pgconv.UUIDFromPgtype(id)
	rec.RoomID = pgconv.UUIDFromPgtype(roomID)
	rec.Range = dr
	rec.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return rec, nil
}

type AvailabilityRepository struct {
	*LedgerRepository[bool]
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{LedgerRepository: newLedgerRepository[bool](availabilityTable, dbtx)}
}

func (r *AvailabilityRepository) FindOpenOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error) {
	const query = `
		SELECT id, room_id, date_range, is_available, updated_at
		FROM availability
		WHERE room_id = $1 AND is_available AND date_range && $2
		ORDER BY lower(date_range)`

	return r.query(ctx, "failed to find open availability records", query,
		pgconv.UUIDToPgtype(roomID), pgconv.DateRangeToPgtype(dr))
}

// LockOverlapping takes FOR UPDATE locks on exactly the rows it returns.
// Rows are locked in start order so concurrent reservations on the same room
// acquire locks in the same sequence.
func (r *AvailabilityRepository) LockOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error) {
	const query = `
		SELECT id, room_id, date_range, is_available, updated_at
		FROM availability
		WHERE room_id = $1 AND is_available AND date_range && $2
		ORDER BY lower(date_range)
		FOR UPDATE`

	return r.query(ctx, "failed to lock availability records", query,
		pgconv.UUIDToPgtype(roomID), pgconv.DateRangeToPgtype(dr))
}

type PricingRepository struct {
	*LedgerRepository[int64]
}

func NewPricingRepository(dbtx db.DBTX) *PricingRepository {
	return &PricingRepository{LedgerRepository: newLedgerRepository[int64](pricingTable, dbtx)}
}
