package repository

import (
	"context"

	"stayledger/internal/domain/booking"
	"stayledger/internal/infra"
	"stayledger/internal/infra/db"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/pkg/pgconv"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, room_id, guest_id, date_range, number_of_guests, quoted_price,
	currency, status, time_zone_id, created_at, updated_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO booking (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.RoomID()),
		pgconv.UUIDToPgtype(b.GuestID()),
		pgconv.DateRangeToPgtype(b.DateRange()),
		int32(b.NumberOfGuests()), // #nosec G115 -- guest counts are validated small positives
		b.QuotedPrice(),
		b.Currency(),
		b.Status().String(),
		b.TimeZoneID(),
		pgconv.TimeToPgtype(b.CreatedAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM booking WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM booking WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, id)
}

func (r *BookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBooking)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %s", id)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

// UpdateStatus is a compare-and-set on status so a stale writer cannot
// overwrite a transition it did not see.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	const query = `
		UPDATE booking
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`

	tag, err := r.db.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		b.Status().String(),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		from.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.statusConflict(ctx, b)
	}
	return nil
}

// statusConflict reports the status a lost compare-and-set actually ran into.
func (r *BookingRepository) statusConflict(ctx context.Context, b *booking.Booking) error {
	var stored string
	err := r.db.QueryRow(ctx, `SELECT status FROM booking WHERE id = $1`, pgconv.UUIDToPgtype(b.ID())).Scan(&stored)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return errs.Wrapf(errs.ErrBookingNotFound, "booking %s", b.ID())
		}
		return infra.WrapRepoErr("failed to read booking status", err)
	}
	return errs.NewInvalidStatusChange(stored, b.Status().String())
}

func (r *BookingRepository) FindForAutoAdvance(ctx context.Context, zones []string, statuses []booking.Status) ([]*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM booking
		WHERE time_zone_id = ANY($1) AND status = ANY($2)
		ORDER BY id
		FOR UPDATE SKIP LOCKED`

	rows, err := r.db.Query(ctx, query, zones, statusStrings(statuses))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings to advance", err)
	}
	bookings, err := pgx.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings to advance", err)
	}
	return bookings, nil
}

// BulkUpdateStatus applies every change in one UPDATE ... FROM unnest. The
// status guard makes a re-run of the same tick a no-op.
func (r *BookingRepository) BulkUpdateStatus(ctx context.Context, changes []shared.StatusChange) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	const query = `
		UPDATE booking AS b
		SET status = c.to_status, updated_at = c.changed_at
		FROM unnest($1::uuid[], $2::text[], $3::text[], $4::timestamptz[])
			AS c(id, from_status, to_status, changed_at)
		WHERE b.id = c.id AND b.status = c.from_status`

	ids := make([]pgtype.UUID, len(changes))
	from := make([]string, len(changes))
	to := make([]string, len(changes))
	at := make([]pgtype.Timestamptz, len(changes))
	for i, c := range changes {
		ids[i] = pgconv.UUIDToPgtype(c.BookingID)
		from[i] = c.From.String()
		to[i] = c.To.String()
		at[i] = pgconv.TimeToPgtype(c.At)
	}

	tag, err := r.db.Exec(ctx, query, ids, from, to, at)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to bulk update booking status", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID uuid.UUID, after *shared.PageKey, limit int) ([]*booking.Booking, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		const query = `
			SELECT ` + bookingColumns + `
			FROM booking
			WHERE guest_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`
		rows, err = r.db.Query(ctx, query, pgconv.UUIDToPgtype(guestID), limit)
	} else {
		const query = `
			SELECT ` + bookingColumns + `
			FROM booking
			WHERE guest_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`
		rows, err = r.db.Query(ctx, query,
			pgconv.UUIDToPgtype(guestID),
			pgconv.TimeToPgtype(after.CreatedAt),
			pgconv.UUIDToPgtype(after.ID),
			limit,
		)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	bookings, err := pgx.CollectRows(rows, scanBooking)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}
	return bookings, nil
}

func scanBooking(row pgx.CollectableRow) (*booking.Booking, error) {
	var (
		id, roomID, guestID  pgtype.UUID
		dateRange            pgtype.Range[pgtype.Date]
		guests               int32
		quotedPrice          int64
		currency, status, tz string
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &roomID, &guestID, &dateRange, &guests, &quotedPrice,
		&currency, &status, &tz, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	dr, err := pgconv.DateRangeFromPgtype(dateRange)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(roomID),
		pgconv.UUIDFromPgtype(guestID),
		dr,
		int(guests),
		quotedPrice,
		currency,
		booking.Status(status),
		tz,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func statusStrings(statuses []booking.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
