//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a connection or a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ExchangeRates are seeded against USD.
var ExchangeRates = map[string]float64{
	"USD": 1,
	"KRW": 1364.5,
	"EUR": 0.92,
	"JPY": 151.2,
}

func InsertRoom(t *testing.T, db DBLike, r *room.Room) {
	t.Helper()

	var deletedAt any
	if r.IsDeleted() {
		deletedAt = time.Now()
	}
	_, err := db.Exec(context.Background(), `
		INSERT INTO room (id, host_id, base_price_per_night, currency, max_guests, time_zone_id, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID(), r.HostID(), r.BasePricePerNight(), r.Currency(), r.MaxGuests(), r.TimeZoneID(), deletedAt)
	require.NoError(t, err)
}

// InsertBooking bypasses the reservation flow, so callers are responsible
// for keeping the availability ledger consistent.
func InsertBooking(t *testing.T, db DBLike, b *booking.Booking) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO booking (id, room_id, guest_id, date_range, number_of_guests, quoted_price, currency, status, time_zone_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID(), b.RoomID(), b.GuestID(), pgconv.DateRangeToPgtype(b.DateRange()), b.NumberOfGuests(),
		b.QuotedPrice(), b.Currency(), b.Status().String(), b.TimeZoneID(), b.CreatedAt(), b.UpdatedAt())
	require.NoError(t, err)
}

func BookingStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM booking WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	for code, rate := range ExchangeRates {
		_, err := pool.Exec(ctx, `
			INSERT INTO exchange_rate (currency, rate) VALUES ($1, $2)
			ON CONFLICT (currency) DO UPDATE SET rate = EXCLUDED.rate, updated_at = now()`,
			code, rate)
		if err != nil {
			return err
		}
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
