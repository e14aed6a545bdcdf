package pgconv

import (
	"errors"
	"time"

	"stayledger/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrUnboundedRange = errors.New("daterange must have both bounds")
	ErrEmptyRange     = errors.New("daterange is empty")
)

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDFromPgtype(pu pgtype.UUID) uuid.UUID {
	if !pu.Valid {
		return uuid.Nil
	}
	return uuid.UUID(pu.Bytes)
}

func UUIDsToPgtype(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = UUIDToPgtype(id)
	}
	return out
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}

func DateToPgtype(d time.Time) pgtype.Date {
	return pgtype.Date{Time: ledger.DateOf(d), Valid: true}
}

// DateRangeToPgtype encodes dr as a canonical '[)' daterange.
func DateRangeToPgtype(dr ledger.DateRange) pgtype.Range[pgtype.Date] {
	return pgtype.Range[pgtype.Date]{
		Lower:     DateToPgtype(dr.Start()),
		Upper:     DateToPgtype(dr.End()),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Valid:     true,
	}
}

// DateRangeFromPgtype accepts any bound style and normalises to half-open.
func DateRangeFromPgtype(r pgtype.Range[pgtype.Date]) (ledger.DateRange, error) {
	if !r.Valid || r.LowerType == pgtype.Empty {
		return ledger.DateRange{}, ErrEmptyRange
	}
	if r.LowerType == pgtype.Unbounded || r.UpperType == pgtype.Unbounded || !r.Lower.Valid || !r.Upper.Valid {
		return ledger.DateRange{}, ErrUnboundedRange
	}

	start := ledger.DateOf(r.Lower.Time)
	if r.LowerType == pgtype.Exclusive {
		start = start.AddDate(0, 0, 1)
	}
	end := ledger.DateOf(r.Upper.Time)
	if r.UpperType == pgtype.Inclusive {
		end = end.AddDate(0, 0, 1)
	}
	return ledger.NewDateRange(start, end)
}

// IsNoRows checks if the error is a "no rows" error from pgx
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
