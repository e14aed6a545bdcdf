//go:build unit || e2e

package builder

import (
	"time"

	"stayledger/internal/domain/ledger"

	"github.com/google/uuid"
)

var ledgerWrittenAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Open returns an availability record marking [start,end) open.
func Open(roomID uuid.UUID, start, end string) ledger.AvailabilityRecord {
	return ledger.NewRecord(roomID, MustRange(start, end), true, ledgerWrittenAt)
}

func Closed(roomID uuid.UUID, start, end string) ledger.AvailabilityRecord {
	return ledger.NewRecord(roomID, MustRange(start, end), false, ledgerWrittenAt)
}

func Price(roomID uuid.UUID, start, end string, price int64) ledger.PricingRecord {
	return ledger.NewRecord(roomID, MustRange(start, end), price, ledgerWrittenAt)
}

func MustRange(start, end string) ledger.DateRange {
	dr, err := ledger.ParseDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return dr
}
