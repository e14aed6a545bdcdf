package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Value is the set of types a ledger can hold: open/closed flags for
// availability and nightly prices for pricing.
type Value interface {
	~bool | ~int64
}

type Record[V Value] struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	Range     DateRange
	Value     V
	UpdatedAt time.Time
}

type (
	AvailabilityRecord = Record[bool]
	PricingRecord      = Record[int64]
)

func NewRecord[V Value](roomID uuid.UUID, dr DateRange, v V, now time.Time) Record[V] {
	return Record[V]{
		ID:        uuid.New(),
		RoomID:    roomID,
		Range:     dr,
		Value:     v,
		UpdatedAt: now,
	}
}
