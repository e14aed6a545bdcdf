package shared

import (
	"context"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/domain/tzmidnight"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-table reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rooms() RoomRepository
	Availability() AvailabilityRepository
	Pricing() PricingRepository
	Bookings() BookingRepository
	Midnights() MidnightRepository
}

// LedgerRepository is the storage side of one ledger kind. Records are only
// ever deleted and inserted, never updated in place.
type LedgerRepository[V ledger.Value] interface {
	FindOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.Record[V], error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	Insert(ctx context.Context, records []ledger.Record[V]) error
}

type AvailabilityRepository interface {
	LedgerRepository[bool]
	// FindOpenOverlapping returns the open records overlapping dr, ordered by start.
	FindOpenOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error)
	// LockOverlapping is FindOpenOverlapping with row locks held until the
	// transaction ends. Concurrent callers with overlapping predicates block
	// until the first transaction commits or rolls back.
	LockOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error)
}

type PricingRepository interface {
	LedgerRepository[int64]
}

// RoomRepository returns errs.ErrRoomNotFound for unknown ids.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type StatusChange struct {
	BookingID uuid.UUID
	From      booking.Status
	To        booking.Status
	At        time.Time
}

// BookingRepository returns errs.ErrBookingNotFound for unknown ids.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus persists b's status only if the stored status still equals from.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
	// FindForAutoAdvance locks and returns the bookings in zones whose status is
	// one of statuses. Rows locked by another batch run are skipped.
	FindForAutoAdvance(ctx context.Context, zones []string, statuses []booking.Status) ([]*booking.Booking, error)
	// BulkUpdateStatus applies changes in one statement; rows whose status no
	// longer equals From are left alone. Returns the number of rows changed.
	BulkUpdateStatus(ctx context.Context, changes []StatusChange) (int64, error)
	// ListByGuest pages through a guest's bookings newest first. after is the
	// key of the last row of the previous page, nil for the first page.
	ListByGuest(ctx context.Context, guestID uuid.UUID, after *PageKey, limit int) ([]*booking.Booking, error)
}

// PageKey is a keyset position over (created_at, id) descending.
type PageKey struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

type MidnightRepository interface {
	TimeZonesInUse(ctx context.Context) ([]string, error)
	ReplaceAll(ctx context.Context, entries []tzmidnight.Entry) error
	LoadAll(ctx context.Context) ([]tzmidnight.Entry, error)
}
