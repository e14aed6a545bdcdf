package booking

import (
	"errors"
	"strings"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidGuestCount = errors.New("number of guests must be at least 1")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidCurrency   = errors.New("currency must be a 3-letter code")
)

type Booking struct {
	id             uuid.UUID
	roomID         uuid.UUID
	guestID        uuid.UUID
	dateRange      ledger.DateRange
	numberOfGuests int
	quotedPrice    int64
	currency       string
	status         Status
	timeZoneID     string
	createdAt      time.Time
	updatedAt      time.Time
}

type NewBookingParams struct {
	RoomID         uuid.UUID
	GuestID        uuid.UUID
	DateRange      ledger.DateRange
	NumberOfGuests int
	QuotedPrice    int64
	Currency       string
	TimeZoneID     string
}

// NewBooking creates a booking in REQUESTED status. The timezone is copied
// from the room and never follows later room changes.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.DateRange.IsZero() {
		return nil, errs.ErrInvalidRange
	}
	if p.NumberOfGuests < 1 {
		return nil, ErrInvalidGuestCount
	}
	if p.QuotedPrice < 0 {
		return nil, ErrNegativePrice
	}
	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	if _, err := time.LoadLocation(p.TimeZoneID); err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
	}

	return &Booking{
		id:             uuid.New(),
		roomID:         p.RoomID,
		guestID:        p.GuestID,
		dateRange:      p.DateRange,
		numberOfGuests: p.NumberOfGuests,
		quotedPrice:    p.QuotedPrice,
		currency:       currency,
		status:         StatusRequested,
		timeZoneID:     p.TimeZoneID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructBooking(
	id, roomID, guestID uuid.UUID,
	dateRange ledger.DateRange,
	numberOfGuests int,
	quotedPrice int64,
	currency string,
	status Status,
	timeZoneID string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		roomID:         roomID,
		guestID:        guestID,
		dateRange:      dateRange,
		numberOfGuests: numberOfGuests,
		quotedPrice:    quotedPrice,
		currency:       currency,
		status:         status,
		timeZoneID:     timeZoneID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ChangeStatus applies a guarded transition.
func (b *Booking) ChangeStatus(to Status, now time.Time) (Trigger, error) {
	trigger, err := Transition(b.status, to)
	if err != nil {
		return "", err
	}
	b.status = to
	b.updatedAt = now
	return trigger, nil
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) RoomID() uuid.UUID           { return b.roomID }
func (b *Booking) GuestID() uuid.UUID          { return b.guestID }
func (b *Booking) DateRange() ledger.DateRange { return b.dateRange }
func (b *Booking) NumberOfGuests() int         { return b.numberOfGuests }
func (b *Booking) QuotedPrice() int64          { return b.quotedPrice }
func (b *Booking) Currency() string            { return b.currency }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) TimeZoneID() string          { return b.timeZoneID }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
