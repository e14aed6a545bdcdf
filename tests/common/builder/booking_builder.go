//go:build unit || e2e

package builder

import (
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID             uuid.UUID
	RoomID         uuid.UUID
	GuestID        uuid.UUID
	CheckIn        string
	CheckOut       string
	NumberOfGuests int
	QuotedPrice    int64
	Currency       string
	Status         booking.Status
	TimeZoneID     string
	CreatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:             uuid.New(),
		RoomID:         uuid.New(),
		GuestID:        uuid.New(),
		CheckIn:        "2026-07-10",
		CheckOut:       "2026-07-12",
		NumberOfGuests: 2,
		QuotedPrice:    200000,
		Currency:       "KRW",
		Status:         booking.StatusRequested,
		TimeZoneID:     "Asia/Seoul",
		CreatedAt:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	dr, err := ledger.ParseDateRange(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBooking(b.ID, b.RoomID, b.GuestID, dr, b.NumberOfGuests,
		b.QuotedPrice, b.Currency, b.Status, b.TimeZoneID, b.CreatedAt, b.CreatedAt)
}

func (b *BookingBuilder) ForRoom(roomID uuid.UUID, timeZoneID string) *BookingBuilder {
	b.RoomID = roomID
	b.TimeZoneID = timeZoneID
	return b
}

func (b *BookingBuilder) ForGuest(guestID uuid.UUID) *BookingBuilder {
	b.GuestID = guestID
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) CreatedAtTime(t time.Time) *BookingBuilder {
	b.CreatedAt = t
	return b
}
