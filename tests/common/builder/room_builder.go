//go:build unit || e2e

package builder

import (
	"stayledger/internal/domain/room"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID                uuid.UUID
	HostID            uuid.UUID
	BasePricePerNight int64
	Currency          string
	MaxGuests         int
	TimeZoneID        string
	Deleted           bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:                uuid.New(),
		HostID:            uuid.New(),
		BasePricePerNight: 100000,
		Currency:          "KRW",
		MaxGuests:         4,
		TimeZoneID:        "Asia/Seoul",
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) BuildDomain() *room.Room {
	r, err := room.NewRoom(b.ID, b.HostID, b.BasePricePerNight, b.Currency, b.MaxGuests, b.TimeZoneID, b.Deleted)
	if err != nil {
		panic(err)
	}
	return r
}

func (b *RoomBuilder) WithHost(hostID uuid.UUID) *RoomBuilder {
	b.HostID = hostID
	return b
}

func (b *RoomBuilder) WithBasePrice(price int64, currency string) *RoomBuilder {
	b.BasePricePerNight = price
	b.Currency = currency
	return b
}

func (b *RoomBuilder) WithTimeZone(zone string) *RoomBuilder {
	b.TimeZoneID = zone
	return b
}

func (b *RoomBuilder) WithMaxGuests(n int) *RoomBuilder {
	b.MaxGuests = n
	return b
}

func (b *RoomBuilder) AsDeleted() *RoomBuilder {
	b.Deleted = true
	return b
}
