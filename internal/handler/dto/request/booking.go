package request

import (
	"stayledger/internal/domain/ledger"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID         uuid.UUID `json:"roomId" binding:"required"`
	CheckIn        string    `json:"checkIn" binding:"required,ledgerdate"`
	CheckOut       string    `json:"checkOut" binding:"required,ledgerdate"`
	NumberOfGuests int       `json:"numberOfGuests" binding:"required,min=1,max=64"`
	QuotedPrice    int64     `json:"quotedPrice" binding:"min=0"`
	Currency       string    `json:"currency" binding:"required,currency"`
}

func (r CreateBookingRequest) DateRange() (ledger.DateRange, error) {
	return ledger.ParseDateRange(r.CheckIn, r.CheckOut)
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
