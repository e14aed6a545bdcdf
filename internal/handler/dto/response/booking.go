package response

import (
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"
	"stayledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	RoomID         uuid.UUID `json:"roomId"`
	GuestID        uuid.UUID `json:"guestId"`
	CheckIn        string    `json:"checkIn"`
	CheckOut       string    `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	QuotedPrice    int64     `json:"quotedPrice"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	TimeZoneID     string    `json:"timeZoneId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromBooking(b *booking.Booking) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.Copy(res, b); err != nil {
		return nil, err
	}
	res.CheckIn = b.DateRange().Start().Format(ledger.DateLayout)
	res.CheckOut = b.DateRange().End().Format(ledger.DateLayout)
	return res, nil
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBookingPage(page *queries.BookingPage) (*BookingListResponse, error) {
	res := &BookingListResponse{Items: make([]*BookingResponse, 0, len(page.Items)), NextCursor: page.NextCursor}
	for _, b := range page.Items {
		item, err := FromBooking(b)
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}
