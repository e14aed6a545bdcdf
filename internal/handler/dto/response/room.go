package response

import (
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/usecase/queries"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type QuoteResponse struct {
	RoomID         uuid.UUID `json:"roomId"`
	CheckIn        string    `json:"checkIn"`
	CheckOut       string    `json:"checkOut"`
	Nights         int       `json:"nights"`
	NativeTotal    int64     `json:"nativeTotal"`
	NativeCurrency string    `json:"nativeCurrency"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
}

func FromQuote(q *shared.Quote) (*QuoteResponse, error) {
	res := &QuoteResponse{}
	if err := copier.Copy(res, q); err != nil {
		return nil, err
	}
	res.CheckIn = q.DateRange.Start().Format(ledger.DateLayout)
	res.CheckOut = q.DateRange.End().Format(ledger.DateLayout)
	return res, nil
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Available bool      `json:"available"`
}

func NewAvailabilityResponse(roomID uuid.UUID, dr ledger.DateRange, available bool) *AvailabilityResponse {
	return &AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   dr.Start().Format(ledger.DateLayout),
		CheckOut:  dr.End().Format(ledger.DateLayout),
		Available: available,
	}
}

type LedgerRecordResponse[V ledger.Value] struct {
	ID        uuid.UUID `json:"id"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Value     V         `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LedgerResponse struct {
	From         string                         `json:"from"`
	To           string                         `json:"to"`
	Availability []LedgerRecordResponse[bool]  `json:"availability"`
	Pricing      []LedgerRecordResponse[int64] `json:"pricing"`
}

func fromRecords[V ledger.Value](records []ledger.Record[V]) []LedgerRecordResponse[V] {
	out := make([]LedgerRecordResponse[V], 0, len(records))
	for _, r := range records {
		out = append(out, LedgerRecordResponse[V]{
			ID:        r.ID,
			Start:     r.Range.Start().Format(ledger.DateLayout),
			End:       r.Range.End().Format(ledger.DateLayout),
			Value:     r.Value,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}

func FromLedgerView(v *queries.LedgerView) *LedgerResponse {
	return &LedgerResponse{
		From:         v.Window.Start().Format(ledger.DateLayout),
		To:           v.Window.End().Format(ledger.DateLayout),
		Availability: fromRecords(v.Availability),
		Pricing:      fromRecords(v.Pricing),
	}
}
