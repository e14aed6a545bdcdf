package request

import (
	"stayledger/internal/domain/ledger"
)

type DateRangeBody struct {
	Start string `json:"start" binding:"required,ledgerdate"`
	End   string `json:"end" binding:"required,ledgerdate"`
}

func (r DateRangeBody) ToDomain() (ledger.DateRange, error) {
	return ledger.ParseDateRange(r.Start, r.End)
}

type SetAvailabilityRequest struct {
	Ranges    []DateRangeBody `json:"ranges" binding:"required,min=1,max=100,dive"`
	Available *bool           `json:"available" binding:"required"`
}

type SetPricingRequest struct {
	Ranges        []DateRangeBody `json:"ranges" binding:"required,min=1,max=100,dive"`
	PricePerNight int64           `json:"pricePerNight" binding:"required,gt=0"`
}

func rangesToDomain(bodies []DateRangeBody) ([]ledger.DateRange, error) {
	out := make([]ledger.DateRange, 0, len(bodies))
	for _, b := range bodies {
		dr, err := b.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	return out, nil
}

func (r SetAvailabilityRequest) DateRanges() ([]ledger.DateRange, error) {
	return rangesToDomain(r.Ranges)
}

func (r SetPricingRequest) DateRanges() ([]ledger.DateRange, error) {
	return rangesToDomain(r.Ranges)
}

type LedgerQuery struct {
	From string `form:"from" binding:"required,ledgerdate"`
	To   string `form:"to" binding:"required,ledgerdate"`
}

func (q LedgerQuery) ToDomain() (ledger.DateRange, error) {
	return ledger.ParseDateRange(q.From, q.To)
}

type StayQuery struct {
	CheckIn  string `form:"checkIn" binding:"required,ledgerdate"`
	CheckOut string `form:"checkOut" binding:"required,ledgerdate"`
	Currency string `form:"currency" binding:"omitempty,currency"`
}

func (q StayQuery) ToDomain() (ledger.DateRange, error) {
	return ledger.ParseDateRange(q.CheckIn, q.CheckOut)
}
