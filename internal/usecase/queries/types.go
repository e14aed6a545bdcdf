package queries

import (
	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"
)

// LedgerView is the host calendar for one window.
type LedgerView struct {
	Window       ledger.DateRange
	Availability []ledger.AvailabilityRecord
	Pricing      []ledger.PricingRecord
}

type BookingPage struct {
	Items []*booking.Booking
	// NextCursor is empty on the last page.
	NextCursor string
}
