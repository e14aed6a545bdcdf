package booking

import (
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/pkg/errs"
)

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to Status) bool {
	_, ok := transitions[from][to]
	return ok
}

// Transition validates from -> to and returns the trigger that owns it.
func Transition(from, to Status) (Trigger, error) {
	trigger, ok := transitions[from][to]
	if !ok {
		return "", errs.NewInvalidStatusChange(from.String(), to.String())
	}
	return trigger, nil
}

// NextAutoStatus decides the automatic transition for b given the calendar
// date in the booking's own timezone. A booking that has not crossed its
// boundary yet returns ok=false.
func NextAutoStatus(b *Booking, localToday time.Time) (Status, bool) {
	today := ledger.DateOf(localToday)
	switch b.status {
	case StatusReserved:
		if today.Equal(b.dateRange.Start()) {
			return StatusOngoing, true
		}
	case StatusOngoing:
		if today.After(b.dateRange.End()) {
			return StatusEnded, true
		}
	}
	return "", false
}

// LocalToday is the calendar date at instant now in the booking's timezone.
func (b *Booking) LocalToday(now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(b.timeZoneID)
	if err != nil {
		return time.Time{}, errs.Mark(err, errs.ErrUnknownTimeZone)
	}
	return ledger.DateOf(now.In(loc)), nil
}
