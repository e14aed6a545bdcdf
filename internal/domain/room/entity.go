package room

import (
	"errors"
	"strings"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativeBasePrice = errors.New("base price cannot be negative")
	ErrInvalidMaxGuests  = errors.New("max guests must be at least 1")
)

// Room is reference data owned by the listing service. The ledger only reads it.
type Room struct {
	id                uuid.UUID
	hostID            uuid.UUID
	basePricePerNight int64
	currency          string
	maxGuests         int
	timeZoneID        string
	location          *time.Location
	deleted           bool
}

func NewRoom(id, hostID uuid.UUID, basePricePerNight int64, currency string, maxGuests int, timeZoneID string, deleted bool) (*Room, error) {
	if basePricePerNight < 0 {
		return nil, ErrNegativeBasePrice
	}
	if maxGuests < 1 {
		return nil, ErrInvalidMaxGuests
	}
	loc, err := time.LoadLocation(timeZoneID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUnknownTimeZone)
	}

	return &Room{
		id:                id,
		hostID:            hostID,
		basePricePerNight: basePricePerNight,
		currency:          strings.ToUpper(currency),
		maxGuests:         maxGuests,
		timeZoneID:        timeZoneID,
		location:          loc,
		deleted:           deleted,
	}, nil
}

func (r *Room) IsHostedBy(userID uuid.UUID) bool {
	return r.hostID == userID
}

func (r *Room) Accommodates(guests int) bool {
	return guests <= r.maxGuests
}

// Today is the calendar date in the room's own timezone.
func (r *Room) Today(now time.Time) time.Time {
	return ledger.DateOf(now.In(r.location))
}

// WithinHorizon reports whether dr starts no earlier than the room's today and
// ends no later than horizonDays after it.
func (r *Room) WithinHorizon(dr ledger.DateRange, now time.Time, horizonDays int) bool {
	today := r.Today(now)
	limit := today.AddDate(0, 0, horizonDays)
	return !dr.Start().Before(today) && !dr.End().After(limit)
}

func (r *Room) ID() uuid.UUID            { return r.id }
func (r *Room) HostID() uuid.UUID        { return r.hostID }
func (r *Room) BasePricePerNight() int64 { return r.basePricePerNight }
func (r *Room) Currency() string         { return r.currency }
func (r *Room) MaxGuests() int           { return r.maxGuests }
func (r *Room) TimeZoneID() string       { return r.timeZoneID }
func (r *Room) Location() *time.Location { return r.location }
func (r *Room) IsDeleted() bool          { return r.deleted }
