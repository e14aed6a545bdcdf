//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for use-case tests.
// Transactions are serialised and rolled back on error.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/domain/tzmidnight"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	rooms        map[uuid.UUID]*room.Room
	availability []ledger.AvailabilityRecord
	pricing      []ledger.PricingRecord
	bookings     map[uuid.UUID]*booking.Booking
	midnights    []tzmidnight.Entry
}

func (s *state) clone() *state {
	c := &state{
		rooms:        make(map[uuid.UUID]*room.Room, len(s.rooms)),
		availability: slices.Clone(s.availability),
		pricing:      slices.Clone(s.pricing),
		bookings:     make(map[uuid.UUID]*booking.Booking, len(s.bookings)),
		midnights:    slices.Clone(s.midnights),
	}
	for id, r := range s.rooms {
		c.rooms[id] = r
	}
	for id, b := range s.bookings {
		c.bookings[id] = cloneBooking(b)
	}
	return c
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(b.ID(), b.RoomID(), b.GuestID(), b.DateRange(),
		b.NumberOfGuests(), b.QuotedPrice(), b.Currency(), b.Status(), b.TimeZoneID(),
		b.CreatedAt(), b.UpdatedAt())
}

type Store struct {
	mu    sync.Mutex
	state *state

	// Calls counts Within and WithinReadOnly invocations.
	Calls int
	// Err, when set, is returned by the next transaction instead of running it.
	Err error
}

func New() *Store {
	return &Store{state: &state{
		rooms:    make(map[uuid.UUID]*room.Room),
		bookings: make(map[uuid.UUID]*booking.Booking),
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls++
	if s.Err != nil {
		err := s.Err
		s.Err = nil
		return err
	}

	work := s.state.clone()
	if err := fn(ctx, &tx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Seeding and inspection helpers. They bypass transactions.

func (s *Store) PutRoom(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.rooms[r.ID()] = r
}

func (s *Store) PutAvailability(records ...ledger.AvailabilityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.availability = append(s.state.availability, records...)
}

func (s *Store) PutPricing(records ...ledger.PricingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.pricing = append(s.state.pricing, records...)
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.bookings[b.ID()] = cloneBooking(b)
}

func (s *Store) Availability(roomID uuid.UUID) []ledger.AvailabilityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return forRoom(s.state.availability, roomID)
}

func (s *Store) Pricing(roomID uuid.UUID) []ledger.PricingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return forRoom(s.state.pricing, roomID)
}

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.bookings[id]
	if !ok {
		return nil, false
	}
	return cloneBooking(b), true
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.bookings)
}

func (s *Store) Midnights() []tzmidnight.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.midnights)
}

func forRoom[V ledger.Value](records []ledger.Record[V], roomID uuid.UUID) []ledger.Record[V] {
	out := make([]ledger.Record[V], 0)
	for _, r := range records {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	ledger.SortByStart(out)
	return out
}

type tx struct {
	st *state
}

func (t *tx) Rooms() shared.RoomRepository                { return roomRepo{t.st} }
func (t *tx) Availability() shared.AvailabilityRepository { return availabilityRepo{ledgerRepo[bool]{&t.st.availability}} }
func (t *tx) Pricing() shared.PricingRepository           { return ledgerRepo[int64]{&t.st.pricing} }
func (t *tx) Bookings() shared.BookingRepository          { return bookingRepo{t.st} }
func (t *tx) Midnights() shared.MidnightRepository        { return midnightRepo{t.st} }

type roomRepo struct{ st *state }

func (r roomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.st.rooms[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrRoomNotFound, "room %s", id)
	}
	return rm, nil
}

type ledgerRepo[V ledger.Value] struct {
	records *[]ledger.Record[V]
}

func (l ledgerRepo[V]) FindOverlapping(_ context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.Record[V], error) {
	out := make([]ledger.Record[V], 0)
	for _, r := range *l.records {
		if r.RoomID == roomID && r.Range.Overlaps(dr) {
			out = append(out, r)
		}
	}
	ledger.SortByStart(out)
	return out, nil
}

func (l ledgerRepo[V]) DeleteByIDs(_ context.Context, ids []uuid.UUID) error {
	*l.records = slices.DeleteFunc(*l.records, func(r ledger.Record[V]) bool {
		return slices.Contains(ids, r.ID)
	})
	return nil
}

// Insert enforces the same no-overlap rule as the storage exclusion constraint.
func (l ledgerRepo[V]) Insert(_ context.Context, records []ledger.Record[V]) error {
	for _, n := range records {
		for _, r := range *l.records {
			if r.RoomID == n.RoomID && r.Range.Overlaps(n.Range) {
				return errs.New("overlapping ledger record " + n.Range.String())
			}
		}
		*l.records = append(*l.records, n)
	}
	return nil
}

type availabilityRepo struct {
	ledgerRepo[bool]
}

func (a availabilityRepo) FindOpenOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error) {
	all, err := a.FindOverlapping(ctx, roomID, dr)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(r ledger.AvailabilityRecord) bool { return !r.Value }), nil
}

func (a availabilityRepo) LockOverlapping(ctx context.Context, roomID uuid.UUID, dr ledger.DateRange) ([]ledger.AvailabilityRecord, error) {
	return a.FindOpenOverlapping(ctx, roomID, dr)
}

type bookingRepo struct{ st *state }

func (b bookingRepo) Create(_ context.Context, bk *booking.Booking) error {
	b.st.bookings[bk.ID()] = cloneBooking(bk)
	return nil
}

func (b bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	bk, ok := b.st.bookings[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %s", id)
	}
	return cloneBooking(bk), nil
}

func (b bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return b.FindByID(ctx, id)
}

func (b bookingRepo) UpdateStatus(_ context.Context, bk *booking.Booking, from booking.Status) error {
	stored, ok := b.st.bookings[bk.ID()]
	if !ok {
		return errs.Wrapf(errs.ErrBookingNotFound, "booking %s", bk.ID())
	}
	if stored.Status() != from {
		return errs.NewInvalidStatusChange(stored.Status().String(), bk.Status().String())
	}
	b.st.bookings[bk.ID()] = cloneBooking(bk)
	return nil
}

func (b bookingRepo) FindForAutoAdvance(_ context.Context, zones []string, statuses []booking.Status) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0)
	for _, bk := range b.st.bookings {
		if slices.Contains(zones, bk.TimeZoneID()) && slices.Contains(statuses, bk.Status()) {
			out = append(out, cloneBooking(bk))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().String() < out[j].ID().String() })
	return out, nil
}

func (b bookingRepo) BulkUpdateStatus(_ context.Context, changes []shared.StatusChange) (int64, error) {
	var n int64
	for _, c := range changes {
		bk, ok := b.st.bookings[c.BookingID]
		if !ok || bk.Status() != c.From {
			continue
		}
		b.st.bookings[c.BookingID] = booking.ReconstructBooking(bk.ID(), bk.RoomID(), bk.GuestID(), bk.DateRange(),
			bk.NumberOfGuests(), bk.QuotedPrice(), bk.Currency(), c.To, bk.TimeZoneID(), bk.CreatedAt(), c.At)
		n++
	}
	return n, nil
}

func (b bookingRepo) ListByGuest(_ context.Context, guestID uuid.UUID, after *shared.PageKey, limit int) ([]*booking.Booking, error) {
	all := make([]*booking.Booking, 0)
	for _, bk := range b.st.bookings {
		if bk.GuestID() == guestID {
			all = append(all, bk)
		}
	}
	sort.Slice(all, func(i, j int) bool { return newer(all[i], all[j].CreatedAt(), all[j].ID()) })

	out := make([]*booking.Booking, 0, limit)
	for _, bk := range all {
		if after != nil && !olderThan(bk, after) {
			continue
		}
		out = append(out, cloneBooking(bk))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// newer reports whether a sorts before (createdAt, id) in descending order.
func newer(a *booking.Booking, createdAt time.Time, id uuid.UUID) bool {
	if !a.CreatedAt().Equal(createdAt) {
		return a.CreatedAt().After(createdAt)
	}
	return a.ID().String() > id.String()
}

func olderThan(bk *booking.Booking, key *shared.PageKey) bool {
	if !bk.CreatedAt().Equal(key.CreatedAt) {
		return bk.CreatedAt().Before(key.CreatedAt)
	}
	return bk.ID().String() < key.ID.String()
}

type midnightRepo struct{ st *state }

func (m midnightRepo) TimeZonesInUse(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, r := range m.st.rooms {
		if !r.IsDeleted() {
			seen[r.TimeZoneID()] = struct{}{}
		}
	}
	for _, b := range m.st.bookings {
		if slices.Contains(booking.AutoAdvanceStatuses, b.Status()) {
			seen[b.TimeZoneID()] = struct{}{}
		}
	}
	zones := make([]string, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones, nil
}

func (m midnightRepo) ReplaceAll(_ context.Context, entries []tzmidnight.Entry) error {
	m.st.midnights = slices.Clone(entries)
	return nil
}

func (m midnightRepo) LoadAll(_ context.Context) ([]tzmidnight.Entry, error) {
	return slices.Clone(m.st.midnights), nil
}
