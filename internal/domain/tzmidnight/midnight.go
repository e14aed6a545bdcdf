// Package tzmidnight maps IANA timezones to the UTC time-of-day at which their
// next local midnight falls, so the status batch can find the zones that just
// rolled over without doing per-booking timezone math on every tick.
package tzmidnight

import (
	"sort"
	"time"

	"stayledger/internal/pkg/errs"
)

const day = 24 * time.Hour

type Entry struct {
	TimeZoneID string
	// UTCMidnight is the offset from 00:00 UTC of the zone's next local midnight.
	UTCMidnight  time.Duration
	NextMidnight time.Time
	// FollowingMidnight is the local midnight after NextMidnight. It differs
	// from NextMidnight by 23 or 25 hours across a DST change.
	FollowingMidnight time.Time
	ComputedAt        time.Time
}

// FallsOn reports whether tick is one of the zone's local midnights. The two
// stored instants cover a DST change before the next refresh; the time-of-day
// match keeps a stale index working on ordinary days.
func (e Entry) FallsOn(tick time.Time) bool {
	return tick.Equal(e.NextMidnight) ||
		tick.Equal(e.FollowingMidnight) ||
		TimeOfDay(tick) == e.UTCMidnight
}

// NextLocalMidnight returns the first instant of the calendar day after now in
// loc. On days where midnight is skipped by a DST jump, time.Date normalises
// to the first existing local instant.
func NextLocalMidnight(loc *time.Location, now time.Time) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

// TimeOfDay is the offset of t from 00:00 UTC on its UTC date.
func TimeOfDay(t time.Time) time.Duration {
	t = t.UTC()
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// Compute builds the entry for the first local midnight at or after from, so a
// refresh running on a midnight tick still lists that tick.
func Compute(timeZoneID string, from time.Time) (Entry, error) {
	loc, err := time.LoadLocation(timeZoneID)
	if err != nil {
		return Entry{}, errs.Mark(errs.Wrapf(err, "time zone %q", timeZoneID), errs.ErrUnknownTimeZone)
	}
	next := NextLocalMidnight(loc, from.Add(-time.Nanosecond))
	following := NextLocalMidnight(loc, next)
	return Entry{
		TimeZoneID:        timeZoneID,
		UTCMidnight:       TimeOfDay(next),
		NextMidnight:      next.UTC(),
		FollowingMidnight: following.UTC(),
		ComputedAt:        from.UTC(),
	}, nil
}

// RoundToTick snaps now to the nearest scheduler tick so that a run firing a
// few seconds early or late still matches the boundary.
func RoundToTick(now time.Time, tick time.Duration) time.Time {
	if tick <= 0 || tick > day {
		return now.UTC()
	}
	return now.UTC().Round(tick)
}

type Index struct {
	entries map[string]Entry
}

func NewIndex(entries []Entry) *Index {
	idx := &Index{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		idx.entries[e.TimeZoneID] = e
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

func (idx *Index) Get(timeZoneID string) (Entry, bool) {
	e, ok := idx.entries[timeZoneID]
	return e, ok
}

// ZonesAt lists the zones with a local midnight on tick, sorted for stable
// query arguments.
func (idx *Index) ZonesAt(tick time.Time) []string {
	tick = tick.UTC()
	zones := make([]string, 0)
	for id, e := range idx.entries {
		if e.FallsOn(tick) {
			zones = append(zones, id)
		}
	}
	sort.Strings(zones)
	return zones
}
