//go:build unit

package tzmidnight_test

import (
	"testing"
	"time"

	"stayledger/internal/domain/tzmidnight"
	"stayledger/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	cases := []struct {
		name   string
		zone   string
		now    time.Time
		wantAt time.Duration
		next   time.Time
	}{
		{
			name:   "Seoul has no DST",
			zone:   "Asia/Seoul",
			now:    time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC),
			wantAt: 15 * time.Hour,
			next:   time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "New York in summer time",
			zone:   "America/New_York",
			now:    time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC),
			wantAt: 4 * time.Hour,
			next:   time.Date(2026, 6, 1, 4, 0, 0, 0, time.UTC),
		},
		{
			name:   "New York in standard time",
			zone:   "America/New_York",
			now:    time.Date(2026, 12, 1, 12, 0, 0, 0, time.UTC),
			wantAt: 5 * time.Hour,
			next:   time.Date(2026, 12, 2, 5, 0, 0, 0, time.UTC),
		},
		{
			name:   "Kathmandu quarter hour offset",
			zone:   "Asia/Kathmandu",
			now:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			wantAt: 18*time.Hour + 15*time.Minute,
			next:   time.Date(2026, 6, 1, 18, 15, 0, 0, time.UTC),
		},
		{
			name:   "refresh on a midnight tick keeps that midnight",
			zone:   "Europe/London",
			now:    time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			wantAt: 0,
			next:   time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "DST shift day is absorbed by recomputation",
			zone:   "America/New_York",
			now:    time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC),
			wantAt: 5 * time.Hour,
			next:   time.Date(2026, 11, 2, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tzmidnight.Compute(tc.zone, tc.now)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAt, e.UTCMidnight)
			assert.True(t, tc.next.Equal(e.NextMidnight), "next midnight %s", e.NextMidnight)
		})
	}

	t.Run("unknown zone", func(t *testing.T) {
		_, err := tzmidnight.Compute("Atlantis/Lost", time.Now())
		assert.True(t, errs.Is(err, errs.ErrUnknownTimeZone))
	})
}

func TestCompute_FollowingMidnightAcrossDST(t *testing.T) {
	e, err := tzmidnight.Compute("Europe/London", time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 29, 23, 0, 0, 0, time.UTC).Equal(e.FollowingMidnight), "following %s", e.FollowingMidnight)

	e, err = tzmidnight.Compute("Europe/London", time.Date(2026, 10, 24, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, e.UTCMidnight)
	assert.True(t, time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC).Equal(e.FollowingMidnight), "following %s", e.FollowingMidnight)
}

func TestRoundToTick(t *testing.T) {
	tick := 15 * time.Minute
	base := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, base, tzmidnight.RoundToTick(base.Add(-4*time.Second), tick))
	assert.Equal(t, base, tzmidnight.RoundToTick(base.Add(3*time.Minute), tick))
	assert.Equal(t, base.Add(tick), tzmidnight.RoundToTick(base.Add(8*time.Minute), tick))
}

func TestIndex_ZonesAt(t *testing.T) {
	refreshedAt := time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC)
	var entries []tzmidnight.Entry
	for _, zone := range []string{"Asia/Seoul", "Asia/Tokyo", "America/New_York", "Europe/Paris"} {
		e, err := tzmidnight.Compute(zone, refreshedAt)
		require.NoError(t, err)
		entries = append(entries, e)
	}
	idx := tzmidnight.NewIndex(entries)
	require.Equal(t, 4, idx.Len())

	// Seoul and Tokyo share UTC+9
	assert.Equal(t, []string{"Asia/Seoul", "Asia/Tokyo"}, idx.ZonesAt(time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"America/New_York"}, idx.ZonesAt(time.Date(2026, 6, 2, 4, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"Europe/Paris"}, idx.ZonesAt(time.Date(2026, 6, 1, 22, 0, 0, 0, time.UTC)))
	assert.Empty(t, idx.ZonesAt(time.Date(2026, 6, 1, 15, 15, 0, 0, time.UTC)))
}

func TestIndex_ZonesAtAcrossDSTStart(t *testing.T) {
	e, err := tzmidnight.Compute("Europe/London", time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	idx := tzmidnight.NewIndex([]tzmidnight.Entry{e})

	assert.Equal(t, []string{"Europe/London"}, idx.ZonesAt(time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"Europe/London"}, idx.ZonesAt(time.Date(2026, 3, 29, 23, 0, 0, 0, time.UTC)))
	assert.Empty(t, idx.ZonesAt(time.Date(2026, 3, 29, 1, 0, 0, 0, time.UTC)))
}
