//go:build unit

package ledger_test

import (
	"testing"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoversFully(t *testing.T) {
	roomID := uuid.New()

	open := func(from, to int) ledger.AvailabilityRecord {
		return ledger.NewRecord(roomID, span(t, from, to), true, now)
	}
	closed := func(from, to int) ledger.AvailabilityRecord {
		return ledger.NewRecord(roomID, span(t, from, to), false, now)
	}

	cases := []struct {
		name    string
		records []ledger.AvailabilityRecord
		query   ledger.DateRange
		want    bool
	}{
		{name: "empty ledger means nothing is available", query: span(t, 1, 3), want: false},
		{name: "single record covers the stay", records: []ledger.AvailabilityRecord{open(0, 10)}, query: span(t, 2, 5), want: true},
		{name: "exact fit", records: []ledger.AvailabilityRecord{open(1, 5)}, query: span(t, 1, 5), want: true},
		{name: "gap at the last night", records: []ledger.AvailabilityRecord{open(1, 5)}, query: span(t, 1, 6), want: false},
		{name: "gap at the first night", records: []ledger.AvailabilityRecord{open(2, 8)}, query: span(t, 1, 4), want: false},
		{name: "adjacent records chain", records: []ledger.AvailabilityRecord{open(4, 9), open(1, 4)}, query: span(t, 1, 9), want: true},
		{name: "hole between records", records: []ledger.AvailabilityRecord{open(1, 4), open(5, 9)}, query: span(t, 1, 9), want: false},
		{name: "closed night inside the stay", records: []ledger.AvailabilityRecord{open(1, 4), closed(4, 5), open(5, 9)}, query: span(t, 2, 8), want: false},
		{name: "closed records are ignored outside the stay", records: []ledger.AvailabilityRecord{closed(0, 2), open(2, 9)}, query: span(t, 2, 9), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.CoversFully(tc.records, tc.query))
		})
	}
}

func TestNightlyTotal(t *testing.T) {
	roomID := uuid.New()
	records := []ledger.PricingRecord{
		ledger.NewRecord(roomID, span(t, 2, 4), int64(200), now),
		ledger.NewRecord(roomID, span(t, 5, 6), int64(300), now),
	}

	t.Run("mixes overrides and base price", func(t *testing.T) {
		// nights 1..6: base, 200, 200, base, 300, base
		total := ledger.NightlyTotal(records, span(t, 1, 7), 100)
		assert.Equal(t, int64(100+200+200+100+300+100), total)
	})

	t.Run("no records falls back to base price", func(t *testing.T) {
		assert.Equal(t, int64(3*150), ledger.NightlyTotal(nil, span(t, 0, 3), 150))
	})

	t.Run("deterministic on an unchanged ledger", func(t *testing.T) {
		first := ledger.NightlyTotal(records, span(t, 0, 10), 120)
		second := ledger.NightlyTotal(records, span(t, 0, 10), 120)
		assert.Equal(t, first, second)
	})
}

func TestNewDateRange(t *testing.T) {
	t.Run("zero length is rejected", func(t *testing.T) {
		_, err := ledger.NewDateRange(day(3), day(3))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := ledger.NewDateRange(day(5), day(3))
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
	})

	t.Run("clock time is dropped", func(t *testing.T) {
		seoul, err := time.LoadLocation("Asia/Seoul")
		require.NoError(t, err)
		start := time.Date(2026, 3, 2, 1, 0, 0, 0, seoul)
		dr, err := ledger.NewDateRange(start, start.AddDate(0, 0, 2))
		require.NoError(t, err)
		assert.Equal(t, "[2026-03-02,2026-03-04)", dr.String())
		assert.Equal(t, 2, dr.Nights())
	})

	t.Run("parse", func(t *testing.T) {
		dr, err := ledger.ParseDateRange("2026-03-01", "2026-03-08")
		require.NoError(t, err)
		assert.Equal(t, 7, dr.Nights())

		_, err = ledger.ParseDateRange("2026-13-01", "2026-03-08")
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
	})
}
