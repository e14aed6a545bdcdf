//go:build unit

package ledger_test

import (
	"math/rand"
	"testing"
	"time"

	"stayledger/internal/domain/ledger"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day0 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
)

func day(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func span(t *testing.T, from, to int) ledger.DateRange {
	t.Helper()
	dr, err := ledger.NewDateRange(day(from), day(to))
	require.NoError(t, err)
	return dr
}

type segment[V ledger.Value] struct {
	From  string
	To    string
	Value V
}

func segments[V ledger.Value](records []ledger.Record[V]) []segment[V] {
	sorted := append([]ledger.Record[V](nil), records...)
	ledger.SortByStart(sorted)
	out := make([]segment[V], 0, len(sorted))
	for _, r := range sorted {
		out = append(out, segment[V]{
			From:  r.Range.Start().Format(ledger.DateLayout),
			To:    r.Range.End().Format(ledger.DateLayout),
			Value: r.Value,
		})
	}
	return out
}

func write[V ledger.Value](records []ledger.Record[V], roomID uuid.UUID, dr ledger.DateRange, v V) []ledger.Record[V] {
	return ledger.Apply(records, ledger.Resolve(roomID, records, dr, v, now))
}

func assertPartition[V ledger.Value](t *testing.T, records []ledger.Record[V]) {
	t.Helper()
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			assert.False(t, records[i].Range.Overlaps(records[j].Range),
				"records %s and %s overlap", records[i].Range, records[j].Range)
		}
	}
}

func TestResolve(t *testing.T) {
	roomID := uuid.New()

	t.Run("split: inner write leaves both remainders", func(t *testing.T) {
		records := write(nil, roomID, span(t, 1, 10), int64(100))
		records = write(records, roomID, span(t, 3, 6), int64(250))

		want := []segment[int64]{
			{From: "2026-03-02", To: "2026-03-04", Value: 100},
			{From: "2026-03-04", To: "2026-03-07", Value: 250},
			{From: "2026-03-07", To: "2026-03-11", Value: 100},
		}
		if diff := cmp.Diff(want, segments(records)); diff != "" {
			t.Errorf("ledger mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("write spanning several records trims the outer ones", func(t *testing.T) {
		records := write(nil, roomID, span(t, 0, 4), true)
		records = write(records, roomID, span(t, 4, 8), false)
		records = write(records, roomID, span(t, 8, 12), true)
		records = write(records, roomID, span(t, 2, 10), true)

		want := []segment[bool]{
			{From: "2026-03-01", To: "2026-03-03", Value: true},
			{From: "2026-03-03", To: "2026-03-11", Value: true},
			{From: "2026-03-11", To: "2026-03-13", Value: true},
		}
		if diff := cmp.Diff(want, segments(records)); diff != "" {
			t.Errorf("ledger mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("identical range collapses to delete and reinsert", func(t *testing.T) {
		records := write(nil, roomID, span(t, 1, 5), true)
		original := records[0]

		res := ledger.Resolve(roomID, records, span(t, 1, 5), true, now.Add(time.Hour))
		require.Equal(t, []uuid.UUID{original.ID}, res.Delete)
		require.Len(t, res.Insert, 1)
		assert.True(t, res.Insert[0].Range.Equal(original.Range))
		assert.NotEqual(t, original.ID, res.Insert[0].ID)
		assert.True(t, res.Insert[0].UpdatedAt.After(original.UpdatedAt))
	})

	t.Run("adjacent records are not touched", func(t *testing.T) {
		records := write(nil, roomID, span(t, 0, 3), true)
		res := ledger.Resolve(roomID, records, span(t, 3, 6), false, now)
		assert.Empty(t, res.Delete)
		assert.Len(t, res.Insert, 1)
	})

	t.Run("write into empty ledger inserts only the target", func(t *testing.T) {
		res := ledger.Resolve[int64](roomID, nil, span(t, 0, 30), 90, now)
		assert.Empty(t, res.Delete)
		require.Len(t, res.Insert, 1)
		assert.Equal(t, roomID, res.Insert[0].RoomID)
		assert.Equal(t, int64(90), res.Insert[0].Value)
	})
}

func TestResolve_RepeatIsIdempotent(t *testing.T) {
	roomID := uuid.New()
	records := write(nil, roomID, span(t, 0, 20), int64(80))

	once := write(records, roomID, span(t, 5, 9), int64(120))
	twice := write(once, roomID, span(t, 5, 9), int64(120))

	if diff := cmp.Diff(segments(once), segments(twice)); diff != "" {
		t.Errorf("repeat write changed coverage (-once +twice):\n%s", diff)
	}
}

func TestResolve_PartitionInvariant(t *testing.T) {
	roomID := uuid.New()
	rng := rand.New(rand.NewSource(42))

	var records []ledger.Record[int64]
	model := make(map[int]int64)

	for i := 0; i < 500; i++ {
		from := rng.Intn(60)
		to := from + 1 + rng.Intn(15)
		price := int64(rng.Intn(5) * 50)

		records = write(records, roomID, span(t, from, to), price)
		for d := from; d < to; d++ {
			model[d] = price
		}

		assertPartition(t, records)
	}

	for d := 0; d < 80; d++ {
		got, ok := ledger.ValueOn(records, day(d))
		want, wantOK := model[d]
		require.Equal(t, wantOK, ok, "coverage of day %d", d)
		require.Equal(t, want, got, "value of day %d", d)
	}
}
