//go:build unit

package room_test

import (
	"testing"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom(t *testing.T) {
	hostID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), hostID, 120000, "krw", 4, "Asia/Seoul", false)
		require.NoError(t, err)
		assert.Equal(t, "KRW", r.Currency())
		assert.True(t, r.IsHostedBy(hostID))
		assert.False(t, r.IsHostedBy(uuid.New()))
		assert.True(t, r.Accommodates(4))
		assert.False(t, r.Accommodates(5))
	})

	t.Run("validation", func(t *testing.T) {
		_, err := room.NewRoom(uuid.New(), hostID, -1, "KRW", 2, "Asia/Seoul", false)
		assert.ErrorIs(t, err, room.ErrNegativeBasePrice)

		_, err = room.NewRoom(uuid.New(), hostID, 100, "KRW", 0, "Asia/Seoul", false)
		assert.ErrorIs(t, err, room.ErrInvalidMaxGuests)

		_, err = room.NewRoom(uuid.New(), hostID, 100, "KRW", 2, "Nowhere/Land", false)
		assert.True(t, errs.Is(err, errs.ErrUnknownTimeZone))
	})

	t.Run("today follows the room timezone", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), hostID, 100, "USD", 2, "Asia/Seoul", false)
		require.NoError(t, err)

		// 16:00 UTC is already 01:00 the next day in Seoul
		now := time.Date(2026, 6, 1, 16, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-06-02", r.Today(now).Format(ledger.DateLayout))
	})

	t.Run("horizon", func(t *testing.T) {
		r, err := room.NewRoom(uuid.New(), hostID, 100, "USD", 2, "America/New_York", false)
		require.NoError(t, err)
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

		inside, _ := ledger.ParseDateRange("2026-06-01", "2027-06-01")
		past, _ := ledger.ParseDateRange("2026-05-31", "2026-06-03")
		beyond, _ := ledger.ParseDateRange("2027-05-30", "2027-06-02")

		assert.True(t, r.WithinHorizon(inside, now, 365))
		assert.False(t, r.WithinHorizon(past, now, 365))
		assert.False(t, r.WithinHorizon(beyond, now, 365))
	})
}
