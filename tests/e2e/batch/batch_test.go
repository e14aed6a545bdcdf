//go:build e2e

package batch_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/infra/events"
	"stayledger/internal/infra/uow"
	"stayledger/internal/pkg/config"
	"stayledger/internal/usecase/batch"
	"stayledger/tests/common/builder"
	"stayledger/tests/common/dbtest"
	"stayledger/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BatchTestSuite struct {
	e2e.SharedSuite
	indexJob   *batch.MidnightIndexJob
	advanceJob *batch.StatusAdvanceJob
}

func TestBatchTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BatchTestSuite))
}

func (s *BatchTestSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	work := uow.NewPostgresUoW(s.DB)
	s.indexJob = batch.NewMidnightIndexJob(work, config.BatchConfig{TickInterval: 15 * time.Minute})
	s.advanceJob = batch.NewStatusAdvanceJob(work, events.NewLogPublisher(slog.Default()),
		config.BatchConfig{TickInterval: 15 * time.Minute})
}

func (s *BatchTestSuite) insertBooking(roomID uuid.UUID, zone, checkIn, checkOut string, status booking.Status) uuid.UUID {
	b := builder.NewBookingBuilder().
		ForRoom(roomID, zone).
		ForGuest(uuid.New()).
		WithStay(checkIn, checkOut).
		WithStatus(status).
		BuildDomain()
	dbtest.InsertBooking(s.T(), s.DB, b)
	return b.ID()
}

func (s *BatchTestSuite) TestAdvanceAtEachZoneMidnight() {
	t := s.T()
	ctx := context.Background()

	seoul := builder.NewRoomBuilder().WithTimeZone("Asia/Seoul").BuildDomain()
	newYork := builder.NewRoomBuilder().WithTimeZone("America/New_York").WithBasePrice(150, "USD").BuildDomain()
	dbtest.InsertRoom(t, s.DB, seoul)
	dbtest.InsertRoom(t, s.DB, newYork)

	seoulArrival := s.insertBooking(seoul.ID(), "Asia/Seoul", "2026-06-02", "2026-06-04", booking.StatusReserved)
	seoulDeparture := s.insertBooking(seoul.ID(), "Asia/Seoul", "2026-05-29", "2026-06-01", booking.StatusOngoing)
	seoulPending := s.insertBooking(seoul.ID(), "Asia/Seoul", "2026-06-05", "2026-06-06", booking.StatusRequested)
	nyArrival := s.insertBooking(newYork.ID(), "America/New_York", "2026-06-02", "2026-06-05", booking.StatusReserved)

	index := s.indexJob.Run(ctx, e2e.StartOfTest)
	require.Len(t, index.Entries, 2)
	assert.Empty(t, index.Skipped)

	// 2026-06-02 00:00 in Seoul
	seoulMidnight := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	summary := s.advanceJob.Run(ctx, seoulMidnight.Add(40*time.Second))
	assert.Equal(t, []string{"Asia/Seoul"}, summary.Zones)
	assert.Equal(t, int64(2), summary.Updated)

	assert.Equal(t, booking.StatusOngoing.String(), dbtest.BookingStatus(t, s.DB, seoulArrival))
	assert.Equal(t, booking.StatusEnded.String(), dbtest.BookingStatus(t, s.DB, seoulDeparture))
	assert.Equal(t, booking.StatusRequested.String(), dbtest.BookingStatus(t, s.DB, seoulPending))
	assert.Equal(t, booking.StatusReserved.String(), dbtest.BookingStatus(t, s.DB, nyArrival))

	// a second run on the same tick changes nothing
	again := s.advanceJob.Run(ctx, seoulMidnight)
	assert.Zero(t, again.Updated)

	// 2026-06-02 00:00 in New York (EDT)
	nyMidnight := time.Date(2026, 6, 2, 4, 0, 0, 0, time.UTC)
	summary = s.advanceJob.Run(ctx, nyMidnight)
	assert.Equal(t, []string{"America/New_York"}, summary.Zones)
	assert.Equal(t, int64(1), summary.Updated)
	assert.Equal(t, booking.StatusOngoing.String(), dbtest.BookingStatus(t, s.DB, nyArrival))
}

func (s *BatchTestSuite) TestOffBoundaryTickIsNoop() {
	t := s.T()
	ctx := context.Background()

	seoul := builder.NewRoomBuilder().WithTimeZone("Asia/Seoul").BuildDomain()
	dbtest.InsertRoom(t, s.DB, seoul)
	id := s.insertBooking(seoul.ID(), "Asia/Seoul", "2026-06-02", "2026-06-04", booking.StatusReserved)

	s.indexJob.Run(ctx, e2e.StartOfTest)

	summary := s.advanceJob.Run(ctx, time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC))
	assert.Empty(t, summary.Zones)
	assert.Equal(t, booking.StatusReserved.String(), dbtest.BookingStatus(t, s.DB, id))
}
