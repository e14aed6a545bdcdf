//go:build unit

package batch_test

import (
	"context"
	"testing"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/pkg/config"
	"stayledger/internal/usecase/batch"
	"stayledger/internal/usecase/shared"
	"stayledger/tests/common/builder"
	"stayledger/tests/common/memstore"
	sharedmock "stayledger/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StatusAdvanceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *memstore.Store
	publisher *sharedmock.MockEventPublisher
	index     *batch.MidnightIndexJob
	job       *batch.StatusAdvanceJob

	seoulRoom uuid.UUID
	nyRoom    uuid.UUID
}

func TestStatusAdvanceTestSuite(t *testing.T) {
	suite.Run(t, new(StatusAdvanceTestSuite))
}

func (s *StatusAdvanceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.publisher = sharedmock.NewMockEventPublisher(s.ctrl)
	s.index = batch.NewMidnightIndexJob(s.store, config.BatchConfig{TickInterval: 15 * time.Minute})
	s.job = batch.NewStatusAdvanceJob(s.store, s.publisher, config.BatchConfig{TickInterval: 15 * time.Minute})

	seoul := builder.NewRoomBuilder().WithTimeZone("Asia/Seoul").BuildDomain()
	ny := builder.NewRoomBuilder().WithTimeZone("America/New_York").WithBasePrice(150, "USD").BuildDomain()
	s.seoulRoom, s.nyRoom = seoul.ID(), ny.ID()
	s.store.PutRoom(seoul)
	s.store.PutRoom(ny)
}

func (s *StatusAdvanceTestSuite) seed(roomID uuid.UUID, zone, checkIn, checkOut string, status booking.Status) uuid.UUID {
	b := builder.NewBookingBuilder().ForRoom(roomID, zone).WithStay(checkIn, checkOut).WithStatus(status).BuildDomain()
	s.store.PutBooking(b)
	return b.ID()
}

func (s *StatusAdvanceTestSuite) status(id uuid.UUID) booking.Status {
	b, ok := s.store.Booking(id)
	s.Require().True(ok)
	return b.Status()
}

func (s *StatusAdvanceTestSuite) TestMidnightIndex() {
	summary := s.index.Run(context.Background(), time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))

	s.Len(summary.Entries, 2)
	s.Empty(summary.Skipped)

	got := map[string]time.Duration{}
	for _, e := range s.store.Midnights() {
		got[e.TimeZoneID] = e.UTCMidnight
	}
	s.Equal(map[string]time.Duration{
		"Asia/Seoul":       15 * time.Hour,
		"America/New_York": 4 * time.Hour,
	}, got)
}

func (s *StatusAdvanceTestSuite) TestMidnightIndex_SkipsUnknownZone() {
	s.store.PutBooking(builder.NewBookingBuilder().ForRoom(uuid.New(), "Mars/Olympus").WithStatus(booking.StatusReserved).BuildDomain())

	summary := s.index.Run(context.Background(), time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))
	s.Equal([]string{"Mars/Olympus"}, summary.Skipped)
	s.Len(s.store.Midnights(), 2)
}

func (s *StatusAdvanceTestSuite) TestAdvance_EachZoneAtItsOwnMidnight() {
	ctx := context.Background()
	seoulIn := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-02", "2026-06-04", booking.StatusReserved)
	seoulOut := s.seed(s.seoulRoom, "Asia/Seoul", "2026-05-29", "2026-06-01", booking.StatusOngoing)
	seoulLater := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-03", "2026-06-05", booking.StatusReserved)
	seoulRequested := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-02", "2026-06-03", booking.StatusRequested)
	nyIn := s.seed(s.nyRoom, "America/New_York", "2026-06-02", "2026-06-05", booking.StatusReserved)

	s.index.Run(ctx, time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))

	// 15:02 UTC rounds to 15:00, which is 00:00 on 2026-06-02 in Seoul
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, seoulIn).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingEnded, seoulOut).Return(nil)

	summary := s.job.Run(ctx, time.Date(2026, 6, 1, 15, 2, 0, 0, time.UTC))
	s.Equal([]string{"Asia/Seoul"}, summary.Zones)
	s.Equal(int64(2), summary.Updated)

	s.Equal(booking.StatusOngoing, s.status(seoulIn))
	s.Equal(booking.StatusEnded, s.status(seoulOut))
	s.Equal(booking.StatusReserved, s.status(seoulLater))
	s.Equal(booking.StatusRequested, s.status(seoulRequested))
	s.Equal(booking.StatusReserved, s.status(nyIn))

	// 04:00 UTC the next day is midnight in New York
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, nyIn).Return(nil)

	summary = s.job.Run(ctx, time.Date(2026, 6, 2, 4, 0, 0, 0, time.UTC))
	s.Equal([]string{"America/New_York"}, summary.Zones)
	s.Equal(int64(1), summary.Updated)
	s.Equal(booking.StatusOngoing, s.status(nyIn))
	s.Equal(booking.StatusOngoing, s.status(seoulIn))
}

func (s *StatusAdvanceTestSuite) TestAdvance_OffBoundaryTickDoesNothing() {
	ctx := context.Background()
	id := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-01", "2026-06-03", booking.StatusReserved)
	s.index.Run(ctx, time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))

	summary := s.job.Run(ctx, time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC))
	s.Empty(summary.Zones)
	s.Zero(summary.Updated)
	s.Equal(booking.StatusReserved, s.status(id))
}

func (s *StatusAdvanceTestSuite) TestAdvance_RerunIsIdempotent() {
	ctx := context.Background()
	id := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-02", "2026-06-04", booking.StatusReserved)
	s.index.Run(ctx, time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, id).Return(nil).Times(1)

	tick := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	s.Equal(int64(1), s.job.Run(ctx, tick).Updated)
	s.Equal(int64(0), s.job.Run(ctx, tick).Updated)
	s.Equal(booking.StatusOngoing, s.status(id))
}

func (s *StatusAdvanceTestSuite) TestAdvance_StorageFailureIsSwallowed() {
	ctx := context.Background()
	id := s.seed(s.seoulRoom, "Asia/Seoul", "2026-06-02", "2026-06-04", booking.StatusReserved)
	s.index.Run(ctx, time.Date(2026, 6, 1, 0, 5, 0, 0, time.UTC))
	s.store.Err = context.DeadlineExceeded

	summary := s.job.Run(ctx, time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC))
	s.Zero(summary.Updated)
	s.Equal(booking.StatusReserved, s.status(id))
}

func (s *StatusAdvanceTestSuite) TestAdvance_RefreshOnMidnightTickAcrossDSTStart() {
	ctx := context.Background()
	// Europe/London moves to BST at 01:00 UTC on 2026-03-29
	sunday := s.seed(uuid.New(), "Europe/London", "2026-03-29", "2026-03-31", booking.StatusReserved)
	monday := s.seed(uuid.New(), "Europe/London", "2026-03-30", "2026-04-01", booking.StatusReserved)

	s.index.Run(ctx, time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC))

	// the daily refresh lands on the same tick as the status batch and commits first
	tick := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)
	s.index.Run(ctx, tick.Add(2*time.Second))

	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, sunday).Return(nil)
	summary := s.job.Run(ctx, tick)
	s.Equal([]string{"Europe/London"}, summary.Zones)
	s.Equal(int64(1), summary.Updated)
	s.Equal(booking.StatusOngoing, s.status(sunday))
	s.Equal(booking.StatusReserved, s.status(monday))

	// the first BST midnight is 23:00 UTC, before the next daily refresh
	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, monday).Return(nil)
	summary = s.job.Run(ctx, time.Date(2026, 3, 29, 23, 0, 0, 0, time.UTC))
	s.Equal([]string{"Europe/London"}, summary.Zones)
	s.Equal(int64(1), summary.Updated)
	s.Equal(booking.StatusOngoing, s.status(monday))
}

func (s *StatusAdvanceTestSuite) TestAdvance_MidnightTickBeforeRefresh() {
	ctx := context.Background()
	id := s.seed(uuid.New(), "Europe/London", "2026-03-29", "2026-03-31", booking.StatusReserved)
	s.index.Run(ctx, time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC))

	s.publisher.EXPECT().Publish(gomock.Any(), shared.EventBookingStarted, id).Return(nil)
	summary := s.job.Run(ctx, time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC))
	s.Equal([]string{"Europe/London"}, summary.Zones)
	s.Equal(booking.StatusOngoing, s.status(id))
}
