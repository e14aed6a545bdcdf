//go:build e2e

package repository_test

import (
	"context"
	"testing"
	"time"

	"stayledger/internal/domain/booking"
	"stayledger/internal/infra/repository"
	"stayledger/internal/pkg/errs"
	"stayledger/tests/common/builder"
	"stayledger/tests/common/dbtest"
	"stayledger/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingRepositoryTestSuite struct {
	e2e.SharedSuite
	repo *repository.BookingRepository
}

func TestBookingRepositoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingRepositoryTestSuite))
}

func (s *BookingRepositoryTestSuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.repo = repository.NewBookingRepository(s.DB)
}

func (s *BookingRepositoryTestSuite) requested() *booking.Booking {
	r := builder.NewRoomBuilder().WithTimeZone("Asia/Seoul").BuildDomain()
	dbtest.InsertRoom(s.T(), s.DB, r)
	b := builder.NewBookingBuilder().
		ForRoom(r.ID(), "Asia/Seoul").
		ForGuest(uuid.New()).
		WithStay("2026-06-10", "2026-06-12").
		WithStatus(booking.StatusRequested).
		BuildDomain()
	dbtest.InsertBooking(s.T(), s.DB, b)
	return b
}

func (s *BookingRepositoryTestSuite) TestUpdateStatus() {
	t := s.T()
	b := s.requested()

	_, err := b.ChangeStatus(booking.StatusReserved, e2e.StartOfTest)
	require.NoError(t, err)
	require.NoError(t, s.repo.UpdateStatus(context.Background(), b, booking.StatusRequested))
	assert.Equal(t, booking.StatusReserved.String(), dbtest.BookingStatus(t, s.DB, b.ID()))
}

func (s *BookingRepositoryTestSuite) TestUpdateStatus_LostRaceReportsStoredStatus() {
	t := s.T()
	ctx := context.Background()
	b := s.requested()

	// another writer rejects the request after b was read
	_, err := s.DB.Exec(ctx, `UPDATE booking SET status = 'REJECTED' WHERE id = $1`, b.ID())
	require.NoError(t, err)

	_, err = b.ChangeStatus(booking.StatusReserved, e2e.StartOfTest.Add(time.Minute))
	require.NoError(t, err)
	err = s.repo.UpdateStatus(ctx, b, booking.StatusRequested)

	var change *errs.InvalidStatusChangeError
	require.True(t, errs.As(err, &change), "got %v", err)
	assert.Equal(t, booking.StatusRejected.String(), change.Current)
	assert.Equal(t, booking.StatusReserved.String(), change.Target)
	assert.Equal(t, booking.StatusRejected.String(), dbtest.BookingStatus(t, s.DB, b.ID()))
}

func (s *BookingRepositoryTestSuite) TestUpdateStatus_MissingBooking() {
	b := builder.NewBookingBuilder().WithStatus(booking.StatusRequested).BuildDomain()
	_, err := b.ChangeStatus(booking.StatusReserved, e2e.StartOfTest)
	s.Require().NoError(err)

	err = s.repo.UpdateStatus(context.Background(), b, booking.StatusRequested)
	s.True(errs.Is(err, errs.ErrBookingNotFound), "got %v", err)
}
