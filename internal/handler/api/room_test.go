//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/user"
	"stayledger/internal/handler/api"
	reqdto "stayledger/internal/handler/dto/request"
	resdto "stayledger/internal/handler/dto/response"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/commands"
	"stayledger/internal/usecase/queries"
	"stayledger/internal/usecase/shared"
	"stayledger/tests/common/builder"
	"stayledger/tests/common/httptest"
	"stayledger/tests/common/testutil"
	commandsmock "stayledger/tests/mock/commands"
	queriesmock "stayledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLedgerCommands
	mockQueries  *queriesmock.MockRoomQueries
	handler      *api.RoomHandler
	hostID       uuid.UUID
	roomID       uuid.UUID
}

func (s *RoomHandlerTestSuite) SetupSuite() {
	registerValidators(s.T())
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLedgerCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries)
	s.hostID = uuid.New()
	s.roomID = uuid.New()

	auth := mockAuth(s.hostID, user.RoleHost)
	s.router.GET("/rooms/:id/quote", s.handler.Quote)
	s.router.GET("/rooms/:id/availability", s.handler.Availability)
	s.router.GET("/rooms/:id/ledger", auth, s.handler.Ledger)
	s.router.PUT("/rooms/:id/availability", auth, s.handler.SetAvailability)
	s.router.PUT("/rooms/:id/pricing", auth, s.handler.SetPricing)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func (s *RoomHandlerTestSuite) url(suffix string) string {
	return "/rooms/" + s.roomID.String() + suffix
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *RoomHandlerTestSuite) TestQuote() {
	dr := builder.MustRange("2026-07-01", "2026-07-03")

	s.Run("success: converted quote", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), s.roomID, dr, "USD").Return(&shared.Quote{
			RoomID: s.roomID, DateRange: dr, Nights: 2,
			NativeTotal: 200000, NativeCurrency: "KRW",
			Amount: 147, Currency: "USD",
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/quote?checkIn=2026-07-01&checkOut=2026-07-03&currency=USD"), nil, "")
		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.QuoteResponse{
			RoomID: s.roomID, CheckIn: "2026-07-01", CheckOut: "2026-07-03", Nights: 2,
			NativeTotal: 200000, NativeCurrency: "KRW", Amount: 147, Currency: "USD",
		}, body)
	})

	s.Run("currency is optional", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), s.roomID, dr, "").Return(&shared.Quote{RoomID: s.roomID, DateRange: dr}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/quote?checkIn=2026-07-01&checkOut=2026-07-03"), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on bad query", func() {
		for _, q := range []string{
			"/quote?checkIn=2026-07-01",
			"/quote?checkIn=2026-07-03&checkOut=2026-07-01",
			"/quote?checkIn=07/01/2026&checkOut=2026-07-03",
			"/quote?checkIn=2026-07-01&checkOut=2026-07-03&currency=usd",
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url(q), nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 422 on unknown currency", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), s.roomID, dr, "XXX").Return(nil, errs.ErrUnknownCurrency).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/quote?checkIn=2026-07-01&checkOut=2026-07-03&currency=XXX"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Unknown currency")
	})

	s.Run("error: 400 on malformed room id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/abc/quote?checkIn=2026-07-01&checkOut=2026-07-03", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid room ID format")
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *RoomHandlerTestSuite) TestAvailability() {
	dr := builder.MustRange("2026-07-01", "2026-07-03")

	s.Run("success", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), s.roomID, dr).Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/availability?checkIn=2026-07-01&checkOut=2026-07-03"), nil, "")
		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Equal("2026-07-03", body.CheckOut)
	})

	s.Run("error: 404 for deleted rooms", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), s.roomID, dr).Return(false, errs.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/availability?checkIn=2026-07-01&checkOut=2026-07-03"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})
}

// ================================================================================
// TestLedger
// ================================================================================

func (s *RoomHandlerTestSuite) TestLedger() {
	window := builder.MustRange("2026-07-01", "2026-08-01")

	s.Run("success", func() {
		s.mockQueries.EXPECT().ListLedger(gomock.Any(), s.hostID, s.roomID, window).Return(&queries.LedgerView{
			Window:       window,
			Availability: []ledger.AvailabilityRecord{builder.Open(s.roomID, "2026-07-01", "2026-07-10")},
			Pricing:      []ledger.PricingRecord{builder.Price(s.roomID, "2026-07-04", "2026-07-06", 130000)},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/ledger?from=2026-07-01&to=2026-08-01"), nil, "bearer-token")
		var body resdto.LedgerResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-07-01", body.From)
		s.Require().Len(body.Availability, 1)
		s.True(body.Availability[0].Value)
		s.Require().Len(body.Pricing, 1)
		s.Equal(int64(130000), body.Pricing[0].Value)
	})

	s.Run("error: 403 for other hosts", func() {
		s.mockQueries.EXPECT().ListLedger(gomock.Any(), s.hostID, s.roomID, window).Return(nil, errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.url("/ledger?from=2026-07-01&to=2026-08-01"), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// TestSetAvailability / TestSetPricing
// ================================================================================

func (s *RoomHandlerTestSuite) TestSetAvailability() {
	open := true
	reqBody := reqdto.SetAvailabilityRequest{
		Ranges: []reqdto.DateRangeBody{
			{Start: "2026-07-01", End: "2026-07-05"},
			{Start: "2026-07-10", End: "2026-07-12"},
		},
		Available: &open,
	}

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), commands.SetAvailabilityInput{
			HostID: s.hostID,
			RoomID: s.roomID,
			Ranges: []ledger.DateRange{
				builder.MustRange("2026-07-01", "2026-07-05"),
				builder.MustRange("2026-07-10", "2026-07-12"),
			},
			Available: true,
		}).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/availability"), reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing available", mutate: testutil.Field("available", nil), expectCode: http.StatusBadRequest},
			{name: "missing ranges", mutate: testutil.Field("ranges", nil), expectCode: http.StatusBadRequest},
			{name: "empty ranges", mutate: testutil.Field("ranges", []any{}), expectCode: http.StatusBadRequest},
			{name: "reversed range", mutate: testutil.Field("ranges", []any{map[string]any{"start": "2026-07-05", "end": "2026-07-01"}}), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/availability"), requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 422 outside the horizon", func() {
		s.mockCommands.EXPECT().SetAvailability(gomock.Any(), gomock.Any()).
			Return(errs.Wrap(errs.ErrOutsideHorizon, "range")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/availability"), reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "horizon")
	})
}

func (s *RoomHandlerTestSuite) TestSetPricing() {
	reqBody := reqdto.SetPricingRequest{
		Ranges:        []reqdto.DateRangeBody{{Start: "2026-07-01", End: "2026-07-05"}},
		PricePerNight: 130000,
	}

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().SetPricing(gomock.Any(), commands.SetPricingInput{
			HostID:        s.hostID,
			RoomID:        s.roomID,
			Ranges:        []ledger.DateRange{builder.MustRange("2026-07-01", "2026-07-05")},
			PricePerNight: 130000,
		}).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/pricing"), reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on non-positive price", func() {
		for _, price := range []int{0, -5} {
			requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("pricePerNight", price))
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/pricing"), requestMap, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 403 when not the host", func() {
		s.mockCommands.EXPECT().SetPricing(gomock.Any(), gomock.Any()).Return(errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, s.url("/pricing"), reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
