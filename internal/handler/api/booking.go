package api

import (
	"context"
	"net/http"

	"stayledger/internal/domain/booking"
	reqdto "stayledger/internal/handler/dto/request"
	resdto "stayledger/internal/handler/dto/response"
	"stayledger/internal/handler/httperr"
	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/commands"
	"stayledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	reservations commands.ReservationCommands
	cmds         commands.BookingCommands
	q            queries.BookingQueries
}

func NewBookingHandler(reservations commands.ReservationCommands, cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{reservations: reservations, cmds: cmds, q: q}
}

// @Summary Request a booking
// @Description Reserve the nights of a stay at the quoted price. Fails when any night is closed or the price moved.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	guestID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	dr, err := req.DateRange()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	b, err := h.reservations.Reserve(c.Request.Context(), commands.ReserveInput{
		RoomID:         req.RoomID,
		GuestID:        guestID,
		DateRange:      dr,
		NumberOfGuests: req.NumberOfGuests,
		QuotedPrice:    req.QuotedPrice,
		Currency:       req.Currency,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondBooking(c, http.StatusCreated, b)
}

// @Summary Get booking
// @Description Visible to the booking guest and the room host
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	b, err := h.q.GetBooking(c.Request.Context(), actorID, bookingID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, b)
}

// @Summary List my bookings
// @Description Newest first, keyset paginated
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param after query string false "Cursor from the previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	guestID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	page, err := h.q.ListByGuest(c.Request.Context(), guestID, q.After, q.Limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Approve booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/approve [post]
func (h *BookingHandler) Approve(c *gin.Context) {
	h.changeStatus(c, h.cmds.Approve)
}

// @Summary Reject booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.changeStatus(c, h.cmds.Reject)
}

// @Summary Cancel booking
// @Description Guest or host may cancel a reserved booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cmds.Cancel)
}

type statusAction func(ctx context.Context, bookingID, actorID uuid.UUID) (*booking.Booking, error)

func (h *BookingHandler) changeStatus(c *gin.Context, action statusAction) {
	bookingID, ok := parseUUIDParam(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	b, err := action(c.Request.Context(), bookingID, actorID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, b)
}

func (h *BookingHandler) respondBooking(c *gin.Context, status int, b *booking.Booking) {
	res, err := resdto.FromBooking(b)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
