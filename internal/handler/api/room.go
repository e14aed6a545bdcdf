package api

import (
	"net/http"

	reqdto "stayledger/internal/handler/dto/request"
	resdto "stayledger/internal/handler/dto/response"
	"stayledger/internal/handler/httperr"
	"stayledger/internal/handler/middleware"
	"stayledger/internal/usecase/commands"
	"stayledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	ledgerCmds commands.LedgerCommands
	q          queries.RoomQueries
}

func NewRoomHandler(ledgerCmds commands.LedgerCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{ledgerCmds: ledgerCmds, q: q}
}

// @Summary Quote a stay
// @Description Price every night of the stay and convert the total to the requested currency
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Param currency query string false "ISO 4217 currency, defaults to the room currency"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/quote [get]
func (h *RoomHandler) Quote(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "Invalid room ID format")
	if !ok {
		return
	}
	var q reqdto.StayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	dr, err := q.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	quote, err := h.q.Quote(c.Request.Context(), roomID, dr, q.Currency)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromQuote(quote)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Check availability
// @Description Report whether every night of the stay is open
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "Invalid room ID format")
	if !ok {
		return
	}
	var q reqdto.StayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	dr, err := q.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	available, err := h.q.CheckAvailability(c.Request.Context(), roomID, dr)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(roomID, dr, available))
}

// @Summary List ledger records
// @Description Host calendar: availability and pricing records overlapping the window
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} resdto.LedgerResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/rooms/{id}/ledger [get]
func (h *RoomHandler) Ledger(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "Invalid room ID format")
	if !ok {
		return
	}
	hostID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q reqdto.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	window, err := q.ToDomain()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	view, err := h.q.ListLedger(c.Request.Context(), hostID, roomID, window)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerView(view))
}

// @Summary Set availability
// @Description Open or close one or more disjoint date ranges
// @Tags rooms
// @Accept json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.SetAvailabilityRequest true "Ranges and flag"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/availability [put]
func (h *RoomHandler) SetAvailability(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "Invalid room ID format")
	if !ok {
		return
	}
	hostID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ranges, err := req.DateRanges()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	err = h.ledgerCmds.SetAvailability(c.Request.Context(), commands.SetAvailabilityInput{
		HostID:    hostID,
		RoomID:    roomID,
		Ranges:    ranges,
		Available: *req.Available,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set pricing
// @Description Set the nightly price for one or more disjoint date ranges
// @Tags rooms
// @Accept json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.SetPricingRequest true "Ranges and price"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/rooms/{id}/pricing [put]
func (h *RoomHandler) SetPricing(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "Invalid room ID format")
	if !ok {
		return
	}
	hostID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req reqdto.SetPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	ranges, err := req.DateRanges()
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	err = h.ledgerCmds.SetPricing(c.Request.Context(), commands.SetPricingInput{
		HostID:        hostID,
		RoomID:        roomID,
		Ranges:        ranges,
		PricePerNight: req.PricePerNight,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUUIDParam(c *gin.Context, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, httperr.ErrUnauthorized, "Unauthorized", nil)
		return uuid.Nil, false
	}
	return userID, true
}
