package httperr

import (
	"errors"
	"net/http"

	"stayledger/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type PriceChangedDetail struct {
	QuotedPrice  int64 `json:"quotedPrice"`
	CurrentPrice int64 `json:"currentPrice"`
}

type StatusDetail struct {
	CurrentStatus string `json:"currentStatus"`
}

type domainMapping struct {
	target  error
	status  int
	message string
}

// first match wins
var domainMappings = []domainMapping{
	{errs.ErrInvalidRange, http.StatusBadRequest, "Invalid date range"},
	{errs.ErrInvalidPrice, http.StatusBadRequest, "Price per night must be positive"},
	{errs.ErrOutsideHorizon, http.StatusUnprocessableEntity, "Date range is outside the booking horizon"},
	{errs.ErrGuestCountExceeded, http.StatusUnprocessableEntity, "Number of guests exceeds the room capacity"},
	{errs.ErrUnknownCurrency, http.StatusUnprocessableEntity, "Unknown currency"},
	{errs.ErrUnknownTimeZone, http.StatusUnprocessableEntity, "Room time zone is not supported"},
	{errs.ErrDatesUnavailable, http.StatusConflict, "Dates are not available"},
	{errs.ErrRoomNotFound, http.StatusNotFound, "Room not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrForbidden, http.StatusForbidden, "Insufficient permissions"},
	{errs.ErrTransient, http.StatusServiceUnavailable, "Temporary conflict, please retry"},
}

// AbortWithDomainError maps the error taxonomy to an HTTP response.
func AbortWithDomainError(c *gin.Context, err error) {
	var priceErr *errs.PriceChangedError
	if errs.As(err, &priceErr) {
		AbortWithError(c, http.StatusConflict, err, "Price has changed",
			PriceChangedDetail{QuotedPrice: priceErr.Quoted, CurrentPrice: priceErr.Current})
		return
	}
	var statusErr *errs.InvalidStatusChangeError
	if errs.As(err, &statusErr) {
		AbortWithError(c, http.StatusConflict, err, "Invalid status change",
			StatusDetail{CurrentStatus: statusErr.Current})
		return
	}

	for _, m := range domainMappings {
		if errs.Is(err, m.target) {
			if m.status == http.StatusServiceUnavailable {
				c.Header("Retry-After", "1")
			}
			AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
