package errs

import (
	"errors"
	"fmt"
)

// Domain-specific sentinel errors shared by the domain, usecase and handler layers
var (
	// Ledger errors
	ErrInvalidRange   = errors.New("invalid date range")
	ErrOutsideHorizon = errors.New("date range outside booking horizon")
	ErrInvalidPrice   = errors.New("price per night must be positive")

	// Reservation errors
	ErrDatesUnavailable   = errors.New("dates unavailable")
	ErrGuestCountExceeded = errors.New("guest count exceeded")
	ErrPriceChanged       = errors.New("price changed")

	// Booking lifecycle errors
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrBookingNotFound     = errors.New("booking not found")

	// Reference data errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownTimeZone = errors.New("unknown time zone")

	// Access errors
	ErrForbidden = errors.New("forbidden")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrTransient               = errors.New("transient failure, retry the request")
)

// PriceChangedError carries the stale quote and the freshly computed price.
type PriceChangedError struct {
	Quoted  int64
	Current int64
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("%s: quoted %d, current %d", ErrPriceChanged.Error(), e.Quoted, e.Current)
}

func (e *PriceChangedError) Is(target error) bool {
	return target == ErrPriceChanged
}

func NewPriceChanged(quoted, current int64) error {
	return &PriceChangedError{Quoted: quoted, Current: current}
}

// InvalidStatusChangeError reports the status the booking was in when the
// rejected transition was attempted.
type InvalidStatusChangeError struct {
	Current string
	Target  string
}

func (e *InvalidStatusChangeError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusChange.Error(), e.Current, e.Target)
}

func (e *InvalidStatusChangeError) Is(target error) bool {
	return target == ErrInvalidStatusChange
}

func NewInvalidStatusChange(current, target string) error {
	return &InvalidStatusChangeError{Current: current, Target: target}
}

// IsTransient reports whether the caller may retry the whole operation.
func IsTransient(err error) bool {
	return Is(err, ErrTransient)
}
