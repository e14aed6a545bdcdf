package request

import (
	"strings"
	"time"

	"stayledger/internal/domain/ledger"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("ledgerdate", validateLedgerDate); err != nil {
		return err
	}
	if err := v.RegisterValidation("currency", validateCurrency); err != nil {
		return err
	}
	v.RegisterStructValidation(validateDateRangeBody, DateRangeBody{})
	v.RegisterStructValidation(validateStayQuery, StayQuery{})
	v.RegisterStructValidation(validateLedgerQuery, LedgerQuery{})
	v.RegisterStructValidation(validateCreateBooking, CreateBookingRequest{})
	return nil
}

func validateLedgerDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(ledger.DateLayout, fl.Field().String())
	return err == nil
}

// currency accepts upper-case ISO 4217 codes only.
func validateCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 || strings.ToUpper(code) != code {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func checkOrder(sl validator.StructLevel, start, end, endField string) {
	s, errS := time.Parse(ledger.DateLayout, start)
	e, errE := time.Parse(ledger.DateLayout, end)
	if errS != nil || errE != nil {
		return // reported by the field tags
	}
	if !s.Before(e) {
		sl.ReportError(end, endField, endField, "gtdate", start)
	}
}

func validateDateRangeBody(sl validator.StructLevel) {
	r := sl.Current().Interface().(DateRangeBody)
	checkOrder(sl, r.Start, r.End, "End")
}

func validateStayQuery(sl validator.StructLevel) {
	q := sl.Current().Interface().(StayQuery)
	checkOrder(sl, q.CheckIn, q.CheckOut, "CheckOut")
}

func validateLedgerQuery(sl validator.StructLevel) {
	q := sl.Current().Interface().(LedgerQuery)
	checkOrder(sl, q.From, q.To, "To")
}

func validateCreateBooking(sl validator.StructLevel) {
	r := sl.Current().Interface().(CreateBookingRequest)
	checkOrder(sl, r.CheckIn, r.CheckOut, "CheckOut")
}
