package shared

import (
	"context"
	"math"
	"time"

	"stayledger/internal/domain/ledger"
	"stayledger/internal/domain/room"
	"stayledger/internal/pkg/errs"

	"github.com/google/uuid"
)

// WriteLedger writes value v over every range in ranges, one after the other,
// using repo's transaction. Ranges in one call are expected to be disjoint.
func WriteLedger[V ledger.Value](ctx context.Context, repo LedgerRepository[V], roomID uuid.UUID, ranges []ledger.DateRange, v V, now time.Time) error {
	for _, dr := range ranges {
		if dr.IsZero() {
			return errs.ErrInvalidRange
		}

		existing, err := repo.FindOverlapping(ctx, roomID, dr)
		if err != nil {
			return errs.Wrap(err, "find overlapping records")
		}

		res := ledger.Resolve(roomID, existing, dr, v, now)
		if len(res.Delete) > 0 {
			if err := repo.DeleteByIDs(ctx, res.Delete); err != nil {
				return errs.Wrap(err, "delete superseded records")
			}
		}
		if err := repo.Insert(ctx, res.Insert); err != nil {
			return errs.Wrap(err, "insert resolved records")
		}
	}
	return nil
}

type Quote struct {
	RoomID         uuid.UUID
	DateRange      ledger.DateRange
	Nights         int
	NativeTotal    int64
	NativeCurrency string
	Amount         int64
	Currency       string
}

// PriceCalculator prices a stay night by night from the pricing ledger.
type PriceCalculator struct {
	rates RateProvider
}

func NewPriceCalculator(rates RateProvider) *PriceCalculator {
	return &PriceCalculator{rates: rates}
}

// Quote loads the pricing records overlapping dr through repo, so it sees the
// same snapshot as the surrounding transaction. The converted amount is
// rounded half away from zero to a whole unit of the target currency.
func (c *PriceCalculator) Quote(ctx context.Context, repo PricingRepository, rm *room.Room, dr ledger.DateRange, currency string) (Quote, error) {
	records, err := repo.FindOverlapping(ctx, rm.ID(), dr)
	if err != nil {
		return Quote{}, errs.Wrap(err, "load pricing records")
	}

	native := ledger.NightlyTotal(records, dr, rm.BasePricePerNight())
	q := Quote{
		RoomID:         rm.ID(),
		DateRange:      dr,
		Nights:         dr.Nights(),
		NativeTotal:    native,
		NativeCurrency: rm.Currency(),
		Amount:         native,
		Currency:       rm.Currency(),
	}
	if currency == "" || currency == rm.Currency() {
		return q, nil
	}

	converted, err := c.rates.Convert(ctx, rm.Currency(), currency, native)
	if err != nil {
		return Quote{}, err
	}
	q.Amount = int64(math.Round(converted))
	q.Currency = currency
	return q, nil
}

// AvailabilityChecker decides whether every night of a stay is open.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

func (AvailabilityChecker) IsFullyAvailable(ctx context.Context, repo AvailabilityRepository, roomID uuid.UUID, dr ledger.DateRange) (bool, error) {
	records, err := repo.FindOpenOverlapping(ctx, roomID, dr)
	if err != nil {
		return false, errs.Wrap(err, "load availability records")
	}
	return ledger.CoversFully(records, dr), nil
}

// IsFullyAvailableLocked reads through LockOverlapping, so the rows the
// decision is based on are exactly the rows held locked.
func (AvailabilityChecker) IsFullyAvailableLocked(ctx context.Context, repo AvailabilityRepository, roomID uuid.UUID, dr ledger.DateRange) (bool, error) {
	records, err := repo.LockOverlapping(ctx, roomID, dr)
	if err != nil {
		return false, errs.Wrap(err, "lock availability records")
	}
	return ledger.CoversFully(records, dr), nil
}
