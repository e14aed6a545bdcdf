package ledger

import (
	"fmt"
	"time"

	"stayledger/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

// Day is one calendar night. Ledger dates carry no timezone: they are civil
// dates normalised to 00:00 UTC so that arithmetic never crosses a DST shift.
type Day = time.Time

// DateOf strips the clock and zone from t, keeping t's calendar date as seen
// in t's own location.
func DateOf(t time.Time) Day {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, errs.Mark(err, errs.ErrInvalidRange)
	}
	return t, nil
}

// DateRange is the half-open interval [start, end) of nights.
type DateRange struct {
	start Day
	end   Day
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := DateOf(start), DateOf(end)
	if !s.Before(e) {
		return DateRange{}, errs.Wrapf(errs.ErrInvalidRange, "[%s,%s)", s.Format(DateLayout), e.Format(DateLayout))
	}
	return DateRange{start: s, end: e}, nil
}

func MustDateRange(start, end time.Time) DateRange {
	dr, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return dr
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

func (r DateRange) Start() Day { return r.start }
func (r DateRange) End() Day   { return r.end }

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func (r DateRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

func (r DateRange) Contains(d Day) bool {
	d = DateOf(d)
	return !d.Before(r.start) && d.Before(r.end)
}

func (r DateRange) Equal(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// EachNight calls fn for every night in the range in order.
func (r DateRange) EachNight(fn func(Day)) {
	for d := r.start; d.Before(r.end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(DateLayout), r.end.Format(DateLayout))
}
