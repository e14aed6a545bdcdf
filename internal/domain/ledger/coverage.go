package ledger

// CoversFully reports whether the open (true) availability records cover
// every night of dr. Records are walked in start order with a cursor; the
// first record that begins after the cursor exposes a gap. Records with a
// false value are skipped, so an empty or all-closed ledger covers nothing.
func CoversFully(records []AvailabilityRecord, dr DateRange) bool {
	open := make([]AvailabilityRecord, 0, len(records))
	for _, r := range records {
		if r.Value && r.Range.Overlaps(dr) {
			open = append(open, r)
		}
	}
	SortByStart(open)

	cursor := dr.Start()
	for _, r := range open {
		if !cursor.Before(dr.End()) {
			break
		}
		if r.Range.Start().After(cursor) {
			return false
		}
		if r.Range.End().After(cursor) {
			cursor = r.Range.End()
		}
	}
	return !cursor.Before(dr.End())
}

// NightlyTotal sums the price of every night in dr, taking the pricing record
// that covers the night or basePrice where none does.
func NightlyTotal(records []PricingRecord, dr DateRange, basePrice int64) int64 {
	var total int64
	dr.EachNight(func(d Day) {
		if price, ok := ValueOn(records, d); ok {
			total += price
			return
		}
		total += basePrice
	})
	return total
}
