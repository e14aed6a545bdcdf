package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Resolution is the set of row operations that replaces the overlapping part
// of a ledger with a freshly written range.
type Resolution[V Value] struct {
	Delete []uuid.UUID
	Insert []Record[V]
}

// Resolve computes how to write target=v over the records that overlap it.
// Each overlapping record is deleted; the parts of it that stick out on the
// left or right of target survive as new records carrying the old value.
// Records in existing that do not overlap target are ignored.
func Resolve[V Value](roomID uuid.UUID, existing []Record[V], target DateRange, v V, now time.Time) Resolution[V] {
	overlapping := make([]Record[V], 0, len(existing))
	for _, r := range existing {
		if r.Range.Overlaps(target) {
			overlapping = append(overlapping, r)
		}
	}
	sort.Slice(overlapping, func(i, j int) bool {
		return overlapping[i].Range.Start().Before(overlapping[j].Range.Start())
	})

	res := Resolution[V]{
		Delete: make([]uuid.UUID, 0, len(overlapping)),
		Insert: make([]Record[V], 0, len(overlapping)*2+1),
	}
	for _, r := range overlapping {
		if r.Range.Start().Before(target.Start()) {
			res.Insert = append(res.Insert, NewRecord(roomID, DateRange{start: r.Range.Start(), end: target.Start()}, r.Value, now))
		}
		if r.Range.End().After(target.End()) {
			res.Insert = append(res.Insert, NewRecord(roomID, DateRange{start: target.End(), end: r.Range.End()}, r.Value, now))
		}
		res.Delete = append(res.Delete, r.ID)
	}
	res.Insert = append(res.Insert, NewRecord(roomID, target, v, now))
	return res
}

// Apply returns records after res has been carried out. It mirrors what the
// repository does in storage and is used by in-memory stores.
func Apply[V Value](records []Record[V], res Resolution[V]) []Record[V] {
	deleted := make(map[uuid.UUID]struct{}, len(res.Delete))
	for _, id := range res.Delete {
		deleted[id] = struct{}{}
	}
	out := make([]Record[V], 0, len(records)+len(res.Insert))
	for _, r := range records {
		if _, ok := deleted[r.ID]; !ok {
			out = append(out, r)
		}
	}
	out = append(out, res.Insert...)
	SortByStart(out)
	return out
}

func SortByStart[V Value](records []Record[V]) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Range.Start().Before(records[j].Range.Start())
	})
}

// ValueOn returns the value of the record covering d, if any.
func ValueOn[V Value](records []Record[V], d Day) (V, bool) {
	for _, r := range records {
		if r.Range.Contains(d) {
			return r.Value, true
		}
	}
	var zero V
	return zero, false
}
