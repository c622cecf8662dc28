package score

import "sort"

// Entry pairs an animal with its computed aggregate for ranking purposes.
type Entry struct {
	AnimalID  int64
	Aggregate Aggregate
}

// Rank returns a new slice ordered by descending value of the sort key.
// The sort is stable: entries with equal values keep their relative input
// order, so ranking the store's natural fetch order (id ascending) yields
// reproducible positions. The input slice is left untouched, which makes
// switching sort keys on an in-memory sequence equivalent to sorting the
// original sequence by the new key.
func Rank(entries []Entry, key SortKey) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Aggregate.Value(key) > ranked[j].Aggregate.Value(key)
	})
	return ranked
}
