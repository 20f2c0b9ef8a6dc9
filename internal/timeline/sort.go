package timeline

import (
	"cmp"
	"slices"
)

// sortByStart sorts clips by start time.
// Clips starting at the same time keep their order, so lanes stay left to right.
func sortByStart(clips []Clip) {
	slices.SortStableFunc(clips, func(a, b Clip) int {
		return cmp.Compare(a.Start, b.Start)
	})
}
