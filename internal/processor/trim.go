package processor

import (
	"fmt"
)

// Window is a time range [Start, End) in seconds. An End of 0 means until the end of the song.
type Window struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Validate checks that the window is not empty.
func (w Window) Validate() error {
	if w.Start < 0 {
		return fmt.Errorf("invalid window start %v", w.Start)
	}
	if w.End > 0 && w.End <= w.Start {
		return fmt.Errorf("invalid window: end %v is not after start %v", w.End, w.Start)
	}
	return nil
}

// Contains returns whether t is within the window.
func (w Window) Contains(t float64) bool {
	if t < w.Start {
		return false
	}
	return w.End <= 0 || t < w.End
}

// trim keeps only the records starting within the window.
// Durations are left as they are, so a note may extend beyond the window end.
func trim(records []PlanRecord, w Window) []PlanRecord {
	if w.Start <= 0 && w.End <= 0 {
		return records
	}
	var result []PlanRecord
	for _, r := range records {
		if w.Contains(r.StartSeconds) {
			result = append(result, r)
		}
	}
	return result
}
