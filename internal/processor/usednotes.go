package processor

import (
	"slices"
)

// UsedNotes returns all pitch names the track ever starts, ordered by pitch.
func UsedNotes(t Track) []PitchName {
	pitches := map[uint8]struct{}{}
	for _, ev := range t {
		if on, ok := ev.Event.(NoteOn); ok {
			pitches[on.Pitch] = struct{}{}
		}
	}
	var sorted []uint8
	for p := range pitches {
		sorted = append(sorted, p)
	}
	slices.Sort(sorted)
	names := make([]PitchName, 0, len(sorted))
	for _, p := range sorted {
		names = append(names, NameOf(p))
	}
	return names
}
