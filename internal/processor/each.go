package processor

import (
	"errors"
)

// StopIteration can be returned to return without failure.
var StopIteration = errors.New("ForEachEventWithTime: StopIteration")

// ForEachEventWithTime runs the given function for each event of all tracks in time order, with current absolute time and track index.
// Within the same tick, note off events of other tracks come first.
func ForEachEventWithTime(song *Song, yield func(time int64, track int, ev Event) error) error {
	// trackPos is the index of the NEXT event from each track.
	trackPos := make([]int, len(song.Tracks))
	// trackTime is the time of the LAST event from each track.
	trackTime := make([]int64, len(song.Tracks))
	for {
		earliestTrack := -1
		var earliestTime int64
		var earliestNoteOff bool
		for i, t := range song.Tracks {
			p := trackPos[i]
			if p >= len(t) {
				// End of track.
				continue
			}
			time := trackTime[i] + int64(t[p].Delta)
			_, noteOff := t[p].Event.(NoteOff)
			if earliestTrack < 0 || time < earliestTime || (time == earliestTime && noteOff && !earliestNoteOff) {
				earliestTime = time
				earliestTrack = i
				earliestNoteOff = noteOff
			}
		}
		if earliestTrack < 0 {
			// End of song.
			return nil
		}
		err := yield(earliestTime, earliestTrack, song.Tracks[earliestTrack][trackPos[earliestTrack]].Event)
		if errors.Is(err, StopIteration) {
			return nil
		}
		if err != nil {
			return err
		}
		trackPos[earliestTrack]++
		trackTime[earliestTrack] = earliestTime
	}
}
