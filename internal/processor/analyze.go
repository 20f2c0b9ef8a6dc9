package processor

import (
	"errors"
	"fmt"
)

// ErrNoInitialTempo is returned if no tempo is set before the first note.
var ErrNoInitialTempo = errors.New("no tempo set before the first note")

// Analysis contains song-wide values needed for scheduling.
type Analysis struct {
	// MaxTick is the length of the longest track in ticks, including the end of track event.
	// Plans cover the ticks before it.
	MaxTick int64
	// Resolution is the number of ticks per quarter note.
	Resolution uint16
	// InitialTempo is the first tempo of the song in beats per minute.
	InitialTempo float64
}

// Analyze finds the song length and initial tempo.
//
// The initial tempo may come from any track, but must not come later than
// the first note of the song. A tempo on the same tick as the first note
// counts as set before it.
func Analyze(song *Song) (*Analysis, error) {
	a := &Analysis{
		Resolution: song.Resolution,
	}
	haveTempo := false
	firstNote := int64(-1)
	err := ForEachEventWithTime(song, func(time int64, track int, ev Event) error {
		a.MaxTick = max(a.MaxTick, time)
		switch ev := ev.(type) {
		case TempoChange:
			if !haveTempo {
				a.InitialTempo = ev.BPM
				haveTempo = true
				if firstNote >= 0 && firstNote < time {
					return fmt.Errorf("%w: tempo at tick %d, first note at tick %d", ErrNoInitialTempo, time, firstNote)
				}
			}
		case NoteOn:
			if firstNote < 0 {
				firstNote = time
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !haveTempo {
		return nil, ErrNoInitialTempo
	}
	return a, nil
}
