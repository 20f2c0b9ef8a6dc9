package processor

import (
	"fmt"
)

// NoteNames are the names of the twelve note classes, starting at C.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName is a note class and octave.
type PitchName struct {
	Note   string
	Octave int
}

// NameOf resolves a MIDI pitch. Pitch 60 is C5.
func NameOf(pitch uint8) PitchName {
	return PitchName{
		Note:   NoteNames[pitch%12],
		Octave: int(pitch) / 12,
	}
}

// Shift returns the same note class moved by the given number of octaves.
func (p PitchName) Shift(octaves int) PitchName {
	p.Octave += octaves
	return p
}

func (p PitchName) String() string {
	return fmt.Sprintf("%s%d", p.Note, p.Octave)
}

// NoteKey identifies a sounding note.
type NoteKey struct {
	Name    PitchName
	Channel uint8
}

func (k NoteKey) String() string {
	return fmt.Sprintf("%v-%d", k.Name, k.Channel)
}
