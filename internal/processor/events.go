package processor

// Event is one of TrackName, TempoChange, NoteOn, NoteOff or EndOfTrack.
type Event interface {
	isEvent()
}

// TrackName names the track it appears in.
type TrackName struct {
	Text string
}

// TempoChange sets a new tempo in beats per minute.
type TempoChange struct {
	BPM float64
}

// NoteOn starts a note.
type NoteOn struct {
	Pitch    uint8
	Channel  uint8
	Velocity uint8
}

// NoteOff ends a note.
type NoteOff struct {
	Pitch   uint8
	Channel uint8
}

// EndOfTrack marks the length of a track.
// It carries the deltas of all events after the last kept one.
type EndOfTrack struct{}

func (TrackName) isEvent()   {}
func (TempoChange) isEvent() {}
func (NoteOn) isEvent()      {}
func (NoteOff) isEvent()     {}
func (EndOfTrack) isEvent()  {}

// TrackEvent is an event with its tick delta from the previous event of the same track.
type TrackEvent struct {
	Delta uint32
	Event Event
}

// Track is the ordered list of events of one track.
type Track []TrackEvent

// Song is a parsed MIDI file.
type Song struct {
	// Resolution is the number of ticks per quarter note.
	Resolution uint16
	Tracks     []Track
}

// Add appends an event to the track.
func (t *Track) Add(delta uint32, ev Event) {
	*t = append(*t, TrackEvent{Delta: delta, Event: ev})
}

// Name returns the first track name of the track, if any.
func (t Track) Name() (string, bool) {
	for _, ev := range t {
		if n, ok := ev.Event.(TrackName); ok {
			return n.Text, true
		}
	}
	return "", false
}
