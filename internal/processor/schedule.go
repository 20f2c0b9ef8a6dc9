package processor

import (
	"fmt"
	"log"
)

// PlanRecord is one note of the playback plan.
type PlanRecord struct {
	StartTick    int64   `yaml:"start_tick"`
	StartSeconds float64 `yaml:"start_seconds"`
	Note         string  `yaml:"note"`
	Octave       int     `yaml:"octave"`
	// Duration in seconds. Zero means the note was never released.
	Duration float64 `yaml:"duration"`
	Velocity uint8   `yaml:"velocity"`
	Channel  uint8   `yaml:"channel"`
}

// Name returns the pitch name of the record.
func (r PlanRecord) Name() PitchName {
	return PitchName{Note: r.Note, Octave: r.Octave}
}

// Sustained returns whether no release was seen for the record.
func (r PlanRecord) Sustained() bool {
	return r.Duration == 0
}

// scheduler holds the state of a single Schedule call.
type scheduler struct {
	clock   *Clock
	tracker *noteTracker
	// records is the arena of all plan records. Open records are referenced by index from tracker.
	records []PlanRecord
}

// Schedule converts the indexed events of a track into plan records covering ticks [0, endTick).
//
// Records are ordered by start tick; records starting on the same tick
// keep the order of their note on events. A note on for a note that is
// already sounding on the same channel ends the previous note first.
func Schedule(idx *TickIndex, resolution uint16, initialTempo float64, endTick int64) ([]PlanRecord, error) {
	clock, err := NewClock(resolution, initialTempo)
	if err != nil {
		return nil, fmt.Errorf("could not set up clock: %w", err)
	}
	s := &scheduler{
		clock:   clock,
		tracker: newNoteTracker(),
	}
	for _, tick := range idx.Ticks() {
		if tick >= endTick {
			break
		}
		for _, ev := range idx.At(tick) {
			if err := s.handle(tick, ev); err != nil {
				return nil, fmt.Errorf("at tick %d: %w", tick, err)
			}
		}
	}
	if s.tracker.Playing() {
		log.Printf("Notes still playing at end of track: %v.", s.tracker.NotesPlaying())
	}
	return s.records, nil
}

func (s *scheduler) handle(tick int64, ev Event) error {
	switch ev := ev.(type) {
	case TrackName:
		log.Printf("Scheduling track %q.", ev.Text)
	case TempoChange:
		return s.clock.SetTempo(ev.BPM)
	case NoteOn:
		s.noteOn(tick, ev)
	case NoteOff:
		s.noteOff(tick, NoteKey{Name: NameOf(ev.Pitch), Channel: ev.Channel})
	case EndOfTrack:
		// Nothing to do.
	default:
		return fmt.Errorf("unsupported event type %T", ev)
	}
	return nil
}

func (s *scheduler) noteOn(tick int64, ev NoteOn) {
	name := NameOf(ev.Pitch)
	key := NoteKey{Name: name, Channel: ev.Channel}
	if _, found := s.tracker.Open(key); found {
		// Retrigger.
		s.noteOff(tick, key)
	}
	s.records = append(s.records, PlanRecord{
		StartTick:    tick,
		StartSeconds: s.clock.Seconds(tick),
		Note:         name.Note,
		Octave:       name.Octave,
		Velocity:     ev.Velocity,
		Channel:      ev.Channel,
	})
	s.tracker.Start(key, len(s.records)-1)
}

func (s *scheduler) noteOff(tick int64, key NoteKey) {
	h, found := s.tracker.End(key)
	if !found {
		return
	}
	rec := &s.records[h]
	rec.Duration = s.clock.Seconds(tick) - rec.StartSeconds
}
