package processor

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrNotMetric is returned for MIDI files using SMPTE time codes.
var ErrNotMetric = errors.New("MIDI file does not use metric ticks")

// FromSMF converts a MIDI file into a Song.
//
// Only events the scheduler cares about are kept. The deltas of dropped
// events are carried over to the next kept event, so absolute ticks are
// unchanged. Each non-empty track ends with an EndOfTrack holding the
// remaining deltas, so the length of the track is kept too.
func FromSMF(mid *smf.SMF) (*Song, error) {
	ticks, ok := mid.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: got %v", ErrNotMetric, mid.TimeFormat)
	}
	song := &Song{
		Resolution: uint16(ticks),
		Tracks:     make([]Track, len(mid.Tracks)),
	}
	for i, t := range mid.Tracks {
		var pending uint32
		for _, ev := range t {
			pending += ev.Delta
			e := convertMessage(ev.Message)
			if e == nil {
				continue
			}
			song.Tracks[i].Add(pending, e)
			pending = 0
		}
		if len(t) > 0 {
			song.Tracks[i].Add(pending, EndOfTrack{})
		}
	}
	return song, nil
}

func convertMessage(msg smf.Message) Event {
	var ch, note, velocity uint8
	if msg.GetNoteStart(&ch, &note, &velocity) {
		return NoteOn{Pitch: note, Channel: ch, Velocity: velocity}
	}
	// Also catches NoteOn with velocity 0.
	if msg.GetNoteEnd(&ch, &note) {
		return NoteOff{Pitch: note, Channel: ch}
	}
	var bpm float64
	if msg.GetMetaTempo(&bpm) {
		return TempoChange{BPM: bpm}
	}
	var name string
	if msg.GetMetaTrackName(&name) {
		return TrackName{Text: name}
	}
	return nil
}
