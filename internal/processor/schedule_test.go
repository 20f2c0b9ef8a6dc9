package processor

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func scheduleTrack(t *testing.T, track Track, endTick int64) []PlanRecord {
	t.Helper()
	records, err := Schedule(IndexTrack(track), 480, 120, endTick)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	return records
}

func TestScheduleSingleNote(t *testing.T) {
	var track Track
	track.Add(480, NoteOn{Pitch: 60, Channel: 0, Velocity: 100})
	track.Add(480, NoteOff{Pitch: 60, Channel: 0})
	records := scheduleTrack(t, track, 1000)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Note != "C" || r.Octave != 5 {
		t.Errorf("got note %v, want C5", r.Name())
	}
	if r.StartTick != 480 || !approx(r.StartSeconds, 0.5) {
		t.Errorf("got start %d/%v, want 480/0.5", r.StartTick, r.StartSeconds)
	}
	if !approx(r.Duration, 0.5) {
		t.Errorf("got duration %v, want 0.5", r.Duration)
	}
	if r.Velocity != 100 {
		t.Errorf("got velocity %d, want 100", r.Velocity)
	}
}

func TestScheduleRetrigger(t *testing.T) {
	var track Track
	track.Add(0, NoteOn{Pitch: 60, Velocity: 90})
	track.Add(10, NoteOn{Pitch: 60, Velocity: 80})
	records := scheduleTrack(t, track, 100)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if want := 10.0 / 960; !approx(records[0].Duration, want) {
		t.Errorf("first note: got duration %v, want %v", records[0].Duration, want)
	}
	if records[1].StartTick != 10 || !records[1].Sustained() {
		t.Errorf("second note: got %+v, want open note at tick 10", records[1])
	}
}

func TestScheduleRetriggerClosesOnlyOwnKey(t *testing.T) {
	var track Track
	track.Add(0, NoteOn{Pitch: 60, Channel: 0, Velocity: 90})
	track.Add(0, NoteOn{Pitch: 60, Channel: 1, Velocity: 90})
	track.Add(0, NoteOn{Pitch: 72, Channel: 0, Velocity: 90})
	track.Add(96, NoteOn{Pitch: 60, Channel: 0, Velocity: 90})
	records := scheduleTrack(t, track, 1000)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if !approx(records[0].Duration, 0.1) {
		t.Errorf("retriggered note: got duration %v, want 0.1", records[0].Duration)
	}
	for _, i := range []int{1, 2, 3} {
		if !records[i].Sustained() {
			t.Errorf("record %d: got duration %v, want sustained", i, records[i].Duration)
		}
	}
}

func TestScheduleUnmatchedNoteOffIgnored(t *testing.T) {
	var track Track
	track.Add(0, NoteOff{Pitch: 61})
	track.Add(10, NoteOn{Pitch: 60, Velocity: 1})
	track.Add(10, NoteOff{Pitch: 60, Channel: 3})
	track.Add(10, NoteOff{Pitch: 60})
	track.Add(10, NoteOff{Pitch: 60})
	records := scheduleTrack(t, track, 100)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if want := 20.0 / 960; !approx(records[0].Duration, want) {
		t.Errorf("got duration %v, want %v", records[0].Duration, want)
	}
}

func TestScheduleEndTickExclusive(t *testing.T) {
	var track Track
	track.Add(0, NoteOn{Pitch: 60, Velocity: 1})
	track.Add(100, NoteOff{Pitch: 60})
	track.Add(0, NoteOn{Pitch: 62, Velocity: 1})
	records := scheduleTrack(t, track, 100)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if !records[0].Sustained() {
		t.Errorf("got duration %v, want sustained as the note off is out of range", records[0].Duration)
	}
}

func TestScheduleOrdering(t *testing.T) {
	var track Track
	track.Add(0, NoteOn{Pitch: 64, Velocity: 1})
	track.Add(0, NoteOn{Pitch: 60, Velocity: 1})
	track.Add(5, NoteOff{Pitch: 64})
	track.Add(0, NoteOn{Pitch: 67, Velocity: 1})
	track.Add(5, NoteOn{Pitch: 64, Velocity: 1})
	track.Add(0, NoteOn{Pitch: 59, Velocity: 1})
	records := scheduleTrack(t, track, 100)
	want := []string{"E5", "C5", "G5", "E5", "B4"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, r := range records {
		if got := r.Name().String(); got != want[i] {
			t.Errorf("record %d: got %v, want %v", i, got, want[i])
		}
		if i > 0 && r.StartTick < records[i-1].StartTick {
			t.Errorf("record %d starts at %d, before previous record at %d", i, r.StartTick, records[i-1].StartTick)
		}
	}
}

func TestScheduleTempoChange(t *testing.T) {
	var track Track
	track.Add(0, TrackName{Text: "Piano"})
	track.Add(0, NoteOn{Pitch: 60, Velocity: 1})
	track.Add(480, TempoChange{BPM: 60})
	track.Add(0, NoteOn{Pitch: 62, Velocity: 1})
	track.Add(480, NoteOff{Pitch: 62})
	records := scheduleTrack(t, track, 2000)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// The current tempo applies to the whole tick count.
	if !approx(records[1].StartSeconds, 1.0) {
		t.Errorf("got start %v, want 1.0", records[1].StartSeconds)
	}
	if !approx(records[1].Duration, 1.0) {
		t.Errorf("got duration %v, want 1.0", records[1].Duration)
	}
}

func TestScheduleInvalidTempo(t *testing.T) {
	var track Track
	track.Add(0, TempoChange{BPM: 0})
	if _, err := Schedule(IndexTrack(track), 480, 120, 10); err == nil {
		t.Errorf("Schedule succeeded with a zero tempo")
	}
	if _, err := Schedule(IndexTrack(nil), 480, 0, 10); err == nil {
		t.Errorf("Schedule succeeded without initial tempo")
	}
}

func TestScheduleConstantTempoDurations(t *testing.T) {
	for _, tc := range []struct {
		resolution uint16
		bpm        float64
		on, off    uint32
	}{
		{96, 100, 0, 96},
		{480, 120, 480, 960},
		{960, 90, 17, 1234},
		{24, 200, 5, 6},
	} {
		var track Track
		track.Add(tc.on, NoteOn{Pitch: 40, Channel: 9, Velocity: 1})
		track.Add(tc.off-tc.on, NoteOff{Pitch: 40, Channel: 9})
		records, err := Schedule(IndexTrack(track), tc.resolution, tc.bpm, int64(tc.off)+1)
		if err != nil {
			t.Fatalf("Schedule failed: %v", err)
		}
		want := float64(tc.off-tc.on) * 60 / (tc.bpm * float64(tc.resolution))
		if len(records) != 1 || !approx(records[0].Duration, want) {
			t.Errorf("%+v: got %+v, want duration %v", tc, records, want)
		}
	}
}
