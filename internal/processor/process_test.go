package processor

import (
	"errors"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestProcess(t *testing.T) {
	song := testSong()
	config := EffectiveConfig(&Config{Theta: 10}, &Options{})
	r, err := Process(song, config, &Options{Track: "piano"})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if r.Track != 1 || r.TrackName != "Piano" || r.Theta != 10 {
		t.Errorf("got track %d %q theta %d, want 1 \"Piano\" 10", r.Track, r.TrackName, r.Theta)
	}
	if len(r.Records) != 3 || len(r.Layout) != 3 {
		t.Fatalf("got %d records and %d annotations, want 3", len(r.Records), len(r.Layout))
	}
	for i, rec := range r.Records[:2] {
		if !approx(rec.Duration, 0.5) {
			t.Errorf("record %d: got duration %v, want 0.5", i, rec.Duration)
		}
	}
	// The song ends on the tick of the last note off, which is therefore not played.
	if !r.Records[2].Sustained() {
		t.Errorf("last record: got duration %v, want sustained", r.Records[2].Duration)
	}
	want := []LayoutAnnotation{{0, 2}, {1, 2}, {0, 0}}
	for i := range want {
		if r.Layout[i] != want[i] {
			t.Errorf("record %d: got layout %v, want %v", i, r.Layout[i], want[i])
		}
	}
}

func TestProcessWindow(t *testing.T) {
	config := DefaultConfig()
	r, err := Process(testSong(), config, &Options{Track: "1", Window: Window{Start: 0.25, End: 1}})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(r.Records) != 1 || r.Records[0].StartTick != 480 {
		t.Errorf("got %v, want only the note at tick 480", r.Records)
	}
}

func TestProcessErrors(t *testing.T) {
	config := DefaultConfig()
	if _, err := Process(testSong(), config, &Options{Track: "Tuba"}); !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("got error %v, want %v", err, ErrTrackNotFound)
	}

	config.Background = "#nope"
	if _, err := Process(testSong(), config, &Options{Track: "Piano"}); err == nil {
		t.Errorf("Process accepted an invalid background")
	}

	song := testSong()
	song.Tracks[0] = nil
	if _, err := Process(song, DefaultConfig(), &Options{Track: "Piano"}); !errors.Is(err, ErrNoInitialTempo) {
		t.Errorf("got error %v, want %v", err, ErrNoInitialTempo)
	}
}

func TestProcessInvalidWindow(t *testing.T) {
	for _, w := range []Window{{Start: 2, End: 1}, {Start: 1, End: 1}, {Start: -1}} {
		if _, err := Process(testSong(), DefaultConfig(), &Options{Track: "Piano", Window: w}); err == nil {
			t.Errorf("Process accepted window %+v", w)
		}
	}
	if _, err := Process(testSong(), DefaultConfig(), &Options{Track: "Piano", Window: Window{Start: 1}}); err != nil {
		t.Errorf("Process rejected an open window: %v", err)
	}
}

func TestWindow(t *testing.T) {
	w := Window{Start: 1, End: 2}
	for _, tc := range []struct {
		t    float64
		want bool
	}{{0.5, false}, {1, true}, {1.5, true}, {2, false}} {
		if got := w.Contains(tc.t); got != tc.want {
			t.Errorf("Contains(%v): got %v, want %v", tc.t, got, tc.want)
		}
	}
	if !(Window{Start: 1}).Contains(1000) {
		t.Errorf("open window does not contain 1000")
	}
}

func TestProcessEndOfTrack(t *testing.T) {
	for _, tc := range []struct {
		tail      uint32
		sustained bool
	}{
		{0, true},
		{1, false},
		{240, false},
	} {
		mid := smf.New()
		mid.TimeFormat = smf.MetricTicks(480)
		var track smf.Track
		track.Add(0, smf.MetaTempo(120))
		track.Add(0, midi.NoteOn(0, 60, 100))
		track.Add(480, midi.NoteOff(0, 60))
		track.Close(tc.tail)
		if err := mid.Add(track); err != nil {
			t.Fatalf("could not add track: %v", err)
		}
		song, err := FromSMF(mid)
		if err != nil {
			t.Fatalf("FromSMF failed: %v", err)
		}
		r, err := Process(song, DefaultConfig(), &Options{Track: "0"})
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if want := int64(480 + tc.tail); r.Analysis.MaxTick != want {
			t.Errorf("tail %d: got max tick %d, want %d", tc.tail, r.Analysis.MaxTick, want)
		}
		if len(r.Records) != 1 || r.Records[0].Sustained() != tc.sustained {
			t.Errorf("tail %d: got %+v, want sustained %v", tc.tail, r.Records, tc.sustained)
		}
		if !tc.sustained && !approx(r.Records[0].Duration, 0.5) {
			t.Errorf("tail %d: got duration %v, want 0.5", tc.tail, r.Records[0].Duration)
		}
	}
}
