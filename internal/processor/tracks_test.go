package processor

import (
	"errors"
	"reflect"
	"testing"
)

func testSong() *Song {
	var conductor, piano, strings Track
	conductor.Add(0, TrackName{Text: "Conductor"})
	conductor.Add(0, TempoChange{BPM: 120})
	piano.Add(0, TrackName{Text: "Piano"})
	piano.Add(0, NoteOn{Pitch: 60, Velocity: 100})
	piano.Add(0, NoteOn{Pitch: 64, Velocity: 100})
	piano.Add(480, NoteOff{Pitch: 60})
	piano.Add(0, NoteOff{Pitch: 64})
	piano.Add(0, NoteOn{Pitch: 60, Velocity: 50})
	piano.Add(480, NoteOff{Pitch: 60})
	strings.Add(0, NoteOn{Pitch: 48, Velocity: 100})
	return &Song{Resolution: 480, Tracks: []Track{conductor, piano, strings}}
}

func TestListTracks(t *testing.T) {
	want := []TrackInfo{
		{Index: 0, Name: "Conductor"},
		{Index: 1, Name: "Piano", Notes: 3},
		{Index: 2, Notes: 1},
	}
	if got := ListTracks(testSong()); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFindTrack(t *testing.T) {
	song := testSong()
	for _, tc := range []struct {
		request string
		want    int
	}{
		{"Piano", 1},
		{"piano", 1},
		{"PIANO", 1},
		{"2", 2},
		{"0", 0},
	} {
		got, err := FindTrack(song, tc.request)
		if err != nil || got != tc.want {
			t.Errorf("FindTrack(%q): got %d, %v, want %d", tc.request, got, err, tc.want)
		}
	}
	for _, request := range []string{"", "Violin", "3", "-1"} {
		if _, err := FindTrack(song, request); !errors.Is(err, ErrTrackNotFound) {
			t.Errorf("FindTrack(%q): got error %v, want %v", request, err, ErrTrackNotFound)
		}
	}
}

func TestUsedNotes(t *testing.T) {
	song := testSong()
	want := []PitchName{{"C", 5}, {"E", 5}}
	if got := UsedNotes(song.Tracks[1]); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNameOf(t *testing.T) {
	for _, tc := range []struct {
		pitch uint8
		want  string
	}{
		{0, "C0"},
		{11, "B0"},
		{60, "C5"},
		{61, "C#5"},
		{69, "A5"},
		{127, "G10"},
	} {
		if got := NameOf(tc.pitch).String(); got != tc.want {
			t.Errorf("NameOf(%d): got %v, want %v", tc.pitch, got, tc.want)
		}
	}
	if got := NameOf(60).Shift(-2).String(); got != "C3" {
		t.Errorf("got %v, want C3", got)
	}
}
