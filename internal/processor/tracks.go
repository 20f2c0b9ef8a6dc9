package processor

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
)

// ErrTrackNotFound is returned when a requested track does not exist.
var ErrTrackNotFound = errors.New("track not found")

// TrackInfo describes one track for listing.
type TrackInfo struct {
	Index int    `yaml:"index"`
	Name  string `yaml:"name"`
	Notes int    `yaml:"notes"`
}

// ListTracks returns all tracks of the song with their names.
func ListTracks(song *Song) []TrackInfo {
	infos := make([]TrackInfo, 0, len(song.Tracks))
	for i, t := range song.Tracks {
		info := TrackInfo{Index: i}
		info.Name, _ = t.Name()
		for _, ev := range t {
			if _, ok := ev.Event.(NoteOn); ok {
				info.Notes++
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// FindTrack returns the index of the requested track.
//
// The request is matched case-insensitively against the track names
// first. If no name matches and the request is a number, it is used as the
// track index.
func FindTrack(song *Song, request string) (int, error) {
	fold := cases.Fold()
	want := fold.String(request)
	for i, t := range song.Tracks {
		name, ok := t.Name()
		if ok && fold.String(name) == want {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(request); err == nil && i >= 0 && i < len(song.Tracks) {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrTrackNotFound, request)
}
