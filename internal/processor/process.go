package processor

import (
	"fmt"
	"log"
)

// Result is the annotated plan of one track.
type Result struct {
	Analysis  *Analysis
	Track     int
	TrackName string
	Theta     int64
	Window    Window

	// Records and Layout have the same length; Layout[i] places Records[i].
	Records []PlanRecord
	Layout  []LayoutAnnotation
}

// EffectiveConfig returns the configuration to use for the given options.
func EffectiveConfig(config *Config, options *Options) *Config {
	merged := Merge(*DefaultConfig(), *config)
	if options.Config != nil {
		merged = Merge(merged, *options.Config)
	}
	return &merged
}

// Process schedules the requested track of the song and lays out its notes.
func Process(song *Song, config *Config, options *Options) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := options.Window.Validate(); err != nil {
		return nil, err
	}

	analysis, err := Analyze(song)
	if err != nil {
		return nil, fmt.Errorf("could not analyze song: %w", err)
	}
	log.Printf("Song: %d tracks, %d ticks at %d ticks per quarter note, initial tempo %v bpm.",
		len(song.Tracks), analysis.MaxTick, analysis.Resolution, analysis.InitialTempo)

	track, err := FindTrack(song, options.Track)
	if err != nil {
		return nil, err
	}
	name, _ := song.Tracks[track].Name()

	idx := IndexTrack(song.Tracks[track])
	log.Printf("Track %d (%q): %d distinct ticks, up to %d events per tick.", track, name, len(idx.Ticks()), idx.MaxStack())

	records, err := Schedule(idx, analysis.Resolution, analysis.InitialTempo, analysis.MaxTick)
	if err != nil {
		return nil, fmt.Errorf("could not schedule track %d: %w", track, err)
	}
	records = trim(records, options.Window)

	theta := config.ThetaFor(analysis.Resolution)
	return &Result{
		Analysis:  analysis,
		Track:     track,
		TrackName: name,
		Theta:     theta,
		Window:    options.Window,
		Records:   records,
		Layout:    AssignLanes(records, theta, config.MaxLanes),
	}, nil
}
