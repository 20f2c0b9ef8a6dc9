// Package timeline turns an annotated plan into a composition of clips.
package timeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
)

// Clip is one clip placed on the output.
type Clip struct {
	// Path is the source media file.
	Path string
	// Rect is the area of the canvas showing the clip.
	Rect image.Rectangle
	// Start is the time in the output at which the clip starts, in seconds.
	Start float64
	// Trim is the length of the clip to play from its beginning, in seconds.
	Trim float64
	// Fade is the length of the fade in and out, in seconds.
	Fade float64
	// Gain scales the clip's audio.
	Gain float64

	// Note is the name of the note being played, e.g. "C#5".
	Note string
}

// End returns the time the clip ends in the output.
func (c Clip) End() float64 {
	return c.Start + c.Trim
}

// Composition is everything needed to render the output.
type Composition struct {
	Width, Height int
	Background    color.RGBA
	Output        string
	// Duration is the total length of the output in seconds.
	Duration float64
	// Clips are sorted by Start.
	Clips []Clip
}

// Warning reports a note that could not be placed.
type Warning struct {
	StartTick    int64
	StartSeconds float64
	Note         string
	Reason       string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at tick %d (%.3fs): %s", w.Note, w.StartTick, w.StartSeconds, w.Reason)
}

// Resolver finds the clip for a note.
type Resolver interface {
	Resolve(note string, octave int) (string, bool)
}

// Prober reports the length of a clip in seconds.
type Prober interface {
	Length(ctx context.Context, path string) (float64, error)
}

// Progress is called with the current position and total length, in seconds.
type Progress func(elapsed, total float64)
