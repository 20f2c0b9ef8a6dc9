package timeline

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/divVerent/midimontage/internal/processor"
)

// Settings control how plan records become clips.
type Settings struct {
	Width, Height int
	Background    color.RGBA
	Output        string

	// OctaveShift is added to each note's octave before looking up its clip.
	OctaveShift int

	Fade        float64
	MinDuration float64
	MaxDuration float64
	Volume      float64
}

// SettingsFromConfig extracts the settings from the configuration.
func SettingsFromConfig(c *processor.Config, output string) (Settings, error) {
	bg, err := processor.ParseColor(c.Background)
	if err != nil {
		return Settings{}, err
	}
	_, shift := c.Octaves()
	return Settings{
		Width:       c.Width,
		Height:      c.Height,
		Background:  bg,
		Output:      output,
		OctaveShift: shift,
		Fade:        c.Fade,
		MinDuration: c.MinDuration,
		MaxDuration: c.MaxDuration,
		Volume:      c.Volume,
	}, nil
}

// trimLength returns how long to play a note of the given duration.
// Sustained notes play as long as allowed.
func (s Settings) trimLength(duration float64) float64 {
	if duration == 0 {
		return s.MaxDuration
	}
	return min(max(duration, s.MinDuration), s.MaxDuration)
}

// rect returns the canvas area of a note with the given layout.
func (s Settings) rect(l processor.LayoutAnnotation) image.Rectangle {
	if l.Solo() {
		return image.Rect(0, 0, s.Width, s.Height)
	}
	w := s.Width / l.GroupSize
	x := l.Lane * w
	return image.Rect(x, 0, x+w, s.Height)
}

// Emit places all records of the plan on the canvas.
//
// Records without a clip are skipped; each of them yields one warning.
// If prober is nil, clips are assumed to be long enough. progress may be
// nil; otherwise it is called once for each placed clip.
func Emit(ctx context.Context, r *processor.Result, resolver Resolver, prober Prober, s Settings, progress Progress) (*Composition, []Warning, error) {
	comp := &Composition{
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
		Output:     s.Output,
		Duration:   span(r, s),
	}
	var warnings []Warning
	for i, rec := range r.Records {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		name := rec.Name().Shift(s.OctaveShift)
		warn := func(reason string) {
			warnings = append(warnings, Warning{
				StartTick:    rec.StartTick,
				StartSeconds: rec.StartSeconds,
				Note:         name.String(),
				Reason:       reason,
			})
		}
		path, found := resolver.Resolve(name.Note, name.Octave)
		if !found {
			warn("no clip found")
			continue
		}
		length := s.trimLength(rec.Duration)
		if prober != nil {
			clipLength, err := prober.Length(ctx, path)
			if err != nil {
				warn(fmt.Sprintf("could not probe %v: %v", path, err))
				continue
			}
			if clipLength > 0 {
				length = min(length, clipLength)
			}
		}
		clip := Clip{
			Path:  path,
			Rect:  s.rect(r.Layout[i]),
			Start: rec.StartSeconds - r.Window.Start,
			Trim:  length,
			Fade:  min(s.Fade, length/2),
			Gain:  float64(rec.Velocity) / 127 * s.Volume,
			Note:  name.String(),
		}
		comp.Clips = append(comp.Clips, clip)
		if progress != nil {
			progress(clip.Start, comp.Duration)
		}
	}
	sortByStart(comp.Clips)
	return comp, warnings, nil
}

// span returns the length of the output.
func span(r *processor.Result, s Settings) float64 {
	if r.Window.End > 0 {
		return r.Window.End - r.Window.Start
	}
	var end float64
	for _, rec := range r.Records {
		end = max(end, rec.StartSeconds-r.Window.Start+s.trimLength(rec.Duration))
	}
	return end
}
