package processor

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Config is the global configuration.
type Config struct {
	// ClipDir is the directory containing one clip per note.
	ClipDir string `yaml:"clip_dir,omitempty"`
	// Extensions are the clip file extensions to look for, in order of preference.
	Extensions []string `yaml:"extensions,omitempty"`
	// HomeOctave is where the search for a clip of a missing octave starts.
	HomeOctave *int `yaml:"home_octave,omitempty"`
	// OctaveShift is added to all octaves before looking up clips.
	OctaveShift *int `yaml:"octave_shift,omitempty"`

	// Output canvas.
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Background string `yaml:"background,omitempty"`

	// Clip timing, in seconds.
	Fade        float64 `yaml:"fade,omitempty"`
	MinDuration float64 `yaml:"min_duration,omitempty"`
	MaxDuration float64 `yaml:"max_duration,omitempty"`

	// Volume scales the velocity derived gain of all clips.
	Volume float64 `yaml:"volume,omitempty"`

	// Theta is the proximity in ticks below which notes share the screen. 0 means a 32nd note.
	Theta int64 `yaml:"theta,omitempty"`
	// MaxLanes limits the number of notes sharing the screen. 0 means no limit.
	MaxLanes int `yaml:"max_lanes,omitempty"`

	// Tool paths.
	FFmpeg  string `yaml:"ffmpeg,omitempty"`
	FFprobe string `yaml:"ffprobe,omitempty"`

	// Password decrypts .age input files.
	Password string `yaml:"password,omitempty"`
}

// Options are the settings of one song.
type Options struct {
	InputFile       string `yaml:"input_file"`
	InputFileSHA256 string `yaml:"input_file_sha256,omitempty"`

	// Track is the name or index of the track to render. If empty, tracks are listed instead.
	Track string `yaml:"track,omitempty"`

	// Window selects the part of the song to render.
	Window Window `yaml:",inline"`

	// Output is the output media file name.
	Output string `yaml:"output,omitempty"`

	// Config overrides the global configuration for this song.
	Config *Config `yaml:"config,omitempty"`
}

func intPtr(i int) *int {
	return &i
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		ClipDir:     "videos",
		Extensions:  []string{"mp4", "avi", "mov", "mkv", "webm"},
		HomeOctave:  intPtr(5),
		OctaveShift: intPtr(0),
		Width:       1920,
		Height:      1080,
		Background:  "black",
		Fade:        0.05,
		MinDuration: 0.25,
		MaxDuration: 4,
		Volume:      1,
		FFmpeg:      "ffmpeg",
		FFprobe:     "ffprobe",
	}
}

// Octaves returns the home octave and octave shift, defaulting to 5 and 0.
func (c *Config) Octaves() (home, shift int) {
	home = 5
	if c.HomeOctave != nil {
		home = *c.HomeOctave
	}
	if c.OctaveShift != nil {
		shift = *c.OctaveShift
	}
	return home, shift
}

// ThetaFor returns the proximity threshold for the given resolution.
func (c *Config) ThetaFor(resolution uint16) int64 {
	if c.Theta > 0 {
		return c.Theta
	}
	return max(int64(resolution)/8, 1)
}

// Validate checks the configuration for errors that would only show up late.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, err)
	}
	if c.MinDuration < 0 || c.MaxDuration <= 0 || c.MinDuration > c.MaxDuration {
		errs = append(errs, fmt.Errorf("invalid duration range [%v, %v]", c.MinDuration, c.MaxDuration))
	}
	if c.Fade < 0 {
		errs = append(errs, fmt.Errorf("invalid fade length %v", c.Fade))
	}
	if c.Volume < 0 {
		errs = append(errs, fmt.Errorf("invalid volume %v", c.Volume))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("no clip extensions configured"))
	}
	return errors.Join(errs...)
}

// ParseColor parses a color name like "black" or a hex color like "#ff8000".
func ParseColor(s string) (color.RGBA, error) {
	if c, found := colornames.Map[strings.ToLower(s)]; found {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid background color %q: not a color name or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
