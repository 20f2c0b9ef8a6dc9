// Package clips finds the video clip to play for a note.
package clips

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/divVerent/midimontage/internal/processor"
)

// Resolver looks up clips in a directory listing taken once at creation.
type Resolver struct {
	// root is prepended to returned clip paths.
	root       string
	homeOctave int
	extensions []string
	// files maps base names without extension to the extensions present.
	files map[string]map[string]bool
}

// New lists dir in fsys. Clip files are named like C#5.mp4 or C#.mp4.
func New(fsys fs.FS, dir string, homeOctave int, extensions []string) (*Resolver, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not list clip directory %v: %w", dir, err)
	}
	r := &Resolver{
		root:       dir,
		homeOctave: homeOctave,
		extensions: extensions,
		files:      map[string]map[string]bool{},
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if ext == "" {
			continue
		}
		base := strings.TrimSuffix(name, ext)
		if r.files[base] == nil {
			r.files[base] = map[string]bool{}
		}
		r.files[base][strings.TrimPrefix(ext, ".")] = true
	}
	return r, nil
}

// Open lists the clip directory dir of the operating system.
func Open(dir string, homeOctave int, extensions []string) (*Resolver, error) {
	r, err := New(os.DirFS(dir), ".", homeOctave, extensions)
	if err != nil {
		return nil, err
	}
	r.root = dir
	return r, nil
}

// lookup returns the path of base with the most preferred extension.
func (r *Resolver) lookup(base string) (string, bool) {
	exts := r.files[base]
	for _, ext := range r.extensions {
		if exts[ext] {
			return filepath.Join(r.root, base+"."+ext), true
		}
	}
	return "", false
}

// Resolve returns the clip for the given note class and octave.
//
// It tries, in order: the exact octave; the note class without octave;
// every octave from the home octave toward the requested one.
func (r *Resolver) Resolve(note string, octave int) (string, bool) {
	if p, ok := r.lookup(fmt.Sprintf("%s%d", note, octave)); ok {
		return p, true
	}
	if p, ok := r.lookup(note); ok {
		return p, true
	}
	step := 1
	if octave < r.homeOctave {
		step = -1
	}
	for o := r.homeOctave; o != octave; o += step {
		if p, ok := r.lookup(fmt.Sprintf("%s%d", note, o)); ok {
			return p, true
		}
	}
	return "", false
}

// ResolveName resolves a pitch name.
func (r *Resolver) ResolveName(n processor.PitchName) (string, bool) {
	return r.Resolve(n.Note, n.Octave)
}

// Map resolves all 128 MIDI pitches, shifted by octaveShift octaves.
// Pitches without clip are missing from the map.
func (r *Resolver) Map(octaveShift int) map[string]string {
	m := map[string]string{}
	for pitch := 0; pitch < 128; pitch++ {
		n := processor.NameOf(uint8(pitch))
		if p, ok := r.ResolveName(n.Shift(octaveShift)); ok {
			m[n.String()] = p
		}
	}
	return m
}
