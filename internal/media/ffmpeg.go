// Package media renders compositions with ffmpeg.
package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/divVerent/midimontage/internal/timeline"
)

// FFmpeg runs the ffmpeg and ffprobe tools.
type FFmpeg struct {
	ffmpeg  string
	ffprobe string

	mu      sync.Mutex
	lengths map[string]float64
}

// New returns a renderer using the given tool binaries.
func New(ffmpeg, ffprobe string) *FFmpeg {
	return &FFmpeg{
		ffmpeg:  ffmpeg,
		ffprobe: ffprobe,
		lengths: map[string]float64{},
	}
}

// Length returns the length of the media file in seconds. Results are cached per path.
func (f *FFmpeg) Length(ctx context.Context, path string) (float64, error) {
	f.mu.Lock()
	l, found := f.lengths[path]
	f.mu.Unlock()
	if found {
		return l, nil
	}
	cmd := exec.CommandContext(ctx, f.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%v failed: %w: %s", f.ffprobe, err, strings.TrimSpace(stderr.String()))
	}
	l, err = parseLength(string(out))
	if err != nil {
		return 0, err
	}
	f.mu.Lock()
	f.lengths[path] = l
	f.mu.Unlock()
	return l, nil
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "N/A" {
		// Unknown, e.g. for streams.
		return 0, nil
	}
	l, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q: %w", s, err)
	}
	return l, nil
}

// Render writes comp to its output file.
// progress, if not nil, receives the rendering position as reported by ffmpeg.
func (f *FFmpeg) Render(ctx context.Context, comp *timeline.Composition, progress timeline.Progress) error {
	cmd := exec.CommandContext(ctx, f.ffmpeg, Args(comp)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("could not connect to %v: %w", f.ffmpeg, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %v: %w", f.ffmpeg, err)
	}
	readProgress(stdout, comp.Duration, progress)
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%v failed: %w: %s", f.ffmpeg, err, lastLines(stderr.String(), 10))
	}
	return nil
}

// readProgress parses the key=value lines of ffmpeg's -progress output until EOF.
func readProgress(r io.Reader, total float64, progress timeline.Progress) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		key, value, ok := strings.Cut(s.Text(), "=")
		if !ok || progress == nil {
			continue
		}
		switch key {
		case "out_time_us", "out_time_ms":
			// Both are in microseconds.
			us, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}
			progress(min(max(float64(us)/1e6, 0), total), total)
		case "progress":
			if value == "end" {
				progress(total, total)
			}
		}
	}
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
