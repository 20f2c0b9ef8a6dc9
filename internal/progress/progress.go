// Package progress shows how far a long running step has come.
package progress

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

// Bar draws a progress bar on a terminal, or logs every 10% otherwise.
type Bar struct {
	w     io.Writer
	fd    int
	tty   bool
	label string

	lastStep int
	drawn    bool
}

// New returns a progress bar writing to f.
func New(f *os.File, label string) *Bar {
	fd := int(f.Fd())
	return &Bar{
		w:        f,
		fd:       fd,
		tty:      term.IsTerminal(fd),
		label:    label,
		lastStep: -1,
	}
}

// Update reports the current position. It has the signature of timeline.Progress.
func (b *Bar) Update(elapsed, total float64) {
	if !b.tty {
		step := 0
		if total > 0 {
			step = int(10 * elapsed / total)
		}
		if step != b.lastStep {
			b.lastStep = step
			log.Printf("%s: %.1fs of %.1fs.", b.label, elapsed, total)
		}
		return
	}
	width, _, err := term.GetSize(b.fd)
	if err != nil || width <= 0 {
		width = 80
	}
	fmt.Fprintf(b.w, "\r%s", Line(b.label, elapsed, total, width))
	b.drawn = true
}

// Done ends the progress bar line.
func (b *Bar) Done() {
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

// Line formats a progress bar that fits into width columns.
func Line(label string, elapsed, total float64, width int) string {
	frac := 1.0
	if total > 0 {
		frac = min(max(elapsed/total, 0), 1)
	}
	prefix := fmt.Sprintf("%s [", label)
	suffix := fmt.Sprintf("] %6.1fs/%.1fs", elapsed, total)
	n := width - len(prefix) - len(suffix) - 1
	if n < 1 {
		return fmt.Sprintf("%s %3.0f%%", label, 100*frac)
	}
	done := int(frac * float64(n))
	return prefix + strings.Repeat("#", done) + strings.Repeat(" ", n-done) + suffix
}
