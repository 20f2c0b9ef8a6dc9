package progress

import (
	"strings"
	"testing"
)

func TestLine(t *testing.T) {
	for _, tc := range []struct {
		elapsed, total float64
		width          int
		want           string
	}{
		{0, 10, 40, "x [" + strings.Repeat(" ", 21) + "]    0.0s/10.0s"},
		{5, 10, 40, "x [" + strings.Repeat("#", 10) + strings.Repeat(" ", 11) + "]    5.0s/10.0s"},
		{10, 10, 40, "x [" + strings.Repeat("#", 21) + "]   10.0s/10.0s"},
		{20, 10, 40, "x [" + strings.Repeat("#", 21) + "]   20.0s/10.0s"},
		{5, 10, 10, "x  50%"},
		{0, 0, 5, "x 100%"},
	} {
		got := Line("x", tc.elapsed, tc.total, tc.width)
		if got != tc.want {
			t.Errorf("Line(%v, %v, %d): got %q, want %q", tc.elapsed, tc.total, tc.width, got, tc.want)
		}
		if len(got) >= tc.width && tc.width >= 20 {
			t.Errorf("Line(%v, %v, %d): got %d columns", tc.elapsed, tc.total, tc.width, len(got))
		}
	}
}
