package processor

import (
	"testing"
)

func TestClock(t *testing.T) {
	c, err := NewClock(480, 120)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}
	if want := 60.0 / (120 * 480); !approx(c.SecondsPerTick(), want) {
		t.Errorf("got %v seconds per tick, want %v", c.SecondsPerTick(), want)
	}
	if got := c.Seconds(480); !approx(got, 0.5) {
		t.Errorf("got %v seconds at tick 480, want 0.5", got)
	}
	if err := c.SetTempo(240); err != nil {
		t.Fatalf("SetTempo failed: %v", err)
	}
	// No re-integration of the ticks before the change.
	if got := c.Seconds(480); !approx(got, 0.25) {
		t.Errorf("got %v seconds at tick 480 after tempo change, want 0.25", got)
	}
}

func TestClockRejectsInvalidInput(t *testing.T) {
	if _, err := NewClock(0, 120); err == nil {
		t.Errorf("NewClock accepted a zero resolution")
	}
	if _, err := NewClock(480, -1); err == nil {
		t.Errorf("NewClock accepted a negative tempo")
	}
	c, err := NewClock(480, 120)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}
	if err := c.SetTempo(0); err == nil {
		t.Errorf("SetTempo accepted a zero tempo")
	}
	if got := c.Seconds(960); !approx(got, 1) {
		t.Errorf("failed SetTempo changed the clock: got %v seconds, want 1", got)
	}
}
