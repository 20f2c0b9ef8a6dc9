package processor

import (
	"fmt"
)

// Clock converts ticks to seconds using the current tempo.
//
// The tempo is treated as piecewise constant, but past ticks are NOT
// re-integrated on a tempo change: Seconds(tick) always uses the tempo
// active at the time of the query, even for ticks before that tempo
// change. Plans of songs with tempo changes therefore drift after the
// first change. This matches the behavior of existing renders.
type Clock struct {
	resolution     uint16
	secondsPerTick float64
}

// NewClock returns a clock at the given initial tempo.
func NewClock(resolution uint16, bpm float64) (*Clock, error) {
	if resolution == 0 {
		return nil, fmt.Errorf("invalid resolution: %d ticks per quarter note", resolution)
	}
	c := &Clock{resolution: resolution}
	if err := c.SetTempo(bpm); err != nil {
		return nil, err
	}
	return c, nil
}

// SetTempo changes the tempo to bpm beats per minute.
func (c *Clock) SetTempo(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("invalid tempo: %v bpm", bpm)
	}
	c.secondsPerTick = secondsPerTick(bpm, c.resolution)
	return nil
}

// SecondsPerTick returns the current conversion factor.
func (c *Clock) SecondsPerTick() float64 {
	return c.secondsPerTick
}

// Seconds returns the time of the given tick at the current tempo.
func (c *Clock) Seconds(tick int64) float64 {
	return c.secondsPerTick * float64(tick)
}

func secondsPerTick(bpm float64, resolution uint16) float64 {
	return 60 / (bpm * float64(resolution))
}
