package processor

// TickIndex groups the events of a track by absolute tick.
type TickIndex struct {
	events map[int64][]Event
	// ticks lists the keys of events in increasing order.
	ticks []int64
}

// IndexTrack builds the tick index of a track.
// Events keep their track order within a tick.
func IndexTrack(t Track) *TickIndex {
	idx := &TickIndex{
		events: map[int64][]Event{},
	}
	var tick int64
	for _, ev := range t {
		tick += int64(ev.Delta)
		if _, found := idx.events[tick]; !found {
			// Deltas are unsigned, so ticks only grow.
			idx.ticks = append(idx.ticks, tick)
		}
		idx.events[tick] = append(idx.events[tick], ev.Event)
	}
	return idx
}

// Ticks returns all ticks having events, in increasing order.
func (idx *TickIndex) Ticks() []int64 {
	return idx.ticks
}

// At returns the events at the given tick.
func (idx *TickIndex) At(tick int64) []Event {
	return idx.events[tick]
}

// LastTick returns the tick of the last event, or -1 if there is none.
func (idx *TickIndex) LastTick() int64 {
	if len(idx.ticks) == 0 {
		return -1
	}
	return idx.ticks[len(idx.ticks)-1]
}

// MaxStack returns the largest number of events sharing one tick.
func (idx *TickIndex) MaxStack() int {
	var n int
	for _, evs := range idx.events {
		n = max(n, len(evs))
	}
	return n
}
