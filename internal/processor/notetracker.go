package processor

import (
	"log"
	"slices"
)

// noteTracker maps each currently sounding note to the handle of its open plan record.
type noteTracker struct {
	activeNotes map[NoteKey]int
}

func newNoteTracker() *noteTracker {
	return &noteTracker{
		activeNotes: map[NoteKey]int{},
	}
}

// Playing returns whether any note is sounding.
func (t *noteTracker) Playing() bool {
	return len(t.activeNotes) > 0
}

// Open returns the handle of the open record for k, if any.
func (t *noteTracker) Open(k NoteKey) (int, bool) {
	h, found := t.activeNotes[k]
	return h, found
}

// Start marks k as sounding with the given record handle.
func (t *noteTracker) Start(k NoteKey, handle int) {
	if _, found := t.activeNotes[k]; found {
		log.Panicf("Unreachable code: note %v already playing.", k)
	}
	t.activeNotes[k] = handle
}

// End marks k as no longer sounding and returns the handle of its record.
func (t *noteTracker) End(k NoteKey) (int, bool) {
	h, found := t.activeNotes[k]
	if found {
		delete(t.activeNotes, k)
	}
	return h, found
}

// NotesPlaying returns the sounding notes in a stable order.
func (t *noteTracker) NotesPlaying() []NoteKey {
	keys := make([]NoteKey, 0, len(t.activeNotes))
	for k := range t.activeNotes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b NoteKey) int {
		return t.activeNotes[a] - t.activeNotes[b]
	})
	return keys
}
