// Package lyrics maps a playback position onto a cue list.
package lyrics

import (
	"math"
	"sort"

	"github.com/jscyril/mediacore/api"
)

// IndexAt returns the index of the last cue whose time is <= position,
// or 0 when position precedes every cue. Cues must be sorted by time.
func IndexAt(cues []api.LyricCue, position float64) int {
	if len(cues) == 0 {
		return 0
	}
	if math.IsNaN(position) {
		position = 0
	}
	i := sort.Search(len(cues), func(i int) bool { return cues[i].Time > position }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// TripleAt returns the lines around index; missing neighbours are empty.
func TripleAt(cues []api.LyricCue, index int) api.LyricTriple {
	return api.LyricTriple{
		Previous: textAt(cues, index-1),
		Current:  textAt(cues, index),
		Next:     textAt(cues, index+1),
	}
}

// Sync returns the (previous, current, next) window for position seconds.
func Sync(cues []api.LyricCue, position float64) api.LyricTriple {
	return TripleAt(cues, IndexAt(cues, position))
}

func textAt(cues []api.LyricCue, i int) string {
	if i < 0 || i >= len(cues) {
		return ""
	}
	return cues[i].Text
}

// Tracker caches the active index so consecutive samples scan only the
// cues between the old and new positions.
type Tracker struct {
	cues  []api.LyricCue
	index int
}

// NewTracker returns a tracker positioned at the first cue.
func NewTracker(cues []api.LyricCue) *Tracker {
	return &Tracker{cues: cues}
}

// Update moves the cached index to position and reports whether it changed.
// The result always equals IndexAt(cues, position).
func (t *Tracker) Update(position float64) (index int, lines api.LyricTriple, changed bool) {
	if math.IsNaN(position) {
		position = 0
	}

	i := t.index
	for i+1 < len(t.cues) && t.cues[i+1].Time <= position {
		i++
	}
	for i > 0 && t.cues[i].Time > position {
		i--
	}

	changed = i != t.index
	t.index = i
	return i, TripleAt(t.cues, i), changed
}

// Index returns the cached cue index.
func (t *Tracker) Index() int {
	return t.index
}

// Lines returns the window at the cached index.
func (t *Tracker) Lines() api.LyricTriple {
	return TripleAt(t.cues, t.index)
}

// Reset moves the tracker back to the first cue.
func (t *Tracker) Reset() {
	t.index = 0
}
