package main

import (
	"math"

	"github.com/google/uuid"
)

// ephemeral state for one pointer-down→pointer-up move gesture. A session is
// armed by pointer-down but only counts as a drag once the pointer travels
// past the move threshold, keeping plain clicks and double clicks
// distinguishable from drags.
type dragSession struct {
	id         uuid.UUID
	trackID    uuid.UUID
	trackIndex int
	startX     float64
	startY     float64
	startPos   float64
	copyMod    bool
	dragging   bool
	curPos     float64 // live snapped candidate position
	trackDelta int     // live candidate track index delta
}

// gesture engine for moving patterns along the timeline and across tracks.
// Nothing is committed until pointer-up; the live candidate values only
// offset the pattern visually, so a mid-gesture track change never unmounts
// anything.
type dragEngine struct {
	view        *viewport
	snap        *snapSetting
	trackCount  func() int
	trackHeight float64
	threshold   float64 // px

	onSelect       func(id uuid.UUID, multi bool)
	onCopy         func(id uuid.UUID)
	onMove         func(id uuid.UUID, pos, delta float64)
	onVerticalDrag func(id uuid.UUID, from uuid.UUID, deltaY float64)

	session *dragSession
}

func (d *dragEngine) active() bool { return d.session != nil }

// claim the pointer for a pattern. The selection callback fires immediately;
// the copy callback waits until the gesture becomes an actual drag.
func (d *dragEngine) pointerDown(id, trackID uuid.UUID, trackIndex int,
	startPos, x, y float64, multi, copyMod bool) {
	if d.session != nil {
		return
	}
	if d.onSelect != nil {
		d.onSelect(id, multi)
	}
	d.session = &dragSession{
		id:         id,
		trackID:    trackID,
		trackIndex: trackIndex,
		startX:     x,
		startY:     y,
		startPos:   startPos,
		curPos:     startPos,
		copyMod:    copyMod,
	}
}

func (d *dragEngine) pointerMove(x, y float64) {
	s := d.session
	if s == nil {
		return
	}
	if !s.dragging {
		if math.Hypot(x-s.startX, y-s.startY) < d.threshold {
			return
		}
		s.dragging = true
		if s.copyMod && d.onCopy != nil {
			d.onCopy(s.id)
		}
	}
	s.curPos, s.trackDelta, _ = d.candidate(x, y)
}

// recompute the candidate position and track delta from the session's start
// snapshot, never from the previous move's output, so dropped or reordered
// move events can't accumulate error
func (d *dragEngine) candidate(x, y float64) (float64, int, float64) {
	s := d.session
	pos := s.startPos
	if d.view.Zoom > 0 {
		pos = snapToGrid(s.startPos+(x-s.startX)/d.view.Zoom, d.snap.value())
	}
	if pos < 0 {
		pos = 0
	}
	delta := 0
	dy := y - s.startY
	if math.Abs(dy) > d.threshold && d.trackHeight > 0 {
		idx := s.trackIndex + int(math.Floor(dy/d.trackHeight))
		if idx < 0 {
			idx = 0
		}
		if n := d.trackCount(); idx > n-1 {
			idx = n - 1
		}
		delta = idx - s.trackIndex
	}
	return pos, delta, dy
}

func (d *dragEngine) pointerUp(x, y float64) {
	s := d.session
	if s == nil {
		return
	}
	if !s.dragging {
		// plain click; selection already happened on pointer-down
		d.session = nil
		return
	}
	pos, trackDelta, dy := d.candidate(x, y)
	// clear the session before committing so a commit-triggered redraw never
	// sees a stale drag offset
	d.session = nil
	if d.onMove != nil {
		d.onMove(s.id, pos, pos-s.startPos)
	}
	if trackDelta != 0 && d.onVerticalDrag != nil {
		d.onVerticalDrag(s.id, s.trackID, dy)
	}
}

func (d *dragEngine) cancel() { d.session = nil }

// return the uncommitted visual offset for a pattern mid-drag
func (d *dragEngine) offsetFor(id uuid.UUID) (beats float64, tracks int, ok bool) {
	s := d.session
	if s == nil || !s.dragging || s.id != id {
		return 0, 0, false
	}
	return s.curPos - s.startPos, s.trackDelta, true
}
