package main

import (
	"math"

	"github.com/google/uuid"
)

// pattern geometry the selection rectangle is tested against
type rectTarget struct {
	id         uuid.UUID
	trackIndex int
	start, end float64 // beats
}

// ephemeral state for one rectangle-selection gesture, in viewport-local
// pixels
type rectSession struct {
	startX, startY float64
	curX, curY     float64
	moved          bool
}

// gesture engine for drag-selecting patterns on the empty track surface. The
// rectangle is tracked in pixel space for visual feedback; the hit test
// against beat-space and track bands happens once, at pointer-up. An empty
// result clears the selection.
type rectSelectEngine struct {
	view        *viewport
	trackHeight float64
	headerPx    float64 // ruler band above the first track
	threshold   float64

	targets           func() []rectTarget
	onSelectionChange func(ids []uuid.UUID)

	session *rectSession
}

func (r *rectSelectEngine) active() bool { return r.session != nil }

func (r *rectSelectEngine) pointerDown(x, y float64) {
	if r.session != nil {
		return
	}
	r.session = &rectSession{startX: x, startY: y, curX: x, curY: y}
}

func (r *rectSelectEngine) pointerMove(x, y float64) {
	s := r.session
	if s == nil {
		return
	}
	s.curX, s.curY = x, y
	if math.Hypot(x-s.startX, y-s.startY) >= r.threshold {
		s.moved = true
	}
}

// report whether the current session has moved past the drag threshold
func (r *rectSelectEngine) dragged() bool {
	return r.session != nil && r.session.moved
}

func (r *rectSelectEngine) pointerUp(x, y float64) {
	s := r.session
	if s == nil {
		return
	}
	r.session = nil
	minX, maxX := order(s.startX, x)
	minY, maxY := order(s.startY, y)
	minBeat, maxBeat := r.view.beatAt(minX), r.view.beatAt(maxX)
	var ids []uuid.UUID
	for _, t := range r.targets() {
		if t.start >= maxBeat || t.end <= minBeat {
			continue
		}
		top := r.headerPx + float64(t.trackIndex)*r.trackHeight
		if top >= maxY || top+r.trackHeight <= minY {
			continue
		}
		ids = append(ids, t.id)
	}
	if r.onSelectionChange != nil {
		r.onSelectionChange(ids)
	}
}

func (r *rectSelectEngine) cancel() { r.session = nil }

// return the live rectangle bounds for drawing
func (r *rectSelectEngine) rect() (x, y, w, h float64, ok bool) {
	s := r.session
	if s == nil || !s.moved {
		return 0, 0, 0, 0, false
	}
	minX, maxX := order(s.startX, s.curX)
	minY, maxY := order(s.startY, s.curY)
	return minX, minY, maxX - minX, maxY - minY, true
}

// return a pair in ascending order
func order(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
