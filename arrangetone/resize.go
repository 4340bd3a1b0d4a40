package main

import "github.com/google/uuid"

// which edge of a pattern a resize grabs
type resizeEdge int

const (
	edgeLeft resizeEdge = iota
	edgeRight
)

// ephemeral state for one edge-resize gesture
type resizeSession struct {
	id       uuid.UUID
	edge     resizeEdge
	startX   float64
	startDur float64
	startPos float64
}

// gesture engine for edge-handle resizing. Unlike dragging, resize commits
// on every pointer-move: there is no cross-track remount hazard, and each
// commit is computed from the start snapshot so repeated commits can't
// drift. Pointer-up just ends the session.
type resizeEngine struct {
	view *viewport
	snap *snapSetting

	onResize func(id uuid.UUID, dur float64, edge resizeEdge, startDur, startPos float64)

	session *resizeSession
}

func (r *resizeEngine) active() bool { return r.session != nil }

func (r *resizeEngine) pointerDown(id uuid.UUID, edge resizeEdge, dur, pos, x float64) {
	if r.session != nil {
		return
	}
	r.session = &resizeSession{id: id, edge: edge, startX: x, startDur: dur, startPos: pos}
}

func (r *resizeEngine) pointerMove(x float64) {
	s := r.session
	if s == nil || r.view.Zoom <= 0 {
		return
	}
	deltaBeats := (x - s.startX) / r.view.Zoom
	raw := s.startDur + deltaBeats
	if s.edge == edgeLeft {
		// dragging the left edge leftward grows the pattern
		raw = s.startDur - deltaBeats
	}
	dur := snapToGrid(raw, r.snap.value())
	if min := r.minDuration(); dur < min {
		dur = min
	}
	if r.onResize != nil {
		r.onResize(s.id, dur, s.edge, s.startDur, s.startPos)
	}
}

// the duration floor is one snap unit, or one beat with snapping off
func (r *resizeEngine) minDuration() float64 {
	if v := r.snap.value(); v > 0 {
		return v
	}
	return 1
}

func (r *resizeEngine) pointerUp() { r.session = nil }
func (r *resizeEngine) cancel()    { r.session = nil }
