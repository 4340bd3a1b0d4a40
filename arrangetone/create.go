package main

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type createState int

const (
	createIdle createState = iota
	createFirstClick
	createArmed
	createDragging
)

// ephemeral state for one create gesture. startBeat is floor-snapped at the
// second pointer-down; curBeat follows the live pointer for the ghost
// preview.
type createSession struct {
	track      uuid.UUID
	trackIndex int
	startX     float64
	startBeat  float64
	curBeat    float64
}

// gesture engine for double-click and drag-to-create on the empty track
// surface. The first click only records a timestamp; a second click within
// the window arms creation, and movement past the threshold turns it into a
// drag that sizes the new pattern. Backward drags still produce a
// forward-time pattern starting at the lesser endpoint.
type createEngine struct {
	view        *viewport
	snap        *snapSetting
	defaultDur  float64
	clickWindow time.Duration
	threshold   float64

	onCreate func(track uuid.UUID, pos, dur float64)
	occupied func(track uuid.UUID, beat float64) bool
	trackAt  func(y float64) (uuid.UUID, int, bool)

	state      createState
	clickTime  time.Time
	clickTrack uuid.UUID
	session    *createSession
}

func (c *createEngine) active() bool {
	return c.state == createArmed || c.state == createDragging
}

// handle a pointer-down on the empty track surface. Returns true if the
// event was claimed as the second click of a create gesture; otherwise the
// caller is free to start a different gesture with it.
func (c *createEngine) pointerDown(x, y float64, now time.Time) bool {
	c.expire(now)
	track, idx, ok := c.trackAt(y)
	if !ok {
		c.reset()
		return false
	}
	if c.state == createFirstClick && track == c.clickTrack {
		beat := c.view.beatAt(x)
		if c.occupied != nil && c.occupied(track, beat) {
			c.reset()
			return false
		}
		start := snapToGridFloor(beat, c.snap.value())
		if start < 0 {
			start = 0
		}
		c.state = createArmed
		c.session = &createSession{
			track:      track,
			trackIndex: idx,
			startX:     x,
			startBeat:  start,
			curBeat:    beat,
		}
		return true
	}
	c.state = createFirstClick
	c.clickTime = now
	c.clickTrack = track
	c.session = nil
	return false
}

func (c *createEngine) pointerMove(x, y float64) {
	switch c.state {
	case createArmed:
		if math.Abs(x-c.session.startX) < c.threshold {
			return
		}
		c.state = createDragging
		fallthrough
	case createDragging:
		c.session.curBeat = c.view.beatAt(x)
	}
}

// commit the pending creation, unless the release point lands on an existing
// pattern or outside the originating track's band
func (c *createEngine) pointerUp(x, y float64) {
	if !c.active() {
		return
	}
	s := c.session
	dragging := c.state == createDragging
	c.reset()
	track, idx, ok := c.trackAt(y)
	if !ok || idx != s.trackIndex || track != s.track {
		return
	}
	beat := c.view.beatAt(x)
	if c.occupied != nil && c.occupied(s.track, beat) {
		return
	}
	unit := c.snap.value()
	if unit <= 0 {
		unit = 1
	}
	pos, dur := s.startBeat, c.defaultDur
	if dragging {
		end := snapToGridFloor(beat, c.snap.value())
		if end < 0 {
			end = 0
		}
		if end < s.startBeat {
			pos, dur = end, s.startBeat-end
		} else {
			pos, dur = s.startBeat, end-s.startBeat
		}
	}
	if dur < unit {
		dur = unit
	}
	if c.onCreate != nil {
		c.onCreate(s.track, pos, dur)
	}
}

// drop a pending first click once the double-click window lapses
func (c *createEngine) expire(now time.Time) {
	if c.state == createFirstClick && now.Sub(c.clickTime) > c.clickWindow {
		c.state = createIdle
	}
}

func (c *createEngine) reset() {
	c.state = createIdle
	c.session = nil
}

// return the ghost preview bounds while drag-creating: from the snapped
// start to the live pointer beat
func (c *createEngine) ghost() (trackIndex int, startBeat, endBeat float64, ok bool) {
	if c.state != createDragging {
		return 0, 0, 0, false
	}
	s := c.session
	a, b := order(s.startBeat, s.curBeat)
	return s.trackIndex, a, b, true
}
