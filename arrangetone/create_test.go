package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type createdPattern struct {
	track    uuid.UUID
	pos, dur float64
}

// a two-track surface with an occupied span on the first track
func testCreateEngine(occupied map[uuid.UUID][2]float64) (*createEngine, []uuid.UUID, *[]createdPattern) {
	tracks := []uuid.UUID{uuid.New(), uuid.New()}
	created := &[]createdPattern{}
	c := &createEngine{
		view:        &viewport{Zoom: 100, WidthPx: 1600},
		snap:        &snapSetting{Interval: 1, Enabled: true},
		defaultDur:  4,
		clickWindow: 500 * time.Millisecond,
		threshold:   5,
		onCreate: func(track uuid.UUID, pos, dur float64) {
			*created = append(*created, createdPattern{track, pos, dur})
		},
		occupied: func(track uuid.UUID, beat float64) bool {
			span, ok := occupied[track]
			return ok && beat >= span[0] && beat < span[1]
		},
		trackAt: func(y float64) (uuid.UUID, int, bool) {
			if y < 24 {
				return uuid.UUID{}, 0, false
			}
			idx := int((y - 24) / 64)
			if idx >= len(tracks) {
				return uuid.UUID{}, 0, false
			}
			return tracks[idx], idx, true
		},
	}
	return c, tracks, created
}

func TestDoubleClickCreate(t *testing.T) {
	c, tracks, created := testCreateEngine(nil)
	base := time.Now()
	assert.False(t, c.pointerDown(130, 30, base))
	assert.True(t, c.pointerDown(130, 30, base.Add(200*time.Millisecond)))
	c.pointerUp(130, 30)
	// beat 1.3 floor-snaps to 1, default duration applies
	assert.Equal(t, []createdPattern{{tracks[0], 1, 4}}, *created)
}

func TestDoubleClickWindowExpires(t *testing.T) {
	c, _, created := testCreateEngine(nil)
	base := time.Now()
	assert.False(t, c.pointerDown(130, 30, base))
	// too late; this registers a fresh first click instead
	assert.False(t, c.pointerDown(130, 30, base.Add(600*time.Millisecond)))
	assert.True(t, c.pointerDown(130, 30, base.Add(800*time.Millisecond)))
	c.pointerUp(130, 30)
	assert.Len(t, *created, 1)
}

func TestDoubleClickDifferentTrack(t *testing.T) {
	c, _, _ := testCreateEngine(nil)
	base := time.Now()
	assert.False(t, c.pointerDown(130, 30, base))
	// second click on another track starts a new first click there
	assert.False(t, c.pointerDown(130, 100, base.Add(100*time.Millisecond)))
}

func TestDragCreateBackward(t *testing.T) {
	c, tracks, created := testCreateEngine(nil)
	base := time.Now()
	c.pointerDown(550, 30, base)
	assert.True(t, c.pointerDown(550, 30, base.Add(100*time.Millisecond)))
	c.pointerMove(150, 30)
	c.pointerUp(150, 30)
	// dragged from beat 5.5 back to 1.5: lesser endpoint wins
	assert.Equal(t, []createdPattern{{tracks[0], 1, 4}}, *created)
}

func TestDragCreateForward(t *testing.T) {
	c, tracks, created := testCreateEngine(nil)
	base := time.Now()
	c.pointerDown(150, 30, base)
	c.pointerDown(150, 30, base.Add(100*time.Millisecond))
	c.pointerMove(550, 30)
	c.pointerUp(550, 30)
	assert.Equal(t, []createdPattern{{tracks[0], 1, 4}}, *created)
}

func TestDragCreateMinDuration(t *testing.T) {
	c, _, created := testCreateEngine(nil)
	base := time.Now()
	c.pointerDown(500, 30, base)
	c.pointerDown(500, 30, base.Add(100*time.Millisecond))
	// a 20 px wiggle is a drag, but both ends floor to the same beat
	c.pointerMove(520, 30)
	c.pointerUp(520, 30)
	assert.Equal(t, 5.0, (*created)[0].pos)
	assert.Equal(t, 1.0, (*created)[0].dur)
}

func TestCreateSuppressedOnOccupied(t *testing.T) {
	c, tracks, created := testCreateEngine(nil)
	occ := map[uuid.UUID][2]float64{tracks[0]: {2, 3}}
	c.occupied = func(track uuid.UUID, beat float64) bool {
		span, ok := occ[track]
		return ok && beat >= span[0] && beat < span[1]
	}
	base := time.Now()
	// second click directly on a pattern aborts
	c.pointerDown(250, 30, base)
	assert.False(t, c.pointerDown(250, 30, base.Add(100*time.Millisecond)))
	// release over a pattern aborts too
	c.pointerDown(600, 30, base.Add(200*time.Millisecond))
	assert.True(t, c.pointerDown(600, 30, base.Add(300*time.Millisecond)))
	c.pointerMove(250, 30)
	c.pointerUp(250, 30)
	assert.Empty(t, *created)
}

func TestCreateAbortsOffTrack(t *testing.T) {
	c, _, created := testCreateEngine(nil)
	base := time.Now()
	c.pointerDown(130, 30, base)
	assert.True(t, c.pointerDown(130, 30, base.Add(100*time.Millisecond)))
	// releasing over a different track commits nothing
	c.pointerUp(130, 100)
	assert.Empty(t, *created)
	assert.False(t, c.active())
}

func TestCreateGhost(t *testing.T) {
	c, _, _ := testCreateEngine(nil)
	base := time.Now()
	c.pointerDown(550, 30, base)
	c.pointerDown(550, 30, base.Add(100*time.Millisecond))
	_, _, _, ok := c.ghost()
	assert.False(t, ok) // armed but not dragging
	c.pointerMove(150, 30)
	idx, start, end, ok := c.ghost()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1.5, start)
	assert.Equal(t, 5.0, end)
}
