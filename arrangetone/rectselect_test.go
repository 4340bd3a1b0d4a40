package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testRectEngine(targets []rectTarget) (*rectSelectEngine, *[][]uuid.UUID) {
	results := &[][]uuid.UUID{}
	r := &rectSelectEngine{
		view:        &viewport{Zoom: 100, WidthPx: 1600},
		trackHeight: 64,
		headerPx:    24,
		threshold:   5,
		targets:     func() []rectTarget { return targets },
		onSelectionChange: func(ids []uuid.UUID) {
			*results = append(*results, ids)
		},
	}
	return r, results
}

func TestRectSelectHitTest(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r, results := testRectEngine([]rectTarget{
		{id: a, trackIndex: 0, start: 0, end: 4},
		{id: b, trackIndex: 1, start: 8, end: 12},
	})
	// a rectangle over the first track, beats 0-6
	r.pointerDown(0, 24)
	r.pointerMove(600, 80)
	r.pointerUp(600, 80)
	assert.Equal(t, [][]uuid.UUID{{a}}, *results)
}

func TestRectSelectSpansTracks(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r, results := testRectEngine([]rectTarget{
		{id: a, trackIndex: 0, start: 0, end: 4},
		{id: b, trackIndex: 1, start: 8, end: 12},
	})
	r.pointerDown(0, 24)
	r.pointerUp(900, 152)
	assert.Equal(t, [][]uuid.UUID{{a, b}}, *results)
}

func TestRectSelectBackwardDrag(t *testing.T) {
	a := uuid.New()
	r, results := testRectEngine([]rectTarget{
		{id: a, trackIndex: 0, start: 0, end: 4},
	})
	// dragging up-left normalizes the same as down-right
	r.pointerDown(600, 80)
	r.pointerUp(0, 24)
	assert.Equal(t, [][]uuid.UUID{{a}}, *results)
}

func TestRectSelectEmptyClears(t *testing.T) {
	a := uuid.New()
	r, results := testRectEngine([]rectTarget{
		{id: a, trackIndex: 0, start: 0, end: 4},
	})
	// a click on empty space commits an empty selection
	r.pointerDown(1000, 30)
	r.pointerUp(1000, 30)
	assert.Len(t, *results, 1)
	assert.Empty(t, (*results)[0])
}

func TestRectSelectExclusiveBounds(t *testing.T) {
	a := uuid.New()
	r, results := testRectEngine([]rectTarget{
		{id: a, trackIndex: 0, start: 4, end: 8},
	})
	// a rectangle that only touches the pattern's left edge misses it
	r.pointerDown(0, 24)
	r.pointerUp(400, 80)
	assert.Empty(t, (*results)[0])
}

func TestRectSelectDraggedAndRect(t *testing.T) {
	r, _ := testRectEngine(nil)
	r.pointerDown(100, 100)
	assert.False(t, r.dragged())
	_, _, _, _, ok := r.rect()
	assert.False(t, ok)
	r.pointerMove(50, 60)
	assert.True(t, r.dragged())
	x, y, w, h, ok := r.rect()
	assert.True(t, ok)
	assert.Equal(t, []float64{50, 60, 50, 40}, []float64{x, y, w, h})
}

func TestRectSelectCancel(t *testing.T) {
	r, results := testRectEngine(nil)
	r.pointerDown(0, 24)
	r.pointerMove(600, 80)
	r.cancel()
	r.pointerUp(600, 80)
	assert.Empty(t, *results)
}
