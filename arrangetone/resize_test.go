package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type resizeCommit struct {
	dur      float64
	edge     resizeEdge
	startDur float64
	startPos float64
}

func testResizeEngine(snap float64) (*resizeEngine, *[]resizeCommit) {
	commits := &[]resizeCommit{}
	r := &resizeEngine{
		view: &viewport{Zoom: 100, WidthPx: 1600},
		snap: &snapSetting{Interval: snap, Enabled: snap > 0},
		onResize: func(id uuid.UUID, dur float64, edge resizeEdge, startDur, startPos float64) {
			*commits = append(*commits, resizeCommit{dur, edge, startDur, startPos})
		},
	}
	return r, commits
}

func TestResizeRightEdge(t *testing.T) {
	r, commits := testResizeEngine(1)
	r.pointerDown(uuid.New(), edgeRight, 4, 10, 0)
	r.pointerMove(200)
	r.pointerUp()
	assert.Equal(t, []resizeCommit{{6, edgeRight, 4, 10}}, *commits)
	assert.False(t, r.active())
}

func TestResizeLeftEdgeGrowsLeftward(t *testing.T) {
	r, commits := testResizeEngine(1)
	r.pointerDown(uuid.New(), edgeLeft, 4, 10, 0)
	r.pointerMove(-200)
	assert.Equal(t, []resizeCommit{{6, edgeLeft, 4, 10}}, *commits)
}

func TestResizeMinDuration(t *testing.T) {
	r, commits := testResizeEngine(0.5)
	r.pointerDown(uuid.New(), edgeRight, 4, 0, 0)
	r.pointerMove(-1000)
	assert.Equal(t, 0.5, (*commits)[0].dur)

	// with snapping off the floor is one beat
	r2, commits2 := testResizeEngine(0)
	r2.pointerDown(uuid.New(), edgeRight, 4, 0, 0)
	r2.pointerMove(-1000)
	assert.Equal(t, 1.0, (*commits2)[0].dur)
}

func TestResizeCommitsFromSnapshot(t *testing.T) {
	r, commits := testResizeEngine(1)
	r.pointerDown(uuid.New(), edgeRight, 4, 0, 0)
	r.pointerMove(100)
	r.pointerMove(200)
	r.pointerMove(200)
	// each commit is absolute, never accumulated from the previous one
	assert.Equal(t, []float64{5, 6, 6},
		[]float64{(*commits)[0].dur, (*commits)[1].dur, (*commits)[2].dur})
}
