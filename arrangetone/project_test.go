package main

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testProject() (*project, *pattern, *pattern) {
	p := newProject()
	a := p.addPattern(p.Tracks[0].ID, 0, 4)
	b := p.addPattern(p.Tracks[1].ID, 4, 2)
	return p, a, b
}

func TestMovePattern(t *testing.T) {
	p, a, b := testProject()
	p.setSelection([]uuid.UUID{a.ID})
	p.movePattern(a.ID, 3, 3)
	assert.Equal(t, 3.0, a.Position)
	assert.Equal(t, 4.0, b.Position) // unselected patterns stay put
}

func TestMovePatternGanged(t *testing.T) {
	p, a, b := testProject()
	p.setSelection([]uuid.UUID{a.ID, b.ID})
	p.movePattern(a.ID, 3, 3)
	assert.Equal(t, 3.0, a.Position)
	assert.Equal(t, 7.0, b.Position)
	// moving back left clamps the gang at beat zero
	p.movePattern(b.ID, 0, -7)
	assert.Equal(t, 0.0, a.Position)
	assert.Equal(t, 0.0, b.Position)
}

func TestApplyResize(t *testing.T) {
	p, a, _ := testProject()
	a.Position, a.Duration = 10, 4
	p.beginResize(a.ID)
	p.applyResize(a.ID, 6, edgeRight, 4, 10, 1)
	assert.Equal(t, 6.0, a.Duration)
	assert.Equal(t, 10.0, a.Position)
	p.endResize()
}

func TestApplyResizeLeftEdge(t *testing.T) {
	p, a, _ := testProject()
	a.Position, a.Duration = 10, 4
	p.beginResize(a.ID)
	// growing the left edge by 2 beats keeps the right edge at 14
	p.applyResize(a.ID, 6, edgeLeft, 4, 10, 1)
	assert.Equal(t, 6.0, a.Duration)
	assert.Equal(t, 8.0, a.Position)
	p.endResize()
}

func TestApplyResizeGanged(t *testing.T) {
	p, a, b := testProject()
	a.Position, a.Duration = 10, 4
	b.Position, b.Duration = 6, 2
	p.setSelection([]uuid.UUID{a.ID, b.ID})
	p.beginResize(a.ID)
	// durations scale by the same factor; left-edge shifts are additive
	p.applyResize(a.ID, 6, edgeLeft, 4, 10, 1)
	assert.Equal(t, 6.0, a.Duration)
	assert.Equal(t, 8.0, a.Position)
	assert.Equal(t, 3.0, b.Duration)
	assert.Equal(t, 4.0, b.Position)
	p.endResize()
}

func TestApplyResizeGangedMinDuration(t *testing.T) {
	p, a, b := testProject()
	a.Position, a.Duration = 10, 4
	b.Position, b.Duration = 6, 2
	p.setSelection([]uuid.UUID{a.ID, b.ID})
	p.beginResize(a.ID)
	p.applyResize(a.ID, 1, edgeRight, 4, 10, 1)
	assert.Equal(t, 1.0, a.Duration)
	assert.Equal(t, 1.0, b.Duration) // 0.5 would be below the floor
	p.endResize()
}

func TestSelectPattern(t *testing.T) {
	p, a, b := testProject()
	p.selectPattern(a.ID, false)
	assert.Equal(t, []uuid.UUID{a.ID}, p.selection)
	p.selectPattern(b.ID, true)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, p.selection)
	// plain-clicking a member of a multi-selection keeps the gang intact
	p.selectPattern(a.ID, false)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, p.selection)
	// plain-clicking a non-member replaces the selection
	c := p.addPattern(p.Tracks[0].ID, 8, 1)
	p.selectPattern(c.ID, false)
	assert.Equal(t, []uuid.UUID{c.ID}, p.selection)
	// multi-clicking a member toggles it off
	p.selectPattern(c.ID, true)
	assert.Empty(t, p.selection)
}

func TestDuplicatePattern(t *testing.T) {
	p, a, _ := testProject()
	dup := p.duplicatePattern(a.ID)
	assert.NotEqual(t, a.ID, dup.ID)
	assert.Equal(t, a.Position, dup.Position)
	assert.Equal(t, a.Duration, dup.Duration)
	assert.Len(t, p.Patterns, 3)
}

func TestDeleteTrack(t *testing.T) {
	p, a, b := testProject()
	p.deleteTrack(p.Tracks[0].ID)
	assert.Len(t, p.Tracks, 3)
	assert.Nil(t, p.patternByID(a.ID))
	assert.NotNil(t, p.patternByID(b.ID))
	// the last track can't be deleted
	for len(p.Tracks) > 1 {
		p.deleteTrack(p.Tracks[0].ID)
	}
	p.deleteTrack(p.Tracks[0].ID)
	assert.Len(t, p.Tracks, 1)
}

func TestPatternAt(t *testing.T) {
	p, a, _ := testProject()
	assert.Equal(t, a, p.patternAt(p.Tracks[0].ID, 0))
	assert.Equal(t, a, p.patternAt(p.Tracks[0].ID, 3.9))
	assert.Nil(t, p.patternAt(p.Tracks[0].ID, 4)) // end is exclusive
	assert.Nil(t, p.patternAt(p.Tracks[1].ID, 0))
}

func TestHistoryUndoRedo(t *testing.T) {
	p, a, _ := testProject()
	h := newHistory(10)
	h.push(p)
	p.movePattern(a.ID, 5, 5)
	assert.True(t, h.undo(p))
	assert.Equal(t, 0.0, p.patternByID(a.ID).Position)
	assert.True(t, h.redo(p))
	assert.Equal(t, 5.0, p.patternByID(a.ID).Position)
	assert.False(t, h.redo(p))
}

func TestHistoryPrunesSelection(t *testing.T) {
	p, a, b := testProject()
	h := newHistory(10)
	p.setSelection([]uuid.UUID{a.ID, b.ID})
	h.push(p)
	p.deletePatterns([]uuid.UUID{a.ID})
	// undoing an unrelated state keeps only ids that still resolve
	h.undo(p)
	assert.NotNil(t, p.patternByID(a.ID))
	h.redo(p)
	assert.Equal(t, []uuid.UUID{b.ID}, p.selection)
}

func TestHistoryLimit(t *testing.T) {
	p, a, _ := testProject()
	h := newHistory(3)
	for i := 0; i < 10; i++ {
		h.push(p)
		p.movePattern(a.ID, float64(i), 1)
	}
	assert.Len(t, h.past, 3)
	// a new edit clears the redo branch
	h.undo(p)
	h.push(p)
	assert.Empty(t, h.future)
}

func TestProjectRoundTrip(t *testing.T) {
	p, a, _ := testProject()
	p.Title = "Demo"
	a.Muted = true
	var buf bytes.Buffer
	assert.NoError(t, p.write(&buf))
	p2 := &project{}
	assert.NoError(t, p2.read(&buf))
	assert.Equal(t, p.Title, p2.Title)
	assert.Len(t, p2.Tracks, 4)
	assert.Len(t, p2.Patterns, 2)
	got := p2.patternByID(a.ID)
	assert.Equal(t, a.Position, got.Position)
	assert.Equal(t, a.Duration, got.Duration)
	assert.True(t, got.Muted)
	assert.Equal(t, a.Color, got.Color)
}

func TestTrackColor(t *testing.T) {
	assert.NotEqual(t, trackColor(0), trackColor(1))
	assert.Equal(t, trackColor(2), trackColor(2))
	dim := dimColor(trackColor(0))
	assert.NotEqual(t, trackColor(0), dim)
}
