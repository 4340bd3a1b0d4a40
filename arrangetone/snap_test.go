package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, 3.0, snapToGrid(3.4, 1))
	assert.Equal(t, 4.0, snapToGrid(3.6, 1))
	assert.Equal(t, 3.5, snapToGrid(3.4, 0.5))
	assert.Equal(t, -2.0, snapToGrid(-2.2, 1))
	// disabled snapping passes values through
	assert.Equal(t, 3.4, snapToGrid(3.4, 0))
	assert.Equal(t, 3.4, snapToGrid(3.4, -1))
}

func TestSnapIdempotent(t *testing.T) {
	v := snapToGrid(7.3, 0.25)
	assert.Equal(t, v, snapToGrid(v, 0.25))
}

func TestSnapToGridFloor(t *testing.T) {
	assert.Equal(t, 3.0, snapToGridFloor(3.9, 1))
	assert.Equal(t, 3.5, snapToGridFloor(3.9, 0.5))
	assert.Equal(t, -1.0, snapToGridFloor(-0.3, 1))
	assert.Equal(t, 3.9, snapToGridFloor(3.9, 0))
}

func TestSnapSettingValue(t *testing.T) {
	s := &snapSetting{Interval: 0.5, Enabled: true}
	assert.Equal(t, 0.5, s.value())
	s.Enabled = false
	assert.Equal(t, 0.0, s.value())
}
