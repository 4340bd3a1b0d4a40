package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewportConversion(t *testing.T) {
	v := &viewport{OffsetBeats: 80, Zoom: 400, WidthPx: 1600}
	assert.Equal(t, 0.0, v.pixelAt(80))
	assert.Equal(t, 800.0, v.pixelAt(82))
	assert.Equal(t, -400.0, v.pixelAt(79))
	assert.Equal(t, 80.0, v.beatAt(0))
	assert.Equal(t, 84.0, v.beatAt(1600))
	// round trip
	assert.Equal(t, 81.25, v.beatAt(v.pixelAt(81.25)))
}

func TestViewportZeroZoom(t *testing.T) {
	v := &viewport{OffsetBeats: 5}
	assert.Equal(t, 5.0, v.beatAt(1000))
	assert.False(t, v.rangeVisible(0, 100, 200))
	first, last := v.visibleRange()
	assert.Equal(t, 5.0, first)
	assert.Equal(t, 5.0, last)
}

func TestRangeVisibleHighZoom(t *testing.T) {
	// at 400 px/beat the 200 px margin would be half a beat; the two-beat
	// floor widens it so near-edge patterns stay drawn
	v := &viewport{OffsetBeats: 80, Zoom: 400, WidthPx: 1600}
	assert.True(t, v.rangeVisible(78, 79, 200))
	assert.False(t, v.rangeVisible(60, 64, 200))
	assert.True(t, v.rangeVisible(81, 82, 200))
}

func TestRangeVisibleLowZoom(t *testing.T) {
	// at 0.25 px/beat the pixel margin dominates: 200 px = 800 beats
	v := &viewport{OffsetBeats: 0, Zoom: 0.25, WidthPx: 1600}
	assert.True(t, v.rangeVisible(6500, 6504, 200))
	assert.False(t, v.rangeVisible(7300, 7304, 200))
}

func TestZoomOffset(t *testing.T) {
	// the beat under the pointer must not move across a zoom change
	v := &viewport{OffsetBeats: 10, Zoom: 5, WidthPx: 1000}
	assert.Equal(t, 60.0, v.zoomOffset(500, 10))
	// and zooming back restores the original offset
	v2 := &viewport{OffsetBeats: 60, Zoom: 10, WidthPx: 1000}
	assert.Equal(t, 10.0, v2.zoomOffset(500, 5))
}

func TestZoomOffsetClamp(t *testing.T) {
	v := &viewport{OffsetBeats: 0, Zoom: 10, WidthPx: 1000}
	// zooming out around a left-edge pointer would go negative
	assert.Equal(t, 0.0, v.zoomOffset(500, 2))
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0.0, clampOffset(-3))
	assert.Equal(t, 7.5, clampOffset(7.5))
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, minZoom, clampZoom(0.0001))
	assert.Equal(t, maxZoom, clampZoom(1e9))
	assert.Equal(t, 40.0, clampZoom(40))
}
