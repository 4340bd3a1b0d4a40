package main

// practical zoom range in pixels per beat
const (
	minZoom = 0.1
	maxZoom = 1000.0
)

// horizontal window onto beat-space. OffsetBeats is the beat at the left
// edge of the timeline area; Zoom is pixels per beat.
type viewport struct {
	OffsetBeats float64
	Zoom        float64
	WidthPx     float64
	HeightPx    float64
}

// convert a beat position to a viewport-relative x coordinate. Negative
// results mean the beat is off-screen to the left.
func (v *viewport) pixelAt(beat float64) float64 {
	return (beat - v.OffsetBeats) * v.Zoom
}

// convert a viewport-relative x coordinate to a beat position
func (v *viewport) beatAt(px float64) float64 {
	if v.Zoom <= 0 {
		return v.OffsetBeats
	}
	return v.OffsetBeats + px/v.Zoom
}

// return the first and last visible beats
func (v *viewport) visibleRange() (float64, float64) {
	if v.Zoom <= 0 {
		return v.OffsetBeats, v.OffsetBeats
	}
	return v.OffsetBeats, v.OffsetBeats + v.WidthPx/v.Zoom
}

// report whether any part of [startBeat, endBeat] falls inside the visible
// range expanded by a margin. The margin is marginPx at low zoom, but widens
// to at least two beats per side at high zoom so that patterns don't pop in
// at the screen edge.
func (v *viewport) rangeVisible(startBeat, endBeat, marginPx float64) bool {
	if v.Zoom <= 0 {
		return false
	}
	margin := marginPx
	if m := v.Zoom * 2; m > margin {
		margin = m
	}
	marginBeats := margin / v.Zoom
	first, last := v.visibleRange()
	return endBeat > first-marginBeats && startBeat < last+marginBeats
}

// keep the timeline from scrolling into negative beats
func clampOffset(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	return offset
}

// return the offset that keeps the beat under pointerPx stationary across a
// zoom change
func (v *viewport) zoomOffset(pointerPx, newZoom float64) float64 {
	if v.Zoom <= 0 || newZoom <= 0 {
		return clampOffset(v.OffsetBeats)
	}
	beat := v.OffsetBeats + pointerPx/v.Zoom
	return clampOffset(beat - pointerPx/newZoom)
}

// clamp a zoom level to the practical range
func clampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	} else if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}
