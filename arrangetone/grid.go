package main

import "math"

// per-frame layout data shared by the ruler and the track lane backgrounds.
// BarInterval is the spacing of numbered bars; GridInterval is the beat
// spacing of the four subdivisions drawn between numbered bars. Both
// renderers must consume the same metrics or their lines drift apart.
type gridMetrics struct {
	StartBar     int
	BarsVisible  int
	BarInterval  int
	GridInterval float64
}

// derive grid metrics from the viewport. A zero-width or zero-zoom viewport
// yields zero visible bars rather than an error.
func calcGridMetrics(v *viewport, beatsPerBar int) gridMetrics {
	if beatsPerBar <= 0 {
		beatsPerBar = 4
	}
	bpb := float64(beatsPerBar)
	gm := gridMetrics{BarInterval: 1, GridInterval: bpb / 4}
	if v.WidthPx <= 0 || v.Zoom <= 0 {
		return gm
	}
	beatsVisible := v.WidthPx / v.Zoom
	startBar := int(math.Floor(v.OffsetBeats / bpb))
	endBar := int(math.Ceil((v.OffsetBeats + beatsVisible) / bpb))
	gm.StartBar = startBar
	gm.BarsVisible = endBar - startBar
	switch {
	case gm.BarsVisible <= 16:
		gm.BarInterval = 1
	case gm.BarsVisible <= 32:
		gm.BarInterval = 2
	case gm.BarsVisible <= 64:
		gm.BarInterval = 4
	case gm.BarsVisible <= 128:
		gm.BarInterval = 8
	default:
		gm.BarInterval = 16
	}
	gm.GridInterval = float64(gm.BarInterval) * bpb / 4
	return gm
}
