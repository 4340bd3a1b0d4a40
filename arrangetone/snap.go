package main

import "math"

// snap configuration owned by the host UI. Interval is in beats.
type snapSetting struct {
	Interval float64
	Enabled  bool
}

// return the effective snap interval; zero means snapping is off
func (s *snapSetting) value() float64 {
	if !s.Enabled {
		return 0
	}
	return s.Interval
}

// round v to the nearest multiple of interval. An interval of zero or less
// means snapping is disabled and v passes through unchanged.
func snapToGrid(v, interval float64) float64 {
	if interval <= 0 {
		return v
	}
	return math.Round(v/interval) * interval
}

// like snapToGrid, but snaps to the multiple at or below v. Used for
// click-to-create, where the new pattern should start at the left edge of
// the clicked cell rather than the nearest edge.
func snapToGridFloor(v, interval float64) float64 {
	if interval <= 0 {
		return v
	}
	return math.Floor(v/interval) * interval
}
