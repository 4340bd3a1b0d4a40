package main

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	labelWidthPx     = 120 // track name column
	rulerHeightPx    = 24
	edgeGrabPx       = 6   // resize handle width on each pattern edge
	visibilityMargin = 200 // px of off-screen slack before patterns are culled
	wheelScrollPx    = 40
	zoomWheelStep    = 1.25
	zoomKeyStep      = 1.5
)

// the timeline editor: tracks as horizontal lanes, patterns as colored
// blocks, a bar-numbered ruler on top. Mouse gestures are delegated to the
// four gesture engines; their commit callbacks write back into the project
// and record undo points here.
type arranger struct {
	proj *project
	view *viewport
	snap *snapSetting
	hist *history

	drag    *dragEngine
	resize  *resizeEngine
	rectSel *rectSelectEngine
	create  *createEngine

	beatsPerBar int
	trackHeight float64
	defaultZoom float64
	scrollMult  float64

	rect *sdl.Rect // drawn area, set on draw

	// set once per gesture, by whichever commit happens first, so that a
	// whole drag or a stream of resize commits is one undo step
	gesturePushed bool
}

func newArranger(proj *project, s *settings) *arranger {
	a := &arranger{
		proj:        proj,
		view:        &viewport{OffsetBeats: 0, Zoom: s.DefaultZoom},
		snap:        &snapSetting{Interval: s.DefaultSnap, Enabled: true},
		hist:        newHistory(s.UndoBufferSize),
		beatsPerBar: s.BeatsPerBar,
		trackHeight: float64(s.TrackHeight),
		defaultZoom: s.DefaultZoom,
		scrollMult:  float64(s.ShiftScrollMult),
		rect:        &sdl.Rect{},
	}
	threshold := float64(s.MoveThresholdPx)
	a.drag = &dragEngine{
		view:        a.view,
		snap:        a.snap,
		trackCount:  func() int { return len(a.proj.Tracks) },
		trackHeight: a.trackHeight,
		threshold:   threshold,
		onSelect:    func(id uuid.UUID, multi bool) { a.proj.selectPattern(id, multi) },
		onCopy: func(id uuid.UUID) {
			a.pushGesture()
			a.proj.duplicatePattern(id)
		},
		onMove: func(id uuid.UUID, pos, delta float64) {
			if delta == 0 {
				return
			}
			a.pushGesture()
			a.proj.movePattern(id, pos, delta)
		},
		onVerticalDrag: func(id, from uuid.UUID, dy float64) {
			i := a.proj.trackIndex(from)
			if i < 0 {
				return
			}
			j := i + int(math.Floor(dy/a.trackHeight))
			if j < 0 {
				j = 0
			}
			if n := len(a.proj.Tracks); j > n-1 {
				j = n - 1
			}
			if j != i {
				a.pushGesture()
				a.proj.setPatternTrack(id, a.proj.Tracks[j].ID)
			}
		},
	}
	a.resize = &resizeEngine{
		view: a.view,
		snap: a.snap,
		onResize: func(id uuid.UUID, dur float64, edge resizeEdge, startDur, startPos float64) {
			a.pushGesture()
			a.proj.applyResize(id, dur, edge, startDur, startPos, a.resize.minDuration())
		},
	}
	a.rectSel = &rectSelectEngine{
		view:        a.view,
		trackHeight: a.trackHeight,
		headerPx:    rulerHeightPx,
		threshold:   threshold,
		targets: func() []rectTarget {
			ts := make([]rectTarget, 0, len(a.proj.Patterns))
			for _, pat := range a.proj.Patterns {
				idx := a.proj.trackIndex(pat.TrackID)
				if idx < 0 {
					continue
				}
				ts = append(ts, rectTarget{
					id:         pat.ID,
					trackIndex: idx,
					start:      pat.Position,
					end:        pat.Position + pat.Duration,
				})
			}
			return ts
		},
		onSelectionChange: func(ids []uuid.UUID) { a.proj.setSelection(ids) },
	}
	a.create = &createEngine{
		view:        a.view,
		snap:        a.snap,
		defaultDur:  float64(s.DefaultPatternBeats),
		clickWindow: time.Duration(s.DoubleClickMs) * time.Millisecond,
		threshold:   threshold,
		onCreate: func(trackID uuid.UUID, pos, dur float64) {
			a.pushGesture()
			pat := a.proj.addPattern(trackID, pos, dur)
			a.proj.setSelection([]uuid.UUID{pat.ID})
		},
		occupied: func(trackID uuid.UUID, beat float64) bool {
			return a.proj.patternAt(trackID, beat) != nil
		},
		trackAt: a.trackAt,
	}
	return a
}

// record an undo point once per gesture, before the first mutation
func (a *arranger) pushGesture() {
	if !a.gesturePushed {
		a.gesturePushed = true
		a.hist.push(a.proj)
	}
}

// return the track under an arranger-local y coordinate
func (a *arranger) trackAt(y float64) (uuid.UUID, int, bool) {
	if y < rulerHeightPx {
		return uuid.UUID{}, 0, false
	}
	idx := int((y - rulerHeightPx) / a.trackHeight)
	if idx < 0 || idx >= len(a.proj.Tracks) {
		return uuid.UUID{}, 0, false
	}
	return a.proj.Tracks[idx].ID, idx, true
}

// return the pattern under an arranger-local point, with an edge tolerance
// so that resize handles stick out slightly past narrow patterns
func (a *arranger) patternUnder(x, y float64) (*pattern, int) {
	trackID, idx, ok := a.trackAt(y)
	if !ok {
		return nil, -1
	}
	for _, pat := range a.proj.Patterns {
		if pat.TrackID != trackID {
			continue
		}
		px0 := a.view.pixelAt(pat.Position)
		px1 := px0 + pat.Duration*a.view.Zoom
		if x >= px0-edgeGrabPx && x <= px1+edgeGrabPx {
			return pat, idx
		}
	}
	return nil, -1
}

// convert event coordinates to arranger-local ones; x is relative to the
// timeline area, past the track name column
func (a *arranger) localCoords(x, y int32) (float64, float64) {
	return float64(x - a.rect.X - labelWidthPx), float64(y - a.rect.Y)
}

func (a *arranger) gestureActive() bool {
	return a.drag.active() || a.resize.active() || a.rectSel.active() || a.create.active()
}

// respond to mouse button events
func (a *arranger) mouseButton(e *sdl.MouseButtonEvent) {
	if e.Button != sdl.BUTTON_LEFT {
		return
	}
	if e.Type == sdl.MOUSEBUTTONDOWN {
		a.buttonDown(e)
	} else {
		a.buttonUp(e)
	}
}

func (a *arranger) buttonDown(e *sdl.MouseButtonEvent) {
	p := sdl.Point{X: e.X, Y: e.Y}
	if !p.InRect(a.rect) || e.X < a.rect.X+labelWidthPx || a.gestureActive() {
		return
	}
	x, y := a.localCoords(e.X, e.Y)
	if y < rulerHeightPx {
		return
	}
	a.gesturePushed = false
	mods := sdl.GetModState()
	if pat, idx := a.patternUnder(x, y); pat != nil {
		px0 := a.view.pixelAt(pat.Position)
		px1 := px0 + pat.Duration*a.view.Zoom
		switch {
		case x < px0+edgeGrabPx:
			a.proj.selectPattern(pat.ID, false)
			a.proj.beginResize(pat.ID)
			a.resize.pointerDown(pat.ID, edgeLeft, pat.Duration, pat.Position, x)
		case x > px1-edgeGrabPx:
			a.proj.selectPattern(pat.ID, false)
			a.proj.beginResize(pat.ID)
			a.resize.pointerDown(pat.ID, edgeRight, pat.Duration, pat.Position, x)
		default:
			a.drag.pointerDown(pat.ID, pat.TrackID, idx, pat.Position, x, y,
				mods&sdl.KMOD_SHIFT != 0, mods&sdl.KMOD_ALT != 0)
		}
		return
	}
	if a.create.pointerDown(x, y, time.Now()) {
		return
	}
	a.rectSel.pointerDown(x, y)
}

func (a *arranger) buttonUp(e *sdl.MouseButtonEvent) {
	x, y := a.localCoords(e.X, e.Y)
	// a rubber-band drag invalidates any pending double-click
	if a.rectSel.dragged() {
		a.create.reset()
	}
	a.drag.pointerUp(x, y)
	a.resize.pointerUp()
	a.proj.endResize()
	a.rectSel.pointerUp(x, y)
	a.create.pointerUp(x, y)
}

// respond to mouse motion events
func (a *arranger) mouseMotion(e *sdl.MouseMotionEvent) {
	x, y := a.localCoords(e.X, e.Y)
	a.create.expire(time.Now())
	a.drag.pointerMove(x, y)
	a.resize.pointerMove(x)
	a.rectSel.pointerMove(x, y)
	a.create.pointerMove(x, y)
}

// respond to mouse wheel events: pan the timeline, or zoom around the
// pointer with ctrl held
func (a *arranger) mouseWheel(e *sdl.MouseWheelEvent) {
	mods := sdl.GetModState()
	if mods&sdl.KMOD_CTRL != 0 {
		mx, _, _ := sdl.GetMouseState()
		x, _ := a.localCoords(mx, 0)
		a.zoomAt(x, a.view.Zoom*math.Pow(zoomWheelStep, float64(e.Y)))
		return
	}
	mult := 1.0
	if mods&sdl.KMOD_SHIFT != 0 {
		mult = a.scrollMult
	}
	if a.view.Zoom > 0 {
		px := float64(-e.X-e.Y) * wheelScrollPx * mult
		a.view.OffsetBeats = clampOffset(a.view.OffsetBeats + px/a.view.Zoom)
	}
}

// abandon all in-progress gestures, committing nothing
func (a *arranger) cancelGestures() {
	a.drag.cancel()
	a.resize.cancel()
	a.proj.endResize()
	a.rectSel.cancel()
	a.create.reset()
}

// -- zoom and navigation --

// zoom to a new level, keeping the beat under the given local x stationary
func (a *arranger) zoomAt(x, zoom float64) {
	zoom = clampZoom(zoom)
	a.view.OffsetBeats = a.view.zoomOffset(x, zoom)
	a.view.Zoom = zoom
}

func (a *arranger) zoomIn()  { a.zoomAt(a.view.WidthPx/2, a.view.Zoom*zoomKeyStep) }
func (a *arranger) zoomOut() { a.zoomAt(a.view.WidthPx/2, a.view.Zoom/zoomKeyStep) }

func (a *arranger) resetZoom() {
	a.zoomAt(a.view.WidthPx/2, a.defaultZoom)
}

// scroll so that a 1-based bar number sits at the left edge
func (a *arranger) goToBar(bar int64) {
	a.view.OffsetBeats = clampOffset(float64(bar-1) * float64(a.beatsPerBar))
}

// -- selection edits --

func (a *arranger) deleteSelection() {
	if len(a.proj.selection) == 0 {
		return
	}
	a.hist.push(a.proj)
	a.proj.deletePatterns(a.proj.selection)
}

// copy each selected pattern immediately after itself and select the copies
func (a *arranger) duplicateSelection() {
	if len(a.proj.selection) == 0 {
		return
	}
	a.hist.push(a.proj)
	var copies []uuid.UUID
	for _, id := range a.proj.selection {
		if dup := a.proj.duplicatePattern(id); dup != nil {
			dup.Position = clampOffset(dup.Position + dup.Duration)
			copies = append(copies, dup.ID)
		}
	}
	a.proj.setSelection(copies)
}

// -- drawing --

func setDrawColor(r *sdl.Renderer, rgb uint32) {
	r.SetDrawColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb), 0xff)
}

// draw the arranger in the space between y and the status bar
func (a *arranger) draw(pr *printer, r *sdl.Renderer, y int32) {
	vp := r.GetViewport()
	*a.rect = sdl.Rect{X: 0, Y: y, W: vp.W, H: vp.H - y - (pr.rect.H + padding*2)}
	a.view.WidthPx = float64(a.rect.W - labelWidthPx)
	a.view.HeightPx = float64(a.rect.H) - rulerHeightPx

	r.SetDrawColorArray(colorBg1Array...)
	r.FillRect(a.rect)

	a.drawLanes(r)
	a.drawGrid(pr, r)
	a.drawPatterns(pr, r)
	a.drawGhost(r)
	a.drawSelectionRect(r)
	a.drawLabels(pr, r)
}

// alternate lane backgrounds under the timeline area
func (a *arranger) drawLanes(r *sdl.Renderer) {
	x := a.rect.X + labelWidthPx
	w := a.rect.W - labelWidthPx
	for i := range a.proj.Tracks {
		if i%2 == 0 {
			continue
		}
		y := a.laneY(i)
		if y >= a.rect.Y+a.rect.H {
			break
		}
		r.SetDrawColorArray(colorBg2Array...)
		r.FillRect(&sdl.Rect{X: x, Y: y, W: w, H: int32(a.trackHeight)})
	}
}

// the y coordinate of a track lane's top edge
func (a *arranger) laneY(index int) int32 {
	return a.rect.Y + rulerHeightPx + int32(float64(index)*a.trackHeight)
}

// grid lines and the bar-numbered ruler. Both consume the same metrics so
// the ruler ticks always land on grid lines.
func (a *arranger) drawGrid(pr *printer, r *sdl.Renderer) {
	gm := calcGridMetrics(a.view, a.beatsPerBar)
	if gm.BarsVisible == 0 {
		return
	}
	tlX := a.rect.X + labelWidthPx
	top := a.rect.Y + rulerHeightPx
	bottom := a.rect.Y + a.rect.H
	lanesBottom := a.laneY(len(a.proj.Tracks))
	if lanesBottom < bottom {
		bottom = lanesBottom
	}
	start, end := a.view.visibleRange()

	if gm.GridInterval > 0 {
		r.SetDrawColorArray(colorGridArray...)
		for b := snapToGridFloor(start, gm.GridInterval); b <= end; b += gm.GridInterval {
			x := tlX + int32(a.view.pixelAt(b))
			if x < tlX {
				continue
			}
			r.DrawLine(x, top, x, bottom)
		}
	}

	barBeats := float64(gm.BarInterval * a.beatsPerBar)
	r.SetDrawColorArray(colorBarArray...)
	for b := snapToGridFloor(start, barBeats); b <= end; b += barBeats {
		x := tlX + int32(a.view.pixelAt(b))
		if x < tlX {
			continue
		}
		r.DrawLine(x, a.rect.Y, x, bottom)
		bar := int(math.Round(b/float64(a.beatsPerBar))) + 1
		pr.draw(r, fmt.Sprintf("%d", bar), x+padding, a.rect.Y+padding)
	}
}

func (a *arranger) drawPatterns(pr *printer, r *sdl.Renderer) {
	tlX := a.rect.X + labelWidthPx
	for _, pat := range a.proj.Patterns {
		idx := a.proj.trackIndex(pat.TrackID)
		if idx < 0 {
			continue
		}
		startBeat := pat.Position
		if off, tracks, ok := a.drag.offsetFor(pat.ID); ok {
			startBeat += off
			idx += tracks
		}
		if !a.view.rangeVisible(startBeat, startBeat+pat.Duration, visibilityMargin) {
			continue
		}
		x := tlX + int32(a.view.pixelAt(startBeat))
		w := int32(pat.Duration * a.view.Zoom)
		if w < 2 {
			w = 2
		}
		rect := &sdl.Rect{X: x, Y: a.laneY(idx) + 1, W: w, H: int32(a.trackHeight) - 2}
		color := pat.Color
		if pat.Muted {
			color = dimColor(color)
		}
		setDrawColor(r, color)
		r.FillRect(rect)
		if a.proj.isSelected(pat.ID) {
			r.SetDrawColorArray(colorSelectArray...)
			r.DrawRect(rect)
			r.DrawRect(&sdl.Rect{X: rect.X + 1, Y: rect.Y + 1, W: rect.W - 2, H: rect.H - 2})
		}
		if maxChars := int(w/pr.rect.W) - 1; maxChars > 0 {
			pr.drawClipped(r, pat.Name, x+padding, rect.Y+padding, maxChars)
		}
	}
}

// translucent preview of a drag-to-create gesture
func (a *arranger) drawGhost(r *sdl.Renderer) {
	idx, startBeat, endBeat, ok := a.create.ghost()
	if !ok {
		return
	}
	tlX := a.rect.X + labelWidthPx
	x := tlX + int32(a.view.pixelAt(startBeat))
	w := int32((endBeat - startBeat) * a.view.Zoom)
	if w < 2 {
		w = 2
	}
	r.SetDrawColorArray(colorGhostArray...)
	r.FillRect(&sdl.Rect{X: x, Y: a.laneY(idx) + 1, W: w, H: int32(a.trackHeight) - 2})
}

// rubber-band outline while rectangle-selecting
func (a *arranger) drawSelectionRect(r *sdl.Renderer) {
	x, y, w, h, ok := a.rectSel.rect()
	if !ok {
		return
	}
	r.SetDrawColorArray(colorSelectArray...)
	r.DrawRect(&sdl.Rect{
		X: a.rect.X + labelWidthPx + int32(x),
		Y: a.rect.Y + int32(y),
		W: int32(w),
		H: int32(h),
	})
}

// the track name column, drawn last so patterns scrolled past beat zero
// can't bleed into it
func (a *arranger) drawLabels(pr *printer, r *sdl.Renderer) {
	r.SetDrawColorArray(colorBg2Array...)
	r.FillRect(&sdl.Rect{X: a.rect.X, Y: a.rect.Y, W: labelWidthPx, H: a.rect.H})
	maxChars := int(labelWidthPx/pr.rect.W) - 1
	for i, t := range a.proj.Tracks {
		y := a.laneY(i)
		if y >= a.rect.Y+a.rect.H {
			break
		}
		pr.drawClipped(r, t.Name, a.rect.X+padding, y+padding, maxChars)
		r.SetDrawColorArray(colorGridArray...)
		r.DrawLine(a.rect.X, y, a.rect.X+labelWidthPx, y)
	}
}
