package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	appName    = "Arrangetone"
	fileExt    = ".arng"
	defaultFps = 60
	configPath = "config"
	assetsPath = "assets"
	savesPath  = "saves"
)

var (
	colorBarArray    = make([]uint8, 4)
	colorBg1Array    = make([]uint8, 4)
	colorBg2Array    = make([]uint8, 4)
	colorFgArray     = make([]uint8, 4)
	colorFg          = sdl.Color{}
	colorGhostArray  = make([]uint8, 4)
	colorGridArray   = make([]uint8, 4)
	colorSelectArray = make([]uint8, 4)
	padding          = int32(0)

	saveAutofill string
)

func must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func main() {
	settings := loadSettings(func(s string) { println(s) })
	setColorArray(colorBarArray, settings.ColorBar)
	setColorArray(colorBg1Array, settings.ColorBg1)
	setColorArray(colorBg2Array, settings.ColorBg2)
	setColorArray(colorFgArray, settings.ColorFg)
	setColorSDL(&colorFg, settings.ColorFg)
	setColorArray(colorGhostArray, settings.ColorGhost)
	setColorArray(colorGridArray, settings.ColorGrid)
	setColorArray(colorSelectArray, settings.ColorSelect)
	padding = int32(settings.FontSize) / 2

	dia := &dialog{}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	must(err)
	defer sdl.Quit()
	window, err := sdl.CreateWindow(appName, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(settings.WindowWidth), int32(settings.WindowHeight),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI)
	must(err)
	defer window.Destroy()
	renderer, err := sdl.CreateRenderer(window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	must(err)
	defer renderer.Destroy()

	err = ttf.Init()
	must(err)
	defer ttf.Quit()
	fontPath := filepath.Join(assetsPath, settings.Font)
	font, err := ttf.OpenFont(fontPath, settings.FontSize)
	must(err)
	defer font.Close()
	pr, err := newPrinter(font)
	must(err)
	defer pr.destroy()

	redraw := false
	redrawChan := make(chan bool)
	go func() {
		for v := range redrawChan {
			redraw = v
		}
	}()
	fps := getRefreshRate()

	proj := newProject()
	arr := newArranger(proj, settings)

	// required for cursor blink
	go func() {
		for {
			if dia.shown && dia.size > 0 {
				redrawChan <- true
				time.Sleep(time.Millisecond * inputCursorBlinkMs)
			}
		}
	}()

	running := true

	sb := newStatusBar(settings.MessageDuration,
		func() string { return fmt.Sprintf("Bar: %d", barAtLeftEdge(arr, settings.BeatsPerBar)) },
		func() string { return fmt.Sprintf("Zoom: %.0f px/beat", arr.view.Zoom) },
		func() string {
			if arr.snap.Enabled {
				return fmt.Sprintf("Snap: %g", arr.snap.Interval)
			}
			return "Snap: off"
		},
		func() string {
			return conditionalString(len(proj.selection) > 0,
				fmt.Sprintf("%d selected", len(proj.selection)), "")
		},
	)

	mb := &menuBar{
		menus: []*menu{
			{
				label: "File",
				items: []*menuItem{
					{label: "New", action: func() { dialogNew(dia, proj, arr, settings) }},
					{label: "Open...", action: func() { dialogOpen(dia, proj, arr) }},
					{label: "Save as...", action: func() { dialogSaveAs(dia, proj) }},
					{label: "Quit", action: func() { running = false }},
				},
			},
			{
				label: "Edit",
				items: []*menuItem{
					{label: "Undo", action: func() {
						if !arr.hist.undo(proj) {
							sb.showMessage("Nothing to undo.", redrawChan)
						}
					}},
					{label: "Redo", action: func() {
						if !arr.hist.redo(proj) {
							sb.showMessage("Nothing to redo.", redrawChan)
						}
					}},
					{label: "Delete", action: func() { arr.deleteSelection() }},
					{label: "Duplicate", action: func() { arr.duplicateSelection() }},
					{label: "Select all", action: func() { proj.selectAll() }},
					{label: "Deselect", action: func() { proj.clearSelection() }},
				},
			},
			{
				label: "View",
				items: []*menuItem{
					{label: "Zoom in", action: func() { arr.zoomIn() }},
					{label: "Zoom out", action: func() { arr.zoomOut() }},
					{label: "Reset zoom", action: func() { arr.resetZoom() }},
					{label: "Go to bar...", action: func() { dialogGoToBar(dia, arr) }},
					{label: "Toggle snap", action: func() { arr.snap.Enabled = !arr.snap.Enabled }},
					{label: "Set snap...", action: func() { dialogSetSnap(dia, arr) }},
				},
			},
			{
				label: "Track",
				items: []*menuItem{
					{label: "Add", action: func() {
						arr.hist.push(proj)
						proj.addTrack(fmt.Sprintf("Track %d", len(proj.Tracks)+1))
					}},
					{label: "Delete", action: func() {
						if t := targetTrack(proj); t != nil && len(proj.Tracks) > 1 {
							arr.hist.push(proj)
							proj.deleteTrack(t.ID)
						}
					}},
					{label: "Rename...", action: func() { dialogRenameTrack(dia, proj, arr) }},
					{label: "Move up", action: func() { shiftTargetTrack(proj, arr, -1) }},
					{label: "Move down", action: func() { shiftTargetTrack(proj, arr, 1) }},
				},
			},
			{
				label: "Pattern",
				items: []*menuItem{
					{label: "Rename...", action: func() { dialogRenamePattern(dia, proj, arr) }},
					{label: "Toggle mute", action: func() {
						if len(proj.selection) == 0 {
							return
						}
						arr.hist.push(proj)
						for _, id := range proj.selection {
							if pat := proj.patternByID(id); pat != nil {
								pat.Muted = !pat.Muted
							}
						}
					}},
				},
			},
		},
	}
	mb.init(pr)

	// attempt to load save file specified by first CLI arg
	if len(os.Args) > 1 {
		if f, err := os.Open(os.Args[1]); err == nil {
			if err := proj.read(f); err == nil {
				sb.showMessage(fmt.Sprintf("Loaded %s.", os.Args[1]), redrawChan)
			} else {
				sb.showMessage(err.Error(), redrawChan)
			}
			f.Close()
		} else {
			sb.showMessage(err.Error(), redrawChan)
		}
	}

	for running {
		// process SDL events
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			// if we got any event, assume redraw is needed
			redrawChan <- true

			switch event := event.(type) {
			case *sdl.MouseMotionEvent:
				if !dia.shown {
					mb.mouseMotion(event)
					arr.mouseMotion(event)
				}
			case *sdl.MouseButtonEvent:
				if dia.shown {
					if event.State == sdl.PRESSED {
						dia.shown = false
					}
				} else {
					if !mb.shown() {
						arr.mouseButton(event)
					}
					mb.mouseButton(event)
				}
			case *sdl.KeyboardEvent:
				if dia.shown {
					dia.keyboardEvent(event)
				} else {
					mb.keyboardEvent(event)
				}
			case *sdl.TextInputEvent:
				if dia.shown {
					dia.textInput(event)
				}
			case *sdl.MouseWheelEvent:
				if !dia.shown {
					arr.mouseWheel(event)
				}
			case *sdl.WindowEvent:
				if event.Event == sdl.WINDOWEVENT_FOCUS_LOST {
					arr.cancelGestures()
				}
			case *sdl.QuitEvent:
				running = false
			}
		}

		// hack to prevent Alt+<letter> from typing <letter> into dialog
		dia.accept = dia.shown

		if redraw {
			redrawChan <- false
			renderer.SetDrawColorArray(colorBg1Array...)
			renderer.Clear()
			arr.draw(pr, renderer, mb.height())
			sb.draw(pr, renderer)
			mb.draw(pr, renderer)
			dia.draw(pr, renderer)
			renderer.Present()
		}
		sdl.Delay(uint32(1000 / fps))
	}
}

// return a if cond, else b
func conditionalString(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// 1-based bar number at the left edge of the timeline
func barAtLeftEdge(a *arranger, beatsPerBar int) int {
	if beatsPerBar <= 0 {
		beatsPerBar = 4
	}
	return int(a.view.OffsetBeats)/beatsPerBar + 1
}

// return the track the next track operation applies to: the track of the
// first selected pattern, or the last track
func targetTrack(p *project) *track {
	if len(p.selection) > 0 {
		if pat := p.patternByID(p.selection[0]); pat != nil {
			if t := p.trackByID(pat.TrackID); t != nil {
				return t
			}
		}
	}
	if len(p.Tracks) == 0 {
		return nil
	}
	return p.Tracks[len(p.Tracks)-1]
}

func shiftTargetTrack(p *project, a *arranger, offset int) {
	if t := targetTrack(p); t != nil {
		i := p.trackIndex(t.ID)
		if j := i + offset; i >= 0 && j >= 0 && j < len(p.Tracks) {
			a.hist.push(p)
			p.shiftTrack(t.ID, offset)
		}
	}
}

// set d to a y/n dialog
func dialogNew(d *dialog, proj *project, a *arranger, s *settings) {
	d.getYesNo("Create new project?", func() {
		a.cancelGestures()
		*proj = *newProject()
		a.hist = newHistory(s.UndoBufferSize)
		a.view.OffsetBeats = 0
		saveAutofill = ""
	})
}

// set d to a path dialog
func dialogOpen(d *dialog, proj *project, a *arranger) {
	d.getPath("Open:", savesPath, fileExt, true, func(s string) {
		s = addSuffixIfMissing(s, fileExt)
		if f, err := os.Open(filepath.Join(savesPath, s)); err == nil {
			defer f.Close()
			a.cancelGestures()
			if err := proj.read(f); err == nil {
				a.view.OffsetBeats = 0
				saveAutofill = s
			} else {
				d.message(err.Error())
			}
		} else {
			d.message(err.Error())
		}
	})
}

// set d to a path dialog
func dialogSaveAs(d *dialog, proj *project) {
	d.getPath("Save as:", savesPath, fileExt, false, func(s string) {
		s = addSuffixIfMissing(s, fileExt)
		saveAutofill = s
		os.MkdirAll(savesPath, 0755)
		if f, err := os.Create(filepath.Join(savesPath, s)); err == nil {
			defer f.Close()
			if err := proj.write(f); err != nil {
				d.message(err.Error())
			}
		} else {
			d.message(err.Error())
		}
	})
	d.input = saveAutofill
}

// set d to an input dialog
func dialogGoToBar(d *dialog, a *arranger) {
	d.getInt("Go to bar:", 1, 9999, func(i int64) {
		a.goToBar(i)
	})
}

// set d to an input dialog
func dialogSetSnap(d *dialog, a *arranger) {
	d.getFloat("Snap interval (beats):", 0.0625, 64, func(f float64) {
		a.snap.Interval = f
		a.snap.Enabled = true
	})
}

// set d to an input dialog
func dialogRenameTrack(d *dialog, proj *project, a *arranger) {
	t := targetTrack(proj)
	if t == nil {
		return
	}
	d.getText("Rename track:", 30, func(s string) {
		if s != "" {
			a.hist.push(proj)
			t.Name = s
		}
	})
	d.input = t.Name
}

// set d to an input dialog renaming the first selected pattern
func dialogRenamePattern(d *dialog, proj *project, a *arranger) {
	var pat *pattern
	if len(proj.selection) > 0 {
		pat = proj.patternByID(proj.selection[0])
	}
	if pat == nil {
		d.message("No pattern selected.")
		return
	}
	d.getText("Rename pattern:", 30, func(s string) {
		if s != "" {
			a.hist.push(proj)
			pat.Name = s
		}
	})
	d.input = pat.Name
}

// read records from a CSV file
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	return r.ReadAll()
}

// read records from a TSV file
func readTSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.TrimLeadingSpace = true
	r.Comment = '#'
	return r.ReadAll()
}

// return base+suffix if base does not already end with suffix, otherwise
// return base. NOT case-sensitive.
func addSuffixIfMissing(base, suffix string) string {
	if !strings.HasSuffix(strings.ToLower(base), strings.ToLower(suffix)) {
		return base + suffix
	}
	return base
}

// return the refresh rate of the display, according to SDL, or default FPS if
// it's not available
func getRefreshRate() int {
	if dm, err := sdl.GetCurrentDisplayMode(0); err == nil && dm.RefreshRate > 0 {
		return int(dm.RefreshRate)
	}
	return defaultFps
}

// set an array to the bytes of an int, MSB to LSB
func setColorArray(a []uint8, v uint32) {
	for i := range a {
		a[i] = uint8(v >> ((len(a) - i - 1) * 8))
	}
}

// same idea as setColorArray
func setColorSDL(c *sdl.Color, v uint32) {
	a := make([]uint8, 4)
	setColorArray(a, v)
	*c = sdl.Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}
