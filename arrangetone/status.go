package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// draws a row of live string function results, plus a transient message on
// the right-hand side
type statusBar struct {
	rect        *sdl.Rect
	funcs       []func() string
	msg         string
	msgTime     time.Time
	msgChan     chan string
	msgDuration time.Duration
}

func newStatusBar(msgSeconds int, funcs ...func() string) *statusBar {
	return &statusBar{
		rect:        &sdl.Rect{},
		funcs:       funcs,
		msgChan:     make(chan string),
		msgDuration: time.Second * time.Duration(msgSeconds),
	}
}

// draw the status bar along the bottom of the viewport
func (sb *statusBar) draw(pr *printer, r *sdl.Renderer) {
	x := padding
	y := r.GetViewport().H - pr.rect.H - padding
	r.SetDrawColorArray(colorBg2Array...)
	*sb.rect = sdl.Rect{X: x - padding, Y: y - padding,
		W: r.GetViewport().W, H: pr.rect.H + padding*2}
	r.FillRect(sb.rect)
	for _, f := range sb.funcs {
		s := f()
		if s != "" {
			pr.draw(r, s, x, y)
			x += padding*2 + pr.rect.W*int32(len(s))
		}
	}

	select {
	case sb.msg = <-sb.msgChan:
		sb.msgTime = time.Now()
	default:
	}
	if time.Since(sb.msgTime) < sb.msgDuration {
		pr.draw(r, sb.msg, r.GetViewport().W-padding-pr.rect.W*int32(len(sb.msg)), y)
	}
}

// update the status bar message, requesting redraws as needed
func (sb *statusBar) showMessage(s string, redraw chan bool) {
	go func() {
		sb.msgChan <- s
		if redraw != nil {
			redraw <- true
		}
		time.Sleep(sb.msgDuration)
		if redraw != nil {
			redraw <- true
		}
	}()
}
