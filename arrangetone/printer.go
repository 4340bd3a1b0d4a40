package main

import (
	"log"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// renders strings piecewise from a fixed-width font, caching one texture per
// glyph
type printer struct {
	font     *ttf.Font
	textures map[rune]*sdl.Texture
	rect     *sdl.Rect // size of an individual glyph
}

func newPrinter(f *ttf.Font) (*printer, error) {
	w, h, err := f.SizeUTF8("A")
	if err != nil {
		return nil, err
	}
	return &printer{
		font:     f,
		textures: make(map[rune]*sdl.Texture),
		rect:     &sdl.Rect{W: int32(w), H: int32(h)},
	}, nil
}

// free the printer's textures
func (p *printer) destroy() {
	for _, t := range p.textures {
		t.Destroy()
	}
}

// draw a string, rendering and caching new glyphs as needed. maxChars limits
// how many glyphs are drawn; <= 0 means no limit.
func (p *printer) drawClipped(r *sdl.Renderer, s string, x, y int32, maxChars int) {
	dst := &sdl.Rect{X: x, Y: y, W: p.rect.W, H: p.rect.H}
	n := 0
	for _, c := range s {
		if maxChars > 0 && n >= maxChars {
			break
		}
		if _, ok := p.textures[c]; !ok {
			if err := p.prerenderGlyph(r, c); err != nil {
				log.Print(err)
			}
		}
		if t, ok := p.textures[c]; ok {
			r.Copy(t, p.rect, dst)
		}
		dst.X += p.rect.W
		n++
	}
}

// draw a string without clipping
func (p *printer) draw(r *sdl.Renderer, s string, x, y int32) {
	p.drawClipped(r, s, x, y, 0)
}

// render a texture for a glyph and add it to the cache
func (p *printer) prerenderGlyph(r *sdl.Renderer, c rune) error {
	s, err := p.font.RenderGlyphBlended(c, colorFg)
	if err != nil {
		return err
	}
	defer s.Free()
	t, err := r.CreateTextureFromSurface(s)
	if err != nil {
		return err
	}
	p.textures[c] = t
	return nil
}

// return the size of a string if it were rendered
func (p *printer) size(s string) (int32, int32) {
	return int32(len(s)) * p.rect.W, p.rect.H
}
