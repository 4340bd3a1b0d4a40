package main

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// golden-angle hue spacing keeps neighboring tracks visually distinct
const hueStep = 137.5

// return the pattern color for a track index as 0xRRGGBB
func trackColor(index int) uint32 {
	if index < 0 {
		index = 0
	}
	hue := math.Mod(float64(index)*hueStep, 360)
	c := colorful.Hsv(hue, 0.55, 0.8)
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// return a dimmed variant of a 0xRRGGBB color, used for muted patterns
func dimColor(rgb uint32) uint32 {
	c := colorful.Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
	h, s, v := c.Hsv()
	c = colorful.Hsv(h, s*0.5, v*0.5)
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
