// Package term runs a session in a terminal. Every character cell shows two
// vertically stacked pixels using the upper half block, so the frame is
// rasterized into a Canvas twice as tall as the screen.
package term

import (
	"image/color"
	"math"

	"beamgrid/internal/camera"
	"beamgrid/internal/level"
	"beamgrid/internal/render"

	"github.com/go-gl/mathgl/mgl32"
)

var background = color.RGBA{R: 12, G: 12, B: 16, A: 255}

// Canvas is a small RGBA raster.
type Canvas struct {
	W, H int
	pix  []color.RGBA
}

// NewCanvas allocates a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize changes the canvas size, discarding its contents.
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	c.W, c.H = w, h
	if cap(c.pix) < w*h {
		c.pix = make([]color.RGBA, w*h)
	}
	c.pix = c.pix[:w*h]
}

// Clear paints every pixel with col.
func (c *Canvas) Clear(col color.RGBA) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// At returns the pixel at (x, y). Out of range reads return the background.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return background
	}
	return c.pix[y*c.W+x]
}

func (c *Canvas) blend(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	i := y*c.W + x
	if col.A == 255 {
		c.pix[i] = col
		return
	}
	a := float32(col.A) / 255
	dst := c.pix[i]
	mix := func(s, d uint8) uint8 { return uint8(float32(s)*a + float32(d)*(1-a) + 0.5) }
	c.pix[i] = color.RGBA{R: mix(col.R, dst.R), G: mix(col.G, dst.G), B: mix(col.B, dst.B), A: 255}
}

// pixelSpan returns the pixel indices whose centres fall in [lo, lo+size).
func pixelSpan(lo, size float32) (int, int) {
	return int(math.Ceil(float64(lo - 0.5))), int(math.Ceil(float64(lo + size - 0.5)))
}

// Fill paints every pixel whose centre lies inside r.
func (c *Canvas) Fill(r render.Rect, col color.RGBA) {
	x0, x1 := pixelSpan(r.X, r.W)
	y0, y1 := pixelSpan(r.Y, r.H)
	// Thin shapes such as lasers still cover at least one pixel row.
	if y1 == y0 && r.H > 0 {
		y1 = y0 + 1
	}
	if x1 == x0 && r.W > 0 {
		x1 = x0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.blend(x, y, col)
		}
	}
}

// Stroke paints the border pixels of r.
func (c *Canvas) Stroke(r render.Rect, col color.RGBA) {
	x0, x1 := pixelSpan(r.X, r.W)
	y0, y1 := pixelSpan(r.Y, r.H)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0; x < x1; x++ {
		c.blend(x, y0, col)
		if y1-1 != y0 {
			c.blend(x, y1-1, col)
		}
	}
	for y := y0 + 1; y < y1-1; y++ {
		c.blend(x0, y, col)
		if x1-1 != x0 {
			c.blend(x1-1, y, col)
		}
	}
}

// Paint rasterizes the instances in order.
func (c *Canvas) Paint(items []level.Instance, vp camera.Viewport, viewProj mgl32.Mat4) {
	for _, in := range items {
		col := render.Fill(in)
		outline := render.Outline(in)
		for _, r := range render.Rects(in, vp, viewProj) {
			if outline {
				c.Stroke(r, col)
			} else {
				c.Fill(r, col)
			}
		}
	}
}
