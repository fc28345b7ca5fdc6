package render

import (
	"image/color"

	"beamgrid/internal/level"
)

// KindPalette colours cells by kind on the minimap.
var KindPalette = [...]color.RGBA{
	level.Void:       {R: 0, G: 0, B: 0, A: 0},
	level.Empty:      {R: 44, G: 46, B: 54, A: 255},
	level.Wall:       {R: 120, G: 116, B: 132, A: 255},
	level.DeviceRoot: {R: 240, G: 190, B: 80, A: 255},
	level.DeviceEtc:  {R: 170, G: 130, B: 50, A: 255},
}

// MinimapPixels fills buf with one RGBA pixel per cell of l, in row-major
// image order. With showEnds set, cells where a laser stops are painted in
// that laser's colour instead. buf must hold 4*w*h bytes.
func MinimapPixels(buf []byte, l *level.Level, showEnds bool) {
	size := l.Size()
	last := len(KindPalette) - 1
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			base := (y*size.W + x) * 4
			if showEnds {
				if v, ok := l.LaserEndAt(x, y); ok {
					col := vecRGBA(v.Color, 255)
					buf[base+0] = col.R
					buf[base+1] = col.G
					buf[base+2] = col.B
					buf[base+3] = col.A
					continue
				}
			}
			idx := int(l.Get(x, y).Kind)
			if idx > last {
				idx = last
			}
			col := KindPalette[idx]
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
