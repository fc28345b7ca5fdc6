//go:build ebiten

package render

import (
	"beamgrid/internal/camera"
	"beamgrid/internal/level"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Painter draws a frame's instances as projected rectangles.
type Painter struct{}

// Draw paints every instance of list onto dst, back to front.
func (Painter) Draw(dst *ebiten.Image, list *List, view camera.View) {
	vpm := view.ViewProjection()
	for _, in := range list.Sorted() {
		col := Fill(in)
		outline := Outline(in)
		for _, r := range Rects(in, view.Viewport, vpm) {
			if outline {
				vector.StrokeRect(dst, r.X, r.Y, r.W, r.H, 2, col, true)
				continue
			}
			vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, col, true)
		}
	}
}

// Minimap paints the level's cells into a small image, one pixel per cell.
type Minimap struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewMinimap allocates a minimap for a w*h level.
func NewMinimap(w, h int) *Minimap {
	return &Minimap{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit refreshes the minimap from l and draws it at (x, y), scaled.
func (m *Minimap) Blit(dst *ebiten.Image, l *level.Level, showEnds bool, x, y float64, scale int) {
	if s := l.Size(); s.W != m.w || s.H != m.h {
		return
	}
	MinimapPixels(m.buf, l, showEnds)
	m.img.WritePixels(m.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(x, y)
	dst.DrawImage(m.img, op)
}

// Size returns the dimensions of the underlying image.
func (m *Minimap) Size() (int, int) { return m.w, m.h }
