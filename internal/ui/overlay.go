//go:build ebiten

package ui

import (
	"image/color"
	"strconv"

	"beamgrid/internal/camera"
	"beamgrid/internal/level"
	"beamgrid/internal/render"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws optional debugging visuals on top of the board: a minimap of
// cell kinds, the laser-end table and cell coordinates.
type Overlay struct {
	showKinds  bool
	showEnds   bool
	showCoords bool

	minimap *render.Minimap
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay { return &Overlay{} }

// Update toggles the debug views on the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showKinds = !o.showKinds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showEnds = !o.showEnds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showCoords = !o.showCoords
	}
}

// Draw renders the enabled views for l.
func (o *Overlay) Draw(screen *ebiten.Image, l *level.Level, view camera.View) {
	size := l.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showKinds || o.showEnds {
		if w, h := o.minimapSize(); w != size.W || h != size.H {
			o.minimap = render.NewMinimap(size.W, size.H)
		}
		o.minimap.Blit(screen, l, o.showEnds, 8, 8, minimapScale)
	}
	if o.showCoords {
		o.drawCoords(screen, l, view)
	}
}

func (o *Overlay) minimapSize() (int, int) {
	if o.minimap == nil {
		return 0, 0
	}
	return o.minimap.Size()
}

func (o *Overlay) drawCoords(screen *ebiten.Image, l *level.Level, view camera.View) {
	face := basicfont.Face7x13
	vpm := view.ViewProjection()
	b := l.Bounds()
	for x := b.MinX; x <= b.MaxX; x++ {
		for y := b.MinY; y <= b.MaxY; y++ {
			p, ok := camera.ProjectToScreen(view.Viewport, vpm, mgl32.Vec3{float32(x) + 0.5, 0, float32(y) + 0.5})
			if !ok {
				continue
			}
			label := strconv.Itoa(x) + "," + strconv.Itoa(y)
			bounds := text.BoundString(face, label)
			text.Draw(screen, label, face, int(p.X())-bounds.Dx()/2, int(p.Y())+bounds.Dy()/2, color.RGBA{R: 255, G: 255, B: 255, A: 160})
		}
	}
}

const minimapScale = 6
