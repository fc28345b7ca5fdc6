//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"beamgrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the level panel to the right of the board.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int

	title   string
	lines   []Line
	solved  bool
	buttons []button

	panelOffsetX int
	pixel        *ebiten.Image
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update refreshes the panel contents from p and returns the action of a
// button clicked this frame, if any.
func (h *HUD) Update(p core.ParameterProvider, solved bool, panelOffsetX int) Action {
	if h == nil {
		return ActionNone
	}
	h.panelOffsetX = panelOffsetX
	h.solved = solved
	h.lines = Lines(p.Parameters())
	h.title = "beamgrid"
	if len(h.lines) > 1 {
		// The first group leads with the level name.
		h.title = h.lines[1].Text
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return ActionNone
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return ActionNone
	}
	return buttonAt(h.buttons, mx-h.panelOffsetX, my)
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
		h.buttons = layoutButtons(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLines()
	for _, b := range h.buttons {
		h.drawButton(b.rect, b.label)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawLines() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	y := linesTop
	for _, l := range h.lines {
		col := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if l.Header {
			y += lineHeight / 2
			col = color.RGBA{R: 150, G: 170, B: 220, A: 255}
		}
		text.Draw(h.panel, l.Text, face, panelPadding, y, col)
		y += lineHeight
	}
	if h.solved {
		y += lineHeight
		text.Draw(h.panel, "SOLVED! press > for the next level", face, panelPadding, y, color.RGBA{R: 120, G: 230, B: 140, A: 255})
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
