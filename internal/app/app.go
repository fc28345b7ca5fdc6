//go:build ebiten

package app

import (
	"image/color"

	"beamgrid/internal/camera"
	"beamgrid/internal/input"
	"beamgrid/internal/render"
	"beamgrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the side panel in pixels.
const HUDWidth = 240

var keyBindings = map[ebiten.Key]input.Key{
	ebiten.KeyQ:      input.KeyQuit,
	ebiten.KeyEscape: input.KeyQuit,
	ebiten.KeyR:      input.KeyReset,
	ebiten.KeyN:      input.KeyNextLevel,
	ebiten.KeyP:      input.KeyPrevLevel,
	ebiten.KeyM:      input.KeyMute,
}

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	painter render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	background color.Color
	touchIDs   []ebiten.TouchID
}

// New constructs a Game around s.
func New(s *Session) *Game {
	return &Game{
		s:          s,
		hud:        ui.NewHUD(HUDWidth),
		overlay:    ui.NewOverlay(),
		background: color.RGBA{R: 10, G: 10, B: 14, A: 255},
	}
}

// Update stages ebiten's input into the session and runs one tick. Ebiten
// calls Update at the configured TPS.
func (g *Game) Update() error {
	g.stageInput()

	boardW := int(g.s.View.Viewport.Width)
	switch g.hud.Update(g.s, g.s.Solved(), boardW) {
	case ui.ActionPrevLevel:
		g.s.Input.SetKey(input.KeyPrevLevel, true)
	case ui.ActionReset:
		g.s.Input.SetKey(input.KeyReset, true)
	case ui.ActionNextLevel:
		g.s.Input.SetKey(input.KeyNextLevel, true)
	}
	g.overlay.Update()

	g.s.Tick()
	if g.s.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) stageInput() {
	in := g.s.Input
	x, y := ebiten.CursorPosition()
	in.SetCursor(float32(x), float32(y))
	in.SetMouse(input.MouseLeft, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	in.SetMouse(input.MouseRight, ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
	// Several keys share an action, so an action is held while any of its
	// keys is.
	held := map[input.Key]bool{}
	for k, action := range keyBindings {
		held[action] = held[action] || ebiten.IsKeyPressed(k)
	}
	for action, down := range held {
		in.SetKey(action, down)
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.TouchStart(int(id), float32(tx), float32(ty))
	}
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.TouchMove(int(id), float32(tx), float32(ty))
	}
	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		in.TouchEnd(int(id))
	}
}

// Draw renders the board, the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.painter.Draw(screen, g.s.Frame(), g.s.View)
	g.overlay.Draw(screen, g.s.Level(), g.s.View)
	g.hud.Draw(screen, int(g.s.View.Viewport.Width), screen.Bounds().Dy())
}

// Layout gives the board everything left of the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	boardW := max(outsideWidth-HUDWidth, 1)
	g.s.Resize(camera.Viewport{Width: float32(boardW), Height: float32(outsideHeight)})
	return outsideWidth, outsideHeight
}
