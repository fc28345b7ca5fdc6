package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"beamgrid/internal/app"
	"beamgrid/internal/camera"
	"beamgrid/internal/input"

	"github.com/gdamore/tcell/v2"
)

// statusRows is the number of text rows kept below the board.
const statusRows = 1

var runeBindings = map[rune]input.Key{
	'q': input.KeyQuit,
	'r': input.KeyReset,
	'n': input.KeyNextLevel,
	'p': input.KeyPrevLevel,
	'm': input.KeyMute,
}

// Frontend drives a session from a tcell screen.
type Frontend struct {
	screen tcell.Screen
	s      *app.Session
	canvas *Canvas
	// Terminals report key presses only, so keys are released again once
	// a tick has seen them.
	pressed []input.Key
	log     *slog.Logger
}

// New wraps an initialized screen. Mouse reporting is enabled and the
// session viewport is sized to the screen.
func New(screen tcell.Screen, s *app.Session, log *slog.Logger) *Frontend {
	if log == nil {
		log = slog.Default()
	}
	screen.EnableMouse()
	screen.HideCursor()
	f := &Frontend{screen: screen, s: s, canvas: NewCanvas(0, 0), log: log}
	f.resize()
	return f
}

// Session returns the driven session.
func (f *Frontend) Session() *app.Session { return f.s }

// Viewport is the board area in canvas pixels: one column wide and half a
// row tall each.
func (f *Frontend) Viewport() camera.Viewport {
	w, h := f.screen.Size()
	return camera.Viewport{Width: float32(w), Height: float32(2 * max(h-statusRows, 0))}
}

func (f *Frontend) resize() {
	vp := f.Viewport()
	f.s.Resize(vp)
	f.canvas.Resize(int(vp.Width), int(vp.Height))
}

// cellCenter maps a character cell to the canvas pixel at its centre.
func cellCenter(x, y int) (float32, float32) {
	return float32(x) + 0.5, float32(2*y) + 1
}

// HandleEvent stages one terminal event into the session input.
func (f *Frontend) HandleEvent(ev tcell.Event) {
	in := f.s.Input
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()
		f.resize()
	case *tcell.EventMouse:
		in.SetCursor(cellCenter(ev.Position()))
		in.SetMouse(input.MouseLeft, ev.Buttons()&tcell.Button1 != 0)
		in.SetMouse(input.MouseRight, ev.Buttons()&tcell.Button2 != 0)
	case *tcell.EventKey:
		k, ok := keyFor(ev)
		if !ok {
			return
		}
		in.SetKey(k, true)
		f.pressed = append(f.pressed, k)
	}
}

func keyFor(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit, true
	case tcell.KeyRune:
		k, ok := runeBindings[ev.Rune()]
		return k, ok
	}
	return 0, false
}

// Advance runs the ticks due at now and releases keys they consumed.
func (f *Frontend) Advance(now time.Time) int {
	n := f.s.Advance(now)
	if n > 0 {
		f.releaseKeys()
	}
	return n
}

func (f *Frontend) releaseKeys() {
	for _, k := range f.pressed {
		f.s.Input.SetKey(k, false)
	}
	f.pressed = f.pressed[:0]
}

// Draw renders the board and the status line.
func (f *Frontend) Draw() {
	f.screen.Clear()
	f.canvas.Clear(background)
	f.canvas.Paint(f.s.Frame().Sorted(), f.s.View.Viewport, f.s.View.ViewProjection())

	for y := 0; y < f.canvas.H; y += 2 {
		for x := 0; x < f.canvas.W; x++ {
			top, bottom := f.canvas.At(x, y), f.canvas.At(x, y+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			f.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	_, h := f.screen.Size()
	f.drawText(0, h-statusRows, f.status())
	f.screen.Show()
}

func (f *Frontend) status() string {
	l := f.s.Level()
	state := "unsolved"
	if f.s.Solved() {
		state = "SOLVED"
	}
	mute := ""
	if f.s.Muted() {
		mute = " [muted]"
	}
	return fmt.Sprintf(" %s  goals %d/%d  %s%s  n/p level  r reset  m mute  q quit",
		f.s.Name(), l.GoalsFulfilled(), l.Goals(), state, mute)
}

func (f *Frontend) drawText(x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, r := range s {
		f.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run polls events and ticks the session at the frame rate until the
// player quits, the screen is finalized or ctx is done.
func (f *Frontend) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	f.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.HandleEvent(ev)
		case now := <-ticker.C:
			f.Advance(now)
			if f.s.Quit() {
				f.log.Info("quit requested")
				return nil
			}
			f.Draw()
		}
	}
}
