package term

import (
	"image/color"
	"strings"
	"testing"

	"beamgrid/internal/app"
	"beamgrid/internal/camera"
	"beamgrid/internal/render"
	"beamgrid/internal/sound"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

func newFrontend(t *testing.T, level string) (*Frontend, tcell.SimulationScreen, *sound.Recorder) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(120, 40)

	cfg := app.NewConfig()
	cfg.Level = level
	rec := &sound.Recorder{}
	s, err := app.NewSession(cfg, rec, camera.Viewport{Width: 1, Height: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(screen, s, nil), screen, rec
}

// mouseAt builds a mouse event on the character cell showing the centre of
// grid cell (x, y).
func mouseAt(f *Frontend, x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	v := f.Session().View
	p, _ := camera.ProjectToScreen(v.Viewport, v.ViewProjection(),
		mgl32.Vec3{float32(x) + 0.5, 0, float32(y) + 0.5})
	return tcell.NewEventMouse(int(p.X()), int(p.Y()/2), buttons, tcell.ModNone)
}

func TestViewportTracksScreen(t *testing.T) {
	f, screen, _ := newFrontend(t, "intro")
	want := camera.Viewport{Width: 120, Height: 78}
	if got := f.Session().View.Viewport; got != want {
		t.Fatalf("viewport = %+v, expected %+v", got, want)
	}

	screen.SetSize(80, 25)
	f.HandleEvent(tcell.NewEventResize(80, 25))
	want = camera.Viewport{Width: 80, Height: 48}
	if got := f.Session().View.Viewport; got != want {
		t.Fatalf("viewport after resize = %+v, expected %+v", got, want)
	}
	if f.canvas.W != 80 || f.canvas.H != 48 {
		t.Fatalf("canvas = %dx%d", f.canvas.W, f.canvas.H)
	}
}

func TestMouseDragSolvesIntro(t *testing.T) {
	f, _, rec := newFrontend(t, "intro")
	s := f.Session()

	f.HandleEvent(mouseAt(f, 2, 3, tcell.Button1))
	s.Tick()
	f.HandleEvent(mouseAt(f, 4, 1, tcell.Button1))
	s.Tick()
	f.HandleEvent(mouseAt(f, 4, 1, tcell.ButtonNone))
	s.Tick()

	if !s.Solved() {
		t.Fatal("intro should be solved after dragging the hook")
	}
	want := []sound.Effect{sound.Move, sound.PutDown, sound.Solved}
	if diff := cmp.Diff(want, rec.Played); diff != "" {
		t.Fatalf("sounds mismatch (-want +got):\n%s", diff)
	}
}

func TestKeysAreReleasedAfterATick(t *testing.T) {
	f, _, _ := newFrontend(t, "intro")
	s := f.Session()

	f.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	s.Tick()
	f.releaseKeys()
	first := s.Name()
	if first == "intro" {
		t.Fatal("n should load the next level")
	}

	s.Tick()
	if s.Name() != first {
		t.Fatalf("a single key press switched twice, now at %q", s.Name())
	}

	f.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	s.Tick()
	if !s.Quit() {
		t.Fatal("escape should quit")
	}
}

func TestDrawWritesBoardAndStatus(t *testing.T) {
	f, screen, _ := newFrontend(t, "intro")
	f.Draw()

	cells, w, h := screen.GetContents()
	if w != 120 || h != 40 {
		t.Fatalf("screen = %dx%d", w, h)
	}
	var blocks int
	for _, c := range cells[:w*(h-statusRows)] {
		if len(c.Runes) > 0 && c.Runes[0] == '▀' {
			blocks++
		}
	}
	if blocks != w*(h-statusRows) {
		t.Fatalf("%d board cells drawn, expected %d", blocks, w*(h-statusRows))
	}

	var line strings.Builder
	for _, c := range cells[w*(h-1):] {
		if len(c.Runes) > 0 {
			line.WriteRune(c.Runes[0])
		}
	}
	if !strings.Contains(line.String(), "intro") || !strings.Contains(line.String(), "goals 0/1") {
		t.Fatalf("status line = %q", line.String())
	}
}

func TestCanvasFillAndStroke(t *testing.T) {
	c := NewCanvas(6, 4)
	c.Clear(background)
	red := color.RGBA{R: 255, A: 255}
	c.Fill(render.Rect{X: 1, Y: 1, W: 2, H: 2}, red)

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			if got := c.At(x, y) == red; got != inside {
				t.Fatalf("pixel (%d,%d) red=%v", x, y, got)
			}
		}
	}

	c.Clear(background)
	c.Stroke(render.Rect{X: 0, Y: 0, W: 4, H: 4}, red)
	if c.At(1, 1) == red || c.At(0, 2) != red || c.At(3, 3) != red {
		t.Fatal("stroke should only touch the border")
	}
}

func TestCanvasBlendsTranslucentColours(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Clear(color.RGBA{A: 255})
	c.Fill(render.Rect{W: 1, H: 1}, color.RGBA{R: 255, A: 128})
	if got := c.At(0, 0); got.R < 127 || got.R > 129 || got.A != 255 {
		t.Fatalf("blended = %+v", got)
	}
}

func TestThinRectCoversOneRow(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Clear(background)
	red := color.RGBA{R: 255, A: 255}
	c.Fill(render.Rect{X: 0, Y: 1.6, W: 4, H: 0.3}, red)
	if c.At(2, 2) != red {
		t.Fatal("thin rect vanished")
	}
}
