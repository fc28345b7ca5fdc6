package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func topDown() (*Camera, Viewport) {
	cam := &Camera{
		Position: mgl32.Vec3{2, 10, 3},
		Target:   mgl32.Vec3{2, 0, 3},
		Up:       mgl32.Vec3{0, 0, -1},
	}
	cam.SetOrthographic(10)
	return cam, Viewport{Width: 100, Height: 100}
}

func near(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(a[i]-b[i])) > 1e-3 {
			return false
		}
	}
	return true
}

func TestScreenToNDCRoundTrip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	cases := []struct {
		pos, ndc mgl32.Vec2
	}{
		{mgl32.Vec2{0, 0}, mgl32.Vec2{-1, 1}},
		{mgl32.Vec2{400, 300}, mgl32.Vec2{0, 0}},
		{mgl32.Vec2{800, 600}, mgl32.Vec2{1, -1}},
	}
	for _, tc := range cases {
		got := ScreenToNDC(vp, tc.pos)
		if got != tc.ndc {
			t.Fatalf("ScreenToNDC(%v) = %v, expected %v", tc.pos, got, tc.ndc)
		}
		if back := NDCToScreen(vp, got); back != tc.pos {
			t.Fatalf("NDCToScreen(%v) = %v, expected %v", got, back, tc.pos)
		}
	}
}

func TestIntersectGroundFromCenter(t *testing.T) {
	cam, vp := topDown()
	hit, ok := cam.IntersectRayWithPlane(mgl32.Vec2{0, 0}, vp, GroundPlane)
	if !ok {
		t.Fatal("expected the center ray to hit the ground")
	}
	if !near(hit, mgl32.Vec3{2, 0, 3}) {
		t.Fatalf("center hit = %v, expected camera target", hit)
	}

	left, ok := cam.IntersectRayWithPlane(mgl32.Vec2{-1, 0}, vp, GroundPlane)
	if !ok || !near(left, mgl32.Vec3{-3, 0, 3}) {
		t.Fatalf("left edge hit = %v (ok=%v), expected (-3,0,3)", left, ok)
	}
}

func TestProjectThenIntersectIsIdentity(t *testing.T) {
	cam := &Camera{
		Position: mgl32.Vec3{3, 15, 7},
		Target:   mgl32.Vec3{3, 0, 4},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	cam.SetOrthographic(9)
	view := View{Camera: cam, Viewport: Viewport{Width: 640, Height: 480}}

	world := mgl32.Vec3{4, 0, 5}
	screen, ok := ProjectToScreen(view.Viewport, view.ViewProjection(), world)
	if !ok {
		t.Fatal("point should be in front of the camera")
	}
	hit, ok := view.IntersectGround(view.ScreenToNDC(screen))
	if !ok || !near(hit, world) {
		t.Fatalf("round trip gave %v (ok=%v), expected %v", hit, ok, world)
	}
}

func TestParallelRayMisses(t *testing.T) {
	cam := &Camera{
		Position: mgl32.Vec3{0, 1, 5},
		Target:   mgl32.Vec3{0, 1, 0},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	cam.SetOrthographic(4)
	if _, ok := cam.IntersectRayWithPlane(mgl32.Vec2{0, 0}, Viewport{Width: 10, Height: 10}, GroundPlane); ok {
		t.Fatal("a ray parallel to the ground should not intersect it")
	}
}
