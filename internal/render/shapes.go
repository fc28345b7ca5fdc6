package render

import (
	"math"

	"beamgrid/internal/camera"
	"beamgrid/internal/level"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// quad is a rectangle on the ground plane in mesh-local units, where the
// mesh origin is the top-left corner of its anchor cell.
type quad struct {
	x0, y0, x1, y1 float32
}

func cellQuads(cells []level.Offset, inset float32) []quad {
	qs := make([]quad, len(cells))
	for i, c := range cells {
		x, y := float32(c.X), float32(c.Y)
		qs[i] = quad{x + inset, y + inset, x + 1 - inset, y + 1 - inset}
	}
	return qs
}

// localQuads returns the ground-plane outline of a mesh.
func localQuads(m level.MeshID) []quad {
	switch {
	case m == level.MeshLaser:
		// Unit length along +X, scaled by the instance transform.
		return []quad{{0, 0.42, 1, 0.58}}
	case m == level.MeshGoalLight:
		return []quad{{0.3, 0.3, 0.7, 0.7}}
	case m.IsDevice():
		return cellQuads(m.Footprint(), 0.12)
	case m.IsSelector():
		return cellQuads(m.Footprint(), 0.04)
	default:
		return cellQuads(m.Footprint(), 0)
	}
}

// Rects projects an instance to screen rectangles.
func Rects(in level.Instance, vp camera.Viewport, viewProj mgl32.Mat4) []Rect {
	qs := localQuads(in.Mesh)
	out := make([]Rect, 0, len(qs))
	for _, q := range qs {
		corners := [4]mgl32.Vec3{
			{q.x0, 0, q.y0}, {q.x1, 0, q.y0},
			{q.x0, 0, q.y1}, {q.x1, 0, q.y1},
		}
		minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
		maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
		visible := true
		for _, c := range corners {
			world := in.Transform.Mul4x1(c.Vec4(1)).Vec3()
			p, ok := camera.ProjectToScreen(vp, viewProj, world)
			if !ok {
				visible = false
				break
			}
			minX, maxX = min(minX, p.X()), max(maxX, p.X())
			minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
		}
		if visible {
			out = append(out, Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY})
		}
	}
	return out
}
