// Package camera holds the view maths the game needs from its renderer: a
// look-at camera with a perspective or orthographic projection, conversions
// between window pixels and normalized device coordinates, and ray casts
// against world planes.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind selects how a Camera projects the world.
type ProjectionKind uint8

const (
	Perspective ProjectionKind = iota
	Orthographic
)

// Projection parameters. FovY is in degrees and only used for perspective
// cameras; Zoom is the visible world height for orthographic cameras.
type Projection struct {
	Kind ProjectionKind
	FovY float32
	Near float32
	Far  float32
	Zoom float32
}

// Camera is a look-at camera.
type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Up         mgl32.Vec3
	Projection Projection
}

// Default returns the demo camera: five units back on +Z looking at the
// origin with a 45° perspective.
func Default() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		Projection: Projection{
			Kind: Perspective,
			FovY: 45,
			Near: 0.1,
			Far:  100,
		},
	}
}

// SetOrthographic switches the camera to an orthographic projection that
// shows zoom world units vertically.
func (c *Camera) SetOrthographic(zoom float32) {
	c.Projection = Projection{Kind: Orthographic, Zoom: zoom}
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the camera-to-clip transform for the viewport.
func (c *Camera) ProjectionMatrix(vp Viewport) mgl32.Mat4 {
	aspect := vp.Aspect()
	switch c.Projection.Kind {
	case Orthographic:
		// Based on the aspect ratio only so the framing does not depend on
		// the window size in pixels.
		h := c.Projection.Zoom * 0.5
		w := aspect * h
		return mgl32.Ortho(-w, w, -h, h, 0, 1000)
	default:
		return mgl32.Perspective(mgl32.DegToRad(c.Projection.FovY), aspect, c.Projection.Near, c.Projection.Far)
	}
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection(vp Viewport) mgl32.Mat4 {
	return c.ProjectionMatrix(vp).Mul4(c.ViewMatrix())
}
