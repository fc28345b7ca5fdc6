package level

import (
	"beamgrid/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

// SetupCamera frames the tiled area of the level: the camera hovers above the
// centre of the bounds, tilted slightly towards +Y, with an orthographic zoom
// large enough to show the whole area in vp.
func (l *Level) SetupCamera(cam *camera.Camera, vp camera.Viewport) {
	b := l.bounds
	cx := float32(b.MinX+b.MaxX+1) / 2
	cy := float32(b.MinY+b.MaxY+1) / 2

	// Zoom is the visible height, so the horizontal requirement is scaled by
	// the inverse aspect ratio.
	zoomForWidth := float32(b.MaxX-b.MinX+2) / vp.Aspect()
	zoomForHeight := float32(b.MaxY-b.MinY) + 2*0.66

	cam.Position = mgl32.Vec3{cx, 15, cy + 3}
	cam.Target = mgl32.Vec3{cx, 0, cy}
	cam.Up = mgl32.Vec3{0, 1, 0}
	cam.SetOrthographic(max(zoomForWidth, zoomForHeight))
}
