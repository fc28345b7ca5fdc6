package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the drawable area in window pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// Aspect returns width / height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Plane is the set of points p with Normal·p = D.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// GroundPlane is the horizontal y=0 plane the level is laid out on.
var GroundPlane = Plane{Normal: mgl32.Vec3{0, 1, 0}}

// ScreenToNDC converts a window-pixel position to normalized device
// coordinates, with +y pointing up.
func ScreenToNDC(vp Viewport, pos mgl32.Vec2) mgl32.Vec2 {
	if vp.Width <= 0 || vp.Height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		2*pos.X()/vp.Width - 1,
		1 - 2*pos.Y()/vp.Height,
	}
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(vp Viewport, ndc mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * vp.Width,
		(1 - ndc.Y()) * 0.5 * vp.Height,
	}
}

// ProjectToScreen maps a world point through viewProj to window pixels. ok
// is false when the point is behind the camera.
func ProjectToScreen(vp Viewport, viewProj mgl32.Mat4, p mgl32.Vec3) (mgl32.Vec2, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := mgl32.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
	return NDCToScreen(vp, ndc), true
}

// IntersectRayWithPlane casts the ray through ndc from the near plane to the
// far plane and returns where it meets plane. ok is false when the ray is
// parallel to the plane or the hit lies behind the near plane.
func (c *Camera) IntersectRayWithPlane(ndc mgl32.Vec2, vp Viewport, plane Plane) (mgl32.Vec3, bool) {
	inv := c.ViewProjection(vp).Inv()

	near, ok := unproject(inv, mgl32.Vec3{ndc.X(), ndc.Y(), -1})
	if !ok {
		return mgl32.Vec3{}, false
	}
	far, ok := unproject(inv, mgl32.Vec3{ndc.X(), ndc.Y(), 1})
	if !ok {
		return mgl32.Vec3{}, false
	}

	dir := far.Sub(near)
	denom := plane.Normal.Dot(dir)
	if denom > -1e-6 && denom < 1e-6 {
		return mgl32.Vec3{}, false
	}
	t := (plane.D - plane.Normal.Dot(near)) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return near.Add(dir.Mul(t)), true
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec3) (mgl32.Vec3, bool) {
	v := inv.Mul4x1(ndc.Vec4(1))
	if v.W() == 0 {
		return mgl32.Vec3{}, false
	}
	return v.Vec3().Mul(1 / v.W()), true
}

// View pairs a camera with the viewport it renders into; it is the
// projection collaborator handed to the selector.
type View struct {
	Camera   *Camera
	Viewport Viewport
}

// ScreenToNDC converts window pixels to NDC for this view's viewport.
func (v View) ScreenToNDC(pos mgl32.Vec2) mgl32.Vec2 {
	return ScreenToNDC(v.Viewport, pos)
}

// IntersectGround casts through ndc onto the ground plane.
func (v View) IntersectGround(ndc mgl32.Vec2) (mgl32.Vec3, bool) {
	return v.Camera.IntersectRayWithPlane(ndc, v.Viewport, GroundPlane)
}

// ViewProjection returns the camera's view-projection matrix for this view.
func (v View) ViewProjection() mgl32.Mat4 {
	return v.Camera.ViewProjection(v.Viewport)
}

// Size returns the viewport.
func (v View) Size() Viewport { return v.Viewport }
