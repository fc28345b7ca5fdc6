// Package selector implements the drag interaction: hovering devices under
// the pointer, picking them up with the mouse or a touch, previewing moves on
// the level and committing or snapping back on release.
package selector

import (
	"log/slog"
	"math"

	"beamgrid/internal/camera"
	"beamgrid/internal/core"
	"beamgrid/internal/input"
	"beamgrid/internal/level"
	"beamgrid/internal/sound"

	"github.com/go-gl/mathgl/mgl32"
)

// State is the drag state.
type State uint8

const (
	NotMoving State = iota
	MovingWithMouse
	MovingWithTouch
)

func (s State) String() string {
	switch s {
	case NotMoving:
		return "not-moving"
	case MovingWithMouse:
		return "moving-with-mouse"
	case MovingWithTouch:
		return "moving-with-touch"
	default:
		return "unknown"
	}
}

// Pointer is the input the selector polls each tick.
type Pointer interface {
	CursorPosition() mgl32.Vec2
	IsMousePressed(input.MouseButton) bool
	IsMouseJustPressed(input.MouseButton) bool
	TakeTouchStart() (int, bool)
	TouchPosition(id int) (mgl32.Vec2, bool)
	TouchActive(id int) bool
}

// View converts between screen pixels and the ground plane.
type View interface {
	ScreenToNDC(pos mgl32.Vec2) mgl32.Vec2
	IntersectGround(ndc mgl32.Vec2) (mgl32.Vec3, bool)
	ViewProjection() mgl32.Mat4
	Size() camera.Viewport
}

var (
	tintValid   = mgl32.Vec3{1, 1, 1}
	tintInvalid = mgl32.Vec3{1, 0.15, 0.15}
)

// Selector tracks the hovered or dragged device.
type Selector struct {
	state   State
	touchID int

	active level.DeviceHandle
	shape  level.SelectorShape

	startX, startY int
	// target is the cell the pointer asks for; cur is where the device
	// actually is and where the handle is drawn.
	targetX, targetY int
	curX, curY       int
	offset           mgl32.Vec2
	tint           mgl32.Vec3

	snd sound.Player
	rng *core.RNG
	log *slog.Logger
}

// New returns an idle selector that plays sounds through snd. A nil player
// is replaced by sound.Nop.
func New(snd sound.Player, rng *core.RNG) *Selector {
	if snd == nil {
		snd = sound.Nop{}
	}
	if rng == nil {
		rng = core.NewRNG(1)
	}
	return &Selector{
		active: level.NoDevice,
		tint:   tintValid,
		snd:    snd,
		rng:    rng,
		log:    slog.Default(),
	}
}

// SetLogger replaces the logger; nil restores slog.Default.
func (s *Selector) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	s.log = log
}

// State returns the current drag state.
func (s *Selector) State() State { return s.state }

// Moving reports whether a device is being dragged.
func (s *Selector) Moving() bool { return s.state != NotMoving }

// Hovered returns the device under the pointer or being dragged.
func (s *Selector) Hovered() (level.DeviceHandle, bool) {
	return s.active, s.active != level.NoDevice
}

// Position returns the cell the selector handle is drawn at.
func (s *Selector) Position() (int, int) { return s.curX, s.curY }

// Tint returns the colour of the selector handle: white while the drag
// position is a legal drop and red otherwise.
func (s *Selector) Tint() mgl32.Vec3 { return s.tint }

// Reset drops any hover or drag state without touching the level. Use it
// when the level is replaced.
func (s *Selector) Reset() {
	s.state = NotMoving
	s.active = level.NoDevice
	s.shape = level.SelectorNone
	s.tint = tintValid
}

// Tick advances the state machine by one simulation step.
func (s *Selector) Tick(l *level.Level, ptr Pointer, view View) {
	if s.state == NotMoving {
		s.pick(l, ptr, view)
		return
	}
	s.drag(l, ptr, view)
}

func (s *Selector) pick(l *level.Level, ptr Pointer, view View) {
	s.active = level.NoDevice
	s.shape = level.SelectorNone

	pos := ptr.CursorPosition()
	touchID, touched := ptr.TakeTouchStart()
	if touched {
		if tp, ok := ptr.TouchPosition(touchID); ok {
			pos = tp
		}
	}

	vpm := view.ViewProjection()
	vp := view.Size()
	var (
		hitX, hitY int
		hitDev     = level.NoDevice
	)
	l.EachRoot(func(x, y int, h level.DeviceHandle) bool {
		d := l.Device(h)
		if d.Locked {
			return true
		}
		for _, off := range d.Type.Cells() {
			if cellContains(vp, vpm, x+off.X, y+off.Y, pos) {
				hitX, hitY, hitDev = x, y, h
				return false
			}
		}
		return true
	})
	if hitDev == level.NoDevice {
		return
	}
	shape := l.Device(hitDev).Type.Selector()
	if shape == level.SelectorNone {
		return
	}
	world, ok := view.IntersectGround(view.ScreenToNDC(pos))
	if !ok {
		return
	}

	s.active = hitDev
	s.shape = shape
	s.startX, s.startY = hitX, hitY
	s.curX, s.curY = hitX, hitY
	s.targetX, s.targetY = hitX, hitY
	s.offset = mgl32.Vec2{float32(hitX) - world.X(), float32(hitY) - world.Z()}
	s.tint = tintValid

	switch {
	case ptr.IsMouseJustPressed(input.MouseLeft):
		s.state = MovingWithMouse
	case touched:
		s.state = MovingWithTouch
		s.touchID = touchID
	default:
		return
	}
	s.log.Debug("picked up device", "device", hitDev, "x", hitX, "y", hitY, "state", s.state)
}

func (s *Selector) drag(l *level.Level, ptr Pointer, view View) {
	var (
		pos    mgl32.Vec2
		hasPos = true
		done   bool
	)
	switch s.state {
	case MovingWithMouse:
		pos = ptr.CursorPosition()
		done = !ptr.IsMousePressed(input.MouseLeft)
	case MovingWithTouch:
		pos, hasPos = ptr.TouchPosition(s.touchID)
		done = !ptr.TouchActive(s.touchID)
	}

	if hasPos {
		if world, ok := view.IntersectGround(view.ScreenToNDC(pos)); ok {
			x := int(math.Round(float64(world.X() + s.offset.X())))
			y := int(math.Round(float64(world.Z() + s.offset.Y())))
			s.moveTo(l, x, y)
		}
	}
	if done {
		s.finish(l)
	}
}

func (s *Selector) moveTo(l *level.Level, x, y int) {
	valid := l.MoveFrom(s.startX, s.startY, s.active, x, y)
	if valid {
		s.tint = tintValid
	} else {
		s.tint = tintInvalid
	}
	d := l.Device(s.active)
	s.curX, s.curY = d.X, d.Y
	if x == s.targetX && y == s.targetY {
		return
	}
	s.targetX, s.targetY = x, y
	if valid {
		s.play(sound.Move)
	} else {
		s.play(sound.Error)
	}
}

// FinishNow ends an ongoing drag as if the pointer had been released.
func (s *Selector) FinishNow(l *level.Level) {
	if s.state != NotMoving {
		s.finish(l)
	}
}

func (s *Selector) finish(l *level.Level) {
	landed := l.FinishMoveFrom(s.startX, s.startY, s.active, s.targetX, s.targetY)
	d := l.Device(s.active)
	s.curX, s.curY = d.X, d.Y
	s.tint = tintValid
	s.state = NotMoving
	s.play(sound.PutDown)
	s.log.Debug("put down device", "device", s.active, "x", d.X, "y", d.Y, "landed", landed)
}

func (s *Selector) play(e sound.Effect) {
	s.snd.Play(e, s.rng.Jitter(1, 0.05))
}

// BuildMeshes pushes the selector handle, if a device is hovered or dragged.
func (s *Selector) BuildMeshes(sink level.MeshSink) {
	if s.shape == level.SelectorNone {
		return
	}
	sink.PushMesh(level.Instance{
		Mesh:      s.shape.Mesh(),
		Material:  level.MaterialSelector,
		Transform: level.CellTransform(s.curX, s.curY),
		Tint:      s.tint,
		Tinted:    true,
	})
}

// cellContains projects the unit cell (x, y) to the screen and tests pos
// against its bounding rectangle.
func cellContains(vp camera.Viewport, vpm mgl32.Mat4, x, y int, pos mgl32.Vec2) bool {
	fx, fy := float32(x), float32(y)
	corners := [4]mgl32.Vec3{
		{fx, 0, fy},
		{fx + 1, 0, fy},
		{fx, 0, fy + 1},
		{fx + 1, 0, fy + 1},
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, c := range corners {
		p, ok := camera.ProjectToScreen(vp, vpm, c)
		if !ok {
			return false
		}
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}
	return pos.X() >= minX && pos.X() <= maxX && pos.Y() >= minY && pos.Y() <= maxY
}
