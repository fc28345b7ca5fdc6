// Package input stages pointer, touch and key state between simulation ticks.
// Frontends write into an Input as events arrive; the game reads it during a
// tick and calls TickEnd afterwards.
package input

import "github.com/go-gl/mathgl/mgl32"

// MouseButton identifies a mouse button independently of the frontend.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Key is a game action bound to a keyboard key by the frontend.
type Key uint8

const (
	KeyQuit Key = iota
	KeyReset
	KeyNextLevel
	KeyPrevLevel
	KeyOverlay
	KeyMute
)

type touchState struct {
	pos    mgl32.Vec2
	active bool
}

// Input is the state the simulation sees during one tick.
type Input struct {
	cursor mgl32.Vec2
	mouse  *Tracker[MouseButton]
	keys   *Tracker[Key]

	touches    map[int]touchState
	touchStart int
	hasStart   bool
}

// New returns an Input with nothing pressed.
func New() *Input {
	return &Input{
		mouse:   NewTracker[MouseButton](),
		keys:    NewTracker[Key](),
		touches: make(map[int]touchState),
	}
}

// SetCursor records the cursor position in screen pixels.
func (in *Input) SetCursor(x, y float32) { in.cursor = mgl32.Vec2{x, y} }

// CursorPosition returns the last recorded cursor position.
func (in *Input) CursorPosition() mgl32.Vec2 { return in.cursor }

// SetMouse records the live state of a mouse button.
func (in *Input) SetMouse(b MouseButton, pressed bool) { in.mouse.Update(b, pressed) }

// IsMousePressed reports whether b is held this tick.
func (in *Input) IsMousePressed(b MouseButton) bool { return in.mouse.IsPressed(b) }

// IsMouseJustPressed reports whether b went down since the last tick.
func (in *Input) IsMouseJustPressed(b MouseButton) bool { return in.mouse.IsJustPressed(b) }

// IsMouseJustReleased reports whether b went up since the last tick.
func (in *Input) IsMouseJustReleased(b MouseButton) bool { return in.mouse.IsJustReleased(b) }

// SetKey records the live state of an action key.
func (in *Input) SetKey(k Key, pressed bool) { in.keys.Update(k, pressed) }

// IsKeyJustPressed reports whether k went down since the last tick.
func (in *Input) IsKeyJustPressed(k Key) bool { return in.keys.IsJustPressed(k) }

// TouchStart registers a new touch and latches it as this tick's touch
// start. Only the most recent start is latched.
func (in *Input) TouchStart(id int, x, y float32) {
	in.touches[id] = touchState{pos: mgl32.Vec2{x, y}, active: true}
	in.touchStart = id
	in.hasStart = true
}

// TouchMove updates the position of an active touch. Unknown ids are ignored.
func (in *Input) TouchMove(id int, x, y float32) {
	t, ok := in.touches[id]
	if !ok {
		return
	}
	t.pos = mgl32.Vec2{x, y}
	in.touches[id] = t
}

// TouchEnd marks a touch as lifted or cancelled. Its last position stays
// readable until TickEnd.
func (in *Input) TouchEnd(id int) {
	t, ok := in.touches[id]
	if !ok {
		return
	}
	t.active = false
	in.touches[id] = t
}

// TakeTouchStart consumes the latched touch start, if any.
func (in *Input) TakeTouchStart() (int, bool) {
	if !in.hasStart {
		return 0, false
	}
	in.hasStart = false
	return in.touchStart, true
}

// TouchPosition returns the last recorded position of touch id.
func (in *Input) TouchPosition(id int) (mgl32.Vec2, bool) {
	t, ok := in.touches[id]
	return t.pos, ok
}

// TouchActive reports whether touch id is still down.
func (in *Input) TouchActive(id int) bool { return in.touches[id].active }

// TickEnd advances button edges and forgets lifted touches and unconsumed
// touch starts.
func (in *Input) TickEnd() {
	in.mouse.TickEnd()
	in.keys.TickEnd()
	for id, t := range in.touches {
		if !t.active {
			delete(in.touches, id)
		}
	}
	in.hasStart = false
}
