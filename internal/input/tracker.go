package input

// Tracker remembers the state of a set of buttons for the current and the
// previous tick, which is enough to derive press and release edges.
type Tracker[K comparable] struct {
	current map[K]bool
	last    map[K]bool
}

// NewTracker returns a tracker with every button released.
func NewTracker[K comparable]() *Tracker[K] {
	return &Tracker[K]{
		current: make(map[K]bool),
		last:    make(map[K]bool),
	}
}

// Update records the live state of a button.
func (t *Tracker[K]) Update(k K, pressed bool) { t.current[k] = pressed }

// IsPressed reports whether k is down this tick.
func (t *Tracker[K]) IsPressed(k K) bool { return t.current[k] }

// WasPressed reports whether k was down last tick.
func (t *Tracker[K]) WasPressed(k K) bool { return t.last[k] }

// IsJustPressed reports a release-to-press edge.
func (t *Tracker[K]) IsJustPressed(k K) bool { return t.IsPressed(k) && !t.WasPressed(k) }

// IsJustReleased reports a press-to-release edge.
func (t *Tracker[K]) IsJustReleased(k K) bool { return t.WasPressed(k) && !t.IsPressed(k) }

// TickEnd copies the current state into the previous-tick state. Call it once
// after every simulated tick.
func (t *Tracker[K]) TickEnd() {
	for k, v := range t.current {
		t.last[k] = v
	}
}
