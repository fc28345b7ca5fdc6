package level

import (
	"beamgrid/internal/core"

	"github.com/go-gl/mathgl/mgl32"
)

// ColorTolerance is the per-channel difference under which two laser colours
// count as equal when checking goals.
const ColorTolerance = 2.0 / 255.0

// LaserValue is the signal a laser carries.
type LaserValue struct {
	Color mgl32.Vec3
}

// Color builds a LaserValue from RGB components in [0,1].
func Color(r, g, b float32) LaserValue {
	return LaserValue{Color: mgl32.Vec3{r, g, b}}
}

// White is the default emitter/goal colour.
var White = Color(1, 1, 1)

// Matches reports whether every channel of v is within ColorTolerance of o.
func (v LaserValue) Matches(o LaserValue) bool {
	for i := 0; i < 3; i++ {
		d := v.Color[i] - o.Color[i]
		if d < 0 {
			d = -d
		}
		if d > ColorTolerance {
			return false
		}
	}
	return true
}

// mix averages two values and renormalizes the result. Black stays black.
func mix(a, b LaserValue) LaserValue {
	avg := a.Color.Add(b.Color).Mul(0.5)
	if avg.Len() == 0 {
		return LaserValue{Color: avg}
	}
	return LaserValue{Color: avg.Normalize()}
}

// Laser is a horizontal run starting at (X, Y) and covering Length cells to
// the right.
type Laser struct {
	X, Y   int
	Length int
	Value  LaserValue
}

// LaserEnd records the value of the laser whose run stops at a cell.
type LaserEnd struct {
	Value LaserValue
	OK    bool
}

func endAt(ends *core.Grid[LaserEnd], x, y int) (LaserValue, bool) {
	if !ends.InBounds(x, y) {
		return LaserValue{}, false
	}
	e := ends.At(x, y)
	return e.Value, e.OK
}

// MakeLasers applies the device's emission rule for a device anchored at
// (x, y). New lasers are appended to lasers with zero length; ends is read to
// find incoming signals. The boolean result reports a fulfilled goal.
func (t DeviceType) MakeLasers(x, y int, lasers []Laser, ends *core.Grid[LaserEnd]) ([]Laser, bool) {
	switch t.Kind {
	case Emitter:
		lasers = append(lasers, Laser{X: x, Y: y, Value: t.Value})
	case Mix:
		top, ok := endAt(ends, x, y)
		if !ok {
			return lasers, false
		}
		bottom, ok := endAt(ends, x, y+1)
		if !ok {
			return lasers, false
		}
		lasers = append(lasers, Laser{X: x, Y: y + 1, Value: mix(top, bottom)})
	case Hook:
		in, ok := endAt(ends, x, y)
		if !ok {
			return lasers, false
		}
		lasers = append(lasers,
			Laser{X: x, Y: y, Value: in},
			Laser{X: x, Y: y + 1, Value: in},
		)
	case Goal:
		in, ok := endAt(ends, x, y)
		if !ok {
			return lasers, false
		}
		return lasers, t.Value.Matches(in)
	case Ingot, Mix2, Nut, Bolt, Collect, Swap, Split:
		// No gameplay rule yet.
	}
	return lasers, false
}

// BuildLasers clears and re-derives every laser, the laser-end table and the
// fulfilled goal count from the current grid.
//
// Devices are visited strictly column by column, left to right; rows within
// a column may be visited in any order. Lasers only travel to the right and
// each one is extended as soon as it is emitted, so by the time a device in
// column x reads the laser-end table every laser that can stop in a column
// <= x is complete. Visiting columns in any other order would let multi-input
// devices read stale inputs.
func (l *Level) BuildLasers() {
	l.ends.Fill(LaserEnd{})
	l.lasers = l.lasers[:0]

	fulfilled := 0
	extended := 0
	for x := 0; x < l.grid.W; x++ {
		for y := 0; y < l.grid.H; y++ {
			c := l.grid.At(x, y)
			if c.Kind != DeviceRoot {
				continue
			}
			dev := &l.devices[c.Dev]
			var goal bool
			l.lasers, goal = dev.Type.MakeLasers(x, y, l.lasers, l.ends)
			if goal {
				fulfilled++
			}
			for ; extended < len(l.lasers); extended++ {
				l.extendLaserH(extended)
			}
		}
	}
	l.goalsFulfilled = fulfilled
}

// extendLaserH walks lasers[idx] to the right until it is blocked and records
// its value at the blocking cell.
func (l *Level) extendLaserH(idx int) {
	las := &l.lasers[idx]
	x := las.X + 1
	for l.IsInBoundsAndLaserTravelable(x, las.Y) {
		las.Length++
		x++
	}
	// A laser is always at least one cell long so it reaches the blocker.
	las.Length++

	if x < l.ends.W {
		l.ends.Set(x, las.Y, LaserEnd{Value: las.Value, OK: true})
	}
}

// Lasers returns the lasers of the last BuildLasers call. The slice is owned
// by the level and is overwritten by the next call.
func (l *Level) Lasers() []Laser { return l.lasers }

// LaserEndAt returns the value of the laser stopping at (x, y), if any.
func (l *Level) LaserEndAt(x, y int) (LaserValue, bool) { return endAt(l.ends, x, y) }

// Goals returns how many goal devices the level has.
func (l *Level) Goals() int { return l.goals }

// GoalsFulfilled returns how many goals the last BuildLasers call satisfied.
func (l *Level) GoalsFulfilled() int { return l.goalsFulfilled }

// Solved is the win condition: every goal is fulfilled and the player is not
// in the middle of a drag. A level without goals is solved whenever idle.
func (l *Level) Solved(dragging bool) bool {
	return !dragging && l.goalsFulfilled == l.goals
}
