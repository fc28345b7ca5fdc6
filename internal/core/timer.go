package core

import "time"

const (
	// maxCatchUp is the backlog (in steps) after which the accumulator is
	// dropped instead of replayed.
	maxCatchUp = 16
	// maxStepsPerCall bounds how many ticks a single frame may run.
	maxStepsPerCall = 4
)

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of a single tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// Steps reports how many ticks should run at time now. A backlog of 16 steps
// or more collapses to a single tick and the accumulator is reset, trading
// determinism during long stalls for responsiveness.
func (f *FixedStep) Steps(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	total := f.accumulator + now.Sub(f.last)

	if total >= f.step*maxCatchUp {
		f.accumulator = 0
		f.last = now
		return 1
	}
	if total < f.step {
		return 0
	}

	n := 0
	for total >= f.step {
		total -= f.step
		n++
		if n >= maxStepsPerCall {
			break
		}
	}
	f.accumulator = total
	f.last = now
	return n
}

// ShouldStep reports whether the simulation should advance by at least one
// tick right now.
func (f *FixedStep) ShouldStep() bool {
	return f.Steps(time.Now()) > 0
}
