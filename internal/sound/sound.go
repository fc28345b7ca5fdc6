// Package sound synthesizes the game's short sound effects and defines the
// playback collaborator the selector and session talk to.
package sound

import "fmt"

// SampleRate is the rate every effect is rendered at.
const SampleRate = 44100

// Effect names a sound the game can request.
type Effect uint8

const (
	// Move plays when a dragged device reaches a new valid cell.
	Move Effect = iota
	// Error plays when a dragged device reaches a cell it cannot land on.
	Error
	// PutDown plays when a drag ends.
	PutDown
	// Solved plays once when every goal is fulfilled.
	Solved

	numEffects
)

var effectNames = [numEffects]string{"move", "error", "put-down", "solved"}

func (e Effect) String() string {
	if e < numEffects {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// Player plays effects. Pitch is a playback-rate multiplier where 1 is the
// effect's natural pitch.
type Player interface {
	Play(e Effect, pitch float64)
}

// Nop discards every request.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Effect, float64) {}

// Recorder remembers requested effects in order. Tests and the headless
// frontends use it to observe what would have been played.
type Recorder struct {
	Played []Effect
}

// Play implements Player.
func (r *Recorder) Play(e Effect, _ float64) { r.Played = append(r.Played, e) }

// Reset forgets recorded effects.
func (r *Recorder) Reset() { r.Played = r.Played[:0] }
