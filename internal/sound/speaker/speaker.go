// Package speaker plays sound effects through the system audio device using
// beep's speaker. Frontends without their own audio stack, such as the
// terminal game, use it.
package speaker

import (
	"fmt"
	"time"

	"beamgrid/internal/sound"

	"github.com/gopxl/beep"
	bspeaker "github.com/gopxl/beep/speaker"
)

// Player implements sound.Player on top of beep's speaker.
type Player struct{}

// New initializes the speaker. Call Close when done.
func New() (*Player, error) {
	rate := beep.SampleRate(sound.SampleRate)
	if err := bspeaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker: init: %w", err)
	}
	return &Player{}, nil
}

// Play implements sound.Player.
func (*Player) Play(e sound.Effect, pitch float64) {
	bspeaker.Play(sound.Synth(e, pitch))
}

// Close releases the audio device.
func (*Player) Close() { bspeaker.Close() }
