//go:build ebiten

package sound

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenPlayer plays effects through ebiten's audio context.
type EbitenPlayer struct {
	ctx     *audio.Context
	volume  float64
	playing []*audio.Player
}

// NewEbitenPlayer creates the process-wide audio context. Ebiten allows only
// one context, so call it once.
func NewEbitenPlayer(volume float64) *EbitenPlayer {
	return &EbitenPlayer{ctx: audio.NewContext(SampleRate), volume: volume}
}

// Play implements Player.
func (p *EbitenPlayer) Play(e Effect, pitch float64) {
	live := p.playing[:0]
	for _, ap := range p.playing {
		if ap.IsPlaying() {
			live = append(live, ap)
		} else {
			_ = ap.Close()
		}
	}
	p.playing = live

	ap := p.ctx.NewPlayerFromBytes(PCM(Synth(e, pitch)))
	ap.SetVolume(p.volume)
	ap.Play()
	p.playing = append(p.playing, ap)
}
