package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if len(samples) > e.total-e.pos {
		samples = samples[:e.total-e.pos]
	}
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// tone is a shaped sine note.
func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// Only fails above the Nyquist frequency.
		return beep.Silence(rate.N(d))
	}
	return newEnvelope(beep.Take(rate.N(d), sine), d, 4*time.Millisecond, d/2, rate)
}

// Synth builds the stream for e. Pitch scales the playback rate; values <= 0
// are treated as 1.
func Synth(e Effect, pitch float64) beep.Streamer {
	rate := beep.SampleRate(SampleRate)
	var s beep.Streamer
	switch e {
	case Move:
		s = volume(tone(660, 60*time.Millisecond, rate), 0.35)
	case Error:
		s = volume(beep.Mix(
			tone(110, 120*time.Millisecond, rate),
			tone(116.5, 120*time.Millisecond, rate),
		), 0.3)
	case PutDown:
		s = volume(beep.Seq(
			tone(440, 40*time.Millisecond, rate),
			tone(330, 70*time.Millisecond, rate),
		), 0.4)
	case Solved:
		s = volume(beep.Seq(
			tone(523.25, 120*time.Millisecond, rate),
			tone(659.25, 120*time.Millisecond, rate),
			tone(783.99, 240*time.Millisecond, rate),
		), 0.5)
	default:
		return beep.Silence(0)
	}
	if pitch > 0 && pitch != 1 {
		s = beep.ResampleRatio(4, pitch, s)
	}
	return s
}

// PCM renders s into interleaved signed 16-bit little-endian stereo frames.
func PCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				x := int16(v * math.MaxInt16)
				out = append(out, byte(x), byte(x>>8))
			}
		}
		if !ok {
			return out
		}
	}
}
