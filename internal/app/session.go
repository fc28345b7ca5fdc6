package app

import (
	"log/slog"
	"strconv"
	"time"

	"beamgrid/internal/camera"
	"beamgrid/internal/core"
	"beamgrid/internal/input"
	"beamgrid/internal/level"
	"beamgrid/internal/levels"
	"beamgrid/internal/render"
	"beamgrid/internal/selector"
	"beamgrid/internal/sound"
)

// Session is one running game independent of the frontend: the current
// level, the staged input, the selector and the camera. Frontends feed
// Input, call Tick (or Advance) and draw Frame.
type Session struct {
	Input *input.Input
	View  camera.View

	level    *level.Level
	name     string
	selector *selector.Selector
	snd      *mutable
	timer    *core.FixedStep
	list     render.List

	ticks  int
	solved bool
	quit   bool

	log *slog.Logger
}

// NewSession loads the named level into a fresh session.
func NewSession(cfg *Config, snd sound.Player, vp camera.Viewport, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	if snd == nil {
		snd = sound.Nop{}
	}
	m := &mutable{p: snd, muted: cfg.Mute}
	s := &Session{
		Input:    input.New(),
		View:     camera.View{Camera: camera.Default(), Viewport: vp},
		selector: selector.New(m, core.NewRNG(cfg.Seed)),
		snd:      m,
		timer:    core.NewFixedStep(cfg.TPS),
		log:      log,
	}
	s.selector.SetLogger(log)
	if err := s.Load(cfg.Level); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the current level. An ongoing drag is finished on the old
// level first.
func (s *Session) Load(name string) error {
	l, err := levels.Load(name, s.log)
	if err != nil {
		return err
	}
	if s.level != nil {
		s.selector.FinishNow(s.level)
	}
	s.selector.Reset()
	l.SetupCamera(s.View.Camera, s.View.Viewport)
	l.BuildLasers()

	s.level = l
	s.name = name
	s.solved = l.Solved(false)
	s.log.Info("level loaded", "level", name, "devices", l.NumDevices(), "goals", l.Goals())
	return nil
}

// Step loads the level step places away from the current one in the
// registry order.
func (s *Session) Step(step int) error { return s.Load(levels.Next(s.name, step)) }

// Reset reloads the current level.
func (s *Session) Reset() error { return s.Load(s.name) }

// Resize changes the viewport and reframes the camera.
func (s *Session) Resize(vp camera.Viewport) {
	if vp == s.View.Viewport {
		return
	}
	s.View.Viewport = vp
	s.level.SetupCamera(s.View.Camera, vp)
}

// Level returns the current level.
func (s *Session) Level() *level.Level { return s.level }

// Name returns the name the current level was loaded by.
func (s *Session) Name() string { return s.name }

// Selector returns the drag state machine.
func (s *Session) Selector() *selector.Selector { return s.selector }

// Solved reports whether the current level is solved.
func (s *Session) Solved() bool { return s.solved }

// Quit reports whether the player asked to quit.
func (s *Session) Quit() bool { return s.quit }

// Muted reports whether sound is muted.
func (s *Session) Muted() bool { return s.snd.muted }

// Tick runs one simulation step: level keys, the selector, laser
// propagation and the win check. It ends the input tick.
func (s *Session) Tick() {
	defer s.Input.TickEnd()
	s.ticks++

	if s.handleKeys() {
		return
	}

	s.selector.Tick(s.level, s.Input, s.View)
	s.level.BuildLasers()

	solved := s.level.Solved(s.selector.Moving())
	if solved && !s.solved {
		s.snd.Play(sound.Solved, 1)
		s.log.Info("level solved", "level", s.name, "ticks", s.ticks)
	}
	s.solved = solved
}

// handleKeys applies level-switching keys and reports whether the level
// was replaced.
func (s *Session) handleKeys() bool {
	in := s.Input
	if in.IsKeyJustPressed(input.KeyQuit) {
		s.quit = true
	}
	if in.IsKeyJustPressed(input.KeyMute) {
		s.snd.muted = !s.snd.muted
	}
	var err error
	switch {
	case in.IsKeyJustPressed(input.KeyReset):
		err = s.Reset()
	case in.IsKeyJustPressed(input.KeyNextLevel):
		err = s.Step(1)
	case in.IsKeyJustPressed(input.KeyPrevLevel):
		err = s.Step(-1)
	default:
		return false
	}
	if err != nil {
		s.log.Error("switching level", "err", err)
	}
	return true
}

// Advance runs as many ticks as the fixed-step timer allows at now and
// returns how many ran.
func (s *Session) Advance(now time.Time) int {
	n := s.timer.Steps(now)
	for i := 0; i < n; i++ {
		s.Tick()
	}
	return n
}

// Frame collects the instances to draw for the current state.
func (s *Session) Frame() *render.List {
	s.list.Reset()
	s.level.BuildMeshes(&s.list)
	s.selector.BuildMeshes(&s.list)
	return &s.list
}

// Parameters describes the level and the session for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	snap := s.level.Parameters()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Session",
		Params: []core.Parameter{
			{Key: "drag", Label: "Drag", Type: core.ParamTypeString, Value: s.selector.State().String()},
			{Key: "muted", Label: "Muted", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.snd.muted)},
			{Key: "ticks", Label: "Ticks", Type: core.ParamTypeInt, Value: strconv.Itoa(s.ticks)},
		},
	})
	return snap
}

// mutable forwards to a player unless muted.
type mutable struct {
	p     sound.Player
	muted bool
}

func (m *mutable) Play(e sound.Effect, pitch float64) {
	if m.muted {
		return
	}
	m.p.Play(e, pitch)
}
