package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
)

// Config holds the command-line configuration shared by the frontends.
type Config struct {
	Level    string
	Scale    int
	TPS      int
	Seed     int64
	Mute     bool
	LogLevel string
	Width    int
	Height   int
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Level:    "intro",
		Scale:    1,
		TPS:      60,
		Seed:     42,
		LogLevel: "info",
		Width:    960,
		Height:   640,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Level, "level", c.Level, "level name or path to a .tmx map")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window size multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for sound pitch jitter")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "start with sound muted")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels, including the HUD")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
}

// NewLogger builds a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("app: -log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
