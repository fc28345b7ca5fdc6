//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"beamgrid/internal/app"
	"beamgrid/internal/camera"
	"beamgrid/internal/sound"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	boardW := cfg.Width - app.HUDWidth
	vp := camera.Viewport{Width: float32(boardW), Height: float32(cfg.Height)}
	s, err := app.NewSession(cfg, sound.NewEbitenPlayer(0.5), vp, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("beamgrid")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app.New(s)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
