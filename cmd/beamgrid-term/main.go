package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"beamgrid/internal/app"
	"beamgrid/internal/camera"
	"beamgrid/internal/sound"
	"beamgrid/internal/sound/speaker"
	"beamgrid/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file; the terminal is busy drawing")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if logger, err = cfg.NewLogger(f); err != nil {
			log.Fatal(err)
		}
	}

	var player sound.Player = sound.Nop{}
	if sp, err := speaker.New(); err != nil {
		// Non-fatal, the game runs silently.
		logger.Warn("audio unavailable", "err", err)
	} else {
		defer sp.Close()
		player = sp
	}

	s, err := app.NewSession(cfg, player, camera.Viewport{Width: 1, Height: 1}, logger)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, s, logger).Run(ctx, cfg.TPS)
	stop()
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
