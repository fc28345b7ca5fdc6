package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"beamgrid/internal/levels"
	"beamgrid/internal/solve"
)

func main() {
	name := flag.String("level", "", "level name or .tmx path; empty solves every registered level")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	maxMoves := flag.Int("max-moves", 0, "most devices a solution may move (0 = no limit)")
	timeout := flag.Duration("timeout", time.Minute, "give up on a level after this long")
	flag.Parse()

	names := levels.Names()
	if *name != "" {
		names = []string{*name}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	quiet := slog.New(slog.DiscardHandler)
	fmt.Printf("Solving %d level(s) (%d workers)\n", len(names), *workers)
	failed := false
	for _, n := range names {
		l, err := levels.Load(n, quiet)
		if err != nil {
			log.Fatal(err)
		}

		start := time.Now()
		lctx, cancel := context.WithTimeout(ctx, *timeout)
		res, err := solve.Solve(lctx, l, solve.Options{Workers: *workers, MaxMoves: *maxMoves})
		cancel()
		elapsed := time.Since(start).Round(time.Millisecond)

		switch {
		case err != nil:
			fmt.Printf("%-16s gave up after %s (%d nodes): %v\n", n, elapsed, res.Nodes, err)
			failed = true
		case !res.Solved:
			fmt.Printf("%-16s no solution (%d nodes, %s)\n", n, res.Nodes, elapsed)
			failed = true
		default:
			fmt.Printf("%-16s solved with %d move(s) (%d nodes, %s)\n", n, len(res.Moves), res.Nodes, elapsed)
			for i, m := range res.Moves {
				fmt.Printf("%4d) %s\n", i+1, m)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}
