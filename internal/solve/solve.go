// Package solve searches a level for device placements that light every
// goal. The search is exhaustive over the unlocked devices, bounded by how
// many of them may be moved, and spread over a pool of workers.
package solve

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"beamgrid/internal/level"
)

// Move relocates one device.
type Move struct {
	Device       level.DeviceHandle
	Type         level.DeviceType
	FromX, FromY int
	ToX, ToY     int
}

func (m Move) String() string {
	return fmt.Sprintf("%s #%d (%d,%d) -> (%d,%d)", m.Type, m.Device, m.FromX, m.FromY, m.ToX, m.ToY)
}

// Options bound the search.
type Options struct {
	// Workers is the number of goroutines; zero means one per CPU.
	Workers int
	// MaxMoves caps how many devices a solution may move; zero means all
	// unlocked devices.
	MaxMoves int
}

// Result is the outcome of a search.
type Result struct {
	Moves  []Move
	Solved bool
	// Nodes counts the positions whose lasers were evaluated.
	Nodes int
}

type job struct {
	index int
	// first is the level after the first unlocked device made its choice.
	first *level.Level
	moves []Move
	depth int
}

type outcome struct {
	index int
	moves []Move
	found bool
	// aborted marks a job cut short by cancellation; its lack of a solution
	// proves nothing.
	aborted bool
	nodes   int
}

// collector settles job outcomes in job order. A solution is only accepted
// once every earlier job has finished without one.
type collector struct {
	done    []outcome
	seen    []bool
	settled int
}

func newCollector(n int) *collector {
	return &collector{done: make([]outcome, n), seen: make([]bool, n)}
}

// add records o and returns the earliest solution if it is now settled.
func (c *collector) add(o outcome) ([]Move, bool) {
	c.done[o.index], c.seen[o.index] = o, true
	for c.settled < len(c.done) && c.seen[c.settled] {
		d := c.done[c.settled]
		if d.found {
			return d.moves, true
		}
		if d.aborted {
			return nil, false
		}
		c.settled++
	}
	return nil, false
}

// Solve searches l without modifying it. Among all solutions it returns the
// first in enumeration order, so results do not depend on the worker count.
func Solve(ctx context.Context, l *level.Level, opts Options) (Result, error) {
	base := l.Clone()
	base.SetLogger(slog.New(slog.DiscardHandler))
	base.BuildLasers()
	if base.Solved(false) {
		return Result{Solved: true, Nodes: 1}, nil
	}

	devs := Unlocked(base)
	if len(devs) == 0 {
		return Result{Nodes: 1}, nil
	}
	budget := opts.MaxMoves
	if budget <= 0 || budget > len(devs) {
		budget = len(devs)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := expand(base, devs[0])
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan job)
	results := make(chan outcome)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				s := searcher{ctx: ctx, devs: devs}
				moves, found := s.search(j.first, 1, budget-j.depth, j.moves)
				o := outcome{index: j.index, moves: moves, found: found, aborted: !found && s.aborted, nodes: s.nodes}
				select {
				case results <- o:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		defer close(queue)
		for _, j := range jobs {
			select {
			case queue <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Jobs are collected until every job before the earliest solution has
	// reported, then the rest are cancelled.
	var res Result
	c := newCollector(len(jobs))
	for o := range results {
		res.Nodes += o.nodes
		if moves, ok := c.add(o); ok {
			res.Moves, res.Solved = moves, true
			cancel()
			break
		}
	}
	for range results {
	}
	if !res.Solved && ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, nil
}

// expand lists the choices for the first unlocked device: stay, then every
// strictly valid destination in scan order.
func expand(l *level.Level, h level.DeviceHandle) []job {
	jobs := []job{{index: 0, first: l}}
	d := l.Device(h)
	for _, to := range destinations(l, h) {
		c := l.Clone()
		c.FinishMoveFrom(d.X, d.Y, h, to[0], to[1])
		jobs = append(jobs, job{
			index: len(jobs),
			first: c,
			moves: []Move{{Device: h, Type: d.Type, FromX: d.X, FromY: d.Y, ToX: to[0], ToY: to[1]}},
			depth: 1,
		})
	}
	return jobs
}

// destinations returns the anchors other than its current one where h may
// be dropped.
func destinations(l *level.Level, h level.DeviceHandle) [][2]int {
	d := l.Device(h)
	b := l.Bounds()
	var out [][2]int
	for x := b.MinX; x <= b.MaxX; x++ {
		for y := b.MinY; y <= b.MaxY; y++ {
			if x == d.X && y == d.Y {
				continue
			}
			c := l.Clone()
			if c.FinishMoveFrom(d.X, d.Y, h, x, y) {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// Unlocked returns the handles of the devices the player may move, in grid
// scan order.
func Unlocked(l *level.Level) []level.DeviceHandle {
	var out []level.DeviceHandle
	l.EachRoot(func(_, _ int, h level.DeviceHandle) bool {
		if !l.Device(h).Locked {
			out = append(out, h)
		}
		return true
	})
	return out
}

type searcher struct {
	ctx     context.Context
	devs    []level.DeviceHandle
	nodes   int
	aborted bool
}

// search tries device devs[i] and the ones after it, moving at most budget
// of them.
func (s *searcher) search(l *level.Level, i, budget int, moves []Move) ([]Move, bool) {
	if s.ctx.Err() != nil {
		s.aborted = true
		return nil, false
	}
	l.BuildLasers()
	s.nodes++
	if l.Solved(false) {
		return moves, true
	}
	if i == len(s.devs) || budget == 0 {
		return nil, false
	}
	if m, ok := s.search(l, i+1, budget, moves); ok {
		return m, true
	}
	h := s.devs[i]
	d := l.Device(h)
	for _, to := range destinations(l, h) {
		c := l.Clone()
		c.FinishMoveFrom(d.X, d.Y, h, to[0], to[1])
		next := append(moves[:len(moves):len(moves)], Move{Device: h, Type: d.Type, FromX: d.X, FromY: d.Y, ToX: to[0], ToY: to[1]})
		if m, ok := s.search(c, i+1, budget-1, next); ok {
			return m, true
		}
	}
	return nil, false
}
