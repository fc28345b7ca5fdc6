package core

import "fmt"

// Grid stores a 2D array of cells in column-major order: all rows of column 0
// come first, then column 1, and so on. Iterating the backing slice therefore
// visits columns left to right.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions filled with the zero
// value of T.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return x*g.H + y }

// Coords is the inverse of Index.
func (g *Grid[T]) Coords(i int) (int, int) { return i / g.H, i % g.H }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the value at (x, y). Out-of-range coordinates panic.
func (g *Grid[T]) At(x, y int) T {
	g.mustBeInBounds(x, y)
	return g.data[g.Index(x, y)]
}

// Set writes v at (x, y). Out-of-range coordinates panic.
func (g *Grid[T]) Set(x, y int, v T) {
	g.mustBeInBounds(x, y)
	g.data[g.Index(x, y)] = v
}

// Fill overwrites every cell with v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a copy of the grid with its own backing slice.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{W: g.W, H: g.H, data: append([]T(nil), g.data...)}
}

func (g *Grid[T]) mustBeInBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: grid access (%d,%d) outside %dx%d", x, y, g.W, g.H))
	}
}
