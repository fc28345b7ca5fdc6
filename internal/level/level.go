// Package level implements the puzzle board: the cell grid and its static
// floor layer, the device arena, laser propagation and the placement
// operations used while the player drags devices around.
package level

import (
	"log/slog"

	"beamgrid/internal/core"
)

// Bounds is the inclusive cell rectangle that carries floor or wall tiles.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Level owns the grid, the device arena and the lasers of the current tick.
type Level struct {
	Name string

	grid    *core.Grid[Cell]
	floor   *core.Grid[Cell]
	tiles   *core.Grid[MeshID]
	ends    *core.Grid[LaserEnd]
	devices []Device
	lasers  []Laser
	bounds  Bounds

	goals          int
	goalsFulfilled int

	log *slog.Logger
}

// New returns a level of the given size where every cell is Void.
func New(w, h int) *Level {
	l := &Level{
		grid:   core.NewGrid[Cell](w, h),
		floor:  core.NewGrid[Cell](w, h),
		tiles:  core.NewGrid[MeshID](w, h),
		ends:   core.NewGrid[LaserEnd](w, h),
		bounds: Bounds{MaxX: w - 1, MaxY: h - 1},
		log:    slog.Default(),
	}
	l.grid.Fill(voidCell)
	l.floor.Fill(voidCell)
	return l
}

// SetLogger replaces the level's logger. A nil logger restores slog.Default.
func (l *Level) SetLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	l.log = log
}

// Size returns the grid dimensions.
func (l *Level) Size() core.Size { return core.Size{W: l.grid.W, H: l.grid.H} }

// Bounds returns the tiled area of the level.
func (l *Level) Bounds() Bounds { return l.bounds }

// SetBounds overrides the tiled area used for camera framing.
func (l *Level) SetBounds(b Bounds) { l.bounds = b }

// SetFloor sets the static cell kind at (x, y) in both the floor layer and
// the live grid, and records the tile mesh drawn there (MeshNone for none).
// kind must be Void, Empty or Wall.
func (l *Level) SetFloor(x, y int, kind CellKind, mesh MeshID) {
	var c Cell
	switch kind {
	case Empty:
		c = emptyCell
	case Wall:
		c = wallCell
	default:
		c = voidCell
	}
	l.floor.Set(x, y, c)
	l.grid.Set(x, y, c)
	l.tiles.Set(x, y, mesh)
}

// FillFloor makes every cell Empty floor.
func (l *Level) FillFloor() {
	for x := 0; x < l.grid.W; x++ {
		for y := 0; y < l.grid.H; y++ {
			l.SetFloor(x, y, Empty, MeshFloor)
		}
	}
}

// BuildBorder turns the outermost ring of cells into walls.
func (l *Level) BuildBorder() {
	w, h := l.grid.W, l.grid.H
	for x := 0; x < w; x++ {
		l.SetFloor(x, 0, Wall, MeshWall)
		l.SetFloor(x, h-1, Wall, MeshWall)
	}
	for y := 0; y < h; y++ {
		l.SetFloor(0, y, Wall, MeshWall)
		l.SetFloor(w-1, y, Wall, MeshWall)
	}
}

// Get returns the cell at (x, y). Callers must bounds-check first; an
// out-of-range coordinate panics.
func (l *Level) Get(x, y int) Cell { return l.grid.At(x, y) }

// Floor returns the static layer cell at (x, y).
func (l *Level) Floor(x, y int) Cell { return l.floor.At(x, y) }

// IsInBounds reports whether (x, y) lies on the grid.
func (l *Level) IsInBounds(x, y int) bool { return l.grid.InBounds(x, y) }

// IsInBoundsAndEmpty is true only for Empty cells.
func (l *Level) IsInBoundsAndEmpty(x, y int) bool {
	return l.grid.InBounds(x, y) && l.grid.At(x, y).Kind == Empty
}

// IsPseudoInBoundsAndEmpty is true for Empty and Void cells. Dragging uses it
// to preview a device over the void without committing the drop.
func (l *Level) IsPseudoInBoundsAndEmpty(x, y int) bool {
	if !l.grid.InBounds(x, y) {
		return false
	}
	k := l.grid.At(x, y).Kind
	return k == Empty || k == Void
}

// IsInBoundsAndLaserTravelable is true for Empty and Void cells: lasers
// cross the void but stop at walls and devices.
func (l *Level) IsInBoundsAndLaserTravelable(x, y int) bool {
	return l.IsPseudoInBoundsAndEmpty(x, y)
}

// Device returns a copy of the arena entry for h.
func (l *Level) Device(h DeviceHandle) Device { return l.devices[h] }

// NumDevices returns the size of the device arena. Handles are 0..n-1.
func (l *Level) NumDevices() int { return len(l.devices) }

// EachRoot calls fn for every DeviceRoot cell in grid scan order (columns
// left to right, rows top to bottom). Returning false stops the scan.
func (l *Level) EachRoot(fn func(x, y int, h DeviceHandle) bool) {
	for i, c := range l.grid.Cells() {
		if c.Kind != DeviceRoot {
			continue
		}
		x, y := l.grid.Coords(i)
		if !fn(x, y, c.Dev) {
			return
		}
	}
}

// Clone returns an independent deep copy of the level, including the device
// arena. Lasers are not copied; call BuildLasers on the clone.
func (l *Level) Clone() *Level {
	return &Level{
		Name:    l.Name,
		grid:    l.grid.Clone(),
		floor:   l.floor.Clone(),
		tiles:   l.tiles.Clone(),
		ends:    core.NewGrid[LaserEnd](l.ends.W, l.ends.H),
		devices: append([]Device(nil), l.devices...),
		bounds:  l.bounds,
		goals:   l.goals,
		log:     l.log,
	}
}
