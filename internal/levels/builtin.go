package levels

import (
	"log/slog"

	"beamgrid/internal/level"
)

// room returns a w*h floor surrounded by walls.
func room(name string, w, h int, log *slog.Logger) *level.Level {
	l := level.New(w, h)
	l.SetLogger(log)
	l.Name = name
	l.FillFloor()
	l.BuildBorder()
	return l
}

// voidBridge has two islands of floor joined only by the void. The laser
// crosses the gap once the nut is out of its way; the nut can hover over
// the gap while dragged but never land there.
func voidBridge(log *slog.Logger) (*level.Level, error) {
	const w, h = 12, 5
	l := level.New(w, h)
	l.SetLogger(log)
	l.Name = "void-bridge"
	island := func(x0, x1 int) {
		for x := x0; x <= x1; x++ {
			for y := 0; y < h; y++ {
				kind, mesh := level.Empty, level.MeshFloor
				if x == x0 || x == x1 || y == 0 || y == h-1 {
					kind, mesh = level.Wall, level.MeshWall
				}
				l.SetFloor(x, y, kind, mesh)
			}
		}
	}
	island(0, 4)
	island(7, 11)
	// Open the facing walls of row 1 so the laser can leave and arrive.
	l.SetFloor(4, 1, level.Empty, level.MeshFloor)
	l.SetFloor(7, 1, level.Empty, level.MeshFloor)

	l.ForcePlace(1, 1, level.NewEmitter(level.Color(1, 0.8, 0)), true)
	l.ForcePlace(3, 1, level.DeviceType{Kind: level.Nut}, false)
	l.ForcePlace(9, 1, level.NewGoal(level.Color(1, 0.8, 0)), true)
	return l, nil
}

// sandbox holds one of every device for trying things out.
func sandbox(log *slog.Logger) (*level.Level, error) {
	l := room("sandbox", 16, 10, log)
	l.ForcePlace(1, 1, level.NewEmitter(level.Color(1, 0, 0)), true)
	l.ForcePlace(1, 2, level.NewEmitter(level.Color(0, 0, 1)), true)
	l.ForcePlace(1, 5, level.NewEmitter(level.Color(0, 1, 0)), true)
	l.ForcePlace(14, 2, level.NewGoal(level.Color(0.7071, 0, 0.7071)), true)
	l.ForcePlace(14, 5, level.NewGoal(level.Color(0, 1, 0)), true)

	// Line the rest up along the bottom wall.
	x := 3
	for _, k := range level.DeviceKinds() {
		if k == level.Emitter || k == level.Goal {
			continue
		}
		t := level.DeviceType{Kind: k}
		w, h := t.Bounds()
		l.ForcePlace(x, l.Size().H-1-h, t, false)
		x += w
	}
	return l, nil
}
