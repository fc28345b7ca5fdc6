package level

import (
	"testing"

	"beamgrid/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
)

var (
	red   = Color(1, 0, 0)
	green = Color(0, 1, 0)
	blue  = Color(0, 0, 1)
)

// newRoom returns a w*h level of empty floor surrounded by walls.
func newRoom(w, h int) *Level {
	l := New(w, h)
	l.FillFloor()
	l.BuildBorder()
	return l
}

func snapshot(l *Level) []Cell {
	return append([]Cell(nil), l.grid.Cells()...)
}

// checkFootprints verifies that the grid holds exactly the footprints of the
// device arena: one root at each anchor, etc cells at the other offsets and
// nothing else.
func checkFootprints(t *testing.T, l *Level) {
	t.Helper()
	want := make(map[[2]int]Cell)
	for i := 0; i < l.NumDevices(); i++ {
		h := DeviceHandle(i)
		d := l.Device(h)
		for _, off := range d.Type.Cells() {
			pos := [2]int{d.X + off.X, d.Y + off.Y}
			if prev, dup := want[pos]; dup {
				t.Fatalf("devices #%d and #%d overlap at %v", prev.Dev, h, pos)
			}
			kind := DeviceEtc
			if off == (Offset{}) {
				kind = DeviceRoot
			}
			want[pos] = Cell{Kind: kind, Dev: h}
		}
	}
	for x := 0; x < l.Size().W; x++ {
		for y := 0; y < l.Size().H; y++ {
			got := l.Get(x, y)
			exp, ok := want[[2]int{x, y}]
			if !ok {
				if got.IsDevice() {
					t.Fatalf("cell (%d,%d) = %v but no device claims it", x, y, got)
				}
				continue
			}
			if got != exp {
				t.Fatalf("cell (%d,%d) = %v, expected %v", x, y, got, exp)
			}
		}
	}
}

func TestCatalogBoundsMatchCells(t *testing.T) {
	for k := DeviceKind(0); k < numDeviceKinds; k++ {
		ty := DeviceType{Kind: k}
		maxX, maxY := 0, 0
		hasAnchor := false
		for _, off := range ty.Cells() {
			if off == (Offset{}) {
				hasAnchor = true
			}
			maxX = max(maxX, off.X)
			maxY = max(maxY, off.Y)
		}
		w, h := ty.Bounds()
		if w != maxX+1 || h != maxY+1 {
			t.Fatalf("%v: bounds %dx%d do not match cells %v", k, w, h, ty.Cells())
		}
		if !hasAnchor {
			t.Fatalf("%v: footprint has no anchor cell", k)
		}
		if ty.Selector() == SelectorNone {
			t.Fatalf("%v: every catalogued device should be draggable", k)
		}
		if parsed, ok := ParseDeviceKind(k.String()); !ok || parsed != k {
			t.Fatalf("ParseDeviceKind(%q) = %v, %v", k.String(), parsed, ok)
		}
		if ty.Mesh().Footprint() == nil || len(ty.Mesh().Footprint()) != len(ty.Cells()) {
			t.Fatalf("%v: mesh footprint disagrees with device footprint", k)
		}
	}
}

func TestCellPredicates(t *testing.T) {
	l := New(4, 1)
	l.SetFloor(1, 0, Empty, MeshFloor)
	l.SetFloor(2, 0, Wall, MeshWall)
	l.ForcePlace(3, 0, DeviceType{Kind: Nut}, false)

	cases := []struct {
		x                           int
		empty, pseudo, travel, inBd bool
	}{
		{-1, false, false, false, false},
		{0, false, true, true, true},
		{1, true, true, true, true},
		{2, false, false, false, true},
		{3, false, false, false, true},
		{4, false, false, false, false},
	}
	for _, tc := range cases {
		if got := l.IsInBoundsAndEmpty(tc.x, 0); got != tc.empty {
			t.Fatalf("IsInBoundsAndEmpty(%d) = %v", tc.x, got)
		}
		if got := l.IsPseudoInBoundsAndEmpty(tc.x, 0); got != tc.pseudo {
			t.Fatalf("IsPseudoInBoundsAndEmpty(%d) = %v", tc.x, got)
		}
		if got := l.IsInBoundsAndLaserTravelable(tc.x, 0); got != tc.travel {
			t.Fatalf("IsInBoundsAndLaserTravelable(%d) = %v", tc.x, got)
		}
		if got := l.IsInBounds(tc.x, 0); got != tc.inBd {
			t.Fatalf("IsInBounds(%d) = %v", tc.x, got)
		}
	}
}

func TestSingleEmitterInBorderedRoom(t *testing.T) {
	l := New(5, 5)
	l.BuildBorder()
	l.ForcePlace(1, 1, NewEmitter(White), true)

	l.BuildLasers()

	want := []Laser{{X: 1, Y: 1, Length: 3, Value: White}}
	if diff := cmp.Diff(want, l.Lasers()); diff != "" {
		t.Fatalf("lasers mismatch (-want +got):\n%s", diff)
	}
	if v, ok := l.LaserEndAt(4, 1); !ok || v != White {
		t.Fatalf("laser should end at the border wall, got %v %v", v, ok)
	}
}

func TestBuildLasersIsDeterministic(t *testing.T) {
	l := newRoom(9, 6)
	l.ForcePlace(1, 1, NewEmitter(red), true)
	l.ForcePlace(1, 2, NewEmitter(blue), true)
	l.ForcePlace(4, 1, DeviceType{Kind: Mix}, false)
	l.ForcePlace(7, 2, NewGoal(Color(0.7071, 0, 0.7071)), true)

	l.BuildLasers()
	first := append([]Laser(nil), l.Lasers()...)
	firstEnds := append([]LaserEnd(nil), l.ends.Cells()...)
	firstGoals := l.GoalsFulfilled()

	for i := 0; i < 3; i++ {
		l.BuildLasers()
		if diff := cmp.Diff(first, l.Lasers()); diff != "" {
			t.Fatalf("run %d lasers differ (-first +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(firstEnds, l.ends.Cells()); diff != "" {
			t.Fatalf("run %d laser ends differ (-first +got):\n%s", i, diff)
		}
		if l.GoalsFulfilled() != firstGoals {
			t.Fatalf("run %d fulfilled %d goals, first run %d", i, l.GoalsFulfilled(), firstGoals)
		}
	}
}

func TestMixAveragesAndNormalizes(t *testing.T) {
	l := newRoom(8, 6)
	l.ForcePlace(1, 1, NewEmitter(red), true)
	l.ForcePlace(1, 2, NewEmitter(blue), true)
	l.ForcePlace(4, 1, DeviceType{Kind: Mix}, false)

	l.BuildLasers()

	lasers := l.Lasers()
	if len(lasers) != 3 {
		t.Fatalf("expected 3 lasers, got %d: %+v", len(lasers), lasers)
	}
	out := lasers[2]
	if out.X != 4 || out.Y != 2 || out.Length != 3 {
		t.Fatalf("mix output at (%d,%d) len %d, expected (4,2) len 3", out.X, out.Y, out.Length)
	}
	want := mgl32.Vec3{0.5, 0, 0.5}.Normalize()
	if !out.Value.Matches(LaserValue{Color: want}) {
		t.Fatalf("mix colour = %v, expected %v", out.Value.Color, want)
	}
}

func TestMixWithOneInputIsSilent(t *testing.T) {
	l := newRoom(8, 6)
	l.ForcePlace(1, 1, NewEmitter(red), true)
	l.ForcePlace(4, 1, DeviceType{Kind: Mix}, false)

	l.BuildLasers()

	if n := len(l.Lasers()); n != 1 {
		t.Fatalf("mix with a single input should not emit, got %d lasers", n)
	}
}

func TestGoalTolerance(t *testing.T) {
	cases := []struct {
		name  string
		input LaserValue
		want  int
	}{
		{"exact", red, 1},
		{"within two steps", Color(1, 2.0/255.0, 0), 1},
		{"three steps off", Color(1, 3.0/255.0, 0), 0},
		{"wrong colour", green, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newRoom(6, 3)
			l.ForcePlace(1, 1, NewEmitter(tc.input), true)
			l.ForcePlace(4, 1, NewGoal(red), true)
			l.BuildLasers()
			if got := l.GoalsFulfilled(); got != tc.want {
				t.Fatalf("fulfilled = %d, expected %d", got, tc.want)
			}
			if l.Goals() != 1 {
				t.Fatalf("goal count = %d", l.Goals())
			}
		})
	}
}

func TestHookSplitsIntoTwoGoals(t *testing.T) {
	l := newRoom(7, 5)
	l.ForcePlace(1, 1, NewEmitter(green), true)
	l.ForcePlace(3, 1, DeviceType{Kind: Hook}, false)
	l.ForcePlace(5, 1, NewGoal(green), true)
	l.ForcePlace(5, 2, NewGoal(green), true)

	l.BuildLasers()

	if got := len(l.Lasers()); got != 3 {
		t.Fatalf("expected emitter + two hook lasers, got %d", got)
	}
	if l.GoalsFulfilled() != 2 || l.Goals() != 2 {
		t.Fatalf("fulfilled %d of %d goals", l.GoalsFulfilled(), l.Goals())
	}
	if !l.Solved(false) {
		t.Fatal("level should be solved when idle")
	}
	if l.Solved(true) {
		t.Fatal("level must not count as solved mid-drag")
	}
}

func TestLevelWithoutGoalsIsSolvedWhenIdle(t *testing.T) {
	l := newRoom(5, 4)
	l.ForcePlace(1, 1, NewEmitter(green), true)
	l.BuildLasers()

	if l.Goals() != 0 {
		t.Fatalf("goal count = %d", l.Goals())
	}
	if !l.Solved(false) {
		t.Fatal("every goal of a goal-less level is fulfilled")
	}
	if l.Solved(true) {
		t.Fatal("level must not count as solved mid-drag")
	}
}

func TestLasersCrossTheVoid(t *testing.T) {
	l := New(6, 1)
	l.SetFloor(0, 0, Empty, MeshFloor)
	l.SetFloor(5, 0, Wall, MeshWall)
	l.ForcePlace(0, 0, NewEmitter(White), true)

	l.BuildLasers()

	if got := l.Lasers()[0].Length; got != 5 {
		t.Fatalf("laser over void should reach the wall, length %d", got)
	}
}

func TestLaserLeavingGridRecordsNoEnd(t *testing.T) {
	l := New(3, 1)
	l.FillFloor()
	l.ForcePlace(0, 0, NewEmitter(White), true)

	l.BuildLasers()

	if got := l.Lasers()[0].Length; got != 3 {
		t.Fatalf("length = %d, expected 3", got)
	}
	for x := 0; x < 3; x++ {
		if _, ok := l.LaserEndAt(x, 0); ok {
			t.Fatalf("no laser end expected at (%d,0)", x)
		}
	}
}

func TestMoveFromRejectedLeavesGridUntouched(t *testing.T) {
	l := newRoom(6, 6)
	h := l.ForcePlace(2, 2, DeviceType{Kind: Mix}, false)
	before := snapshot(l)

	if l.MoveFrom(2, 2, h, 0, 1) {
		t.Fatal("moving onto a wall must not be valid")
	}
	if diff := cmp.Diff(before, snapshot(l)); diff != "" {
		t.Fatalf("grid changed after rejected move (-before +after):\n%s", diff)
	}
	if d := l.Device(h); d.X != 2 || d.Y != 2 {
		t.Fatalf("device moved to (%d,%d)", d.X, d.Y)
	}
	checkFootprints(t, l)
}

func TestMoveFromOverVoidIsPseudoPlacement(t *testing.T) {
	l := New(6, 4)
	for x := 0; x < 3; x++ {
		for y := 0; y < 4; y++ {
			l.SetFloor(x, y, Empty, MeshFloor)
		}
	}
	h := l.ForcePlace(1, 1, DeviceType{Kind: Hook}, false)

	if l.MoveFrom(1, 1, h, 4, 1) {
		t.Fatal("a placement over the void is not a legal drop")
	}
	if c := l.Get(4, 1); c.Kind != DeviceRoot || c.Dev != h {
		t.Fatalf("device should preview at (4,1), cell is %v", c)
	}
	if c := l.Get(1, 1); c.Kind != Empty {
		t.Fatalf("origin should be cleared while previewing, cell is %v", c)
	}
	checkFootprints(t, l)

	if l.FinishMoveFrom(1, 1, h, 4, 1) {
		t.Fatal("releasing over the void must snap back")
	}
	if d := l.Device(h); d.X != 1 || d.Y != 1 {
		t.Fatalf("device should be back at (1,1), is at (%d,%d)", d.X, d.Y)
	}
	if c := l.Get(4, 1); c.Kind != Void {
		t.Fatalf("preview cell should revert to void, is %v", c)
	}
	checkFootprints(t, l)
}

func TestDragSequenceKeepsFootprintsConsistent(t *testing.T) {
	l := newRoom(8, 8)
	a := l.ForcePlace(1, 1, DeviceType{Kind: Collect}, false)
	l.ForcePlace(4, 4, DeviceType{Kind: Swap}, true)

	steps := []struct {
		x, y  int
		valid bool
	}{
		{2, 1, true},
		{3, 2, true},
		{4, 3, false}, // overlaps the swap
		{5, 2, true},
		{6, 5, false}, // runs into the bottom wall
	}
	for _, s := range steps {
		if got := l.MoveFrom(1, 1, a, s.x, s.y); got != s.valid {
			t.Fatalf("MoveFrom to (%d,%d) = %v, expected %v", s.x, s.y, got, s.valid)
		}
		checkFootprints(t, l)
	}

	if !l.FinishMoveFrom(1, 1, a, 5, 2) {
		t.Fatal("(5,2) should be a valid drop")
	}
	if d := l.Device(a); d.X != 5 || d.Y != 2 {
		t.Fatalf("device at (%d,%d), expected (5,2)", d.X, d.Y)
	}
	checkFootprints(t, l)
}

func TestClearAtOutOfBoundsPanics(t *testing.T) {
	l := newRoom(4, 4)
	h := l.ForcePlace(1, 1, DeviceType{Kind: Bolt}, false)
	defer func() {
		if recover() == nil {
			t.Fatal("ClearAt outside the grid should panic")
		}
	}()
	l.ClearAt(-1, 1, h)
}

func TestCloneIsIndependent(t *testing.T) {
	l := newRoom(6, 4)
	h := l.ForcePlace(1, 1, DeviceType{Kind: Ingot}, false)
	c := l.Clone()

	if !c.FinishMoveFrom(1, 1, h, 3, 2) {
		t.Fatal("clone move should succeed")
	}
	if d := l.Device(h); d.X != 1 || d.Y != 1 {
		t.Fatal("moving a device in the clone changed the original")
	}
	if l.Get(3, 2).Kind != Empty {
		t.Fatal("clone shares grid storage with the original")
	}
}

type captureSink struct {
	byMesh map[MeshID]int
	tinted []Instance
}

func (s *captureSink) PushMesh(in Instance) {
	if s.byMesh == nil {
		s.byMesh = make(map[MeshID]int)
	}
	s.byMesh[in.Mesh]++
	if in.Tinted {
		s.tinted = append(s.tinted, in)
	}
}

func TestBuildMeshes(t *testing.T) {
	l := newRoom(6, 4)
	l.ForcePlace(1, 1, NewEmitter(red), true)
	l.ForcePlace(4, 1, NewGoal(red), true)
	l.ForcePlace(2, 2, DeviceType{Kind: Mix}, false)
	l.BuildLasers()

	var sink captureSink
	l.BuildMeshes(&sink)

	if sink.byMesh[MeshEmitter] != 1 || sink.byMesh[MeshGoal] != 1 || sink.byMesh[MeshMix] != 1 {
		t.Fatalf("device meshes: %v", sink.byMesh)
	}
	if sink.byMesh[MeshGoalLight] != 1 || sink.byMesh[MeshLaser] != 1 {
		t.Fatalf("goal light / laser meshes: %v", sink.byMesh)
	}
	if got := sink.byMesh[MeshWall]; got != 2*6+2*2 {
		t.Fatalf("wall tiles = %d", got)
	}
	if got := sink.byMesh[MeshFloor]; got != 4*2 {
		t.Fatalf("floor tiles = %d", got)
	}
	for _, in := range sink.tinted {
		if in.Tint != red.Color {
			t.Fatalf("%v tinted %v, expected red", in.Mesh, in.Tint)
		}
	}
}

func TestSetupCameraFramesBounds(t *testing.T) {
	l := newRoom(10, 8)
	cam := camera.Default()
	vp := camera.Viewport{Width: 800, Height: 600}
	l.SetupCamera(cam, vp)

	if cam.Projection.Kind != camera.Orthographic {
		t.Fatal("level camera should be orthographic")
	}
	vpm := cam.ViewProjection(vp)
	b := l.Bounds()
	corners := []mgl32.Vec3{
		{float32(b.MinX), 0, float32(b.MinY)},
		{float32(b.MaxX + 1), 0, float32(b.MinY)},
		{float32(b.MinX), 0, float32(b.MaxY + 1)},
		{float32(b.MaxX + 1), 0, float32(b.MaxY + 1)},
	}
	for _, c := range corners {
		p, ok := camera.ProjectToScreen(vp, vpm, c)
		if !ok || p.X() < 0 || p.Y() < 0 || p.X() > vp.Width || p.Y() > vp.Height {
			t.Fatalf("corner %v projects to %v, outside the viewport", c, p)
		}
	}
}

func TestParametersReportSignals(t *testing.T) {
	l := newRoom(6, 3)
	l.Name = "bench"
	l.ForcePlace(1, 1, NewEmitter(red), true)
	l.ForcePlace(4, 1, NewGoal(red), true)
	l.BuildLasers()

	values := map[string]string{}
	for _, g := range l.Parameters().Groups {
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	want := map[string]string{
		"name": "bench", "w": "6", "h": "3", "devices": "2", "locked": "2",
		"lasers": "1", "goals": "1", "goals_fulfilled": "1",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}
}
