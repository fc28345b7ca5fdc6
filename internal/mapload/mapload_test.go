package mapload

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"beamgrid/internal/level"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSmallMap(t *testing.T) {
	l, err := LoadFile(filepath.Join("testdata", "small.tmx"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if l.Name != "small" {
		t.Fatalf("name = %q", l.Name)
	}
	if diff := cmp.Diff(level.Bounds{MinX: 0, MinY: 0, MaxX: 5, MaxY: 4}, l.Bounds()); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}

	cells := []struct {
		x, y int
		kind level.CellKind
	}{
		{0, 0, level.Wall},
		{5, 4, level.Wall},
		{3, 1, level.Empty},
		{1, 1, level.DeviceRoot},
		{2, 2, level.DeviceRoot},
		{2, 3, level.DeviceEtc},
	}
	for _, c := range cells {
		if got := l.Get(c.x, c.y).Kind; got != c.kind {
			t.Fatalf("cell (%d,%d) = %v, expected %v", c.x, c.y, got, c.kind)
		}
	}

	if l.NumDevices() != 3 || l.Goals() != 1 {
		t.Fatalf("devices = %d, goals = %d", l.NumDevices(), l.Goals())
	}
	emitter := l.Device(l.Get(1, 1).Dev)
	if emitter.Type.Kind != level.Emitter || !emitter.Locked {
		t.Fatalf("emitter = %+v", emitter)
	}
	if !emitter.Type.Value.Matches(level.Color(1, 0, 0)) {
		t.Fatalf("emitter colour = %v", emitter.Type.Value.Color)
	}
	if mix := l.Device(l.Get(2, 2).Dev); mix.Type.Kind != level.Mix || mix.Locked {
		t.Fatalf("mix = %+v", mix)
	}

	l.BuildLasers()
	if !l.Solved(false) {
		t.Fatalf("red emitter should light the red goal, fulfilled %d/%d", l.GoalsFulfilled(), l.Goals())
	}
}

type meshCounter map[level.MeshID]int

func (m meshCounter) PushMesh(in level.Instance) { m[in.Mesh]++ }

func TestWallTilesKeepTheirMeshes(t *testing.T) {
	l, err := LoadFile(filepath.Join("testdata", "small.tmx"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	counts := meshCounter{}
	l.BuildMeshes(counts)

	want := map[level.MeshID]int{
		level.MeshWallTL: 1, level.MeshWallTR: 1, level.MeshWallBL: 1, level.MeshWallBR: 1,
		level.MeshWallT: 4, level.MeshWallB: 4, level.MeshWallL: 3, level.MeshWallR: 3,
		level.MeshFloor: 12,
	}
	for mesh, n := range want {
		if counts[mesh] != n {
			t.Fatalf("mesh %d drawn %d times, expected %d", mesh, counts[mesh], n)
		}
	}
}

func TestLoadFS(t *testing.T) {
	l, err := LoadFS(os.DirFS("testdata"), "small.tmx")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if l.NumDevices() != 3 {
		t.Fatalf("devices = %d", l.NumDevices())
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		file string
		want error
	}{
		{"nofloor.tmx", ErrNoFloor},
		{"noobjects.tmx", ErrMissingLayer},
		{"outside.tmx", ErrOutOfBounds},
		{"overlap.tmx", ErrOverlap},
	}
	for _, tc := range cases {
		_, err := LoadFile(filepath.Join("testdata", tc.file))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, expected %v", tc.file, err, tc.want)
		}
	}
	if _, err := LoadFile(filepath.Join("testdata", "missing.tmx")); err == nil {
		t.Fatal("loading a missing file should fail")
	}
}

func TestLoadLogsToGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l, err := LoadFile(filepath.Join("testdata", "small.tmx"), WithLogger(log))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	for _, msg := range []string{"placed device", "loaded map"} {
		if !strings.Contains(buf.String(), msg) {
			t.Fatalf("log is missing %q:\n%s", msg, buf.String())
		}
	}

	// The level keeps the logger for later moves.
	buf.Reset()
	mix := l.Get(2, 2).Dev
	l.FinishMoveFrom(2, 2, mix, 3, 2)
	if !strings.Contains(buf.String(), "finished move") {
		t.Fatalf("move not logged to the load logger:\n%s", buf.String())
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want level.LaserValue
		ok   bool
	}{
		{"", level.White, true},
		{"#ff00ff00", level.Color(0, 1, 0), true},
		{"#0000ff", level.Color(0, 0, 1), true},
		{"#80ffffff", level.White, true},
		{"#12", level.LaserValue{}, false},
		{"#zzzzzz", level.LaserValue{}, false},
	}
	for _, tc := range cases {
		got, err := parseColor(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseColor(%q) err = %v", tc.in, err)
		}
		if tc.ok && !got.Matches(tc.want) {
			t.Fatalf("parseColor(%q) = %v, expected %v", tc.in, got.Color, tc.want.Color)
		}
	}
}
