// Package mapload builds levels from Tiled maps. The first layer is a tile
// layer holding floor and wall tiles; the first object group holds one tile
// object per device.
package mapload

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"path"
	"strconv"
	"strings"

	"beamgrid/internal/level"

	"github.com/lafriks/go-tiled"
)

var (
	// ErrMissingLayer is returned when the map lacks the tile layer or the
	// object group.
	ErrMissingLayer = errors.New("mapload: missing layer")
	// ErrNoFloor is returned when the tile layer has no tiles at all.
	ErrNoFloor = errors.New("mapload: map has no tiles")
	// ErrOutOfBounds is returned when a device footprint leaves the grid.
	ErrOutOfBounds = errors.New("mapload: device outside the grid")
	// ErrOverlap is returned when a device footprint covers another device.
	ErrOverlap = errors.New("mapload: devices overlap")
)

// Option configures loading.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used while loading. The loaded level keeps it.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Local tile ids in the tileset.
const (
	tileWallTL  = 0
	tileWallT   = 1
	tileWallTR  = 2
	tileWallL   = 16
	tileFloor   = 17
	tileWallR   = 18
	tileWallBL  = 32
	tileWallB   = 33
	tileWallBR  = 34
	tileWallBRI = 48
	tileWallBLI = 50
	tileWallTRI = 80
	tileWallTLI = 82
)

var wallMeshes = map[uint32]level.MeshID{
	tileWallTL:  level.MeshWallTL,
	tileWallT:   level.MeshWallT,
	tileWallTR:  level.MeshWallTR,
	tileWallL:   level.MeshWallL,
	tileWallR:   level.MeshWallR,
	tileWallBL:  level.MeshWallBL,
	tileWallB:   level.MeshWallB,
	tileWallBR:  level.MeshWallBR,
	tileWallBRI: level.MeshWallBRInner,
	tileWallBLI: level.MeshWallBLInner,
	tileWallTRI: level.MeshWallTRInner,
	tileWallTLI: level.MeshWallTLInner,
}

// Local tile ids of device objects.
var objectKinds = map[uint32]level.DeviceKind{
	3:  level.Emitter,
	4:  level.Goal,
	5:  level.Mix,
	6:  level.Hook,
	7:  level.Ingot,
	8:  level.Mix2,
	9:  level.Nut,
	10: level.Bolt,
	11: level.Collect,
	12: level.Swap,
	13: level.Split,
}

// LoadFile reads a .tmx file from disk.
func LoadFile(name string, opts ...Option) (*level.Level, error) {
	m, err := tiled.LoadFile(name)
	if err != nil {
		return nil, fmt.Errorf("mapload: %s: %w", name, err)
	}
	return build(name, m, newOptions(opts))
}

// LoadFS reads a .tmx file from fsys, resolving external tilesets relative
// to it.
func LoadFS(fsys fs.FS, name string, opts ...Option) (*level.Level, error) {
	m, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("mapload: %s: %w", name, err)
	}
	return build(name, m, newOptions(opts))
}

func build(name string, m *tiled.Map, o options) (*level.Level, error) {
	l, err := fromMap(m, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	l.Name = strings.TrimSuffix(base, path.Ext(base))
	o.log.Info("loaded map", "name", l.Name, "w", m.Width, "h", m.Height, "devices", l.NumDevices())
	return l, nil
}

// FromMap converts a decoded Tiled map into a level.
func FromMap(m *tiled.Map, opts ...Option) (*level.Level, error) {
	return fromMap(m, newOptions(opts))
}

func fromMap(m *tiled.Map, o options) (*level.Level, error) {
	if len(m.Layers) == 0 {
		return nil, fmt.Errorf("%w: no tile layer", ErrMissingLayer)
	}
	if len(m.ObjectGroups) == 0 {
		return nil, fmt.Errorf("%w: no object group", ErrMissingLayer)
	}

	l := level.New(m.Width, m.Height)
	l.SetLogger(o.log)
	if err := loadTiles(l, m.Layers[0], m.Width, m.Height, o.log); err != nil {
		return nil, err
	}
	if err := loadObjects(l, m, m.ObjectGroups[0], o.log); err != nil {
		return nil, err
	}
	return l, nil
}

func loadTiles(l *level.Level, layer *tiled.Layer, w, h int, log *slog.Logger) error {
	if len(layer.Tiles) < w*h {
		return fmt.Errorf("%w: layer %q has %d tiles, expected %d", ErrMissingLayer, layer.Name, len(layer.Tiles), w*h)
	}

	var b level.Bounds
	found := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := layer.Tiles[y*w+x]
			if t == nil || t.IsNil() {
				continue
			}
			if !found {
				b = level.Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
				found = true
			}
			b.MinX, b.MaxX = min(b.MinX, x), max(b.MaxX, x)
			b.MinY, b.MaxY = min(b.MinY, y), max(b.MaxY, y)

			switch mesh, wall := wallMeshes[t.ID]; {
			case t.ID == tileFloor:
				l.SetFloor(x, y, level.Empty, level.MeshFloor)
			case wall:
				l.SetFloor(x, y, level.Wall, mesh)
			default:
				log.Debug("unknown tile left as void", "id", t.ID, "x", x, "y", y)
			}
		}
	}
	if !found {
		return ErrNoFloor
	}
	l.SetBounds(b)
	return nil
}

func loadObjects(l *level.Level, m *tiled.Map, group *tiled.ObjectGroup, log *slog.Logger) error {
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, obj := range group.Objects {
		if obj.GID == 0 {
			log.Debug("skipping non-tile object", "id", obj.ID, "name", obj.Name)
			continue
		}
		tile, err := m.TileGIDToTile(obj.GID)
		if err != nil {
			return fmt.Errorf("mapload: object %d: %w", obj.ID, err)
		}
		kind, ok := objectKinds[tile.ID]
		if !ok {
			log.Debug("skipping unknown object tile", "id", obj.ID, "tile", tile.ID)
			continue
		}

		// Tile objects are anchored at their bottom-left corner.
		x := int(math.Floor(obj.X / tw))
		y := int(math.Floor((obj.Y - th) / th))

		t := level.DeviceType{Kind: kind}
		if kind == level.Emitter || kind == level.Goal {
			v, err := parseColor(obj.Properties.GetString("color"))
			if err != nil {
				return fmt.Errorf("mapload: object %d: %w", obj.ID, err)
			}
			t.Value = v
		}
		// Devices may sit on void or walls, but never on each other.
		for _, off := range t.Cells() {
			cx, cy := x+off.X, y+off.Y
			if !l.IsInBounds(cx, cy) {
				return fmt.Errorf("%w: %v at (%d,%d)", ErrOutOfBounds, kind, x, y)
			}
			if c := l.Get(cx, cy); c.IsDevice() {
				return fmt.Errorf("%w: %v at (%d,%d) covers %v", ErrOverlap, kind, x, y, c)
			}
		}
		l.ForcePlace(x, y, t, obj.Properties.GetBool("locked"))
	}
	return nil
}

// parseColor reads a Tiled colour property, "#aarrggbb" or "#rrggbb". An
// empty string is white. Alpha is ignored.
func parseColor(s string) (level.LaserValue, error) {
	if s == "" {
		return level.White, nil
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 8:
		hex = hex[2:]
	case 6:
	default:
		return level.LaserValue{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return level.LaserValue{}, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return level.Color(
		float32(v>>16&0xff)/255,
		float32(v>>8&0xff)/255,
		float32(v&0xff)/255,
	), nil
}
