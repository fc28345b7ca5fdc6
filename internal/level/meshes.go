package level

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MeshID names a mesh known to the render collaborator.
type MeshID uint8

const (
	MeshNone MeshID = iota

	MeshFloor
	MeshWall
	MeshWallTL
	MeshWallT
	MeshWallTR
	MeshWallL
	MeshWallR
	MeshWallBL
	MeshWallB
	MeshWallBR
	MeshWallBRInner
	MeshWallBLInner
	MeshWallTRInner
	MeshWallTLInner

	MeshMix
	MeshEmitter
	MeshGoal
	MeshHook
	MeshIngot
	MeshMix2
	MeshNut
	MeshBolt
	MeshCollect
	MeshSwap
	MeshSplit

	MeshLaser
	MeshGoalLight

	MeshSelectorVert1
	MeshSelectorVert2
	MeshSelectorOO
	MeshSelectorV3
	MeshSelectorSwap
	MeshSelectorOOO

	NumMeshes
)

// MaterialID names a material known to the render collaborator.
type MaterialID uint8

const (
	MaterialDefault MaterialID = iota
	MaterialFloor
	MaterialWall
	MaterialLocked
	MaterialUnlocked
	MaterialLaser
	MaterialGoalLight
	MaterialSelector
)

// IsWall reports whether m is one of the wall tile meshes.
func (m MeshID) IsWall() bool { return m >= MeshWall && m <= MeshWallTLInner }

// IsDevice reports whether m is a device body mesh.
func (m MeshID) IsDevice() bool { return m >= MeshMix && m <= MeshSplit }

// IsSelector reports whether m is a selector handle mesh.
func (m MeshID) IsSelector() bool { return m >= MeshSelectorVert1 && m <= MeshSelectorOOO }

// Footprint returns the unit cells a mesh covers relative to its transform
// origin: the device footprint for device meshes, the handle shape for
// selector meshes and a single cell for everything else.
func (m MeshID) Footprint() []Offset {
	switch {
	case m.IsDevice():
		return catalog[m-MeshMix].cells
	case m.IsSelector():
		return SelectorShape(m-MeshSelectorVert1+MeshID(SelectorVert1)).Cells()
	default:
		return selectorCells[SelectorVert1]
	}
}

// Instance is one draw request: a mesh with a material at a world transform,
// optionally tinted.
type Instance struct {
	Mesh      MeshID
	Material  MaterialID
	Transform mgl32.Mat4
	Tint      mgl32.Vec3
	Tinted    bool
}

// MeshSink receives the instances to draw this frame.
type MeshSink interface {
	PushMesh(Instance)
}

// CellTransform places a mesh at grid cell (x, y) on the ground plane.
func CellTransform(x, y int) mgl32.Mat4 {
	return mgl32.Translate3D(float32(x), 0, float32(y))
}

// BuildMeshes pushes the devices, goal lights, lasers and static tiles of the
// current state to sink.
func (l *Level) BuildMeshes(sink MeshSink) {
	l.EachRoot(func(x, y int, h DeviceHandle) bool {
		d := l.devices[h]
		xf := CellTransform(x, y)
		if d.Type.Kind == Goal {
			sink.PushMesh(Instance{
				Mesh:      MeshGoalLight,
				Material:  MaterialGoalLight,
				Transform: xf,
				Tint:      d.Type.Value.Color,
				Tinted:    true,
			})
		}
		sink.PushMesh(Instance{
			Mesh:      d.Type.Mesh(),
			Material:  d.Type.Material(d.Locked),
			Transform: xf,
		})
		return true
	})

	for _, las := range l.lasers {
		// Start half a cell in so the beam leaves from the device centre.
		xf := mgl32.Translate3D(float32(las.X)+0.5, 0, float32(las.Y)).
			Mul4(mgl32.Scale3D(float32(las.Length), 1, 1))
		sink.PushMesh(Instance{
			Mesh:      MeshLaser,
			Material:  MaterialLaser,
			Transform: xf,
			Tint:      las.Value.Color,
			Tinted:    true,
		})
	}

	for i, m := range l.tiles.Cells() {
		if m == MeshNone {
			continue
		}
		x, y := l.tiles.Coords(i)
		mat := MaterialFloor
		if m.IsWall() {
			mat = MaterialWall
		}
		sink.PushMesh(Instance{Mesh: m, Material: mat, Transform: CellTransform(x, y)})
	}
}
