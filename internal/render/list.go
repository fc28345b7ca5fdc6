// Package render turns the mesh instances pushed by the level and the
// selector into screen-space rectangles and paints them.
package render

import (
	"sort"

	"beamgrid/internal/level"
)

// Layer orders instances back to front.
type Layer uint8

const (
	LayerTiles Layer = iota
	LayerDevices
	LayerLights
	LayerLasers
	LayerSelector
)

// LayerOf returns the draw layer of a mesh.
func LayerOf(m level.MeshID) Layer {
	switch {
	case m == level.MeshFloor || m.IsWall():
		return LayerTiles
	case m.IsDevice():
		return LayerDevices
	case m == level.MeshGoalLight:
		return LayerLights
	case m == level.MeshLaser:
		return LayerLasers
	default:
		return LayerSelector
	}
}

// List collects the instances of one frame. It implements level.MeshSink.
type List struct {
	items []level.Instance
}

// PushMesh implements level.MeshSink.
func (l *List) PushMesh(in level.Instance) { l.items = append(l.items, in) }

// Reset empties the list, keeping its storage.
func (l *List) Reset() { l.items = l.items[:0] }

// Len returns the number of collected instances.
func (l *List) Len() int { return len(l.items) }

// Sorted returns the instances ordered by layer. Instances within a layer
// keep their push order.
func (l *List) Sorted() []level.Instance {
	sort.SliceStable(l.items, func(i, j int) bool {
		return LayerOf(l.items[i].Mesh) < LayerOf(l.items[j].Mesh)
	})
	return l.items
}
