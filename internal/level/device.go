package level

import (
	"fmt"
	"strings"
)

// DeviceKind enumerates every device the game knows about.
type DeviceKind uint8

const (
	Mix DeviceKind = iota
	Emitter
	Goal
	Hook
	Ingot
	Mix2
	Nut
	Bolt
	Collect
	Swap
	Split

	numDeviceKinds
)

// SelectorShape is the drag-handle class a device belongs to.
type SelectorShape uint8

const (
	// SelectorNone means "not selectable"; the selector also uses it when
	// nothing is hovered.
	SelectorNone SelectorShape = iota
	SelectorVert1
	SelectorVert2
	SelectorOO
	SelectorV3
	SelectorSwap
	SelectorOOO
)

type deviceInfo struct {
	name     string
	cells    []Offset
	bounds   Offset
	selector SelectorShape
	mesh     MeshID
}

var catalog = [numDeviceKinds]deviceInfo{
	Mix:     {"mix", []Offset{{0, 0}, {0, 1}}, Offset{1, 2}, SelectorVert2, MeshMix},
	Emitter: {"emitter", []Offset{{0, 0}}, Offset{1, 1}, SelectorVert1, MeshEmitter},
	Goal:    {"goal", []Offset{{0, 0}}, Offset{1, 1}, SelectorVert1, MeshGoal},
	Hook:    {"hook", []Offset{{0, 0}, {0, 1}}, Offset{1, 2}, SelectorVert2, MeshHook},
	Ingot:   {"ingot", []Offset{{0, 0}}, Offset{1, 1}, SelectorVert1, MeshIngot},
	Mix2:    {"mix2", []Offset{{0, 0}, {0, 2}}, Offset{1, 3}, SelectorOO, MeshMix2},
	Nut:     {"nut", []Offset{{0, 0}}, Offset{1, 1}, SelectorVert1, MeshNut},
	Bolt:    {"bolt", []Offset{{0, 0}}, Offset{1, 1}, SelectorVert1, MeshBolt},
	Collect: {"collect", []Offset{{0, 0}, {0, 1}, {0, 2}}, Offset{1, 3}, SelectorV3, MeshCollect},
	Swap:    {"swap", []Offset{{0, 0}, {1, 2}}, Offset{2, 3}, SelectorSwap, MeshSwap},
	Split:   {"split", []Offset{{0, 0}, {0, 2}, {0, 4}}, Offset{1, 5}, SelectorOOO, MeshSplit},
}

var selectorCells = [...][]Offset{
	SelectorNone:  nil,
	SelectorVert1: {{0, 0}},
	SelectorVert2: {{0, 0}, {0, 1}},
	SelectorOO:    {{0, 0}, {0, 2}},
	SelectorV3:    {{0, 0}, {0, 1}, {0, 2}},
	SelectorSwap:  {{0, 0}, {1, 2}},
	SelectorOOO:   {{0, 0}, {0, 2}, {0, 4}},
}

func (k DeviceKind) String() string {
	if k < numDeviceKinds {
		return catalog[k].name
	}
	return fmt.Sprintf("DeviceKind(%d)", uint8(k))
}

// DeviceKinds returns every catalogued kind in declaration order.
func DeviceKinds() []DeviceKind {
	kinds := make([]DeviceKind, numDeviceKinds)
	for i := range kinds {
		kinds[i] = DeviceKind(i)
	}
	return kinds
}

// ParseDeviceKind maps a device name (as printed by String) back to its kind.
func ParseDeviceKind(name string) (DeviceKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := DeviceKind(0); k < numDeviceKinds; k++ {
		if catalog[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// Cells returns the footprint cells of the selector shape.
func (s SelectorShape) Cells() []Offset {
	if int(s) < len(selectorCells) {
		return selectorCells[s]
	}
	return nil
}

// Mesh returns the selector handle mesh for the shape.
func (s SelectorShape) Mesh() MeshID {
	if s == SelectorNone {
		return MeshNone
	}
	return MeshSelectorVert1 + MeshID(s-SelectorVert1)
}

// DeviceType is a device kind plus its kind-specific data. Value is the
// emitted colour for emitters and the expected colour for goals.
type DeviceType struct {
	Kind  DeviceKind
	Value LaserValue
}

// NewEmitter returns an emitter of the given colour.
func NewEmitter(v LaserValue) DeviceType { return DeviceType{Kind: Emitter, Value: v} }

// NewGoal returns a goal expecting the given colour.
func NewGoal(v LaserValue) DeviceType { return DeviceType{Kind: Goal, Value: v} }

// Cells returns the footprint offsets from the anchor. The slice is shared
// and must not be modified.
func (t DeviceType) Cells() []Offset { return catalog[t.Kind].cells }

// Bounds returns the width and height of the footprint's bounding box.
func (t DeviceType) Bounds() (int, int) {
	b := catalog[t.Kind].bounds
	return b.X, b.Y
}

// Selector returns the interaction shape used when dragging the device.
func (t DeviceType) Selector() SelectorShape { return catalog[t.Kind].selector }

// Mesh returns the mesh drawn at the device anchor.
func (t DeviceType) Mesh() MeshID { return catalog[t.Kind].mesh }

// Material picks the locked or unlocked material variant.
func (t DeviceType) Material(locked bool) MaterialID {
	if locked {
		return MaterialLocked
	}
	return MaterialUnlocked
}

func (t DeviceType) String() string {
	switch t.Kind {
	case Emitter, Goal:
		return fmt.Sprintf("%s%v", t.Kind, t.Value.Color)
	default:
		return t.Kind.String()
	}
}

// Device is one entry of the device arena. X and Y are the anchor position;
// only the placement operations write them.
type Device struct {
	X, Y   int
	Locked bool
	Type   DeviceType
}
