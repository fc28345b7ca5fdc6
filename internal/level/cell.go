package level

import "fmt"

// CellKind is the type of a grid cell.
type CellKind uint8

const (
	// Void is outside the playable area. Nothing is placed there for good,
	// but lasers cross it and a dragged device may hover over it.
	Void CellKind = iota
	// Empty floor: devices can be placed here.
	Empty
	// Wall blocks both placement and lasers.
	Wall
	// DeviceRoot is the anchor cell of a device.
	DeviceRoot
	// DeviceEtc is any other cell covered by a device footprint.
	DeviceEtc
)

func (k CellKind) String() string {
	switch k {
	case Void:
		return "Void"
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case DeviceRoot:
		return "DeviceRoot"
	case DeviceEtc:
		return "DeviceEtc"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// DeviceHandle is a stable index into a level's device arena.
type DeviceHandle int32

// NoDevice is the handle stored in cells that do not hold a device.
const NoDevice DeviceHandle = -1

// Cell is one grid entry. Dev is only meaningful for DeviceRoot and
// DeviceEtc cells.
type Cell struct {
	Kind CellKind
	Dev  DeviceHandle
}

var (
	voidCell  = Cell{Kind: Void, Dev: NoDevice}
	emptyCell = Cell{Kind: Empty, Dev: NoDevice}
	wallCell  = Cell{Kind: Wall, Dev: NoDevice}
)

// IsDevice reports whether the cell belongs to a device footprint.
func (c Cell) IsDevice() bool { return c.Kind == DeviceRoot || c.Kind == DeviceEtc }

func (c Cell) String() string {
	if c.IsDevice() {
		return fmt.Sprintf("%s(#%d)", c.Kind, c.Dev)
	}
	return c.Kind.String()
}

// Offset is a footprint cell relative to a device anchor.
type Offset struct {
	X, Y int
}
