package level

import "fmt"

// ForcePlace creates a device and writes its footprint at (x, y) without any
// validity check. It is meant for level construction, where the map has
// already been checked; footprint cells must be in bounds.
func (l *Level) ForcePlace(x, y int, t DeviceType, locked bool) DeviceHandle {
	h := DeviceHandle(len(l.devices))
	l.devices = append(l.devices, Device{X: x, Y: y, Locked: locked, Type: t})
	if t.Kind == Goal {
		l.goals++
	}
	l.placeExisting(x, y, h)
	l.log.Debug("placed device", "device", t, "x", x, "y", y, "locked", locked)
	return h
}

func (l *Level) placeExisting(x, y int, h DeviceHandle) {
	d := &l.devices[h]
	d.X, d.Y = x, y
	for _, off := range d.Type.Cells() {
		kind := DeviceEtc
		if off == (Offset{}) {
			kind = DeviceRoot
		}
		l.grid.Set(x+off.X, y+off.Y, Cell{Kind: kind, Dev: h})
	}
}

// MayPlaceAt reports whether every footprint cell of t at (x, y) is in
// bounds and Empty.
func (l *Level) MayPlaceAt(x, y int, t DeviceType) bool {
	for _, off := range t.Cells() {
		if !l.IsInBoundsAndEmpty(x+off.X, y+off.Y) {
			return false
		}
	}
	return true
}

// MayPseudoPlaceAt is MayPlaceAt that also accepts Void cells.
func (l *Level) MayPseudoPlaceAt(x, y int, t DeviceType) bool {
	for _, off := range t.Cells() {
		if !l.IsPseudoInBoundsAndEmpty(x+off.X, y+off.Y) {
			return false
		}
	}
	return true
}

// ClearAt restores the footprint of device h, as if anchored at (x, y), to
// the static floor layer. Every footprint cell must be in bounds.
func (l *Level) ClearAt(x, y int, h DeviceHandle) {
	for _, off := range l.devices[h].Type.Cells() {
		cx, cy := x+off.X, y+off.Y
		if !l.IsInBounds(cx, cy) {
			panic(fmt.Sprintf("level: ClearAt(%d,%d) footprint cell (%d,%d) out of bounds", x, y, cx, cy))
		}
		l.grid.Set(cx, cy, l.floor.At(cx, cy))
	}
}

// lift removes device h from both its drag origin (x, y) and wherever it
// currently is; during a drag these differ.
func (l *Level) lift(x, y int, h DeviceHandle) {
	d := l.devices[h]
	l.ClearAt(x, y, h)
	l.ClearAt(d.X, d.Y, h)
}

// MoveFrom moves device h, whose drag started at (x, y), towards (toX, toY)
// and reports whether the new position is a legal drop point.
//
// A strictly valid destination is taken and reported true. A destination
// that is only valid over the void is still taken as a preview but reported
// false. Anything else puts the device back at (x, y) and reports false.
func (l *Level) MoveFrom(x, y int, h DeviceHandle, toX, toY int) bool {
	l.lift(x, y, h)

	t := l.devices[h].Type
	switch {
	case l.MayPlaceAt(toX, toY, t):
		l.placeExisting(toX, toY, h)
		return true
	case l.MayPseudoPlaceAt(toX, toY, t):
		l.placeExisting(toX, toY, h)
		return false
	default:
		l.placeExisting(x, y, h)
		return false
	}
}

// FinishMoveFrom commits a drag: device h lands at (toX, toY) if that is a
// strictly valid placement and snaps back to (x, y) otherwise. It reports
// whether the device landed at the destination.
func (l *Level) FinishMoveFrom(x, y int, h DeviceHandle, toX, toY int) bool {
	l.lift(x, y, h)

	if l.MayPlaceAt(toX, toY, l.devices[h].Type) {
		l.placeExisting(toX, toY, h)
		l.log.Debug("finished move", "device", h, "x", toX, "y", toY)
		return true
	}
	l.placeExisting(x, y, h)
	l.log.Debug("move rejected, snapped back", "device", h, "x", x, "y", y)
	return false
}
