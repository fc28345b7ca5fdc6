package render

import (
	"image/color"

	"beamgrid/internal/level"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	floorColor    = color.RGBA{R: 44, G: 46, B: 54, A: 255}
	wallColor     = color.RGBA{R: 92, G: 88, B: 104, A: 255}
	lockedColor   = color.RGBA{R: 120, G: 120, B: 128, A: 255}
	unlockedColor = color.RGBA{R: 214, G: 168, B: 72, A: 255}
	defaultColor  = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// Fill returns the colour an instance is painted with: the material's base
// colour, multiplied by the tint for tinted instances. Lasers, goal lights
// and selector handles take the tint directly.
func Fill(in level.Instance) color.RGBA {
	switch in.Material {
	case level.MaterialFloor:
		return floorColor
	case level.MaterialWall:
		return wallColor
	case level.MaterialLocked:
		return lockedColor
	case level.MaterialUnlocked:
		return unlockedColor
	case level.MaterialLaser:
		return vecRGBA(in.Tint, 230)
	case level.MaterialGoalLight:
		return vecRGBA(in.Tint, 255)
	case level.MaterialSelector:
		return vecRGBA(in.Tint, 255)
	}
	if in.Tinted {
		return multiply(defaultColor, in.Tint)
	}
	return defaultColor
}

// Outline reports whether the instance is drawn as an outline rather than
// filled.
func Outline(in level.Instance) bool { return in.Material == level.MaterialSelector }

func vecRGBA(v mgl32.Vec3, a uint8) color.RGBA {
	return color.RGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: a}
}

func channel(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}

func multiply(c color.RGBA, tint mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * clamp01(tint[0])),
		G: uint8(float32(c.G) * clamp01(tint[1])),
		B: uint8(float32(c.B) * clamp01(tint[2])),
		A: c.A,
	}
}

func clamp01(f float32) float32 { return max(0, min(1, f)) }
