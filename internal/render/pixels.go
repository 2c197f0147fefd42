package render

import (
	"fmt"
	"image/color"
	"math"

	"terragen/internal/core"
)

// Palette selects how heights map to colors.
type Palette string

const (
	// Gray maps 0 to black and 1 to white.
	Gray Palette = "gray"
	// Terrain maps heights through water, lowland, highland and snow with
	// slope shading.
	Terrain Palette = "terrain"
)

// ParsePalette validates a palette name.
func ParsePalette(name string) (Palette, error) {
	switch p := Palette(name); p {
	case Gray, Terrain:
		return p, nil
	default:
		return "", fmt.Errorf("%w: palette %q (want gray or terrain)", core.ErrInvalidParameter, name)
	}
}

// fillRGBA converts heights into RGBA pixels in buf, which must hold 4 bytes
// per cell.
func fillRGBA(buf []byte, h *core.Heightmap, p Palette) {
	if p == Terrain {
		fillTerrainRGBA(buf, h)
		return
	}
	for i, v := range h.Cells() {
		g := uint8(math.Round(clamp01(v) * 255))
		base := i * 4
		buf[base+0] = g
		buf[base+1] = g
		buf[base+2] = g
		buf[base+3] = 255
	}
}

func fillTerrainRGBA(buf []byte, h *core.Heightmap) {
	cells := h.Cells()
	slopes := make([]float64, len(cells))
	steepest := 0.0
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			idx := y*h.W + x
			base := cells[idx]
			maxDiff := 0.0
			if x > 0 {
				maxDiff = math.Max(maxDiff, math.Abs(base-cells[idx-1]))
			}
			if x+1 < h.W {
				maxDiff = math.Max(maxDiff, math.Abs(base-cells[idx+1]))
			}
			if y > 0 {
				maxDiff = math.Max(maxDiff, math.Abs(base-cells[idx-h.W]))
			}
			if y+1 < h.H {
				maxDiff = math.Max(maxDiff, math.Abs(base-cells[idx+h.W]))
			}
			slopes[idx] = maxDiff
			steepest = math.Max(steepest, maxDiff)
		}
	}

	for i, v := range cells {
		col := elevationColor(v)
		shade := 1.0
		if steepest > 0 {
			shade = 1 - slopeShade*slopes[i]/steepest
		}
		base := i * 4
		buf[base+0] = scaleColorComponent(col.R, shade)
		buf[base+1] = scaleColorComponent(col.G, shade)
		buf[base+2] = scaleColorComponent(col.B, shade)
		buf[base+3] = 255
	}
}

// fillMaskRGBA paints flagged cells with tint and clears the rest to
// transparent black.
func fillMaskRGBA(buf []byte, mask *core.Mask, tint color.RGBA) {
	for i, on := range mask.Cells() {
		base := i * 4
		if !on {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = tint.A
	}
}

// SeaLevel is the height of the water line in the terrain palette.
const SeaLevel = 0.35

// slopeShade is the darkening applied to the steepest cell.
const slopeShade = 0.45

var terrainStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 255}},
	{0.3, color.RGBA{R: 70, G: 105, B: 160, A: 255}},
	{SeaLevel, color.RGBA{R: 194, G: 178, B: 128, A: 255}},
	{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 255}},
	{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 255}},
	{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 255}},
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(terrainStops); i++ {
		curr := terrainStops[i]
		if t <= curr.t {
			prev := terrainStops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return terrainStops[len(terrainStops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
