//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"terragen/internal/core"
	"terragen/internal/render"
)

// Layers carries the region structures an overlay can draw. Any field may be
// nil.
type Layers struct {
	Boundaries *core.Mask
	Seeds      []image.Point
	Velocities []core.Vec2
}

// Overlay draws optional debugging visuals on top of the heightmap: region
// boundaries (B), region seeds (C) and plate velocities (V).
type Overlay struct {
	scale          int
	showBoundaries bool
	showSeeds      bool
	showVelocities bool

	maskImg  *ebiten.Image
	lastMask *core.Mask

	pixel *ebiten.Image
}

var boundaryTint = color.RGBA{R: 170, G: 80, B: 27, A: 170}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale, showBoundaries: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetScale changes the pixel scale used when drawing.
func (o *Overlay) SetScale(scale int) { o.scale = scale }

// Update toggles layers from keyboard input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBoundaries = !o.showBoundaries
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showSeeds = !o.showSeeds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.showVelocities = !o.showVelocities
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, layers Layers) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showBoundaries && layers.Boundaries != nil {
		o.drawMask(screen, layers.Boundaries, scale)
	}
	if o.showSeeds {
		size := math.Max(float64(scale)*2, 3)
		for _, s := range layers.Seeds {
			cx := (float64(s.X) + 0.5) * float64(scale)
			cy := (float64(s.Y) + 0.5) * float64(scale)
			o.drawPoint(screen, cx, cy, size, color.RGBA{R: 225, G: 225, B: 230, A: 230})
		}
	}
	if o.showVelocities && len(layers.Velocities) == len(layers.Seeds) {
		o.drawVelocities(screen, layers.Seeds, layers.Velocities, scale)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask *core.Mask, scale int) {
	if mask != o.lastMask {
		if o.maskImg != nil {
			o.maskImg.Deallocate()
		}
		o.maskImg = ebiten.NewImageFromImage(render.MaskImage(mask, boundaryTint))
		o.lastMask = mask
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

// drawVelocities draws one arrow per plate anchored at its seed.
func (o *Overlay) drawVelocities(screen *ebiten.Image, seeds []image.Point, velocities []core.Vec2, scale int) {
	const headAngle = math.Pi / 6

	length := float64(scale) * 12
	headLength := math.Min(length*0.3, float64(scale)*4.5)
	thickness := math.Max(float64(scale)*0.8, 1)

	for i, v := range velocities {
		speed := v.Len()
		if speed == 0 {
			continue
		}
		nx, ny := v.X/speed, v.Y/speed
		sx := (float64(seeds[i].X) + 0.5) * float64(scale)
		sy := (float64(seeds[i].Y) + 0.5) * float64(scale)
		tipX := sx + nx*length
		tipY := sy + ny*length
		bodyEndX := tipX - nx*headLength
		bodyEndY := tipY - ny*headLength

		col := interpolateColor(float64(i) / math.Max(float64(len(velocities)-1), 1))
		o.drawLine(screen, sx, sy, bodyEndX, bodyEndY, thickness, col)

		angle := math.Atan2(ny, nx)
		leftX := tipX - math.Cos(angle+headAngle)*headLength
		leftY := tipY - math.Sin(angle+headAngle)*headLength
		rightX := tipX - math.Cos(angle-headAngle)*headLength
		rightY := tipY - math.Sin(angle-headAngle)*headLength
		o.drawLine(screen, tipX, tipY, leftX, leftY, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, rightX, rightY, thickness*0.85, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
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
