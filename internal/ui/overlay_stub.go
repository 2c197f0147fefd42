//go:build !ebiten

package ui

import (
	"image"

	"terragen/internal/core"
)

// Layers carries the region structures an overlay can draw.
type Layers struct {
	Boundaries *core.Mask
	Seeds      []image.Point
	Velocities []core.Vec2
}

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(int) *Overlay { return &Overlay{} }

// SetScale is a no-op in headless builds.
func (o *Overlay) SetScale(int) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, Layers) {}
