// Package ui draws the viewer HUD and debug overlays.
package ui

import "terragen/internal/core"

// Target is the generator state the HUD inspects. It may additionally
// implement core.ParameterControlsProvider and the parameter setter
// interfaces to make values adjustable.
type Target interface {
	Name() string
	Size() int
	Parameters() core.ParameterSnapshot
	Readout() Readout
}
