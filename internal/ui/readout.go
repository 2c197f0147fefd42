package ui

import (
	"fmt"

	"terragen/internal/core"
)

// Readout summarises the frame currently on screen.
type Readout struct {
	Seed  int64
	Stats core.Summary
	// Regions and BoundaryCells are zero for generators without regions.
	Regions       int
	BoundaryCells int
	Degenerate    bool
}

// ReadoutLine is one line of the HUD readout. Warn lines are highlighted.
type ReadoutLine struct {
	Text string
	Warn bool
}

// Lines formats the readout for the HUD panel.
func (r Readout) Lines() []ReadoutLine {
	lines := []ReadoutLine{{Text: fmt.Sprintf("seed %d", r.Seed)}}
	if r.Degenerate {
		return append(lines, ReadoutLine{Text: "flat field", Warn: true})
	}
	lines = append(lines,
		ReadoutLine{Text: fmt.Sprintf("mean %.3f  sd %.3f", r.Stats.Mean, r.Stats.StdDev)},
		ReadoutLine{Text: fmt.Sprintf("above %.2f  %.0f%%", r.Stats.Level, r.Stats.AboveLevel*100)},
	)
	if r.Regions > 0 {
		lines = append(lines, ReadoutLine{Text: fmt.Sprintf("regions %d  edges %d", r.Regions, r.BoundaryCells)})
	}
	return lines
}
