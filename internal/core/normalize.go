package core

import "math"

// MinMax returns the smallest and largest value in h.
func MinMax(h *Heightmap) (float64, float64) {
	cells := h.Cells()
	if len(cells) == 0 {
		return 0, 0
	}
	lo, hi := cells[0], cells[0]
	for _, v := range cells[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Normalize linearly rescales h in place so its minimum becomes 0 and its
// maximum 1. A grid that already spans exactly [0,1] is left unchanged.
//
// When every cell holds the same value the grid is zero-filled and
// ErrDegenerateField is returned. A grid holding NaN or an infinity is
// zero-filled as well and ErrNonFiniteField is returned.
func Normalize(h *Heightmap) error {
	cells := h.Cells()
	for _, v := range cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			clear(cells)
			return ErrNonFiniteField
		}
	}
	lo, hi := MinMax(h)
	if hi == lo {
		clear(cells)
		return ErrDegenerateField
	}
	span := hi - lo
	for i, v := range cells {
		cells[i] = (v - lo) / span
	}
	return nil
}
