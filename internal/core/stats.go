package core

import "math"

// Summary holds descriptive statistics of a heightmap.
type Summary struct {
	Min, Max   float64
	Mean       float64
	StdDev     float64
	AboveLevel float64 // fraction of cells strictly above Level
	Level      float64
}

// Summarize computes statistics over h, counting cells above level.
func Summarize(h *Heightmap, level float64) Summary {
	cells := h.Cells()
	s := Summary{Level: level}
	if len(cells) == 0 {
		return s
	}
	s.Min, s.Max = MinMax(h)
	sum := 0.0
	above := 0
	for _, v := range cells {
		sum += v
		if v > level {
			above++
		}
	}
	n := float64(len(cells))
	s.Mean = sum / n
	variance := 0.0
	for _, v := range cells {
		d := v - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / n)
	s.AboveLevel = float64(above) / n
	return s
}
