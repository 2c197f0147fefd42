package core

import "math"

// blurTruncate is the kernel half-width in standard deviations.
const blurTruncate = 4.0

// maxBlurRadius bounds the kernel half-width; larger sigmas are truncated
// sooner than blurTruncate.
const maxBlurRadius = 256

// GaussianBlur returns a copy of h convolved with a Gaussian of the given
// sigma. The filter is separable: rows first, then columns. Samples outside
// the grid mirror the edge (d c b a | a b c d | d c b a). sigma <= 0 returns
// an unmodified copy.
func GaussianBlur(h *Heightmap, sigma float64) *Heightmap {
	out := h.Clone()
	if sigma <= 0 {
		return out
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := NewGrid[float64](h.W, h.H)
	src, dst := out.Cells(), tmp.Cells()
	for y := 0; y < h.H; y++ {
		row := y * h.W
		for x := 0; x < h.W; x++ {
			sum := 0.0
			for k, w := range kernel {
				sum += w * src[row+reflectIndex(x+k-radius, h.W)]
			}
			dst[row+x] = sum
		}
	}
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			sum := 0.0
			for k, w := range kernel {
				sum += w * dst[reflectIndex(y+k-radius, h.H)*h.W+x]
			}
			src[y*h.W+x] = sum
		}
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := maxBlurRadius
	if r := blurTruncate*sigma + 0.5; r < maxBlurRadius {
		radius = int(r)
	}
	kernel := make([]float64, 2*radius+1)
	denom := 2 * sigma * sigma
	total := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / denom)
		total += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}

// reflectIndex folds i into [0, n) by mirroring about the grid edges.
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
