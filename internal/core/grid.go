package core

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// Heightmap is a grid of elevation-like values. Generators return it
// normalized to [0,1].
type Heightmap = Grid[float64]

// LabelGrid assigns every cell to a region index.
type LabelGrid = Grid[int]

// Mask flags individual cells.
type Mask = Grid[bool]

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// NewSquare allocates a size×size grid.
func NewSquare[T any](size int) *Grid[T] { return NewGrid[T](size, size) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.W+x] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid[T]) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{W: g.W, H: g.H, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Rows returns the grid as a slice of row slices sharing the backing array.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.H)
	for y := range rows {
		rows[y] = g.data[y*g.W : (y+1)*g.W]
	}
	return rows
}
