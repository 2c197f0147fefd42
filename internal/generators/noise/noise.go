// Package noise implements fractal gradient (Perlin-style) noise heightmaps.
package noise

import (
	"fmt"
	"math"

	"terragen/internal/core"
)

// Name is the registry key of the noise generator.
const Name = "noise"

// Generator produces fractal gradient noise.
type Generator struct {
	cfg  Config
	seed int64
	rng  *core.RNG
	obs  core.Observer
}

// New validates cfg and returns a generator with its own seeded RNG. obs may
// be nil.
func New(cfg Config, obs core.Observer) (*Generator, error) {
	if err := core.Validate(cfg); err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}
	seed := core.ResolveSeed(cfg.Seed)
	cfg.Seed = &seed
	return &Generator{cfg: cfg, seed: seed, rng: core.NewRNG(seed), obs: obs}, nil
}

// Name returns the generator identifier.
func (g *Generator) Name() string { return Name }

// Size returns the edge length of generated grids.
func (g *Generator) Size() int { return g.cfg.Size }

// Seed returns the resolved seed.
func (g *Generator) Seed() int64 { return g.seed }

// Config returns the configuration with the seed resolved.
func (g *Generator) Config() Config { return g.cfg }

// Generate draws a fresh gradient field and accumulates the octaves into a
// normalized heightmap.
func (g *Generator) Generate() (*core.Heightmap, error) {
	run := core.StartRun(g.obs, Name, g.cfg.Size, g.seed)

	field := NewVectorField(g.rng, g.cfg.Size)
	run.Emit(core.StageVectorField, 0, 0)

	h := Accumulate(field, g.cfg.Scale, g.cfg.Octaves, func(octave int) {
		run.Emit(core.StageOctave, octave+1, g.cfg.Octaves)
	})
	if err := run.Finish(h); err != nil {
		return h, fmt.Errorf("noise: %w", err)
	}
	return h, nil
}

// VectorField holds one unit gradient per lattice corner of a size×size
// tiling lattice.
type VectorField struct {
	size  int
	grads *core.Grid[core.Vec2]
}

// NewVectorField draws (size+1)×(size+1) gradients with uniformly random
// directions, row by row.
func NewVectorField(rng *core.RNG, size int) *VectorField {
	grads := core.NewSquare[core.Vec2](size + 1)
	cells := grads.Cells()
	for i := range cells {
		cells[i] = rng.UnitVector()
	}
	return &VectorField{size: size, grads: grads}
}

// Size returns the lattice period.
func (f *VectorField) Size() int { return f.size }

// Gradient returns the gradient stored at lattice corner (x, y).
func (f *VectorField) Gradient(x, y int) core.Vec2 { return f.grads.At(x, y) }

// Sample evaluates single-octave noise at (x, y) after scaling both
// coordinates by scale. The lattice wraps every size cells.
func (f *VectorField) Sample(x, y, scale float64) float64 {
	xs, ys := x*scale, y*scale
	fx, fy := math.Floor(xs), math.Floor(ys)
	dx, dy := xs-fx, ys-fy

	x0 := wrap(int(fx), f.size)
	y0 := wrap(int(fy), f.size)
	x1 := (x0 + 1) % f.size
	y1 := (y0 + 1) % f.size

	d00 := f.dotGradient(x0, y0, dx, dy)
	d10 := f.dotGradient(x1, y0, dx-1, dy)
	d01 := f.dotGradient(x0, y1, dx, dy-1)
	d11 := f.dotGradient(x1, y1, dx-1, dy-1)

	u, v := Fade(dx), Fade(dy)
	return lerp(lerp(d00, d10, u), lerp(d01, d11, u), v)
}

func (f *VectorField) dotGradient(ix, iy int, dx, dy float64) float64 {
	return f.grads.At(ix, iy).Dot(core.Vec2{X: dx, Y: dy})
}

// Accumulate sums octaves of noise over a size×size grid, halving the
// amplitude and doubling the frequency each round, then divides by the total
// amplitude. onOctave, when non-nil, is called after each round.
func Accumulate(f *VectorField, scale float64, octaves int, onOctave func(octave int)) *core.Heightmap {
	h := core.NewSquare[float64](f.size)
	cells := h.Cells()
	frequency, amplitude, total := 1.0, 1.0, 0.0
	for o := 0; o < octaves; o++ {
		for y := 0; y < f.size; y++ {
			for x := 0; x < f.size; x++ {
				cells[y*f.size+x] += f.Sample(float64(x)*frequency, float64(y)*frequency, scale) * amplitude
			}
		}
		total += amplitude
		amplitude /= 2
		frequency *= 2
		if onOctave != nil {
			onOctave(o)
		}
	}
	if total > 0 {
		for i := range cells {
			cells[i] /= total
		}
	}
	return h
}

// Fade is the quintic smoothstep t³(6t²−15t+10).
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, w float64) float64 {
	return (1-w)*a + w*b
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

// Parameters returns the current configuration as a snapshot.
func (g *Generator) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("size", "Size", g.cfg.Size),
				core.Int64Param("seed", "Seed", g.seed),
			},
		},
		{
			Name:    "Noise",
			Summary: "Fractal gradient noise",
			Params: []core.Parameter{
				core.FloatParam("scale", "Scale", g.cfg.Scale),
				core.IntParam("octaves", "Octaves", g.cfg.Octaves),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Size", Type: core.ParamTypeInt, Step: 32, Min: 8, Max: 1024, HasMin: true, HasMax: true},
		{Key: "scale", Label: "Scale", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, HasMin: true},
		{Key: "octaves", Label: "Octaves", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 12, HasMin: true, HasMax: true},
	}
}

func init() {
	core.Register(Name, func(cfg map[string]string, obs core.Observer) (core.Generator, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, fmt.Errorf("noise: %w", err)
		}
		g, err := New(c, obs)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
