// Package cluster partitions a square grid into Voronoi regions and
// optionally relaxes the region seeds towards their centroids.
package cluster

import (
	"fmt"
	"image"

	"terragen/internal/core"
)

// Name is the registry key of the cluster generator.
const Name = "cluster"

// Partition is the outcome of one tessellation run.
type Partition struct {
	Labels *core.LabelGrid
	// Seeds holds the seed set used for the final assignment pass.
	Seeds []image.Point
}

// Generator assigns every cell to its nearest seed.
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
		return nil, fmt.Errorf("cluster: %w", err)
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

// Partition draws the seeds, assigns cells and runs the configured number of
// relaxation rounds.
func (g *Generator) Partition() *Partition {
	run := core.StartRun(g.obs, Name, g.cfg.Size, g.seed)
	p := g.partition(run)
	run.EmitEvent(core.Event{Stage: core.StageDone, Count: len(p.Labels.Cells())})
	return p
}

func (g *Generator) partition(run *core.Run) *Partition {
	seeds := InitSeeds(g.rng, g.cfg.Size, g.cfg.Clusters)
	run.Emit(core.StageSeeds, 0, 0)

	labels := Assign(g.cfg.Size, seeds)
	run.Emit(core.StageAssign, 0, g.cfg.Iterations)

	for i := 0; i < g.cfg.Iterations; i++ {
		seeds = Relax(labels, seeds)
		labels = Assign(g.cfg.Size, seeds)
		run.Emit(core.StageRelax, i+1, g.cfg.Iterations)
	}
	return &Partition{Labels: labels, Seeds: seeds}
}

// Generate satisfies core.Generator by normalizing the label grid into a
// heightmap. A single populated region yields a degenerate, all-zero grid.
func (g *Generator) Generate() (*core.Heightmap, error) {
	run := core.StartRun(g.obs, Name, g.cfg.Size, g.seed)
	p := g.partition(run)
	h := Heightmap(p.Labels)
	if err := run.Finish(h); err != nil {
		return h, fmt.Errorf("cluster: %w", err)
	}
	return h, nil
}

// Heightmap converts labels into raw float values, one per cell.
func Heightmap(labels *core.LabelGrid) *core.Heightmap {
	h := core.NewGrid[float64](labels.W, labels.H)
	out := h.Cells()
	for i, l := range labels.Cells() {
		out[i] = float64(l)
	}
	return h
}

// InitSeeds draws n seeds uniformly from [0,size)², x before y. Duplicates
// are allowed.
func InitSeeds(rng *core.RNG, size, n int) []image.Point {
	seeds := make([]image.Point, n)
	for i := range seeds {
		x := rng.IntN(size)
		y := rng.IntN(size)
		seeds[i] = image.Pt(x, y)
	}
	return seeds
}

// Assign labels every cell of a size×size grid with the index of its nearest
// seed. Ties go to the lowest index.
func Assign(size int, seeds []image.Point) *core.LabelGrid {
	labels := core.NewSquare[int](size)
	cells := labels.Cells()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			best, bestDist := 0, -1
			for i, s := range seeds {
				dx, dy := x-s.X, y-s.Y
				// Squared distances order identically to Euclidean ones.
				d := dx*dx + dy*dy
				if bestDist < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			cells[y*size+x] = best
		}
	}
	return labels
}

// Relax moves every seed to the centroid of the cells currently labelled with
// its index, truncating towards zero. Seeds without cells keep their position.
// The input slice is not modified.
func Relax(labels *core.LabelGrid, seeds []image.Point) []image.Point {
	n := len(seeds)
	sumX := make([]int, n)
	sumY := make([]int, n)
	count := make([]int, n)
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			l := labels.At(x, y)
			sumX[l] += x
			sumY[l] += y
			count[l]++
		}
	}
	out := make([]image.Point, n)
	for i := range out {
		if count[i] == 0 {
			out[i] = seeds[i]
			continue
		}
		out[i] = image.Pt(sumX[i]/count[i], sumY[i]/count[i])
	}
	return out
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
			Name:    "Clusters",
			Summary: "Voronoi tessellation with Lloyd relaxation",
			Params: []core.Parameter{
				core.IntParam("clusters", "Clusters", g.cfg.Clusters),
				core.IntParam("iterations", "Iterations", g.cfg.Iterations),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Size", Type: core.ParamTypeInt, Step: 32, Min: 8, Max: 1024, HasMin: true, HasMax: true},
		{Key: "clusters", Label: "Clusters", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 256, HasMin: true, HasMax: true},
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 32, HasMin: true, HasMax: true},
	}
}

func init() {
	core.Register(Name, func(cfg map[string]string, obs core.Observer) (core.Generator, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
		g, err := New(c, obs)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
