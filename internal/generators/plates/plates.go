// Package plates derives a heightmap from the relative motion of tectonic
// plates laid out by a Voronoi partition.
//
// The model is a heuristic: every plate moves with one unit velocity and the
// height of a cell is the velocity difference to its left and top neighbours.
// Pairs of plates moving apart produce troughs, converging plates ridges.
package plates

import (
	"fmt"

	"terragen/internal/core"
	"terragen/internal/generators/cluster"
)

// Name is the registry key of the plate generator.
const Name = "plates"

// Tectonics bundles the intermediate structures of one run.
type Tectonics struct {
	Plates     *cluster.Partition
	Velocities []core.Vec2
	// Boundaries marks cells whose right or bottom neighbour lies on another
	// plate. It is diagnostic only and does not gate the height computation.
	Boundaries    *core.Mask
	BoundaryCells int
	Heightmap     *core.Heightmap
}

// Generator builds tectonic heightmaps.
type Generator struct {
	cfg     Config
	seed    int64
	rng     *core.RNG
	obs     core.Observer
	regions *cluster.Generator
}

// New validates cfg and returns a generator. The plate layout comes from a
// cluster generator sharing the resolved seed; velocities come from this
// generator's own RNG. obs may be nil.
func New(cfg Config, obs core.Observer) (*Generator, error) {
	if err := core.Validate(cfg); err != nil {
		return nil, fmt.Errorf("plates: %w", err)
	}
	seed := core.ResolveSeed(cfg.Seed)
	cfg.Seed = &seed
	regions, err := cluster.New(cluster.Config{
		Size:       cfg.Size,
		Clusters:   cfg.PlatesClusters,
		Iterations: cfg.PlatesIterations,
		Seed:       &seed,
	}, obs)
	if err != nil {
		return nil, fmt.Errorf("plates: %w", err)
	}
	return &Generator{cfg: cfg, seed: seed, rng: core.NewRNG(seed), obs: obs, regions: regions}, nil
}

// Name returns the generator identifier.
func (g *Generator) Name() string { return Name }

// Size returns the edge length of generated grids.
func (g *Generator) Size() int { return g.cfg.Size }

// Seed returns the resolved seed.
func (g *Generator) Seed() int64 { return g.seed }

// Config returns the configuration with the seed resolved.
func (g *Generator) Config() Config { return g.cfg }

// Generate returns the normalized tectonic heightmap.
func (g *Generator) Generate() (*core.Heightmap, error) {
	t, err := g.Tectonics()
	return t.Heightmap, err
}

// Tectonics runs the full pipeline and returns every intermediate structure.
// On a flat field the heightmap is all zeros and the error wraps
// core.ErrDegenerateField.
func (g *Generator) Tectonics() (*Tectonics, error) {
	run := core.StartRun(g.obs, Name, g.cfg.Size, g.seed)

	plates := g.regions.Partition()
	velocities := Velocities(g.rng, g.cfg.PlatesClusters)
	run.Emit(core.StageVelocities, 0, 0)

	mask, boundary := Boundaries(plates.Labels)
	run.EmitEvent(core.Event{Stage: core.StageBoundaries, Count: boundary})

	h := RelativeVelocity(plates.Labels, velocities)
	run.Emit(core.StageRelative, 0, 0)

	if g.cfg.Smoothing > 0 {
		h = core.GaussianBlur(h, g.cfg.Smoothing)
		run.Emit(core.StageSmooth, 0, 0)
	}

	t := &Tectonics{
		Plates:        plates,
		Velocities:    velocities,
		Boundaries:    mask,
		BoundaryCells: boundary,
		Heightmap:     h,
	}
	if err := run.Finish(h); err != nil {
		return t, fmt.Errorf("plates: %w", err)
	}
	return t, nil
}

// Velocities draws one unit velocity per plate.
func Velocities(rng *core.RNG, plates int) []core.Vec2 {
	out := make([]core.Vec2, plates)
	for i := range out {
		out[i] = rng.UnitVector()
	}
	return out
}

// RelativeVelocity computes the raw height field: for each cell the X
// velocity difference to its left neighbour plus the Y velocity difference to
// its top neighbour. The first column and row lack the respective neighbour
// and contribute zero on that axis.
func RelativeVelocity(labels *core.LabelGrid, velocities []core.Vec2) *core.Heightmap {
	h := core.NewGrid[float64](labels.W, labels.H)
	out := h.Cells()
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			v := velocities[labels.At(x, y)]
			sum := 0.0
			if x > 0 {
				sum += v.X - velocities[labels.At(x-1, y)].X
			}
			if y > 0 {
				sum += v.Y - velocities[labels.At(x, y-1)].Y
			}
			out[y*labels.W+x] = sum
		}
	}
	return h
}

// Boundaries flags cells whose right or bottom neighbour carries a different
// label and returns the mask with the number of flagged cells.
func Boundaries(labels *core.LabelGrid) (*core.Mask, int) {
	mask := core.NewGrid[bool](labels.W, labels.H)
	count := 0
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			l := labels.At(x, y)
			edge := (x+1 < labels.W && labels.At(x+1, y) != l) ||
				(y+1 < labels.H && labels.At(x, y+1) != l)
			if edge {
				mask.Set(x, y, true)
				count++
			}
		}
	}
	return mask, count
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
			Name:    "Plates",
			Summary: "Plate layout and boundary smoothing",
			Params: []core.Parameter{
				core.IntParam("plates_clusters", "Plates", g.cfg.PlatesClusters),
				core.IntParam("plates_iterations", "Relaxation", g.cfg.PlatesIterations),
				core.FloatParam("smoothing", "Smoothing", g.cfg.Smoothing),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "size", Label: "Size", Type: core.ParamTypeInt, Step: 32, Min: 8, Max: 1024, HasMin: true, HasMax: true},
		{Key: "plates_clusters", Label: "Plates", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "plates_iterations", Label: "Relaxation", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 16, HasMin: true, HasMax: true},
		{Key: "smoothing", Label: "Smoothing", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 16, HasMin: true, HasMax: true},
	}
}

func init() {
	core.Register(Name, func(cfg map[string]string, obs core.Observer) (core.Generator, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, fmt.Errorf("plates: %w", err)
		}
		g, err := New(c, obs)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
