package plates

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terragen/internal/core"
	"terragen/internal/generators/cluster"
)

func newGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	g, err := New(cfg, nil)
	require.NoError(t, err)
	return g
}

func TestSinglePlateIsFlat(t *testing.T) {
	for _, smoothing := range []float64{0, 1.5} {
		g := newGenerator(t, Config{Size: 16, Smoothing: smoothing, PlatesClusters: 1, PlatesIterations: 2, Seed: core.SeedPtr(5)})
		tect, err := g.Tectonics()
		require.ErrorIs(t, err, core.ErrDegenerateField)
		assert.Zero(t, tect.BoundaryCells)
		for _, v := range tect.Heightmap.Cells() {
			require.Equal(t, 0.0, v)
		}
	}
}

func TestGenerateSpansUnitInterval(t *testing.T) {
	for _, smoothing := range []float64{0, 0.8, 2} {
		g := newGenerator(t, Config{Size: 32, Smoothing: smoothing, PlatesClusters: 6, PlatesIterations: 2, Seed: core.SeedPtr(17)})
		h, err := g.Generate()
		require.NoError(t, err)
		require.Equal(t, 32, h.W)
		lo, hi := core.MinMax(h)
		assert.Equal(t, 0.0, lo)
		assert.Equal(t, 1.0, hi)
	}
}

func TestRelativeVelocityColumnBoundary(t *testing.T) {
	labels := core.NewSquare[int](3)
	for y := 0; y < 3; y++ {
		labels.Set(1, y, 1)
		labels.Set(2, y, 1)
	}
	velocities := []core.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}}

	h := RelativeVelocity(labels, velocities)
	for y := 0; y < 3; y++ {
		assert.Equal(t, 0.0, h.At(0, y))
		assert.Equal(t, -1.0, h.At(1, y))
		assert.Equal(t, 0.0, h.At(2, y))
	}
}

func TestRelativeVelocityRowBoundary(t *testing.T) {
	labels := core.NewSquare[int](2)
	labels.Set(0, 1, 1)
	labels.Set(1, 1, 1)
	velocities := []core.Vec2{{X: 0, Y: -1}, {X: 0, Y: 1}}

	h := RelativeVelocity(labels, velocities)
	assert.Equal(t, []float64{0, 0, 2, 2}, h.Cells())
}

func TestRelativeVelocityZeroInsidePlates(t *testing.T) {
	g := newGenerator(t, Config{Size: 24, PlatesClusters: 5, PlatesIterations: 1, Seed: core.SeedPtr(3)})
	tect, err := g.Tectonics()
	require.NoError(t, err)

	raw := RelativeVelocity(tect.Plates.Labels, tect.Velocities)
	labels := tect.Plates.Labels
	for y := 0; y < labels.H; y++ {
		for x := 0; x < labels.W; x++ {
			l := labels.At(x, y)
			sameLeft := x == 0 || labels.At(x-1, y) == l
			sameTop := y == 0 || labels.At(x, y-1) == l
			if sameLeft && sameTop {
				require.Equal(t, 0.0, raw.At(x, y), "cell (%d,%d)", x, y)
			}
		}
	}
}

func TestBoundariesMask(t *testing.T) {
	labels := core.NewSquare[int](3)
	labels.Set(2, 0, 1)
	labels.Set(2, 1, 1)
	labels.Set(0, 2, 2)

	mask, count := Boundaries(labels)
	// 0 0 1
	// 0 0 1
	// 2 0 0
	want := []bool{
		false, true, false,
		true, true, true,
		true, false, false,
	}
	assert.Equal(t, want, mask.Cells())
	assert.Equal(t, 5, count)
}

func TestPlatesComposeClusterGenerator(t *testing.T) {
	cfg := Config{Size: 20, PlatesClusters: 4, PlatesIterations: 3, Seed: core.SeedPtr(99)}
	tect, err := newGenerator(t, cfg).Tectonics()
	require.NoError(t, err)

	regions, err := cluster.New(cluster.Config{Size: 20, Clusters: 4, Iterations: 3, Seed: core.SeedPtr(99)}, nil)
	require.NoError(t, err)
	want := regions.Partition()
	assert.Equal(t, want.Seeds, tect.Plates.Seeds)
	assert.Equal(t, want.Labels.Cells(), tect.Plates.Labels.Cells())

	assert.Equal(t, Velocities(core.NewRNG(99), 4), tect.Velocities)
	for _, v := range tect.Velocities {
		assert.InDelta(t, 1.0, v.Len(), 1e-12)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Size: 32, Smoothing: 1, PlatesClusters: 7, PlatesIterations: 2, Seed: core.SeedPtr(2024)}
	a, err := newGenerator(t, cfg).Generate()
	require.NoError(t, err)
	b, err := newGenerator(t, cfg).Generate()
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())

	cfg.Seed = core.SeedPtr(2025)
	c, err := newGenerator(t, cfg).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a.Cells(), c.Cells())
}

func TestSmoothingChangesOutput(t *testing.T) {
	sharp, err := newGenerator(t, Config{Size: 32, PlatesClusters: 6, PlatesIterations: 1, Seed: core.SeedPtr(8)}).Generate()
	require.NoError(t, err)
	soft, err := newGenerator(t, Config{Size: 32, Smoothing: 2, PlatesClusters: 6, PlatesIterations: 1, Seed: core.SeedPtr(8)}).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, sharp.Cells(), soft.Cells())
}

func TestNewRejectsInvalidParameters(t *testing.T) {
	for _, cfg := range []Config{
		{Size: 0, PlatesClusters: 2},
		{Size: 8, PlatesClusters: 0},
		{Size: 8, PlatesClusters: 2, PlatesIterations: -1},
		{Size: 8, PlatesClusters: 2, Smoothing: -0.5},
		{Size: 8, PlatesClusters: 2, Smoothing: math.Inf(1)},
		{Size: 8, PlatesClusters: 2, Smoothing: math.NaN()},
		{Size: 8, PlatesClusters: 2, Smoothing: 1e10},
	} {
		g, err := New(cfg, nil)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, core.ErrInvalidParameter)
	}
}

func TestTectonicsReportsBoundaryCount(t *testing.T) {
	var boundary []int
	var generators []string
	obs := core.ObserverFunc(func(e core.Event) {
		if e.Stage == core.StageBoundaries {
			boundary = append(boundary, e.Count)
		}
		if e.Stage == core.StageStart {
			generators = append(generators, e.Generator)
		}
	})
	g, err := New(Config{Size: 16, PlatesClusters: 3, Seed: core.SeedPtr(4)}, obs)
	require.NoError(t, err)
	tect, err := g.Tectonics()
	require.NoError(t, err)
	require.Len(t, boundary, 1)
	assert.Equal(t, tect.BoundaryCells, boundary[0])
	assert.Equal(t, []string{Name, cluster.Name}, generators)
}
