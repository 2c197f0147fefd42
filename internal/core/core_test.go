package core

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heightmapOf(w, h int, vals ...float64) *Heightmap {
	g := NewGrid[float64](w, h)
	copy(g.Cells(), vals)
	return g
}

func TestGridIndexingAndWrap(t *testing.T) {
	g := NewGrid[int](4, 3)
	g.Set(3, 2, 7)
	assert.Equal(t, 7, g.Cells()[g.Index(3, 2)])
	assert.Equal(t, 7, g.At(3, 2))
	assert.Equal(t, 11, g.Index(3, 2))

	x, y := g.Wrap(-1, 3)
	assert.Equal(t, 3, x)
	assert.Equal(t, 0, y)

	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 0, 0, 7}, rows[2])

	clone := g.Clone()
	clone.Set(0, 0, 1)
	assert.Equal(t, 0, g.At(0, 0), "clone must not share storage")
}

func TestNormalizeStretchesToUnitInterval(t *testing.T) {
	h := heightmapOf(2, 2, -2, 0, 2, 6)
	require.NoError(t, Normalize(h))
	assert.Equal(t, []float64{0, 0.25, 0.5, 1}, h.Cells())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	h := heightmapOf(3, 1, 0, 0.3, 1)
	before := append([]float64(nil), h.Cells()...)
	require.NoError(t, Normalize(h))
	assert.Equal(t, before, h.Cells())
	require.NoError(t, Normalize(h))
	assert.Equal(t, before, h.Cells())
}

func TestNormalizeFlatFieldIsDegenerate(t *testing.T) {
	h := heightmapOf(2, 2, 3.5, 3.5, 3.5, 3.5)
	err := Normalize(h)
	require.ErrorIs(t, err, ErrDegenerateField)
	for _, v := range h.Cells() {
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
}

func TestNormalizeRejectsNonFiniteValues(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		h := heightmapOf(2, 2, 0, bad, 0.5, 1)
		err := Normalize(h)
		require.ErrorIs(t, err, ErrNonFiniteField)
		assert.NotErrorIs(t, err, ErrDegenerateField)
		assert.Equal(t, []float64{0, 0, 0, 0}, h.Cells())
	}
}

func TestRunFinishNonFiniteIsNotDegenerate(t *testing.T) {
	var done Event
	run := StartRun(ObserverFunc(func(e Event) {
		if e.Stage == StageDone {
			done = e
		}
	}), "demo", 2, 1)
	err := run.Finish(heightmapOf(2, 1, math.NaN(), 1))
	require.ErrorIs(t, err, ErrNonFiniteField)
	assert.False(t, done.Degenerate)
}

func TestValidateFiniteTag(t *testing.T) {
	type floatConfig struct {
		Sigma float64 `yaml:"sigma" validate:"finite,gte=0"`
	}
	require.NoError(t, Validate(floatConfig{Sigma: 2}))
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		err := Validate(floatConfig{Sigma: v})
		require.ErrorIs(t, err, ErrInvalidParameter)
		assert.Contains(t, err.Error(), "sigma must be finite")
	}
}

func TestGaussianBlurPreservesConstantField(t *testing.T) {
	h := NewSquare[float64](9)
	h.Fill(2.5)
	out := GaussianBlur(h, 1.7)
	for _, v := range out.Cells() {
		assert.InDelta(t, 2.5, v, 1e-12)
	}
}

func TestGaussianBlurSpreadsImpulse(t *testing.T) {
	h := NewSquare[float64](11)
	h.Set(5, 5, 1)
	out := GaussianBlur(h, 1)

	total := 0.0
	for _, v := range out.Cells() {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	assert.Less(t, out.At(5, 5), 1.0)
	assert.InDelta(t, out.At(4, 5), out.At(6, 5), 1e-15)
	assert.InDelta(t, out.At(5, 4), out.At(5, 6), 1e-15)
	assert.Greater(t, out.At(5, 5), out.At(4, 5))
	assert.Equal(t, 1.0, h.At(5, 5), "input must not be modified")
}

func TestGaussianBlurZeroSigmaCopies(t *testing.T) {
	h := heightmapOf(2, 1, 1, 2)
	out := GaussianBlur(h, 0)
	assert.Equal(t, h.Cells(), out.Cells())
	out.Set(0, 0, 9)
	assert.Equal(t, 1.0, h.At(0, 0))
}

func TestReflectIndex(t *testing.T) {
	// d c b a | a b c d | d c b a
	cases := map[int]int{-4: 3, -1: 0, 0: 0, 3: 3, 4: 3, 5: 2, 7: 0, 8: 0, 11: 3}
	for in, want := range cases {
		assert.Equal(t, want, reflectIndex(in, 4), "index %d", in)
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	k := gaussianKernel(2)
	assert.Len(t, k, 17)
	sum := 0.0
	for _, w := range k {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	assert.Len(t, gaussianKernel(1e10), 2*maxBlurRadius+1)
}

type sampleConfig struct {
	Size  int     `yaml:"size" validate:"gt=0"`
	Scale float64 `yaml:"scale" validate:"gt=0"`
	Count int     `yaml:"count" validate:"gte=0"`
}

func TestValidateReportsEveryField(t *testing.T) {
	require.NoError(t, Validate(sampleConfig{Size: 1, Scale: 0.1}))

	err := Validate(sampleConfig{Size: 0, Scale: -1, Count: -2})
	require.ErrorIs(t, err, ErrInvalidParameter)

	var fields []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var pe *ParamError
		require.True(t, errors.As(e, &pe))
		fields = append(fields, pe.Field)
	}
	assert.Equal(t, []string{"size", "scale", "count"}, fields)
	assert.Contains(t, err.Error(), "size must be > 0")
	assert.Contains(t, err.Error(), "count must be >= 0")
}

func TestLookupHelpers(t *testing.T) {
	cfg := map[string]string{"n": "12", "f": "0.5", "seed": "-3", "bad": "x"}
	n := 1
	require.NoError(t, LookupInt(cfg, "n", &n))
	assert.Equal(t, 12, n)
	require.NoError(t, LookupInt(cfg, "missing", &n))
	assert.Equal(t, 12, n)

	f := 0.0
	require.NoError(t, LookupFloat(cfg, "f", &f))
	assert.Equal(t, 0.5, f)

	var seed *int64
	require.NoError(t, LookupSeed(cfg, "seed", &seed))
	require.NotNil(t, seed)
	assert.Equal(t, int64(-3), *seed)
	require.NoError(t, LookupSeed(map[string]string{"seed": ""}, "seed", &seed))
	assert.Nil(t, seed)

	assert.ErrorIs(t, LookupInt(cfg, "bad", &n), ErrInvalidParameter)
	assert.ErrorIs(t, LookupFloat(cfg, "bad", &f), ErrInvalidParameter)
	assert.ErrorIs(t, LookupSeed(cfg, "bad", &seed), ErrInvalidParameter)
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 32; i++ {
		require.Equal(t, a.IntN(100), b.IntN(100))
		v := a.UnitVector()
		require.Equal(t, v, b.UnitVector())
		require.InDelta(t, 1.0, v.Len(), 1e-12)
	}
	assert.Equal(t, 0, a.IntN(0))
	assert.Equal(t, int64(9), ResolveSeed(SeedPtr(9)))
}

func TestRunStampsEvents(t *testing.T) {
	var events []Event
	run := StartRun(ObserverFunc(func(e Event) { events = append(events, e) }), "demo", 4, 11)
	run.Emit(StageOctave, 1, 2)
	err := run.Finish(heightmapOf(2, 1, 5, 5))
	require.ErrorIs(t, err, ErrDegenerateField)

	require.Len(t, events, 4)
	for _, e := range events {
		assert.Equal(t, run.ID(), e.RunID)
		assert.Equal(t, "demo", e.Generator)
		assert.Equal(t, 4, e.Size)
		assert.Equal(t, int64(11), e.Seed)
	}
	assert.True(t, events[3].Degenerate)
	assert.Equal(t, StageDone, events[3].Stage)
	assert.Equal(t, 2, events[3].Count)

	silent := StartRun(nil, "demo", 1, 1)
	silent.Emit(StageDone, 0, 0)
}

func TestSummarize(t *testing.T) {
	s := Summarize(heightmapOf(4, 1, 0, 0, 1, 1), 0.5)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.Equal(t, 0.5, s.Mean)
	assert.Equal(t, 0.5, s.StdDev)
	assert.Equal(t, 0.5, s.AboveLevel)
}

func TestPacerFiresOncePerInterval(t *testing.T) {
	now := time.Unix(100, 0)
	p := NewPacer(time.Second)
	p.now = func() time.Time { return now }

	assert.False(t, p.Ready())
	now = now.Add(600 * time.Millisecond)
	assert.False(t, p.Ready())
	now = now.Add(500 * time.Millisecond)
	assert.True(t, p.Ready())
	assert.False(t, p.Ready())

	p.Reset()
	now = now.Add(5 * time.Second)
	assert.False(t, p.Ready(), "reset restarts the interval")

	p.SetInterval(0)
	assert.Equal(t, time.Second, p.Interval())
}

type stubGenerator struct{ size int }

func (s stubGenerator) Name() string  { return "stub" }
func (s stubGenerator) Size() int     { return s.size }
func (s stubGenerator) Seed() int64   { return 0 }
func (s stubGenerator) Generate() (*Heightmap, error) {
	return NewSquare[float64](s.size), nil
}

func TestRegistry(t *testing.T) {
	Register("stub", func(cfg map[string]string, obs Observer) (Generator, error) {
		return stubGenerator{size: 3}, nil
	})
	Register("", nil)
	assert.Contains(t, Names(), "stub")

	g, err := New("stub", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())

	_, err = New("missing", nil, nil)
	assert.Error(t, err)
}

func TestSnapshotValues(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Params: []Parameter{IntParam("size", "Size", 8), Int64Param("seed", "Seed", -1)}},
		{Params: []Parameter{FloatParam("scale", "Scale", 0.25)}},
	}}
	assert.Equal(t, map[string]string{"size": "8", "seed": "-1", "scale": "0.25"}, snap.Values())
}
