// Package app hosts the interactive heightmap viewer.
package app

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"time"

	"terragen/internal/core"
	"terragen/internal/generators/cluster"
	"terragen/internal/generators/plates"
	"terragen/internal/render"
	"terragen/internal/ui"
)

// Frame is the result of one generation as shown by the viewer.
type Frame struct {
	Heightmap *core.Heightmap
	// Boundaries, Seeds and Velocities are set for region-based generators.
	Boundaries    *core.Mask
	BoundaryCells int
	Seeds         []image.Point
	Velocities    []core.Vec2
	Stats         core.Summary
	Degenerate    bool
}

// Workbench owns the generator shown by the viewer. It keeps one parameter
// map per registered generator, rebuilds the generator whenever a parameter or
// the seed changes and caches the resulting frame. It is not safe for
// concurrent use.
type Workbench struct {
	names  []string
	index  int
	params map[string]map[string]string
	obs    core.Observer

	gen   core.Generator
	frame *Frame

	auto     bool
	pacer    *core.Pacer
	nextSeed func() int64
}

// NewWorkbench builds the named generator from params. obs may be nil.
func NewWorkbench(name string, params map[string]string, obs core.Observer) (*Workbench, error) {
	names := core.Names()
	index := -1
	for i, n := range names {
		if n == name {
			index = i
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("unknown generator %q (have %v)", name, names)
	}
	w := &Workbench{
		names:    names,
		index:    index,
		params:   make(map[string]map[string]string, len(names)),
		obs:      obs,
		pacer:    core.NewPacer(2 * time.Second),
		nextSeed: func() int64 { return time.Now().UnixNano() },
	}
	current := make(map[string]string, len(params))
	for k, v := range params {
		current[k] = v
	}
	w.params[name] = current
	if err := w.rebuild(); err != nil {
		return nil, err
	}
	return w, nil
}

// Name returns the current generator name.
func (w *Workbench) Name() string { return w.names[w.index] }

// Size returns the edge length of the current heightmap.
func (w *Workbench) Size() int { return w.gen.Size() }

// Seed returns the seed of the current frame.
func (w *Workbench) Seed() int64 { return w.gen.Seed() }

// Frame returns the most recent generation result.
func (w *Workbench) Frame() *Frame { return w.frame }

// Readout summarises the current frame for the HUD.
func (w *Workbench) Readout() ui.Readout {
	return ui.Readout{
		Seed:          w.Seed(),
		Stats:         w.frame.Stats,
		Regions:       len(w.frame.Seeds),
		BoundaryCells: w.frame.BoundaryCells,
		Degenerate:    w.frame.Degenerate,
	}
}

// Params returns a copy of the current generator's parameters.
func (w *Workbench) Params() map[string]string {
	out := make(map[string]string, len(w.params[w.Name()]))
	for k, v := range w.params[w.Name()] {
		out[k] = v
	}
	return out
}

// Regenerate rebuilds the current generator with unchanged parameters, which
// reproduces the current frame.
func (w *Workbench) Regenerate() error { return w.rebuild() }

// Reseed regenerates with a new seed.
func (w *Workbench) Reseed(seed int64) error {
	return w.update("seed", strconv.FormatInt(seed, 10))
}

// ReseedRandom regenerates with a fresh time-derived seed.
func (w *Workbench) ReseedRandom() error { return w.Reseed(w.nextSeed()) }

// NextGenerator switches to the next registered generator, carrying the
// current seed over unless that generator already has one.
func (w *Workbench) NextGenerator() error {
	seed := strconv.FormatInt(w.Seed(), 10)
	prev := w.index
	w.index = (w.index + 1) % len(w.names)
	p, ok := w.params[w.Name()]
	if !ok {
		p = map[string]string{}
		w.params[w.Name()] = p
	}
	if _, ok := p["seed"]; !ok {
		p["seed"] = seed
	}
	if err := w.rebuild(); err != nil {
		w.index = prev
		return err
	}
	return nil
}

// Apply replaces the parameters of the named generator, switches to it and
// regenerates. The previous state is restored when the build fails.
func (w *Workbench) Apply(name string, params map[string]string) error {
	index := -1
	for i, n := range w.names {
		if n == name {
			index = i
		}
	}
	if index < 0 {
		return fmt.Errorf("unknown generator %q (have %v)", name, w.names)
	}
	prevIndex, prevParams := w.index, w.params[name]
	next := make(map[string]string, len(params))
	for k, v := range params {
		next[k] = v
	}
	w.index = index
	w.params[name] = next
	if err := w.rebuild(); err != nil {
		w.index = prevIndex
		if prevParams == nil {
			delete(w.params, name)
		} else {
			w.params[name] = prevParams
		}
		return err
	}
	return nil
}

// SetAuto enables or disables periodic reseeding.
func (w *Workbench) SetAuto(on bool) {
	w.auto = on
	w.pacer.Reset()
}

// Auto reports whether periodic reseeding is enabled.
func (w *Workbench) Auto() bool { return w.auto }

// SetAutoInterval changes the reseed period.
func (w *Workbench) SetAutoInterval(d time.Duration) { w.pacer.SetInterval(d) }

// Tick is polled once per frame. With auto reseeding enabled it reseeds once
// per interval and reports whether it did.
func (w *Workbench) Tick() (bool, error) {
	if !w.auto || !w.pacer.Ready() {
		return false, nil
	}
	return true, w.ReseedRandom()
}

// Parameters returns the current generator's parameter snapshot.
func (w *Workbench) Parameters() core.ParameterSnapshot {
	if p, ok := w.gen.(interface{ Parameters() core.ParameterSnapshot }); ok {
		return p.Parameters()
	}
	return core.ParameterSnapshot{}
}

// ParameterControls lists the current generator's adjustable parameters.
func (w *Workbench) ParameterControls() []core.ParameterControl {
	if p, ok := w.gen.(core.ParameterControlsProvider); ok {
		return p.ParameterControls()
	}
	return nil
}

// SetIntParameter updates an integer parameter and regenerates. Values the
// generator rejects leave the previous state untouched and return false.
func (w *Workbench) SetIntParameter(key string, value int) bool {
	return w.update(key, strconv.Itoa(value)) == nil
}

// SetFloatParameter updates a floating point parameter and regenerates.
func (w *Workbench) SetFloatParameter(key string, value float64) bool {
	return w.update(key, strconv.FormatFloat(value, 'f', -1, 64)) == nil
}

func (w *Workbench) update(key, value string) error {
	p := w.params[w.Name()]
	old, had := p[key]
	p[key] = value
	if err := w.rebuild(); err != nil {
		if had {
			p[key] = old
		} else {
			delete(p, key)
		}
		return err
	}
	return nil
}

// rebuild constructs the current generator from its parameter map and
// generates a frame. The resolved seed is written back so later rebuilds
// reproduce the same frame.
func (w *Workbench) rebuild() error {
	name := w.Name()
	p := w.params[name]
	gen, err := core.New(name, p, w.obs)
	if err != nil {
		return err
	}
	frame, err := generate(gen)
	if err != nil {
		return err
	}
	p["seed"] = strconv.FormatInt(gen.Seed(), 10)
	w.gen = gen
	w.frame = frame
	return nil
}

func generate(gen core.Generator) (*Frame, error) {
	f := &Frame{}
	var err error
	switch g := gen.(type) {
	case *plates.Generator:
		var t *plates.Tectonics
		t, err = g.Tectonics()
		f.Heightmap = t.Heightmap
		f.Boundaries = t.Boundaries
		f.BoundaryCells = t.BoundaryCells
		f.Seeds = t.Plates.Seeds
		f.Velocities = t.Velocities
	case *cluster.Generator:
		p := g.Partition()
		f.Heightmap = cluster.Heightmap(p.Labels)
		f.Boundaries, f.BoundaryCells = plates.Boundaries(p.Labels)
		f.Seeds = p.Seeds
		err = core.Normalize(f.Heightmap)
	default:
		f.Heightmap, err = gen.Generate()
	}
	if err != nil {
		if !errors.Is(err, core.ErrDegenerateField) {
			return nil, err
		}
		f.Degenerate = true
	}
	f.Stats = core.Summarize(f.Heightmap, render.SeaLevel)
	return f, nil
}
