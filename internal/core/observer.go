package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Stage names a step of a generation pipeline.
type Stage string

const (
	StageStart       Stage = "start"
	StageVectorField Stage = "vector_field"
	StageOctave      Stage = "octave"
	StageSeeds       Stage = "seeds"
	StageAssign      Stage = "assign"
	StageRelax       Stage = "relax"
	StageVelocities  Stage = "velocities"
	StageBoundaries  Stage = "boundaries"
	StageRelative    Stage = "relative_velocity"
	StageSmooth      Stage = "smooth"
	StageNormalize   Stage = "normalize"
	StageDone        Stage = "done"
)

// Event is a structured progress report emitted while a generator runs.
type Event struct {
	RunID     uuid.UUID
	Generator string
	Stage     Stage
	// Step and Steps locate repeated stages (octaves, relaxation rounds).
	Step, Steps int
	Size        int
	Seed        int64
	Elapsed     time.Duration
	// Count carries a stage-specific tally, e.g. boundary cells.
	Count      int
	Degenerate bool
}

// Observer receives progress events. Implementations must not block and
// cannot influence generation results.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Run stamps events of one Generate call with a shared id and start time.
type Run struct {
	obs   Observer
	id    uuid.UUID
	name  string
	size  int
	seed  int64
	start time.Time
}

// StartRun begins a run for the named generator and emits StageStart.
// obs may be nil, in which case the run reports nothing.
func StartRun(obs Observer, name string, size int, seed int64) *Run {
	r := &Run{obs: obs, id: uuid.New(), name: name, size: size, seed: seed, start: time.Now()}
	r.Emit(StageStart, 0, 0)
	return r
}

// ID returns the run identifier.
func (r *Run) ID() uuid.UUID { return r.id }

// Emit reports a stage with its step position.
func (r *Run) Emit(stage Stage, step, steps int) {
	r.EmitEvent(Event{Stage: stage, Step: step, Steps: steps})
}

// EmitEvent fills the run fields of e and forwards it to the observer.
func (r *Run) EmitEvent(e Event) {
	if r.obs == nil {
		return
	}
	e.RunID = r.id
	e.Generator = r.name
	e.Size = r.size
	e.Seed = r.seed
	e.Elapsed = time.Since(r.start)
	r.obs.Observe(e)
}

// Finish normalizes h, emits StageNormalize and StageDone and returns the
// normalization error, if any.
func (r *Run) Finish(h *Heightmap) error {
	err := Normalize(h)
	degenerate := errors.Is(err, ErrDegenerateField)
	r.EmitEvent(Event{Stage: StageNormalize, Degenerate: degenerate})
	r.EmitEvent(Event{Stage: StageDone, Count: len(h.Cells()), Degenerate: degenerate})
	return err
}
