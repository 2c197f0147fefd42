package core

import (
	"fmt"
	"sort"
)

// Generator is the contract every heightmap algorithm implements.
//
// Generate produces a Size()×Size() grid normalized to [0,1]. Instances own
// their random source, so a freshly constructed generator always yields the
// same grid for the same seed while repeated calls on one instance may not.
// A single instance must not be used from several goroutines at once.
type Generator interface {
	Name() string
	Size() int
	Seed() int64
	Generate() (*Heightmap, error)
}

// Factory constructs a Generator from flag-style key/value parameters. obs may
// be nil.
type Factory func(cfg map[string]string, obs Observer) (Generator, error)

var generators = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	generators[name] = f
}

// Generators exposes the registry of available generator factories.
func Generators() map[string]Factory {
	return generators
}

// Names returns the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New looks up name in the registry and constructs a generator.
func New(name string, cfg map[string]string, obs Observer) (Generator, error) {
	factory, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (have %v)", name, Names())
	}
	return factory(cfg, obs)
}
