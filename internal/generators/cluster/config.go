package cluster

import "terragen/internal/core"

// Config controls the Voronoi tessellation.
type Config struct {
	Size       int `yaml:"size" validate:"gt=0"`
	Clusters   int `yaml:"clusters" validate:"gt=0"`
	Iterations int `yaml:"iterations" validate:"gte=0"`
	// Seed is optional; nil selects a random seed at construction.
	Seed *int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Size: 256, Clusters: 8, Iterations: 0}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if err := core.LookupInt(cfg, "size", &c.Size); err != nil {
		return c, err
	}
	if err := core.LookupInt(cfg, "clusters", &c.Clusters); err != nil {
		return c, err
	}
	if err := core.LookupInt(cfg, "iterations", &c.Iterations); err != nil {
		return c, err
	}
	if err := core.LookupSeed(cfg, "seed", &c.Seed); err != nil {
		return c, err
	}
	return c, nil
}
