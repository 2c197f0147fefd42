package plates

import "terragen/internal/core"

// Config controls the tectonic heightmap.
type Config struct {
	Size int `yaml:"size" validate:"gt=0"`
	// Smoothing is the Gaussian blur sigma; 0 disables blurring.
	Smoothing        float64 `yaml:"smoothing" validate:"finite,gte=0,lte=64"`
	PlatesClusters   int     `yaml:"plates_clusters" validate:"gt=0"`
	PlatesIterations int     `yaml:"plates_iterations" validate:"gte=0"`
	// Seed is optional; nil selects a random seed at construction.
	Seed *int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Size: 256, Smoothing: 0, PlatesClusters: 5, PlatesIterations: 3}
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
	if err := core.LookupFloat(cfg, "smoothing", &c.Smoothing); err != nil {
		return c, err
	}
	if err := core.LookupInt(cfg, "plates_clusters", &c.PlatesClusters); err != nil {
		return c, err
	}
	if err := core.LookupInt(cfg, "plates_iterations", &c.PlatesIterations); err != nil {
		return c, err
	}
	if err := core.LookupSeed(cfg, "seed", &c.Seed); err != nil {
		return c, err
	}
	return c, nil
}
