package noise

import "terragen/internal/core"

// Config holds the parameters of the fractal noise generator.
type Config struct {
	Size    int     `yaml:"size" validate:"gt=0"`
	Scale   float64 `yaml:"scale" validate:"finite,gt=0"`
	Octaves int     `yaml:"octaves" validate:"gte=1"`
	// Seed is optional; nil selects a random seed at construction.
	Seed *int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Size: 256, Scale: 0.2, Octaves: 1}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Range checks happen in New.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if err := core.LookupInt(cfg, "size", &c.Size); err != nil {
		return c, err
	}
	if err := core.LookupFloat(cfg, "scale", &c.Scale); err != nil {
		return c, err
	}
	if err := core.LookupInt(cfg, "octaves", &c.Octaves); err != nil {
		return c, err
	}
	if err := core.LookupSeed(cfg, "seed", &c.Seed); err != nil {
		return c, err
	}
	return c, nil
}
