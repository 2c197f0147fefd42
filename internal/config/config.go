// Package config loads run settings for the terragen commands from an
// optional YAML file overlaid with command-line flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"terragen/internal/core"
)

// Run holds everything a command needs to build and export one generator.
type Run struct {
	Generator string `yaml:"generator" validate:"required"`
	// Params are generator parameters keyed like the generator's FromMap.
	Params map[string]any `yaml:"params"`
	// Seed overrides params.seed when set.
	Seed       *int64 `yaml:"seed"`
	Output     string `yaml:"output"`
	Palette    string `yaml:"palette" validate:"oneof=gray terrain"`
	LogLevel   string `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsOut string `yaml:"metrics_out"`

	// Viewer settings.
	Scale int `yaml:"scale" validate:"gt=0"`
	TPS   int `yaml:"tps" validate:"gt=0"`

	// Overrides collects repeated -set key=value flags.
	Overrides []string `yaml:"-"`
	// Path is the run file passed with -config, if any.
	Path string `yaml:"-"`
}

// Default returns a Run populated with sensible defaults.
func Default() *Run {
	return &Run{
		Generator: "noise",
		Output:    "heightmap.png",
		Palette:   "terrain",
		LogLevel:  "info",
		Scale:     3,
		TPS:       60,
	}
}

// Load reads a YAML run file on top of the defaults. An empty path returns
// the defaults. Unknown keys are rejected.
func Load(path string) (*Run, error) {
	r := Default()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return r, nil
}

// Bind attaches the configuration to the provided FlagSet. Flag defaults are
// the current field values so a loaded file survives unset flags.
func (r *Run) Bind(fs *flag.FlagSet) {
	fs.StringVar(&r.Generator, "generator", r.Generator, "generator to run ("+strings.Join(core.Names(), ", ")+")")
	fs.Var(seedValue{dst: &r.Seed}, "seed", "generator seed (empty for random)")
	fs.StringVar(&r.Output, "out", r.Output, "output PNG path")
	fs.StringVar(&r.Palette, "palette", r.Palette, "color palette: gray or terrain")
	fs.StringVar(&r.LogLevel, "log-level", r.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&r.MetricsOut, "metrics-out", r.MetricsOut, "write Prometheus metrics to this textfile")
	fs.IntVar(&r.Scale, "scale", r.Scale, "pixel scale multiplier")
	fs.IntVar(&r.TPS, "tps", r.TPS, "ticks per second")
	fs.Var((*kvList)(&r.Overrides), "set", "generator parameter override in key=value form (repeatable)")
}

// Parse loads the run file named by -config, if any, then applies the
// remaining flags in args on top of it and validates the result. Callers may
// register extra flags on fs beforehand.
func Parse(fs *flag.FlagSet, args []string) (*Run, error) {
	r, err := Load(configPath(args))
	if err != nil {
		return nil, err
	}
	path := fs.String("config", "", "YAML run file")
	r.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	r.Path = *path
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the settings against their constraints.
func (r *Run) Validate() error {
	if err := core.Validate(r); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// GeneratorParams flattens Params, Seed and Overrides, in that order of
// precedence from lowest to highest, into the map a core.Factory accepts.
func (r *Run) GeneratorParams() (map[string]string, error) {
	out := make(map[string]string, len(r.Params)+len(r.Overrides)+1)
	for k, v := range r.Params {
		switch v.(type) {
		case nil:
			out[k] = ""
		case string, int, int64, float64, bool:
			out[k] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("%w: params.%s: unsupported value %v", core.ErrInvalidParameter, k, v)
		}
	}
	if r.Seed != nil {
		out["seed"] = strconv.FormatInt(*r.Seed, 10)
	}
	for _, kv := range r.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", core.ErrInvalidParameter, kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// UnknownKeys returns the keys of params that known does not contain, sorted.
func UnknownKeys(params, known map[string]string) []string {
	var out []string
	for k := range params {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// configPath finds the -config value without a full flag parse.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name := strings.TrimLeft(a, "-")
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

type kvList []string

func (l *kvList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type seedValue struct {
	dst **int64
}

func (s seedValue) String() string {
	if s.dst == nil || *s.dst == nil {
		return ""
	}
	return strconv.FormatInt(**s.dst, 10)
}

func (s seedValue) Set(v string) error {
	if v == "" {
		*s.dst = nil
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*s.dst = &n
	return nil
}
