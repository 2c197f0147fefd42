package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terragen/internal/core"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
generator: plates
seed: 7
params:
  size: 64
  smoothing: 1.5
  plates_clusters: 9
palette: gray
`)
	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plates", r.Generator)
	assert.Equal(t, "gray", r.Palette)
	assert.Equal(t, "info", r.LogLevel, "unset keys keep defaults")
	require.NotNil(t, r.Seed)
	assert.Equal(t, int64(7), *r.Seed)

	params, err := r.GeneratorParams()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"size":            "64",
		"smoothing":       "1.5",
		"plates_clusters": "9",
		"seed":            "7",
	}, params)
}

func TestLoadEmptyPathAndEmptyFile(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), r)

	r, err = Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), r)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "generator: noise\npalete: gray\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palete")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "generator: cluster\noutput: file.png\nseed: 3\nparams:\n  clusters: 4\n")
	args := []string{"-out", "flag.png", "-config", path, "-set", "clusters=12", "-set", "iterations = 2", "-seed", "11"}

	r, err := Parse(newFlagSet(), args)
	require.NoError(t, err)
	assert.Equal(t, "cluster", r.Generator)
	assert.Equal(t, "flag.png", r.Output)
	assert.Equal(t, path, r.Path)

	params, err := r.GeneratorParams()
	require.NoError(t, err)
	assert.Equal(t, "12", params["clusters"])
	assert.Equal(t, "2", params["iterations"])
	assert.Equal(t, "11", params["seed"])
}

func TestParseEmptySeedMeansRandom(t *testing.T) {
	path := writeFile(t, "seed: 5\n")
	r, err := Parse(newFlagSet(), []string{"--config=" + path, "-seed="})
	require.NoError(t, err)
	assert.Nil(t, r.Seed)

	params, err := r.GeneratorParams()
	require.NoError(t, err)
	assert.NotContains(t, params, "seed")
}

func TestParseValidates(t *testing.T) {
	_, err := Parse(newFlagSet(), []string{"-palette", "sepia"})
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "palette")

	_, err = Parse(newFlagSet(), []string{"-generator", ""})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Parse(newFlagSet(), []string{"-seed", "abc"})
	assert.Error(t, err)
}

func TestGeneratorParamsRejectsMalformedInput(t *testing.T) {
	r := Default()
	r.Overrides = []string{"size"}
	_, err := r.GeneratorParams()
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	r = Default()
	r.Params = map[string]any{"size": []any{1, 2}}
	_, err = r.GeneratorParams()
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	r = Default()
	r.Params = map[string]any{"seed": nil}
	params, err := r.GeneratorParams()
	require.NoError(t, err)
	assert.Equal(t, "", params["seed"])
}

func TestConfigPath(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"-config", "a.yaml"}, "a.yaml"},
		{[]string{"--config=b.yaml"}, "b.yaml"},
		{[]string{"-out", "x.png", "-config", "c.yaml"}, "c.yaml"},
		{[]string{"--", "-config", "d.yaml"}, ""},
		{[]string{"-config"}, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, configPath(tc.args), "%v", tc.args)
	}
}

func TestUnknownKeys(t *testing.T) {
	params := map[string]string{"size": "8", "sclae": "0.1", "octaves": "2", "zz": ""}
	known := map[string]string{"size": "", "scale": "", "octaves": "", "seed": ""}
	assert.Equal(t, []string{"sclae", "zz"}, UnknownKeys(params, known))
}
