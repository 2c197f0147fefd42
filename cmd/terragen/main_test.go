package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terragen/internal/core"
	"terragen/internal/generators/plates"
)

func TestPrintGeneratorsListsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printGenerators(&buf))
	out := buf.String()
	for _, name := range []string{"cluster", "noise", "plates"} {
		assert.Contains(t, out, name+"\n")
	}
	assert.Contains(t, out, "plates_clusters")
	assert.Regexp(t, `seed\s+\(random\)`, out)
}

func TestGenerateReturnsPlateBoundaries(t *testing.T) {
	gen, err := core.New(plates.Name, map[string]string{"size": "16", "seed": "2"}, nil)
	require.NoError(t, err)

	h, mask, err := generate(gen, true)
	require.NoError(t, err)
	require.NotNil(t, mask)
	assert.Equal(t, h.W, mask.W)

	gen, err = core.New("noise", map[string]string{"size": "16", "seed": "2"}, nil)
	require.NoError(t, err)
	_, mask, err = generate(gen, true)
	require.NoError(t, err)
	assert.Nil(t, mask)
}
