package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"heredity/domain/core"
	"heredity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const family0 = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

func writeFamily(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultOptions(format string) inferOptions {
	return inferOptions{format: format, workers: 2, maxPopulation: 10, logLevel: "ERROR"}
}

func TestInferText(t *testing.T) {
	var out bytes.Buffer
	err := runInfer(context.Background(), &out, writeFamily(t, family0), defaultOptions("text"))
	require.NoError(t, err)

	expected := `Harry:
  Gene:
    2: 0.0092
    1: 0.4557
    0: 0.5351
  Trait:
    True: 0.2665
    False: 0.7335
James:
  Gene:
    2: 0.1976
    1: 0.5106
    0: 0.2918
  Trait:
    True: 1.0000
    False: 0.0000
Lily:
  Gene:
    2: 0.0036
    1: 0.0136
    0: 0.9827
  Trait:
    True: 0.0000
    False: 1.0000
`
	assert.Equal(t, expected, out.String())
}

func TestInferJSON(t *testing.T) {
	var out bytes.Buffer
	err := runInfer(context.Background(), &out, writeFamily(t, family0), defaultOptions("json"))
	require.NoError(t, err)

	var run models.InferenceRun
	require.NoError(t, json.Unmarshal(out.Bytes(), &run))
	assert.Equal(t, 3, run.PopulationSize)
	require.Len(t, run.Posteriors, 3)
	assert.Equal(t, core.PersonID("Harry"), run.Posteriors[0].Person)
	assert.InDelta(t, 0.2665, run.Posteriors[0].Trait[1], 1e-4)
}

func TestInferMarkdown(t *testing.T) {
	var out bytes.Buffer
	err := runInfer(context.Background(), &out, writeFamily(t, family0), defaultOptions("markdown"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "| Harry | 0.5351 | 0.4557 | 0.0092 | 0.2665 |")
}

func TestInferErrors(t *testing.T) {
	var out bytes.Buffer

	err := runInfer(context.Background(), &out, writeFamily(t, family0), defaultOptions("yaml"))
	assert.ErrorContains(t, err, "unknown format")

	dangling := "name,mother,father,trait\nHarry,Lily,James,\nLily,,,0\n"
	err = runInfer(context.Background(), &out, writeFamily(t, dangling), defaultOptions("text"))
	assert.ErrorIs(t, err, core.ErrDanglingParent)

	small := defaultOptions("text")
	small.maxPopulation = 2
	err = runInfer(context.Background(), &out, writeFamily(t, family0), small)
	assert.ErrorIs(t, err, core.ErrPopulationTooLarge)

	assert.Empty(t, out.String())
}
