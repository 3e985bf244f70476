package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secs-tools/gemsink/internal/gemsink/event"
	"github.com/secs-tools/gemsink/internal/gemsink/payload"
)

func TestGenerate_OutputIsIngestable(t *testing.T) {
	cfg := Config{Seed: 11, Events: 40}
	var buf bytes.Buffer

	payloads, err := Generate(cfg, &buf)
	require.NoError(t, err)
	assert.Greater(t, payloads, 0)

	values, err := payload.ScanAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, values, payloads)

	events, rows := 0, 0
	for _, v := range values {
		docs, err := payload.Normalize(v)
		require.NoError(t, err)
		for _, doc := range docs {
			evt, err := event.Decode(doc)
			require.NoError(t, err)
			events++
			flat := event.Flatten(evt)
			// every generated event carries at least one report
			assert.NotEmpty(t, flat)
			rows += len(flat)
		}
	}
	assert.Equal(t, 40, events)
	assert.GreaterOrEqual(t, rows, events)
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	cfg := Config{Seed: 7, Events: 10}

	var a, b bytes.Buffer
	_, err := Generate(cfg, &a)
	require.NoError(t, err)
	_, err = Generate(cfg, &b)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"seed: 42\noutput: out.json\nevents: 5\nmaxReports: 2\nemptyFraction: 0.5\n"), 0644))

	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "out.json", cfg.Output)
	assert.Equal(t, 5, cfg.Events)
	assert.Equal(t, 2, cfg.MaxReports)
	assert.InDelta(t, 0.5, cfg.EmptyFraction, 1e-9)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestGenerateFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "payloads.json")
	n, err := GenerateFile(Config{Seed: 3, Events: 6, Output: out})
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	values, err := payload.ScanAll(f)
	require.NoError(t, err)
	assert.Len(t, values, n)
}
