package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clustercore/cmeans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointsTOML = `
algorithm = "pcm"
clusters = 2
passes = 2
threshold = 1e-7
max_iterations = 5000
seed = 7
points = [
  [0.1, 0.3], [0.1, 0.5], [0.1, 0.7],
  [0.7, 0.3], [0.7, 0.7], [0.8, 0.5], [0.9, 0.5],
]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "points.toml", pointsTOML))
	require.NoError(t, err)

	assert.Equal(t, cmeans.AlgorithmPCM, cfg.Algorithm)
	assert.Equal(t, 2, cfg.Clusters)
	assert.Equal(t, 2, cfg.Passes)
	assert.Equal(t, 1e-7, cfg.Threshold)
	assert.Equal(t, 5000, cfg.MaxIterations)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Len(t, cfg.Points, 7)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, cmeans.DefaultExponent, cfg.Exponent)
	assert.False(t, cfg.Crisp)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.toml", "clusters = \"two\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "unknown.toml", "cluster = 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"Algorithm", func(c *Config) { c.Algorithm = "kmeans" }, "algorithm"},
		{"NoPoints", func(c *Config) { c.Points = nil }, "points"},
		{"TooManyClusters", func(c *Config) { c.Clusters = 8 }, "clusters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, cmeans.ErrInvalidConfiguration)

			var cfgErr *cmeans.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfig_Objects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Points = [][]float64{{0.1, 0.2}, {0.3}}

	_, err := cfg.Objects()
	assert.Error(t, err)
}

func TestRun_PCMFromConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeFile(t, "points.toml", pointsTOML)

	code := run(context.Background(), []string{"run", "-config", path, "-path", "-metrics"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "algorithm: pcm")
	assert.Contains(t, out, "center 0: ")
	assert.Contains(t, out, "center 1: ")
	assert.Contains(t, out, "snapshots")
	assert.Contains(t, out, `cmeans_runs_total{algorithm="pcm",status="success"} 1`)
	assert.Contains(t, out, "cmeans_pcm_passes_total 2")
}

func TestRun_FlagsOverrideConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeFile(t, "points.toml", pointsTOML)

	code := run(context.Background(), []string{"run", "-config", path, "-algorithm", "fcm", "-crisp"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	// Crisp start orders the left cluster first.
	out := stdout.String()
	assert.Contains(t, out, "algorithm: fcm")
	assert.Contains(t, out, "center 0: 0.14707")
	assert.Contains(t, out, "center 1: 0.75877")
}

func TestRun_DefaultsAndLogging(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"run", "-seed", "3", "-log-level", "debug", "-json"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "algorithm: fcm")
	assert.Contains(t, stderr.String(), `"msg":"run completed"`)
	assert.Contains(t, stderr.String(), `"algorithm":"fcm"`)
}

func TestRun_Plot(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "clusters.png")

	code := run(context.Background(), []string{"run", "-algorithm", "pcm", "-seed", "1", "-plot", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"NoCommand", nil, 2},
		{"UnknownCommand", []string{"cluster"}, 2},
		{"UnknownFlag", []string{"run", "-bogus"}, 1},
		{"BadAlgorithm", []string{"run", "-algorithm", "kmeans"}, 1},
		{"BadClusters", []string{"run", "-clusters", "0"}, 1},
		{"BadPasses", []string{"run", "-algorithm", "pcm", "-passes", "0"}, 1},
		{"BadThreshold", []string{"run", "-threshold", "-1"}, 1},
		{"BadLogLevel", []string{"run", "-log-level", "loud"}, 1},
		{"MissingConfig", []string{"run", "-config", "/nonexistent/points.toml"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "selftest")

	stdout.Reset()
	assert.Equal(t, 0, run(context.Background(), []string{"run", "-h"}, &stdout, &stderr))
}

func TestSelftest(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"selftest", "-seed", "11"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		"0.5 0.5 -> 50 50",
		"FCM Test ok",
		"PCM Test 1 ok",
		"PCM Test 2 ok",
	}, lines)
}

func TestSelftest_Failure(t *testing.T) {
	var out bytes.Buffer

	// Two iterations cannot reach the reference centers.
	ok := selftest(context.Background(), &out, []cmeans.Option{cmeans.WithMaxIterations(2)})
	assert.False(t, ok)
	assert.Contains(t, out.String(), "FCM Test error")
	assert.Contains(t, out.String(), "PCM Test 2 error")
}
