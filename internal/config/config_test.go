package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "astar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 270, cfg.Map.Rows)
	assert.Equal(t, 480, cfg.Map.Cols)
	assert.Equal(t, 0.54321, cfg.Map.EmptyRatio)
	assert.Equal(t, int64(0), cfg.Map.Seed)
	assert.Equal(t, 1.0, cfg.Search.CostFactor)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "astar_map.generated.bmp", cfg.Output.MapImage)
	assert.Equal(t, "astar_result.generated.bmp", cfg.Output.ResultImage)
	assert.Equal(t, "astar_result.geojson", cfg.Output.GeoJSON)
}

func TestFromYaml(t *testing.T) {
	path := writeConfig(t, `
map:
  rows: 20
  cols: 30
  seed: 42
search:
  costFactor: 1.5
  debugLevel: 2
`)
	cfg, err := FromYaml(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Map.Rows)
	assert.Equal(t, 30, cfg.Map.Cols)
	assert.Equal(t, int64(42), cfg.Map.Seed)
	assert.Equal(t, 1.5, cfg.Search.CostFactor)
	assert.Equal(t, 2, cfg.Search.DebugLevel)
	// untouched keys keep their defaults
	assert.Equal(t, 0.54321, cfg.Map.EmptyRatio)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestFromYamlErrors(t *testing.T) {
	_, err := FromYaml(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = FromYaml(writeConfig(t, "search:\n  costFactor: 10\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromYaml(writeConfig(t, "map:\n  emptyRatio: 1.5\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = FromYaml(writeConfig(t, "map:\n  rows: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ASTAR_SERVER_ADDR", ":9090")
	cfg, err := FromYaml("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestWriteYaml(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	var buffer bytes.Buffer
	require.NoError(t, cfg.WriteYaml(&buffer))

	read := &Config{}
	require.NoError(t, yaml.Unmarshal(buffer.Bytes(), read))
	assert.Equal(t, cfg, read)

	path := writeConfig(t, buffer.String())
	reloaded, err := FromYaml(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
