package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv("SCENE_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10.0, cfg.World.PickDistance)
	assert.Equal(t, 5.0, cfg.World.PlaceDistance)
	assert.True(t, cfg.World.GroundClamp)
	assert.Equal(t, [3]float64{0, 1.5, 5}, cfg.Camera.Position)
	assert.Equal(t, -30.0, cfg.Camera.Pitch)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeConfig(t, `
world:
  occupancy_mode: scan
  extra_trees: 4
  ground_clamp: false
camera:
  pitch: -10
metrics:
  enabled: true
  port: 9100
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "scan", cfg.World.OccupancyMode)
	assert.Equal(t, 4, cfg.World.ExtraTrees)
	assert.False(t, cfg.World.GroundClamp)
	assert.Equal(t, -10.0, cfg.Camera.Pitch)
	assert.Equal(t, 0.2, cfg.Camera.Sensitivity, "незаданные поля остаются по умолчанию")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "eventbus:\n  capacity: 16\n")
	t.Setenv("SCENE_CONFIG", path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.EventBus.Capacity)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [broken"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world:\n  occupancy_mode: octree\n"))
	assert.ErrorContains(t, err, "octree")

	_, err = Load(writeConfig(t, "world:\n  pick_distance: -1\n"))
	assert.Error(t, err)
}

func TestMetricsPortFallback(t *testing.T) {
	m := MetricsConfig{}
	t.Setenv("SCENE_METRICS_PORT", "")
	assert.Equal(t, 2112, m.GetPort())

	t.Setenv("SCENE_METRICS_PORT", "9200")
	assert.Equal(t, 9200, m.GetPort())

	t.Setenv("SCENE_METRICS_PORT", "not-a-port")
	assert.Equal(t, 2112, m.GetPort())

	m.Port = 9300
	assert.Equal(t, 9300, m.GetPort())
}
