package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.InDelta(t, 20, cfg.Sim.TickHz, 1e-9)
	require.InDelta(t, 80, cfg.Sim.DefaultSpeed, 1e-9)
	require.InDelta(t, 0.98, cfg.Sim.ArrivalProgress, 1e-9)
	require.InDelta(t, 0.05, cfg.Follower.CorrectionGain, 1e-9)
	require.True(t, cfg.Env.FloorEnabled)
	require.True(t, cfg.Logging.Development)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
sim:
  tick_hz: 50
  default_speed: 25
env:
  wind_speed: 6
  wind_dir_deg: 270
  floor_enabled: false
logging:
  development: false
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.InDelta(t, 50, cfg.Sim.TickHz, 1e-9)
	require.InDelta(t, 25, cfg.Sim.DefaultSpeed, 1e-9)
	require.InDelta(t, 6, cfg.Env.WindSpeed, 1e-9)
	require.False(t, cfg.Env.FloorEnabled)
	require.False(t, cfg.Logging.Development)

	// untouched sections keep their defaults
	require.InDelta(t, 0.98, cfg.Sim.ArrivalProgress, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PATHFOLLOWER_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base, err := Load("")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"zero tick rate", func(c *Config) { c.Sim.TickHz = 0 }},
		{"zero speed", func(c *Config) { c.Sim.DefaultSpeed = 0 }},
		{"progress above one", func(c *Config) { c.Sim.ArrivalProgress = 1.5 }},
		{"zero tolerance", func(c *Config) { c.Sim.PosTolM = 0 }},
		{"negative gain", func(c *Config) { c.Follower.CorrectionGain = -1 }},
		{"negative wind", func(c *Config) { c.Env.WindSpeed = -3 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
