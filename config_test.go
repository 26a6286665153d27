package roadnet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))
	return fname
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
		assert.Equal(t, []string{"auto"}, cfg.Input.AgentTypes)
		assert.InDelta(t, 3.2, cfg.Build.LaneWidth, 1e-9)
		assert.Equal(t, 31, cfg.TLS.GreenDuration)
		assert.Equal(t, 4, cfg.TLS.YellowDuration)
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		fname := writeConfigFile(t, `
[input]
file = "moscow.osm.pbf"
highways = ["primary", "secondary"]

[output]
net = "moscow.net.xml"

[build]
no_internal_links = true
no_turnarounds = true

[tls]
green_duration = 25
`)
		cfg, err := LoadConfig(fname)
		require.NoError(t, err)
		assert.Equal(t, "moscow.osm.pbf", cfg.Input.File)
		assert.Equal(t, []string{"primary", "secondary"}, cfg.Input.Highways)
		assert.Equal(t, []string{"auto"}, cfg.Input.AgentTypes)
		assert.Equal(t, "moscow.net.xml", cfg.Output.Net)
		assert.Empty(t, cfg.Output.GeoJSON)
		assert.True(t, cfg.Build.NoInternalLinks)
		assert.False(t, cfg.Build.NoNames)
		assert.True(t, cfg.Build.NoTurnarounds)
		assert.InDelta(t, 3.2, cfg.Build.LaneWidth, 1e-9)
		assert.Equal(t, 25, cfg.TLS.GreenDuration)
		assert.Equal(t, 4, cfg.TLS.YellowDuration)

		options, err := cfg.ImporterOptions()
		require.NoError(t, err)
		assert.Len(t, options, 3)
		assert.Len(t, cfg.WriterOptions(), 2)
	})

	t.Run("Broken file", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, "[input\nfile = 1"))
		assert.Error(t, err)
		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("Unknown agent type", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Input.AgentTypes = []string{"auto", "boat"}
		_, err := cfg.ImporterOptions()
		assert.Error(t, err)
	})
}

func TestParseAgentTypes(t *testing.T) {
	agents, err := ParseAgentTypes([]string{" Auto", "bike", ""})
	require.NoError(t, err)
	assert.Equal(t, []AgentType{AGENT_AUTO, AGENT_BIKE}, agents)
	assert.Equal(t, "walk", AGENT_WALK.String())
}
