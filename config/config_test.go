package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/physics"
)

func TestDefaultsMatchReferenceConstants(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, physics.DefaultTuning(), cfg.Physics.Tuning())
	assert.Equal(t, 300*time.Millisecond, cfg.Physics.ReturnHalfLife)
	assert.Equal(t, 200*time.Millisecond, cfg.Physics.FrictionHalfLife)
	assert.Equal(t, 2500.0, cfg.Physics.MaxSpeed)
	assert.Equal(t, 50.0, cfg.Physics.SmoothDistance)
	assert.Equal(t, 15.0, cfg.Physics.StallDistance)
	assert.Equal(t, 20.0, cfg.Physics.SuckDistance)
	assert.Equal(t, 60000.0, cfg.Physics.BorderRepulsion)
	assert.Equal(t, 200*time.Millisecond, cfg.Physics.MaxStep)

	assert.Equal(t, parameter.FrameInterval, cfg.Loop.FrameInterval)
	assert.Equal(t, parameter.DefaultDensity, cfg.Display.Density)
	assert.False(t, cfg.Policy.EjectOnBorder)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "callbubbles.yaml")
	data := []byte(`
physics:
  max_speed: 1200
  friction_half_life: 150ms
display:
  density: 2
policy:
  eject_on_border: true
logger:
  level: debug
  format: console
keys:
  x: dial
  f2: incoming
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, cfg.Physics.MaxSpeed)
	assert.Equal(t, 150*time.Millisecond, cfg.Physics.FrictionHalfLife)
	assert.Equal(t, 2.0, cfg.Display.Density)
	assert.True(t, cfg.Policy.EjectOnBorder)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, map[string]string{"x": "dial", "f2": "incoming"}, cfg.Keys)
	// untouched keys keep their defaults
	assert.Equal(t, 50.0, cfg.Physics.SmoothDistance)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CALLBUBBLES_PHYSICS_SUCK_DISTANCE", "35")
	t.Setenv("CALLBUBBLES_LOOP_FRAME_INTERVAL", "40ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 35.0, cfg.Physics.SuckDistance)
	assert.Equal(t, 40*time.Millisecond, cfg.Loop.FrameInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero return half-life", func(c *Config) { c.Physics.ReturnHalfLife = 0 }},
		{"negative max speed", func(c *Config) { c.Physics.MaxSpeed = -1 }},
		{"stall beyond smooth", func(c *Config) { c.Physics.StallDistance = 60 }},
		{"zero suck distance", func(c *Config) { c.Physics.SuckDistance = 0 }},
		{"zero max step", func(c *Config) { c.Physics.MaxStep = 0 }},
		{"zero density", func(c *Config) { c.Display.Density = 0 }},
		{"expanded not larger", func(c *Config) { c.Display.ExpandedRadius = c.Display.BubbleRadius }},
		{"zero frame interval", func(c *Config) { c.Loop.FrameInterval = 0 }},
		{"negative fade", func(c *Config) { c.Actions.AppearTime = -time.Second }},
		{"unknown log format", func(c *Config) { c.Logger.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
