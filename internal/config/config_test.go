package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MIN_SHAPE_SIZE", "8")
	t.Setenv("MARQUEE_ENABLED", "false")
	t.Setenv("DRAG_DEAD_ZONE", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.MinShapeSize)
	assert.False(t, cfg.MarqueeEnabled)
	assert.Equal(t, 3.0, cfg.DragDeadZone)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero min size", "MIN_SHAPE_SIZE", "0"},
		{"negative handle", "HANDLE_SIZE", "-1"},
		{"negative dead zone", "DRAG_DEAD_ZONE", "-2"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"not a number", "SURFACE_WIDTH", "wide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
