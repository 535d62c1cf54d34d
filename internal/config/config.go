package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MinShapeSize   float64 `envconfig:"MIN_SHAPE_SIZE" default:"5"`
	SurfaceWidth   int     `envconfig:"SURFACE_WIDTH" default:"1280"`
	SurfaceHeight  int     `envconfig:"SURFACE_HEIGHT" default:"720"`
	HandleSize     float64 `envconfig:"HANDLE_SIZE" default:"10"`
	DragDeadZone   float64 `envconfig:"DRAG_DEAD_ZONE" default:"0"`
	MarqueeEnabled bool    `envconfig:"MARQUEE_ENABLED" default:"true"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces with an empty environment.
func Default() *Config {
	return &Config{
		MinShapeSize:   5,
		SurfaceWidth:   1280,
		SurfaceHeight:  720,
		HandleSize:     10,
		MarqueeEnabled: true,
		LogLevel:       "info",
	}
}

func (c *Config) Validate() error {
	if c.MinShapeSize <= 0 {
		return fmt.Errorf("MIN_SHAPE_SIZE must be positive, got %v", c.MinShapeSize)
	}
	if c.HandleSize <= 0 {
		return fmt.Errorf("HANDLE_SIZE must be positive, got %v", c.HandleSize)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("DRAG_DEAD_ZONE must not be negative, got %v", c.DragDeadZone)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level. Validate guarantees it parses.
func (c *Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
