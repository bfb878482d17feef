// Package config defines analyzer configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and SVU_ env vars.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/spacing"
)

// Court describes the drawing surface in SportVU feet.
type Court struct {
	MinX float64 `koanf:"min_x"`
	MaxX float64 `koanf:"max_x"`
	MinY float64 `koanf:"min_y"`
	MaxY float64 `koanf:"max_y"`

	// BallScale divides the ball's raw height into a drawing radius.
	BallScale float64 `koanf:"ball_scale"`

	// PlayerRadius is the marker radius of a player.
	PlayerRadius float64 `koanf:"player_radius"`

	// Offset pads the drawing area around the court.
	Offset float64 `koanf:"offset"`
}

// Width returns the court length along x.
func (c Court) Width() float64 { return c.MaxX - c.MinX }

// Height returns the court width along y.
func (c Court) Height() float64 { return c.MaxY - c.MinY }

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// HullPolicy is per_frame or pooled.
	HullPolicy string `koanf:"hull_policy"`

	// TeamSide is the side whose hull replays highlight: home or visitor.
	TeamSide string `koanf:"team_side"`

	// ClockWrapSeconds bounds the minutes field of the clock text; 0 disables.
	ClockWrapSeconds int `koanf:"clock_wrap_seconds"`

	// RefreshMS is the delay between frames in terminal playback.
	RefreshMS int `koanf:"refresh_ms"`

	// DedupeSize bounds the frame keys remembered while pooling events;
	// 0 remembers all of them.
	DedupeSize int `koanf:"dedupe_size"`

	// MetricsFile, when set, receives a Prometheus text dump after each run.
	MetricsFile string `koanf:"metrics_file"`

	Court Court `koanf:"court"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		HullPolicy:       string(spacing.PerFrameMean),
		TeamSide:         string(model.Home),
		ClockWrapSeconds: 3600,
		RefreshMS:        10,
		DedupeSize:       0,
		Court: Court{
			MinX:         0,
			MaxX:         100,
			MinY:         0,
			MaxY:         50,
			BallScale:    7,
			PlayerRadius: 12.0 / 7.0,
			Offset:       6,
		},
	}
}

// Policy returns the parsed hull policy. Call after Validate.
func (c *Config) Policy() spacing.HullPolicy {
	p, _ := spacing.ParseHullPolicy(c.HullPolicy)
	return p
}

// Side returns the parsed team side. Call after Validate.
func (c *Config) Side() model.Side {
	s, err := model.ParseSide(c.TeamSide)
	if err != nil {
		return model.Home
	}
	return s
}

// RefreshInterval returns RefreshMS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMS) * time.Millisecond
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := spacing.ParseHullPolicy(c.HullPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := model.ParseSide(c.TeamSide); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ClockWrapSeconds < 0 {
		return fmt.Errorf("%w: clock_wrap_seconds must not be negative", ErrInvalidConfig)
	}
	if c.RefreshMS <= 0 {
		return fmt.Errorf("%w: refresh_ms must be positive", ErrInvalidConfig)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("%w: dedupe_size must not be negative", ErrInvalidConfig)
	}
	return c.Court.validate()
}

func (c Court) validate() error {
	if c.MaxX <= c.MinX || c.MaxY <= c.MinY {
		return fmt.Errorf("%w: court bounds are empty", ErrInvalidConfig)
	}
	if c.BallScale <= 0 {
		return fmt.Errorf("%w: court.ball_scale must be positive", ErrInvalidConfig)
	}
	if c.PlayerRadius <= 0 {
		return fmt.Errorf("%w: court.player_radius must be positive", ErrInvalidConfig)
	}
	if c.Offset < 0 {
		return fmt.Errorf("%w: court.offset must not be negative", ErrInvalidConfig)
	}
	return nil
}
