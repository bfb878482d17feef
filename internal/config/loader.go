package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/sportvu/internal/domain/model"
)

const (
	envPrefix     = "SVU_"
	envConfigFile = "SVU_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SVU_CONFIG is set
//  3. env (prefix SVU_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SVU_REFRESH_MS -> refresh_ms, SVU_COURT__BALL_SCALE -> court.ball_scale.
	// Single underscores survive to match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ManifestGame is one game of a batch run.
type ManifestGame struct {
	// Path is the game file; relative paths resolve against the manifest.
	Path string `koanf:"path"`

	// Offense is the side treated as attacking for spacing stats.
	Offense string `koanf:"offense"`
}

// Side returns the parsed offense side, home when unset.
func (g ManifestGame) Side() model.Side {
	s, err := model.ParseSide(g.Offense)
	if err != nil {
		return model.Home
	}
	return s
}

// Manifest lists the games of a batch run.
type Manifest struct {
	Games []ManifestGame `koanf:"games"`
}

// LoadManifest reads a YAML batch manifest.
func LoadManifest(path string) (*Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}

	var m Manifest
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	if len(m.Games) == 0 {
		return nil, fmt.Errorf("%w: manifest %s lists no games", ErrInvalidConfig, path)
	}

	base := filepath.Dir(path)
	for i, g := range m.Games {
		if g.Path == "" {
			return nil, fmt.Errorf("%w: manifest game %d has no path", ErrInvalidConfig, i)
		}
		if g.Offense != "" {
			if _, err := model.ParseSide(g.Offense); err != nil {
				return nil, fmt.Errorf("%w: manifest game %d: %w", ErrInvalidConfig, i, err)
			}
		}
		if !filepath.IsAbs(g.Path) {
			m.Games[i].Path = filepath.Join(base, g.Path)
		}
	}
	return &m, nil
}
