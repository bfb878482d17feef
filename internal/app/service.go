// Package service wires the archive, decoder, spacing engine, regression and
// renderers into the operations the CLI exposes.
package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/okian/sportvu/internal/adapters/archive"
	"github.com/okian/sportvu/internal/adapters/sportvu"
	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/internal/domain/team"
	"github.com/okian/sportvu/pkg/logger"
	"github.com/okian/sportvu/pkg/metrics"
)

// ScreenFactory opens the terminal used for playback.
type ScreenFactory func() (tcell.Screen, error)

// Service runs analyzer operations. It is single-threaded; one Service
// serves one CLI invocation.
type Service struct {
	cfg        *config.Config
	teams      *team.Registry
	aggregator *spacing.Aggregator
	out        io.Writer
	newScreen  ScreenFactory
	runID      string

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration. Defaults come from config.New.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithRegistry sets the team registry.
func WithRegistry(r *team.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.teams = r
		}
	}
}

// WithOutput sets where reports are written.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithScreenFactory sets how playback terminals are opened.
func WithScreenFactory(f ScreenFactory) Option {
	return func(s *Service) {
		if f != nil {
			s.newScreen = f
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       config.New(),
		teams:     team.DefaultRegistry(),
		out:       os.Stdout,
		newScreen: tcell.NewScreen,
		runID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("service").With(logger.String("run_id", s.runID))
	s.aggregator = spacing.NewAggregator(
		spacing.WithPolicy(s.cfg.Policy()),
		spacing.WithHullObserver(func(side model.Side, area float64) {
			metrics.RecordHull(string(side), area)
		}),
	)
	return s
}

// RunID identifies this invocation in logs.
func (s *Service) RunID() string {
	return s.runID
}

// LoadGame opens and decodes one game file.
func (s *Service) LoadGame(ctx context.Context, path string) (model.Game, error) {
	start := time.Now()

	src, err := archive.Open(path)
	if err != nil {
		return model.Game{}, err
	}
	defer func() { _ = src.Close() }()

	g, err := sportvu.Decode(src)
	if err != nil {
		return model.Game{}, fmt.Errorf("%s: %w", path, err)
	}

	elapsed := time.Since(start)
	metrics.RecordLoadDuration(float64(elapsed.Milliseconds()))
	s.logger.Info(ctx, "game loaded",
		logger.String("path", path),
		logger.String("member", src.Member),
		logger.String("game_id", g.ID),
		logger.Int("events", len(g.Events)),
		logger.Int("frames", g.FrameCount()),
		logger.Int("elapsed_ms", int(elapsed.Milliseconds())),
	)
	return g, nil
}
