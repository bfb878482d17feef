package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/sportvu/internal/adapters/render/svg"
	"github.com/okian/sportvu/internal/adapters/render/terminal"
	"github.com/okian/sportvu/internal/domain/dedupe"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/pkg/logger"
	"github.com/okian/sportvu/pkg/metrics"
)

// Output selects where replay frames go. At least one target is required.
type Output struct {
	// TTY plays the frames in the terminal.
	TTY bool
	// Dir receives one SVG file per frame.
	Dir string
}

func (o Output) empty() bool {
	return !o.TTY && o.Dir == ""
}

// ReplayRequest selects one event of a game.
type ReplayRequest struct {
	Path   string
	Event  int
	Side   model.Side
	Output Output
}

// ReplayResult reports what was replayed.
type ReplayResult struct {
	EventIndex int
	Clamped    bool
	Frames     int
}

// Replay renders one event. Out-of-range event indexes are clamped to the
// nearest valid one with a warning.
func (s *Service) Replay(ctx context.Context, req ReplayRequest) (ReplayResult, error) {
	if req.Output.empty() {
		return ReplayResult{}, ErrNoOutput
	}
	g, err := s.LoadGame(ctx, req.Path)
	if err != nil {
		return ReplayResult{}, err
	}
	if len(g.Events) == 0 {
		return ReplayResult{}, fmt.Errorf("%w: %s", ErrNoEvents, req.Path)
	}

	last := len(g.Events) - 1
	idx, clamped := spacing.ClampIndex(req.Event, len(g.Events))
	if clamped {
		s.logger.Warn(ctx, "event index out of range, clamped",
			logger.Int("requested", req.Event),
			logger.Int("used", idx),
		)
	}
	_, _ = fmt.Fprintf(s.out, "Select an event from 0 to %d\n", last)

	r, err := s.replayer(g.Events[idx], req.Side)
	if err != nil {
		return ReplayResult{}, err
	}
	if err := s.present(ctx, r, req.Output); err != nil {
		return ReplayResult{}, err
	}
	return ReplayResult{EventIndex: idx, Clamped: clamped, Frames: r.Len()}, nil
}

// SpacingRequest selects a game whose events are pooled into one timeline.
type SpacingRequest struct {
	Path   string
	Side   model.Side
	Output Output
	// Chart, when set, receives the defensive spacing bar chart of the game.
	Chart string
}

// SpacingResult reports the pooled timeline and its spacing stats.
type SpacingResult struct {
	Frames     int
	Duplicates int
	Stats      spacing.GameStats
}

// Spacing pools every event of the game, drops repeated moments and plays
// the hull of req.Side over the whole timeline.
func (s *Service) Spacing(ctx context.Context, req SpacingRequest) (SpacingResult, error) {
	if req.Output.empty() && req.Chart == "" {
		return SpacingResult{}, ErrNoOutput
	}
	g, err := s.LoadGame(ctx, req.Path)
	if err != nil {
		return SpacingResult{}, err
	}

	pooled, dropped, err := spacing.Timeline(g, dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.cfg.DedupeSize)))
	if err != nil {
		return SpacingResult{}, fmt.Errorf("%s: %w", req.Path, err)
	}
	for range dropped {
		metrics.RecordFrameDuplicate()
	}
	s.logger.Info(ctx, "timeline pooled",
		logger.String("game_id", g.ID),
		logger.Int("frames", len(pooled.Frames)),
		logger.Int("duplicates", dropped),
	)

	side := req.Side
	if side == "" {
		side = s.cfg.Side()
	}
	stats, err := s.aggregator.GameStats(g, side)
	if err != nil {
		return SpacingResult{}, err
	}
	s.writeGameStats(stats)

	if req.Chart != "" {
		if err := s.writeChart(req.Chart, spacing.RankDefensiveSpacing([]spacing.GameStats{stats})); err != nil {
			return SpacingResult{}, err
		}
	}

	if !req.Output.empty() {
		r, err := s.replayer(pooled, side)
		if err != nil {
			return SpacingResult{}, err
		}
		if err := s.present(ctx, r, req.Output); err != nil {
			return SpacingResult{}, err
		}
	}
	return SpacingResult{Frames: len(pooled.Frames), Duplicates: dropped, Stats: stats}, nil
}

func (s *Service) replayer(e model.Event, side model.Side) (*spacing.Replayer, error) {
	if side == "" {
		side = s.cfg.Side()
	}
	return spacing.NewReplayer(e, s.teams,
		spacing.WithHullSide(side),
		spacing.WithBallScale(s.cfg.Court.BallScale),
		spacing.WithClockWrap(s.cfg.ClockWrapSeconds),
	)
}

// present writes SVG frames first so a quit in the terminal still leaves
// the files behind.
func (s *Service) present(ctx context.Context, r *spacing.Replayer, out Output) error {
	if out.Dir != "" {
		if err := s.writeFrames(ctx, r, out.Dir); err != nil {
			return err
		}
	}
	if out.TTY {
		return s.play(ctx, r)
	}
	return nil
}

func (s *Service) writeFrames(ctx context.Context, r *spacing.Replayer, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create frame dir: %w", err)
	}
	renderer := svg.NewFrameRenderer(s.cfg.Court)
	for i := 0; i < r.Len(); i++ {
		st, err := r.Render(i)
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, fmt.Sprintf("frame_%05d.svg", i)), func(f *os.File) error {
			return renderer.Render(f, st)
		}); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "frames written", logger.String("dir", dir), logger.Int("frames", r.Len()))
	return nil
}

func (s *Service) play(ctx context.Context, r *spacing.Replayer) error {
	screen, err := s.newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	p := terminal.NewPlayer(screen, s.cfg.Court,
		terminal.WithRefresh(s.cfg.RefreshInterval()),
		terminal.WithLogger(s.logger),
	)
	return p.Play(ctx, r)
}

// writeFile creates path and hands it to fill, closing it either way.
func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
