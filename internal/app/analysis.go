package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/okian/sportvu/internal/adapters/archive"
	"github.com/okian/sportvu/internal/adapters/render/svg"
	"github.com/okian/sportvu/internal/adapters/sportvu"
	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/regression"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/pkg/logger"
	"github.com/okian/sportvu/pkg/metrics"
)

const chartTitle = "Team's Ability to Space the Defense"

// RegressRequest lists the games to pool into one regression.
type RegressRequest struct {
	Paths []string
	// Plot, when set, receives the scatter plot with the fitted line.
	Plot string
}

// RegressResult is the fitted model, the samples behind it and the number of
// games left out.
type RegressResult struct {
	Model   regression.Model
	Samples spacing.Samples
	Skipped int
}

// Regress fits score differential against spacing differential over every
// event of every game. Games that cannot be read or aggregated are logged and
// skipped; the run fails when none succeed or the pooled samples cannot be
// fitted.
func (s *Service) Regress(ctx context.Context, req RegressRequest) (RegressResult, error) {
	var samples spacing.Samples
	skipped, err := s.eachGame(ctx, req.Paths, func(_ int, path string) error {
		g, err := s.LoadGame(ctx, path)
		if err != nil {
			return err
		}
		gs, err := s.aggregator.AggregateGame(g)
		if err != nil {
			return err
		}
		for range gs {
			metrics.RecordEventAggregated()
		}
		samples = append(samples, gs...)
		return nil
	})
	if err != nil {
		return RegressResult{}, err
	}
	if skipped == len(req.Paths) {
		return RegressResult{Skipped: skipped}, fmt.Errorf("%w: %d skipped", ErrNoGames, skipped)
	}

	m, err := regression.Fit(samples.Spacing(), samples.Score())
	if err != nil {
		return RegressResult{Skipped: skipped}, fmt.Errorf("regress %d samples: %w", len(samples), err)
	}
	metrics.UpdateRegression(m.N, m.Slope, m.RSquared)
	s.logger.Info(ctx, "regression fitted",
		logger.Int("samples", m.N),
		logger.Int("skipped", skipped),
		logger.Float64("slope", m.Slope),
		logger.Float64("r2", m.RSquared),
		logger.String("policy", string(s.aggregator.Policy())),
	)

	_, _ = fmt.Fprintf(s.out, "Samples: %d\nSlope: %.6f\nIntercept: %.6f\nR-squared: %.6f\n",
		m.N, m.Slope, m.Intercept, m.RSquared)

	if req.Plot != "" {
		if err := writeFile(req.Plot, func(f *os.File) error { return svg.Scatter(f, samples, m) }); err != nil {
			return RegressResult{}, err
		}
		s.logger.Info(ctx, "scatter plot written", logger.String("path", req.Plot))
	}
	return RegressResult{Model: m, Samples: samples, Skipped: skipped}, nil
}

// Sample prints the event count and the first n events of a game verbatim.
func (s *Service) Sample(ctx context.Context, path string, n int) error {
	src, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	sample, err := sportvu.DecodeSample(src, n)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug(ctx, "sample decoded", logger.Int("events", sample.EventCount), logger.Int("shown", len(sample.Events)))
	return sportvu.WriteSample(s.out, sample)
}

// BatchRequest names a manifest of games.
type BatchRequest struct {
	Manifest string
	// Chart, when set, receives the team defensive spacing bar chart.
	Chart string
}

// BatchResult holds per-game stats, the team ranking and the skip count.
type BatchResult struct {
	Games   []spacing.GameStats
	Ranking []spacing.TeamSpacing
	Skipped int
}

// Batch computes spacing stats for every game of the manifest in order.
// Games that fail are logged and skipped; the run fails only when none
// succeed.
func (s *Service) Batch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	m, err := config.LoadManifest(req.Manifest)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	paths := lo.Map(m.Games, func(g config.ManifestGame, _ int) string { return g.Path })
	res.Skipped, err = s.eachGame(ctx, paths, func(i int, _ string) error {
		stats, err := s.gameStats(ctx, m.Games[i])
		if err != nil {
			return err
		}
		res.Games = append(res.Games, stats)
		return nil
	})
	if err != nil {
		return BatchResult{}, err
	}
	if len(res.Games) == 0 {
		return res, fmt.Errorf("%w: %d skipped", ErrNoGames, res.Skipped)
	}

	res.Ranking = spacing.RankDefensiveSpacing(res.Games)
	s.writeRanking(res.Ranking)
	if req.Chart != "" {
		if err := s.writeChart(req.Chart, res.Ranking); err != nil {
			return res, err
		}
	}
	s.logger.Info(ctx, "batch finished",
		logger.Int("games", len(res.Games)),
		logger.Int("skipped", res.Skipped),
	)
	return res, nil
}

// eachGame runs fn over paths in order. A game whose fn fails is logged and
// counted as skipped; only cancellation ends the run early.
func (s *Service) eachGame(ctx context.Context, paths []string, fn func(i int, path string) error) (int, error) {
	skipped := 0
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		if err := fn(i, path); err != nil {
			reason := "error"
			if errors.Is(err, archive.ErrFileNotFound) {
				reason = "missing"
			}
			metrics.RecordGameSkipped(reason)
			s.logger.Error(ctx, "skipping game", logger.String("path", path), logger.String("reason", reason), logger.Error(err))
			skipped++
			continue
		}
		metrics.RecordGameProcessed()
	}
	return skipped, nil
}

func (s *Service) gameStats(ctx context.Context, entry config.ManifestGame) (spacing.GameStats, error) {
	g, err := s.LoadGame(ctx, entry.Path)
	if err != nil {
		return spacing.GameStats{}, err
	}
	return s.aggregator.GameStats(g, entry.Side())
}

func (s *Service) writeGameStats(st spacing.GameStats) {
	_, _ = fmt.Fprintf(s.out,
		"Game %s (%d frames)\n  %-4s offense %10.2f  defense %10.2f\n  %-4s offense %10.2f  defense %10.2f\n",
		st.GameID, st.Frames,
		s.abbreviation(st.HomeTeamID), st.MeanHomeOffense, st.MeanHomeDefense,
		s.abbreviation(st.VisitorTeamID), st.MeanAwayOffense, st.MeanAwayDefense,
	)
}

func (s *Service) writeRanking(ranking []spacing.TeamSpacing) {
	_, _ = fmt.Fprintln(s.out, "Team  Games  Opponent defensive spacing")
	for _, r := range ranking {
		_, _ = fmt.Fprintf(s.out, "%-4s  %5d  %10.2f\n", s.abbreviation(r.TeamID), r.Games, r.Spacing)
	}
}

func (s *Service) writeChart(path string, ranking []spacing.TeamSpacing) error {
	bars := lo.Map(ranking, func(r spacing.TeamSpacing, _ int) svg.Bar {
		b := svg.Bar{Label: s.abbreviation(r.TeamID), Value: r.Spacing, Color: "#1D428A"}
		if t, err := s.teams.Lookup(r.TeamID); err == nil {
			b.Color = t.Color
		}
		return b
	})
	return writeFile(path, func(f *os.File) error { return svg.BarChart(f, chartTitle, bars) })
}

// abbreviation falls back to the numeric id for teams outside the registry.
func (s *Service) abbreviation(id int) string {
	t, err := s.teams.Lookup(id)
	if err != nil {
		return fmt.Sprintf("%d", id)
	}
	return t.Abbreviation
}
