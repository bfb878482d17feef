// Package spacing reduces tracking frames to team spacing features and
// answers per-frame display queries for replay renderers.
package spacing

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/model"
)

// HullPolicy selects how an event's frames are reduced to one area per team.
type HullPolicy string

const (
	// PerFrameMean averages the hull area of every frame.
	PerFrameMean HullPolicy = "per_frame"
	// Pooled computes a single hull over every frame's positions at once.
	Pooled HullPolicy = "pooled"
)

// ParseHullPolicy accepts "per_frame" or "pooled".
func ParseHullPolicy(s string) (HullPolicy, error) {
	switch HullPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PerFrameMean, "":
		return PerFrameMean, nil
	case Pooled:
		return Pooled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// FeatureSample pairs one event's spacing differential with its score
// differential.
type FeatureSample struct {
	EventID             string
	SpacingDifferential float64
	ScoreDifferential   float64
}

// Samples is an ordered run of feature samples.
type Samples []FeatureSample

// Spacing returns the spacing differentials in sample order.
func (s Samples) Spacing() []float64 {
	return lo.Map(s, func(f FeatureSample, _ int) float64 { return f.SpacingDifferential })
}

// Score returns the score differentials in sample order.
func (s Samples) Score() []float64 {
	return lo.Map(s, func(f FeatureSample, _ int) float64 { return f.ScoreDifferential })
}

// HullObserver is told about every hull area the aggregator computes.
type HullObserver func(side model.Side, area float64)

// Aggregator turns events into feature samples.
type Aggregator struct {
	policy   HullPolicy
	observer HullObserver
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithPolicy sets the hull policy.
func WithPolicy(p HullPolicy) Option {
	return func(a *Aggregator) {
		if p != "" {
			a.policy = p
		}
	}
}

// WithHullObserver registers a callback for computed hull areas.
func WithHullObserver(obs HullObserver) Option {
	return func(a *Aggregator) {
		a.observer = obs
	}
}

// NewAggregator builds an Aggregator. The default policy is PerFrameMean.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{policy: PerFrameMean}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the configured hull policy.
func (a *Aggregator) Policy() HullPolicy {
	return a.policy
}

// AggregateEvent computes home hull area minus visitor hull area under the
// configured policy, paired with home minus visitor score.
func (a *Aggregator) AggregateEvent(e model.Event) (FeatureSample, error) {
	home, err := a.teamArea(e.Frames, e.Home.TeamID, model.Home)
	if err != nil {
		return FeatureSample{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	visitor, err := a.teamArea(e.Frames, e.Visitor.TeamID, model.Visitor)
	if err != nil {
		return FeatureSample{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	return FeatureSample{
		EventID:             e.ID,
		SpacingDifferential: home - visitor,
		ScoreDifferential:   float64(e.ScoreDifferential()),
	}, nil
}

// AggregateGame reduces every event of g, stopping at the first failure.
func (a *Aggregator) AggregateGame(g model.Game) (Samples, error) {
	out := make(Samples, 0, len(g.Events))
	for _, e := range g.Events {
		s, err := a.AggregateEvent(e)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (a *Aggregator) teamArea(frames []model.Frame, teamID int, side model.Side) (float64, error) {
	switch a.policy {
	case Pooled:
		var pts []geometry.Point
		for _, f := range frames {
			pts = append(pts, f.Positions(teamID)...)
		}
		return a.observe(side, geometry.Area(pts)), nil
	case PerFrameMean:
		if len(frames) == 0 {
			return 0, nil
		}
		areas := lo.Map(frames, func(f model.Frame, _ int) float64 {
			return a.observe(side, geometry.Area(f.Positions(teamID)))
		})
		return lo.Sum(areas) / float64(len(areas)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, a.policy)
	}
}

func (a *Aggregator) observe(side model.Side, area float64) float64 {
	if a.observer != nil {
		a.observer(side, area)
	}
	return area
}
