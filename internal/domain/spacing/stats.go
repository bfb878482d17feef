package spacing

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/okian/sportvu/internal/domain/dedupe"
	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/team"
)

// Timeline pools all events of a game into one event, dropping frames that
// an earlier event already carried. Team context comes from the first event;
// the roster is the union of every event's players.
func Timeline(g model.Game, d dedupe.Deduper) (model.Event, int, error) {
	if len(g.Events) == 0 {
		return model.Event{}, 0, fmt.Errorf("%w: %s", ErrEmptyGame, g.ID)
	}
	first := g.Events[0]
	pooled := model.Event{
		ID:           g.ID,
		Home:         model.TeamInfo{TeamID: first.Home.TeamID, Name: first.Home.Name, Abbreviation: first.Home.Abbreviation},
		Visitor:      model.TeamInfo{TeamID: first.Visitor.TeamID, Name: first.Visitor.Name, Abbreviation: first.Visitor.Abbreviation},
		HomeScore:    g.Events[len(g.Events)-1].HomeScore,
		VisitorScore: g.Events[len(g.Events)-1].VisitorScore,
	}

	homePlayers := map[int]team.PlayerInfo{}
	visitorPlayers := map[int]team.PlayerInfo{}
	dropped := 0
	for _, e := range g.Events {
		for _, p := range e.Home.Players {
			homePlayers[p.ID] = p
		}
		for _, p := range e.Visitor.Players {
			visitorPlayers[p.ID] = p
		}
		for _, f := range e.Frames {
			if d.SeenAndRecord(f.Key()) {
				dropped++
				continue
			}
			pooled.Frames = append(pooled.Frames, f)
		}
	}
	pooled.Home.Players = sortedPlayers(homePlayers)
	pooled.Visitor.Players = sortedPlayers(visitorPlayers)
	return pooled, dropped, nil
}

func sortedPlayers(m map[int]team.PlayerInfo) []team.PlayerInfo {
	out := lo.Values(m)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GameStats holds mean hull areas for one game, split by who had the ball.
// A field is zero when no frame fell in its bucket.
type GameStats struct {
	GameID          string
	HomeTeamID      int
	VisitorTeamID   int
	Frames          int
	MeanHomeOffense float64
	MeanHomeDefense float64
	MeanAwayOffense float64
	MeanAwayDefense float64
}

// GameStats pools every frame of g, de-duplicated, and files each team's
// hull area as offense or defense according to offense, the side treated as
// attacking for the whole timeline.
func (a *Aggregator) GameStats(g model.Game, offense model.Side) (GameStats, error) {
	timeline, _, err := Timeline(g, dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0)))
	if err != nil {
		return GameStats{}, err
	}
	var homeOff, homeDef, awayOff, awayDef []float64
	for _, f := range timeline.Frames {
		home := a.observe(model.Home, geometry.Area(f.Positions(timeline.Home.TeamID)))
		away := a.observe(model.Visitor, geometry.Area(f.Positions(timeline.Visitor.TeamID)))
		if offense == model.Home {
			homeOff = append(homeOff, home)
			awayDef = append(awayDef, away)
		} else {
			homeDef = append(homeDef, home)
			awayOff = append(awayOff, away)
		}
	}
	return GameStats{
		GameID:          g.ID,
		HomeTeamID:      timeline.Home.TeamID,
		VisitorTeamID:   timeline.Visitor.TeamID,
		Frames:          len(timeline.Frames),
		MeanHomeOffense: meanOf(homeOff),
		MeanHomeDefense: meanOf(homeDef),
		MeanAwayOffense: meanOf(awayOff),
		MeanAwayDefense: meanOf(awayDef),
	}, nil
}

func meanOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return lo.Sum(v) / float64(len(v))
}

// TeamSpacing is a team's average opponent defensive spacing across games.
type TeamSpacing struct {
	TeamID  int
	Spacing float64
	Games   int
}

// RankDefensiveSpacing averages, per team, the defensive hull area of its
// opponents: a team's home games contribute MeanAwayDefense and its road
// games MeanHomeDefense. Teams are ordered by spacing, widest first.
func RankDefensiveSpacing(stats []GameStats) []TeamSpacing {
	type acc struct {
		home, away []float64
	}
	byTeam := map[int]*acc{}
	get := func(id int) *acc {
		if byTeam[id] == nil {
			byTeam[id] = &acc{}
		}
		return byTeam[id]
	}
	for _, s := range stats {
		get(s.HomeTeamID).home = append(get(s.HomeTeamID).home, s.MeanAwayDefense)
		get(s.VisitorTeamID).away = append(get(s.VisitorTeamID).away, s.MeanHomeDefense)
	}

	out := make([]TeamSpacing, 0, len(byTeam))
	for id, a := range byTeam {
		var value float64
		switch {
		case len(a.home) > 0 && len(a.away) > 0:
			value = (meanOf(a.home) + meanOf(a.away)) / 2
		case len(a.home) > 0:
			value = meanOf(a.home)
		default:
			value = meanOf(a.away)
		}
		out = append(out, TeamSpacing{TeamID: id, Spacing: value, Games: len(a.home) + len(a.away)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spacing != out[j].Spacing {
			return out[i].Spacing > out[j].Spacing
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
