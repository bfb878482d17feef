package spacing_test

import (
	"fmt"

	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/team"
)

const (
	gsw = 1610612744
	cle = 1610612739
)

func shot(v float64) *float64 { return &v }

// frame places home player i at home[i] and visitor player i at visitor[i].
// Home ids are 1..n, visitor ids 11..n+10.
func frame(ts int64, clock float64, shotClock *float64, home, visitor []geometry.Point) model.Frame {
	f := model.Frame{
		Quarter:   1,
		Timestamp: ts,
		GameClock: clock,
		ShotClock: shotClock,
		Ball:      model.Ball{X: 47, Y: 25, Radius: 14},
	}
	for i, p := range home {
		f.Players = append(f.Players, model.Player{TeamID: gsw, ID: i + 1, X: p.X, Y: p.Y})
	}
	for i, p := range visitor {
		f.Players = append(f.Players, model.Player{TeamID: cle, ID: i + 11, X: p.X, Y: p.Y})
	}
	return f
}

func square(side float64) []geometry.Point {
	return []geometry.Point{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}, {X: side / 2, Y: side / 2}}
}

func triangle(dx float64) []geometry.Point {
	return []geometry.Point{{X: dx, Y: 0}, {X: dx + 4, Y: 0}, {X: dx, Y: 3}, {X: dx + 1, Y: 1}, {X: dx + 0.5, Y: 0.5}}
}

// frameA: home area 100, visitor area 6.
func frameA() model.Frame {
	return frame(1000, 700, shot(20), square(10), triangle(0))
}

// frameB: home area 400, visitor area 6. Pooled with frameA the visitor hull
// spans 36.
func frameB() model.Frame {
	return frame(1040, 699.96, nil, square(20), triangle(10))
}

func players(teamID, firstID int, prefix string) []team.PlayerInfo {
	out := make([]team.PlayerInfo, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, team.PlayerInfo{
			ID:        firstID + i,
			TeamID:    teamID,
			FirstName: prefix,
			LastName:  fmt.Sprintf("P%d", firstID+i),
			Jersey:    fmt.Sprintf("%d", firstID+i),
		})
	}
	return out
}

func event(id string, frames ...model.Frame) model.Event {
	return model.Event{
		ID:           id,
		Home:         model.TeamInfo{TeamID: gsw, Name: "Golden State Warriors", Abbreviation: "GSW", Players: players(gsw, 1, "Home")},
		Visitor:      model.TeamInfo{TeamID: cle, Name: "Cleveland Cavaliers", Abbreviation: "CLE", Players: players(cle, 11, "Away")},
		HomeScore:    50,
		VisitorScore: 47,
		Frames:       frames,
	}
}
