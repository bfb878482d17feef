package service_test

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
)

const (
	gswID = 1610612744
	cleID = 1610612739
)

func roster(teamID, firstID int, name, abbr string) map[string]any {
	players := make([]map[string]any, 0, 5)
	for i := 0; i < 5; i++ {
		players = append(players, map[string]any{
			"lastname":  "Player",
			"firstname": abbr,
			"playerid":  firstID + i,
			"jersey":    strconv.Itoa(firstID + i),
			"position":  "G",
		})
	}
	return map[string]any{"name": name, "teamid": teamID, "abbreviation": abbr, "players": players}
}

// moment places the home five on a square of side and the visitors on a
// 4x3 right triangle with two interior points.
func moment(ts int64, clock, side float64) []any {
	entities := []any{[]any{-1, -1, 47.0, 25.0, 7.0}}
	home := [][2]float64{{0, 0}, {side, 0}, {side, side}, {0, side}, {side / 2, side / 2}}
	for i, p := range home {
		entities = append(entities, []any{gswID, 1 + i, p[0], p[1], 0.0})
	}
	visitor := [][2]float64{{60, 0}, {64, 0}, {60, 3}, {61, 1}, {60.5, 0.5}}
	for i, p := range visitor {
		entities = append(entities, []any{cleID, 11 + i, p[0], p[1], 0.0})
	}
	return []any{1, ts, clock, 20.0, nil, entities}
}

// writeGame stores a two-event game. The second event repeats the first
// event's moment before its own.
//
// Per-frame spacing: event 1 is 100-6, event 2 is ((100-6)+(400-6))/2.
// Score differential: event 1 is +5, event 2 is -3.
func writeGame(dir, name string) string {
	first := moment(1000, 700, 10)
	doc := map[string]any{
		"gameid":   name,
		"gamedate": "2016-01-01",
		"events": []any{
			map[string]any{
				"eventId":       "1",
				"home":          roster(gswID, 1, "Golden State Warriors", "GSW"),
				"visitor":       roster(cleID, 11, "Cleveland Cavaliers", "CLE"),
				"moments":       []any{first},
				"home_score":    10,
				"visitor_score": 5,
			},
			map[string]any{
				"eventId":       "2",
				"home":          roster(gswID, 1, "Golden State Warriors", "GSW"),
				"visitor":       roster(cleID, 11, "Cleveland Cavaliers", "CLE"),
				"moments":       []any{first, moment(1040, 699.96, 20)},
				"home_score":    12,
				"visitor_score": 15,
			},
		},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		panic(err)
	}
	return path
}
