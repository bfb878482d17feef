// Package model contains the tracking data model: frames, events and games.
package model

import (
	"fmt"

	"github.com/okian/sportvu/internal/domain/geometry"
)

// Layout of a raw moment record:
// [quarter, epoch_ms, game_clock, shot_clock|null, unused, [ball, player...]].
const (
	momentFields     = 6
	idxQuarter       = 0
	idxTimestamp     = 1
	idxGameClock     = 2
	idxShotClock     = 3
	idxPositions     = 5
	entityFields     = 5 // [team_id, player_id, x, y, z]
	secondsPerMinute = 60
)

// Ball is the ball position and its raw height, which the renderer uses as a
// radius after scaling.
type Ball struct {
	X      float64
	Y      float64
	Radius float64
}

// Position returns the ball's court position.
func (b Ball) Position() geometry.Point {
	return geometry.Point{X: b.X, Y: b.Y}
}

// DisplayRadius scales the raw height into a drawing radius.
func (b Ball) DisplayRadius(scale float64) float64 {
	if scale == 0 {
		return b.Radius
	}
	return b.Radius / scale
}

// Player is one player's sampled position. TeamID is resolved through the
// team registry by whoever needs display attributes.
type Player struct {
	TeamID int
	ID     int
	X      float64
	Y      float64
	Z      float64
}

// Position returns the player's court position.
func (p Player) Position() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// Frame is one sampled instant of game state. Frames are values and are never
// mutated after NewFrame returns.
type Frame struct {
	Quarter   int
	Timestamp int64
	GameClock float64
	// ShotClock is nil when the shot clock is not running.
	ShotClock *float64
	Ball      Ball
	Players   []Player
}

// NewFrame builds a Frame from one raw moment record as decoded from JSON
// (numbers as float64, null as nil).
func NewFrame(raw []any) (Frame, error) {
	if len(raw) < momentFields {
		return Frame{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedFrame, momentFields, len(raw))
	}

	quarter, ok := number(raw[idxQuarter])
	if !ok {
		return Frame{}, fmt.Errorf("%w: quarter is %T", ErrMalformedFrame, raw[idxQuarter])
	}
	var ts float64
	if raw[idxTimestamp] != nil {
		if ts, ok = number(raw[idxTimestamp]); !ok {
			return Frame{}, fmt.Errorf("%w: timestamp is %T", ErrMalformedFrame, raw[idxTimestamp])
		}
	}
	clock, ok := number(raw[idxGameClock])
	if !ok {
		return Frame{}, fmt.Errorf("%w: game clock is %T", ErrMalformedFrame, raw[idxGameClock])
	}

	var shot *float64
	if raw[idxShotClock] != nil {
		v, ok := number(raw[idxShotClock])
		if !ok {
			return Frame{}, fmt.Errorf("%w: shot clock is %T", ErrMalformedFrame, raw[idxShotClock])
		}
		shot = &v
	}

	entities, ok := raw[idxPositions].([]any)
	if !ok {
		return Frame{}, fmt.Errorf("%w: positions is %T", ErrMalformedFrame, raw[idxPositions])
	}
	if len(entities) == 0 {
		return Frame{}, fmt.Errorf("%w: positions list is empty", ErrMalformedFrame)
	}

	ballRec, err := entity(entities[0])
	if err != nil {
		return Frame{}, fmt.Errorf("ball: %w", err)
	}

	players := make([]Player, 0, len(entities)-1)
	for i, e := range entities[1:] {
		p, err := entity(e)
		if err != nil {
			return Frame{}, fmt.Errorf("player %d: %w", i, err)
		}
		players = append(players, p)
	}

	return Frame{
		Quarter:   int(quarter),
		Timestamp: int64(ts),
		GameClock: clock,
		ShotClock: shot,
		Ball:      Ball{X: ballRec.X, Y: ballRec.Y, Radius: ballRec.Z},
		Players:   players,
	}, nil
}

func entity(v any) (Player, error) {
	rec, ok := v.([]any)
	if !ok || len(rec) < entityFields {
		return Player{}, fmt.Errorf("%w: entity record %v", ErrMalformedFrame, v)
	}
	var vals [entityFields]float64
	for i := range vals {
		f, ok := number(rec[i])
		if !ok {
			return Player{}, fmt.Errorf("%w: entity field %d is %T", ErrMalformedFrame, i, rec[i])
		}
		vals[i] = f
	}
	return Player{
		TeamID: int(vals[0]),
		ID:     int(vals[1]),
		X:      vals[2],
		Y:      vals[3],
		Z:      vals[4],
	}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ShotClockValue returns the shot clock, or 0 when it is not running.
func (f Frame) ShotClockValue() float64 {
	if f.ShotClock == nil {
		return 0
	}
	return *f.ShotClock
}

// ClockText renders the scoreboard text shown beside the court:
//
//	Quarter 1
//	11:46
//	23.1
//
// wrapSeconds bounds the minutes field (minutes = clock mod wrap / 60). Zero
// disables the wrap. Game clocks never exceed 720s, so both settings agree on
// real data.
func (f Frame) ClockText(wrapSeconds int) string {
	secs := int(f.GameClock)
	minutesBase := secs
	if wrapSeconds > 0 {
		minutesBase = secs % wrapSeconds
	}
	return fmt.Sprintf("Quarter %d\n%02d:%02d\n%03.1f",
		f.Quarter,
		minutesBase/secondsPerMinute,
		secs%secondsPerMinute,
		f.ShotClockValue(),
	)
}

// PlayersOf returns the players of teamID in frame order.
func (f Frame) PlayersOf(teamID int) []Player {
	out := make([]Player, 0, len(f.Players)/2)
	for _, p := range f.Players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// Positions returns the court positions of teamID's players in frame order.
func (f Frame) Positions(teamID int) []geometry.Point {
	out := make([]geometry.Point, 0, len(f.Players)/2)
	for _, p := range f.Players {
		if p.TeamID == teamID {
			out = append(out, p.Position())
		}
	}
	return out
}

// Key identifies a frame within a game by period and clocks. Consecutive
// events in SportVU logs repeat the same moments, which share a key.
func (f Frame) Key() string {
	return fmt.Sprintf("%d/%d/%.2f/%.2f", f.Quarter, f.Timestamp, f.GameClock, f.ShotClockValue())
}
