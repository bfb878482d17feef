package model

import (
	"fmt"
	"strings"

	"github.com/okian/sportvu/internal/domain/team"
)

// Side names one of the two teams in an event.
type Side string

// Sides.
const (
	Home    Side = "home"
	Visitor Side = "visitor"
)

// ParseSide accepts "home" or "visitor" (case-insensitive; "away" is an alias
// for visitor).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return Home, nil
	case "visitor", "away":
		return Visitor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// TeamInfo is one team's context for an event.
type TeamInfo struct {
	TeamID       int
	Name         string
	Abbreviation string
	Players      []team.PlayerInfo
}

// Event is one possession or play: ordered frames plus game context.
type Event struct {
	ID           string
	Home         TeamInfo
	Visitor      TeamInfo
	HomeScore    int
	VisitorScore int
	Frames       []Frame
}

// Team returns the TeamInfo for side.
func (e Event) Team(side Side) TeamInfo {
	if side == Home {
		return e.Home
	}
	return e.Visitor
}

// SideOf reports which side teamID plays on in this event.
func (e Event) SideOf(teamID int) (Side, bool) {
	switch teamID {
	case e.Home.TeamID:
		return Home, true
	case e.Visitor.TeamID:
		return Visitor, true
	default:
		return "", false
	}
}

// ScoreDifferential is home minus visitor score.
func (e Event) ScoreDifferential() int {
	return e.HomeScore - e.VisitorScore
}

// Roster indexes both teams' players.
func (e Event) Roster() *team.Roster {
	return team.NewRoster(e.Home.Players, e.Visitor.Players)
}

// Game is the ordered sequence of events of one game file.
type Game struct {
	ID     string
	Date   string
	Events []Event
}

// FrameCount returns the total number of frames across all events.
func (g Game) FrameCount() int {
	n := 0
	for _, e := range g.Events {
		n += len(e.Frames)
	}
	return n
}
