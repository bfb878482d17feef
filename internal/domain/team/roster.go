package team

import (
	"fmt"
	"strings"
)

// PlayerInfo is the roster entry for one player.
type PlayerInfo struct {
	ID        int
	TeamID    int
	FirstName string
	LastName  string
	Jersey    string
	Position  string
}

// FullName returns "First Last".
func (p PlayerInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Label returns the table label used beside the court, "First Last #23".
func (p PlayerInfo) Label() string {
	return p.FullName() + " #" + p.Jersey
}

// Roster maps player ids to roster entries for one event.
type Roster struct {
	byID map[int]PlayerInfo
}

// NewRoster indexes players by id. A player listed twice keeps the last entry.
func NewRoster(players ...[]PlayerInfo) *Roster {
	r := &Roster{byID: make(map[int]PlayerInfo)}
	for _, list := range players {
		for _, p := range list {
			r.byID[p.ID] = p
		}
	}
	return r
}

// Lookup resolves a player id. Unknown ids fail with ErrUnknownPlayer.
func (r *Roster) Lookup(id int) (PlayerInfo, error) {
	p, ok := r.byID[id]
	if !ok {
		return PlayerInfo{}, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Len returns the number of players on the roster.
func (r *Roster) Len() int {
	return len(r.byID)
}
