// Package team resolves numeric SportVU team and player ids to named
// entities with display attributes.
package team

import "fmt"

// BallTeamID is the team id SportVU assigns to the ball record.
const BallTeamID = -1

// BallColor is the display color of the ball.
const BallColor = "#FF8C00"

// Team is a franchise with stable display attributes.
type Team struct {
	ID           int
	Abbreviation string
	Name         string
	Color        string
}

// Registry is an immutable id -> Team lookup.
type Registry struct {
	byID map[int]Team
}

// NewRegistry builds a registry from teams. Duplicate ids are rejected.
func NewRegistry(teams []Team) (*Registry, error) {
	r := &Registry{byID: make(map[int]Team, len(teams))}
	for _, t := range teams {
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate team id %d", ErrInvalidRegistry, t.ID)
		}
		r.byID[t.ID] = t
	}
	return r, nil
}

// Lookup resolves id. Unknown ids fail with ErrUnknownTeam.
func (r *Registry) Lookup(id int) (Team, error) {
	t, ok := r.byID[id]
	if !ok {
		return Team{}, fmt.Errorf("%w: %d", ErrUnknownTeam, id)
	}
	return t, nil
}

// Len returns the number of registered teams.
func (r *Registry) Len() int {
	return len(r.byID)
}

var defaultTeams = []Team{
	{ID: 1610612737, Abbreviation: "ATL", Name: "Atlanta Hawks", Color: "#E13A3E"},
	{ID: 1610612738, Abbreviation: "BOS", Name: "Boston Celtics", Color: "#008348"},
	{ID: 1610612739, Abbreviation: "CLE", Name: "Cleveland Cavaliers", Color: "#860038"},
	{ID: 1610612740, Abbreviation: "NOP", Name: "New Orleans Pelicans", Color: "#002B5C"},
	{ID: 1610612741, Abbreviation: "CHI", Name: "Chicago Bulls", Color: "#CE1141"},
	{ID: 1610612742, Abbreviation: "DAL", Name: "Dallas Mavericks", Color: "#007DC5"},
	{ID: 1610612743, Abbreviation: "DEN", Name: "Denver Nuggets", Color: "#4D90CD"},
	{ID: 1610612744, Abbreviation: "GSW", Name: "Golden State Warriors", Color: "#FDB927"},
	{ID: 1610612745, Abbreviation: "HOU", Name: "Houston Rockets", Color: "#CE1141"},
	{ID: 1610612746, Abbreviation: "LAC", Name: "Los Angeles Clippers", Color: "#ED174C"},
	{ID: 1610612747, Abbreviation: "LAL", Name: "Los Angeles Lakers", Color: "#552582"},
	{ID: 1610612748, Abbreviation: "MIA", Name: "Miami Heat", Color: "#98002E"},
	{ID: 1610612749, Abbreviation: "MIL", Name: "Milwaukee Bucks", Color: "#00471B"},
	{ID: 1610612750, Abbreviation: "MIN", Name: "Minnesota Timberwolves", Color: "#005083"},
	{ID: 1610612751, Abbreviation: "BKN", Name: "Brooklyn Nets", Color: "#061922"},
	{ID: 1610612752, Abbreviation: "NYK", Name: "New York Knicks", Color: "#006BB6"},
	{ID: 1610612753, Abbreviation: "ORL", Name: "Orlando Magic", Color: "#007DC5"},
	{ID: 1610612754, Abbreviation: "IND", Name: "Indiana Pacers", Color: "#00275D"},
	{ID: 1610612755, Abbreviation: "PHI", Name: "Philadelphia 76ers", Color: "#006BB6"},
	{ID: 1610612756, Abbreviation: "PHX", Name: "Phoenix Suns", Color: "#1D1160"},
	{ID: 1610612757, Abbreviation: "POR", Name: "Portland Trail Blazers", Color: "#E03A3E"},
	{ID: 1610612758, Abbreviation: "SAC", Name: "Sacramento Kings", Color: "#724C9F"},
	{ID: 1610612759, Abbreviation: "SAS", Name: "San Antonio Spurs", Color: "#BAC3C9"},
	{ID: 1610612760, Abbreviation: "OKC", Name: "Oklahoma City Thunder", Color: "#007DC3"},
	{ID: 1610612761, Abbreviation: "TOR", Name: "Toronto Raptors", Color: "#CE1141"},
	{ID: 1610612762, Abbreviation: "UTA", Name: "Utah Jazz", Color: "#00471B"},
	{ID: 1610612763, Abbreviation: "MEM", Name: "Memphis Grizzlies", Color: "#0F586C"},
	{ID: 1610612764, Abbreviation: "WAS", Name: "Washington Wizards", Color: "#002B5C"},
	{ID: 1610612765, Abbreviation: "DET", Name: "Detroit Pistons", Color: "#006BB6"},
	{ID: 1610612766, Abbreviation: "CHA", Name: "Charlotte Hornets", Color: "#1D1160"},
}

// DefaultRegistry returns the 30 NBA franchises of the SportVU era.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultTeams)
	if err != nil {
		panic(err) // static table
	}
	return r
}
