package spacing

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/team"
)

const (
	defaultBallScale = 7.0
	defaultClockWrap = 3600
	unknownJersey    = "?"
)

// BallMarker is the ball as drawn.
type BallMarker struct {
	X      float64
	Y      float64
	Radius float64
	Color  string
}

// PlayerMarker is one player as drawn.
type PlayerMarker struct {
	ID     int
	TeamID int
	Side   model.Side
	X      float64
	Y      float64
	Jersey string
	Name   string
	Color  string
}

// HullOverlay is the spacing polygon of the highlighted side.
type HullOverlay struct {
	Side     model.Side
	Color    string
	Vertices []geometry.Point
	Area     float64
}

// TableColumn lists one team beside the court.
type TableColumn struct {
	Side  model.Side
	Name  string
	Color string
	Rows  []string
}

// DisplayState is everything a renderer needs to draw one frame.
type DisplayState struct {
	Index     int
	Total     int
	Quarter   int
	ClockText string
	Ball      BallMarker
	Players   []PlayerMarker
	Hull      HullOverlay
	// Table holds the home column first, then the visitor column.
	Table []TableColumn
}

// Replayer answers per-frame display queries for one event. It holds no
// cursor; playback loops live in the renderers.
type Replayer struct {
	event     model.Event
	roster    *team.Roster
	teams     map[int]team.Team
	hullSide  model.Side
	ballScale float64
	clockWrap int
	table     []TableColumn
}

// ReplayOption applies a configuration option to the Replayer.
type ReplayOption func(*Replayer)

// WithHullSide selects whose spacing polygon is drawn.
func WithHullSide(side model.Side) ReplayOption {
	return func(r *Replayer) {
		if side != "" {
			r.hullSide = side
		}
	}
}

// WithBallScale sets the divisor applied to the ball's raw height.
func WithBallScale(scale float64) ReplayOption {
	return func(r *Replayer) {
		if scale > 0 {
			r.ballScale = scale
		}
	}
}

// WithClockWrap sets the bound applied to the minutes field of the clock.
func WithClockWrap(seconds int) ReplayOption {
	return func(r *Replayer) {
		r.clockWrap = seconds
	}
}

// NewReplayer resolves the event's teams through reg and prepares the team
// table. Unknown team ids fail with team.ErrUnknownTeam; players missing from
// the roster are shown by id.
func NewReplayer(e model.Event, reg *team.Registry, opts ...ReplayOption) (*Replayer, error) {
	r := &Replayer{
		event:     e,
		roster:    e.Roster(),
		teams:     make(map[int]team.Team, 2),
		hullSide:  model.Home,
		ballScale: defaultBallScale,
		clockWrap: defaultClockWrap,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, info := range []model.TeamInfo{e.Home, e.Visitor} {
		t, err := reg.Lookup(info.TeamID)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		r.teams[t.ID] = t
	}

	r.table = r.buildTable()
	return r, nil
}

// Len returns the number of frames in the event.
func (r *Replayer) Len() int {
	return len(r.event.Frames)
}

// Render returns the display state of frame i.
func (r *Replayer) Render(i int) (DisplayState, error) {
	if i < 0 || i >= len(r.event.Frames) {
		return DisplayState{}, fmt.Errorf("%w: %d not in [0,%d)", ErrFrameIndex, i, len(r.event.Frames))
	}
	f := r.event.Frames[i]

	players := make([]PlayerMarker, 0, len(f.Players))
	for _, p := range f.Players {
		m, err := r.marker(p)
		if err != nil {
			return DisplayState{}, fmt.Errorf("frame %d: %w", i, err)
		}
		players = append(players, m)
	}

	hullTeam := r.event.Team(r.hullSide)
	hull := geometry.ConvexHull(f.Positions(hullTeam.TeamID))

	return DisplayState{
		Index:     i,
		Total:     len(r.event.Frames),
		Quarter:   f.Quarter,
		ClockText: f.ClockText(r.clockWrap),
		Ball: BallMarker{
			X:      f.Ball.X,
			Y:      f.Ball.Y,
			Radius: f.Ball.DisplayRadius(r.ballScale),
			Color:  team.BallColor,
		},
		Players: players,
		Hull: HullOverlay{
			Side:     r.hullSide,
			Color:    r.teams[hullTeam.TeamID].Color,
			Vertices: hull.Vertices,
			Area:     hull.Area,
		},
		Table: r.table,
	}, nil
}

func (r *Replayer) marker(p model.Player) (PlayerMarker, error) {
	side, ok := r.event.SideOf(p.TeamID)
	if !ok {
		return PlayerMarker{}, fmt.Errorf("%w: %d", team.ErrUnknownTeam, p.TeamID)
	}
	info := r.player(p)
	return PlayerMarker{
		ID:     p.ID,
		TeamID: p.TeamID,
		Side:   side,
		X:      p.X,
		Y:      p.Y,
		Jersey: info.Jersey,
		Name:   info.FullName(),
		Color:  r.teams[p.TeamID].Color,
	}, nil
}

// buildTable lists the players on court in the first frame, home first.
func (r *Replayer) buildTable() []TableColumn {
	columns := make([]TableColumn, 0, 2)
	for _, side := range []model.Side{model.Home, model.Visitor} {
		info := r.event.Team(side)
		t := r.teams[info.TeamID]
		col := TableColumn{Side: side, Name: t.Name, Color: t.Color}
		if len(r.event.Frames) > 0 {
			onCourt := r.event.Frames[0].PlayersOf(info.TeamID)
			sort.SliceStable(onCourt, func(i, j int) bool { return onCourt[i].ID < onCourt[j].ID })
			labels := make([]string, 0, len(onCourt))
			for _, p := range onCourt {
				labels = append(labels, r.player(p).Label())
			}
			col.Rows = labels
		}
		columns = append(columns, col)
	}
	return columns
}

// player resolves p through the event roster. Tracked players missing from
// the roster are shown by their bare id with an unknown jersey.
func (r *Replayer) player(p model.Player) team.PlayerInfo {
	if info, err := r.roster.Lookup(p.ID); err == nil {
		return info
	}
	return team.PlayerInfo{ID: p.ID, TeamID: p.TeamID, LastName: strconv.Itoa(p.ID), Jersey: unknownJersey}
}

// ClampIndex bounds requested to [0, length-1] and reports whether it had to
// move. With length 0 it returns 0 and true.
func ClampIndex(requested, length int) (int, bool) {
	if length <= 0 {
		return 0, true
	}
	clamped := lo.Clamp(requested, 0, length-1)
	return clamped, clamped != requested
}
