// Package sportvu decodes SportVU tracking documents into the frame model.
package sportvu

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/team"
	"github.com/okian/sportvu/pkg/metrics"
)

// ErrDecode marks a document that could not be turned into a game.
var ErrDecode = errors.New("decode tracking document")

// flexString accepts a JSON string or number. SportVU dumps are not
// consistent about id types.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type rawPlayer struct {
	LastName  string     `json:"lastname"`
	FirstName string     `json:"firstname"`
	PlayerID  int        `json:"playerid"`
	Jersey    flexString `json:"jersey"`
	Position  string     `json:"position"`
}

type rawTeam struct {
	Name         string      `json:"name"`
	TeamID       int         `json:"teamid"`
	Abbreviation string      `json:"abbreviation"`
	Players      []rawPlayer `json:"players"`
}

type rawEvent struct {
	EventID      flexString `json:"eventId"`
	Visitor      rawTeam    `json:"visitor"`
	Home         rawTeam    `json:"home"`
	Moments      [][]any    `json:"moments"`
	HomeScore    int        `json:"home_score"`
	VisitorScore int        `json:"visitor_score"`
}

type rawGame struct {
	GameID   flexString `json:"gameid"`
	GameDate string     `json:"gamedate"`
	Events   []rawEvent `json:"events"`
}

// Decode reads one game document. A malformed moment fails the whole
// document with an error matching both ErrDecode and model.ErrMalformedFrame.
func Decode(r io.Reader) (model.Game, error) {
	var raw rawGame
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return model.Game{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	g := model.Game{
		ID:     string(raw.GameID),
		Date:   raw.GameDate,
		Events: make([]model.Event, 0, len(raw.Events)),
	}
	for i, re := range raw.Events {
		e, err := convertEvent(re)
		if err != nil {
			return model.Game{}, fmt.Errorf("%w: game %s event %d: %w", ErrDecode, g.ID, i, err)
		}
		g.Events = append(g.Events, e)
	}
	return g, nil
}

func convertEvent(re rawEvent) (model.Event, error) {
	e := model.Event{
		ID:           string(re.EventID),
		Home:         convertTeam(re.Home),
		Visitor:      convertTeam(re.Visitor),
		HomeScore:    re.HomeScore,
		VisitorScore: re.VisitorScore,
		Frames:       make([]model.Frame, 0, len(re.Moments)),
	}
	for i, m := range re.Moments {
		f, err := model.NewFrame(m)
		if err != nil {
			metrics.RecordFrameMalformed()
			return model.Event{}, fmt.Errorf("moment %d: %w", i, err)
		}
		metrics.RecordFrameDecoded()
		e.Frames = append(e.Frames, f)
	}
	return e, nil
}

func convertTeam(rt rawTeam) model.TeamInfo {
	players := make([]team.PlayerInfo, 0, len(rt.Players))
	for _, p := range rt.Players {
		players = append(players, team.PlayerInfo{
			ID:        p.PlayerID,
			TeamID:    rt.TeamID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Jersey:    string(p.Jersey),
			Position:  p.Position,
		})
	}
	return model.TeamInfo{
		TeamID:       rt.TeamID,
		Name:         rt.Name,
		Abbreviation: rt.Abbreviation,
		Players:      players,
	}
}

// Sample is the head of a game document kept in its original shape.
type Sample struct {
	EventCount int
	Events     []json.RawMessage
}

// DecodeSample reads the document and keeps the first n events verbatim.
func DecodeSample(r io.Reader, n int) (Sample, error) {
	var doc struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Sample{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if n < 0 {
		n = 0
	}
	n = min(n, len(doc.Events))
	return Sample{EventCount: len(doc.Events), Events: doc.Events[:n]}, nil
}

// WriteSample prints the event count followed by each sampled event as
// indented JSON.
func WriteSample(w io.Writer, s Sample) error {
	if _, err := fmt.Fprintf(w, "Number of events: %d\n", s.EventCount); err != nil {
		return err
	}
	for i, ev := range s.Events {
		var buf bytes.Buffer
		if err := json.Indent(&buf, ev, "", "    "); err != nil {
			return fmt.Errorf("%w: event %d: %w", ErrDecode, i, err)
		}
		if _, err := fmt.Fprintf(w, "\n--- Event %d ---\n%s\n", i+1, buf.String()); err != nil {
			return err
		}
	}
	return nil
}
