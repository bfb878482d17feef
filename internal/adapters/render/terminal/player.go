// Package terminal plays replay frames back in a terminal.
package terminal

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/pkg/logger"
	"github.com/okian/sportvu/pkg/metrics"
)

const (
	defaultRefresh = 10 * time.Millisecond
	eventBuffer    = 16
	tableRows      = 6
	hullRune       = '·'
	ballRune       = 'o'
)

// Source answers per-frame display queries.
type Source interface {
	Len() int
	Render(i int) (spacing.DisplayState, error)
}

// Player drives a tcell screen from a Source.
type Player struct {
	screen  tcell.Screen
	court   config.Court
	refresh time.Duration
	loop    bool
	log     logger.Logger
}

// Option applies a configuration option to the Player.
type Option func(*Player)

// WithRefresh sets the delay between frames.
func WithRefresh(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.refresh = d
		}
	}
}

// WithLoop restarts playback from the first frame after the last one.
func WithLoop(loop bool) Option {
	return func(p *Player) {
		p.loop = loop
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPlayer wraps an initialized screen. The caller owns Init and Fini.
func NewPlayer(screen tcell.Screen, court config.Court, opts ...Option) *Player {
	p := &Player{
		screen:  screen,
		court:   court,
		refresh: defaultRefresh,
		log:     logger.Get().Named("terminal"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play draws frames in order until the last one, the user quits (q, Esc or
// Ctrl-C), or ctx is done. Space pauses and resumes.
func (p *Player) Play(ctx context.Context, src Source) error {
	if src.Len() == 0 {
		return nil
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(p.refresh)
	defer ticker.Stop()

	paused := false
	next := 0
	for {
		select {
		case <-ctx.Done():
			p.log.Debug(ctx, "playback cancelled", logger.Int("frame", next))
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					paused = !paused
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}

		case <-ticker.C:
			if paused {
				continue
			}
			if next >= src.Len() {
				if !p.loop {
					return nil
				}
				next = 0
			}
			st, err := src.Render(next)
			if err != nil {
				return fmt.Errorf("render frame %d: %w", next, err)
			}
			p.Draw(st)
			next++
		}
	}
}

// Draw paints one display state and shows it.
func (p *Player) Draw(st spacing.DisplayState) {
	p.screen.Clear()
	width, height := p.screen.Size()
	cols, rows := width, max(1, height-tableRows-1)

	toCell := func(pt geometry.Point) (int, int) {
		x := int(math.Round((pt.X - p.court.MinX) / p.court.Width() * float64(cols-1)))
		y := int(math.Round((p.court.MaxY - pt.Y) / p.court.Height() * float64(rows-1)))
		return x, y + 1
	}

	hullStyle := tcell.StyleDefault.Foreground(tcell.GetColor(st.Hull.Color))
	for i, v := range st.Hull.Vertices {
		x0, y0 := toCell(v)
		x1, y1 := toCell(st.Hull.Vertices[(i+1)%len(st.Hull.Vertices)])
		p.line(x0, y0, x1, y1, hullStyle)
	}

	for _, pl := range st.Players {
		x, y := toCell(geometry.Point{X: pl.X, Y: pl.Y})
		style := tcell.StyleDefault.Background(tcell.GetColor(pl.Color)).Foreground(tcell.ColorWhite).Bold(true)
		p.text(x, y, pl.Jersey, style)
	}
	bx, by := toCell(geometry.Point{X: st.Ball.X, Y: st.Ball.Y})
	p.screen.SetContent(bx, by, ballRune, nil, tcell.StyleDefault.Foreground(tcell.GetColor(st.Ball.Color)).Bold(true))

	status := fmt.Sprintf("%s  frame %d/%d  hull %.1f",
		strings.ReplaceAll(st.ClockText, "\n", " "), st.Index+1, st.Total, st.Hull.Area)
	p.text(0, 0, status, tcell.StyleDefault)

	colWidth := width / max(1, len(st.Table))
	for i, col := range st.Table {
		style := tcell.StyleDefault.Foreground(tcell.GetColor(col.Color)).Bold(true)
		p.text(i*colWidth, rows+1, col.Name, style)
		for j, row := range col.Rows {
			if j+1 >= tableRows {
				break
			}
			p.text(i*colWidth, rows+2+j, row, tcell.StyleDefault.Foreground(tcell.GetColor(col.Color)))
		}
	}

	p.screen.Show()
	metrics.RecordFrameRendered("terminal")
}

func (p *Player) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}

// line plots a segment cell by cell.
func (p *Player) line(x0, y0, x1, y1 int, style tcell.Style) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		p.screen.SetContent(x0, y0, hullRune, nil, style)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		p.screen.SetContent(x, y, hullRune, nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
