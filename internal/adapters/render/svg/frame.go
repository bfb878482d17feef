// Package svg draws replay frames and analysis charts as SVG documents.
package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/pkg/metrics"
)

const (
	defaultPixelsPerFoot = 10
	tableRowHeight       = 22
	tableHeaderHeight    = 28
)

// errWriter keeps the first write error so svgo's fire-and-forget calls
// can still fail the document.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// vmap maps value from [low1, high1] into [low2, high2].
func vmap(value, low1, high1, low2, high2 float64) float64 {
	return low2 + (high2-low2)*(value-low1)/(high1-low1)
}

func px(v float64) int {
	return int(math.Round(v))
}

// FrameRenderer draws one DisplayState as a court diagram.
type FrameRenderer struct {
	court config.Court
	ppf   float64
}

// FrameOption applies a configuration option to the FrameRenderer.
type FrameOption func(*FrameRenderer)

// WithPixelsPerFoot sets the drawing scale.
func WithPixelsPerFoot(ppf float64) FrameOption {
	return func(r *FrameRenderer) {
		if ppf > 0 {
			r.ppf = ppf
		}
	}
}

// NewFrameRenderer builds a renderer for court.
func NewFrameRenderer(court config.Court, opts ...FrameOption) *FrameRenderer {
	r := &FrameRenderer{court: court, ppf: defaultPixelsPerFoot}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FrameRenderer) courtWidth() int  { return px(r.court.Width() * r.ppf) }
func (r *FrameRenderer) courtHeight() int { return px(r.court.Height() * r.ppf) }
func (r *FrameRenderer) margin() int      { return px(r.court.Offset * r.ppf) }

// x maps a court x coordinate to canvas pixels.
func (r *FrameRenderer) x(v float64) int {
	return r.margin() + px(vmap(v, r.court.MinX, r.court.MaxX, 0, float64(r.courtWidth())))
}

// y maps a court y coordinate to canvas pixels; SVG grows downwards.
func (r *FrameRenderer) y(v float64) int {
	return r.margin() + px(vmap(v, r.court.MinY, r.court.MaxY, float64(r.courtHeight()), 0))
}

func (r *FrameRenderer) scale(v float64) int {
	return max(1, px(v*r.ppf))
}

// Size returns the canvas size for states with rows table rows.
func (r *FrameRenderer) Size(rows int) (int, int) {
	w := r.courtWidth() + 2*r.margin()
	h := r.courtHeight() + 2*r.margin() + tableHeaderHeight + rows*tableRowHeight
	return w, h
}

// Render writes st as a complete SVG document.
func (r *FrameRenderer) Render(w io.Writer, st spacing.DisplayState) error {
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)

	rows := 0
	for _, col := range st.Table {
		rows = max(rows, len(col.Rows))
	}
	width, height := r.Size(rows)

	canvas.Start(width, height)
	canvas.Title(fmt.Sprintf("frame %d of %d", st.Index+1, st.Total))
	canvas.Rect(0, 0, width, height, "fill:white")
	r.drawCourt(canvas)

	if len(st.Hull.Vertices) >= 3 {
		xs := make([]int, len(st.Hull.Vertices))
		ys := make([]int, len(st.Hull.Vertices))
		for i, v := range st.Hull.Vertices {
			xs[i], ys[i] = r.x(v.X), r.y(v.Y)
		}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;fill-opacity:0.3;stroke:%s;stroke-width:2", st.Hull.Color, st.Hull.Color))
	}

	canvas.Gstyle("font-family:Helvetica,Arial,sans-serif;font-weight:bold;text-anchor:middle;dominant-baseline:central")
	radius := r.scale(r.court.PlayerRadius)
	for _, p := range st.Players {
		cx, cy := r.x(p.X), r.y(p.Y)
		canvas.Circle(cx, cy, radius, "fill:"+p.Color)
		canvas.Text(cx, cy, p.Jersey, fmt.Sprintf("fill:white;font-size:%dpx", radius))
	}
	canvas.Circle(r.x(st.Ball.X), r.y(st.Ball.Y), r.scale(st.Ball.Radius), "fill:"+st.Ball.Color)
	canvas.Gend()

	r.drawClock(canvas, st.ClockText)
	r.drawTable(canvas, st.Table)
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write frame %d: %w", st.Index, ew.err)
	}
	metrics.RecordFrameRendered("svg")
	return nil
}

func (r *FrameRenderer) drawCourt(canvas *svgo.SVG) {
	line := "fill:none;stroke:#444;stroke-width:2"
	left, top := r.x(r.court.MinX), r.y(r.court.MaxY)
	canvas.Rect(left, top, r.courtWidth(), r.courtHeight(), "fill:#F5DEB3;"+line)

	midX := (r.court.MinX + r.court.MaxX) / 2
	midY := (r.court.MinY + r.court.MaxY) / 2
	canvas.Line(r.x(midX), r.y(r.court.MinY), r.x(midX), r.y(r.court.MaxY), line)
	canvas.Circle(r.x(midX), r.y(midY), r.scale(6), line)

	// 16ft lanes, 19ft to the free-throw line, hoop 5.25ft from the baseline.
	laneTop, laneBottom := r.y(midY+8), r.y(midY-8)
	canvas.Rect(r.x(r.court.MinX), laneTop, r.scale(19), laneBottom-laneTop, line)
	canvas.Rect(r.x(r.court.MaxX-19), laneTop, r.scale(19), laneBottom-laneTop, line)
	canvas.Circle(r.x(r.court.MinX+5.25), r.y(midY), r.scale(0.75), line)
	canvas.Circle(r.x(r.court.MaxX-5.25), r.y(midY), r.scale(0.75), line)
}

func (r *FrameRenderer) drawClock(canvas *svgo.SVG, text string) {
	cx := r.x((r.court.MinX + r.court.MaxX) / 2)
	top := max(14, r.margin()/2)
	canvas.Gstyle("font-family:Helvetica,Arial,sans-serif;font-size:14px;fill:black;text-anchor:middle")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 {
		// Quarter goes above the court, clocks on the half-court line.
		canvas.Text(cx, top, lines[0])
	}
	midY := r.y((r.court.MinY + r.court.MaxY) / 2)
	for i, l := range lines[1:] {
		canvas.Text(cx+r.scale(9), midY+(i*16)-8, l)
	}
	canvas.Gend()
}

func (r *FrameRenderer) drawTable(canvas *svgo.SVG, table []spacing.TableColumn) {
	if len(table) == 0 {
		return
	}
	width, _ := r.Size(0)
	colWidth := width / len(table)
	top := r.courtHeight() + 2*r.margin()

	canvas.Gstyle("font-family:Helvetica,Arial,sans-serif;font-size:13px;text-anchor:middle")
	for i, col := range table {
		left := i * colWidth
		rows := max(1, len(col.Rows))
		canvas.Rect(left, top, colWidth, tableHeaderHeight+rows*tableRowHeight, "fill:"+col.Color)
		canvas.Text(left+colWidth/2, top+tableHeaderHeight-9, col.Name, "fill:white;font-weight:bold")
		for j, row := range col.Rows {
			canvas.Text(left+colWidth/2, top+tableHeaderHeight+(j+1)*tableRowHeight-7, row, "fill:white")
		}
	}
	canvas.Gend()
}
