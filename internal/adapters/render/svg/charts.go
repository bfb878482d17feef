package svg

import (
	"fmt"
	"io"

	svgo "github.com/ajstarks/svgo"
	"github.com/samber/lo"

	"github.com/okian/sportvu/internal/domain/regression"
	"github.com/okian/sportvu/internal/domain/spacing"
)

const (
	chartWidth  = 800
	chartHeight = 600
	chartMargin = 70
	chartFont   = "font-family:Helvetica,Arial,sans-serif;font-size:14px;fill:#333"
)

// Scatter plots spacing differential against score differential with the
// fitted regression line on top.
func Scatter(w io.Writer, samples spacing.Samples, m regression.Model) error {
	if len(samples) == 0 {
		return fmt.Errorf("scatter: %w", ErrNoData)
	}
	xs, ys := samples.Spacing(), samples.Score()
	xmin, xmax := padded(lo.Min(xs), lo.Max(xs))
	ymin, ymax := padded(lo.Min(ys), lo.Max(ys))

	left, right := float64(chartMargin), float64(chartWidth-chartMargin/2)
	top, bottom := float64(chartMargin/2), float64(chartHeight-chartMargin)
	mapX := func(v float64) int { return px(vmap(v, xmin, xmax, left, right)) }
	mapY := func(v float64) int { return px(vmap(v, ymin, ymax, bottom, top)) }

	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	canvas.Start(chartWidth, chartHeight)
	canvas.Title("Spacing differential vs score differential")
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:white")
	drawAxes(canvas, px(left), px(right), px(top), px(bottom))

	canvas.Gstyle("fill:#1D428A;fill-opacity:0.6")
	for i := range xs {
		canvas.Circle(mapX(xs[i]), mapY(ys[i]), 4)
	}
	canvas.Gend()

	canvas.Line(mapX(xmin), mapY(m.Predict(xmin)), mapX(xmax), mapY(m.Predict(xmax)), "stroke:#C8102E;stroke-width:2")

	canvas.Gstyle(chartFont + ";text-anchor:middle")
	canvas.Text(chartWidth/2, chartHeight-20, "Spacing differential (home - visitor, sq ft)")
	canvas.TranslateRotate(20, chartHeight/2, -90)
	canvas.Text(0, 0, "Score differential (home - visitor)")
	canvas.Gend()
	canvas.Text(chartWidth/2, 22, fmt.Sprintf("slope=%.4f intercept=%.4f R²=%.4f n=%d", m.Slope, m.Intercept, m.RSquared, m.N))
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write scatter: %w", ew.err)
	}
	return nil
}

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Value float64
	Color string
}

// BarChart draws one colored bar per entry, labelled underneath with its
// value above.
func BarChart(w io.Writer, title string, bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("bar chart: %w", ErrNoData)
	}
	vmax := lo.Max(lo.Map(bars, func(b Bar, _ int) float64 { return b.Value }))
	if vmax <= 0 {
		vmax = 1
	}

	left, right := chartMargin, chartWidth-chartMargin/2
	top, bottom := chartMargin, chartHeight-chartMargin
	slot := (right - left) / len(bars)
	barWidth := max(1, slot*3/4)

	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	canvas.Start(chartWidth, chartHeight)
	canvas.Title(title)
	canvas.Rect(0, 0, chartWidth, chartHeight, "fill:white")
	drawAxes(canvas, left, right, top, bottom)

	canvas.Gstyle(chartFont + ";text-anchor:middle")
	canvas.Text(chartWidth/2, top/2, title, "font-size:18px")
	for i, b := range bars {
		h := px(vmap(max(b.Value, 0), 0, vmax, 0, float64(bottom-top)))
		x := left + i*slot + (slot-barWidth)/2
		canvas.Rect(x, bottom-h, barWidth, h, "fill:"+b.Color)
		canvas.Text(x+barWidth/2, bottom+18, b.Label, "font-size:11px")
		canvas.Text(x+barWidth/2, bottom-h-6, fmt.Sprintf("%.1f", b.Value), "font-size:10px")
	}
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write bar chart: %w", ew.err)
	}
	return nil
}

func drawAxes(canvas *svgo.SVG, left, right, top, bottom int) {
	axis := "stroke:#333;stroke-width:1"
	canvas.Line(left, bottom, right, bottom, axis)
	canvas.Line(left, bottom, left, top, axis)
}

// padded widens [low, high] by five percent on each side, or by one unit
// when the range is empty.
func padded(low, high float64) (float64, float64) {
	span := high - low
	if span == 0 {
		return low - 1, high + 1
	}
	return low - span*0.05, high + span*0.05
}
