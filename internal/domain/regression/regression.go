// Package regression fits a univariate ordinary-least-squares line and reports
// its fit on the training data.
package regression

import "fmt"

const (
	minSamples = 2
	// relTolerance bounds sums of squares that count as zero, relative to
	// the target's sum of squares.
	relTolerance = 1e-20
)

// Model is a fitted line y = Slope*x + Intercept.
type Model struct {
	Slope     float64
	Intercept float64
	// RSquared is the coefficient of determination on the training data.
	RSquared float64
	N        int
}

// Predict evaluates the fitted line at x.
func (m Model) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}

// String renders the report printed by the CLI.
func (m Model) String() string {
	return fmt.Sprintf("n=%d slope=%.6f intercept=%.6f R-squared=%.6f", m.N, m.Slope, m.Intercept, m.RSquared)
}

// Fit regresses y on x. x and y are parallel: y[i] is the target for x[i].
// Fewer than two samples or a constant x fail with ErrInsufficientData.
func Fit(x, y []float64) (Model, error) {
	if len(x) != len(y) {
		return Model{}, fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < minSamples {
		return Model{}, fmt.Errorf("%w: need at least %d samples, got %d", ErrInsufficientData, minSamples, n)
	}
	if constant(x) {
		return Model{}, fmt.Errorf("%w: predictor has zero variance", ErrInsufficientData)
	}

	meanX, meanY := mean(x), mean(y)
	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx == 0 {
		return Model{}, fmt.Errorf("%w: predictor has zero variance", ErrInsufficientData)
	}

	m := Model{N: n}
	m.Slope = sxy / sxx
	m.Intercept = meanY - m.Slope*meanX
	m.RSquared = rSquared(x, y, meanY, m)
	return m, nil
}

func rSquared(x, y []float64, meanY float64, m Model) float64 {
	var ssRes, ssTot, scale float64
	for i := range x {
		r := y[i] - m.Predict(x[i])
		ssRes += r * r
		d := y[i] - meanY
		ssTot += d * d
		scale += y[i] * y[i]
	}
	eps := relTolerance * scale
	if ssTot <= eps {
		// Constant target: a line through it is a perfect fit.
		if ssRes <= eps {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

func mean(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
