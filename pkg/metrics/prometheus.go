// Package metrics provides Prometheus metrics for the SportVU spacing analyzer.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the analyzer records.
type Manager struct {
	namespace       string
	subsystem       string
	areaBuckets     []float64
	durationBuckets []float64
	registry        prometheus.Registerer
	gatherer        prometheus.Gatherer

	// Decoding
	framesDecoded   prometheus.Counter
	framesMalformed prometheus.Counter
	framesDuplicate prometheus.Counter
	loadDuration    prometheus.Histogram

	// Geometry
	hullComputations prometheus.Counter
	hullDegenerate   prometheus.Counter
	hullArea         *prometheus.HistogramVec

	// Aggregation
	eventsAggregated prometheus.Counter
	gamesProcessed   prometheus.Counter
	gamesSkipped     *prometheus.CounterVec

	// Regression
	regressionSamples prometheus.Gauge
	regressionR2      prometheus.Gauge
	regressionSlope   prometheus.Gauge

	// Replay
	framesRendered *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Metrics are registered on the
// configured registry, which defaults to a private one.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "sportvu",
		subsystem:       "spacing",
		areaBuckets:     prometheus.LinearBuckets(0, 100, 12),
		durationBuckets: []float64{1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		reg := prometheus.NewRegistry()
		m.registry = reg
		m.gatherer = reg
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesDecoded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_decoded_total",
		Help:      "Total number of tracking frames decoded",
	})

	m.framesMalformed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_malformed_total",
		Help:      "Total number of frame records rejected as malformed",
	})

	m.framesDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_duplicate_total",
		Help:      "Frames dropped from a pooled timeline because an earlier event already carried them",
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "game_load_duration_milliseconds",
		Help:      "Time spent opening and decoding one game",
		Buckets:   m.durationBuckets,
	})

	m.hullComputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hull_computations_total",
		Help:      "Total number of convex hulls computed",
	})

	m.hullDegenerate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hull_degenerate_total",
		Help:      "Hulls that collapsed to zero area (fewer than 3 points or collinear)",
	})

	m.hullArea = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "hull_area_square_feet",
		Help:      "Distribution of team hull areas",
		Buckets:   m.areaBuckets,
	}, []string{"side"})

	m.eventsAggregated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_aggregated_total",
		Help:      "Total number of events reduced to a feature sample",
	})

	m.gamesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_processed_total",
		Help:      "Games processed successfully in batch runs",
	})

	m.gamesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_skipped_total",
		Help:      "Games skipped in batch runs by reason",
	}, []string{"reason"})

	m.regressionSamples = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "regression_samples",
		Help:      "Number of samples in the last regression fit",
	})

	m.regressionR2 = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "regression_r_squared",
		Help:      "Coefficient of determination of the last regression fit",
	})

	m.regressionSlope = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "regression_slope",
		Help:      "Slope of the last regression fit",
	})

	m.framesRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_rendered_total",
		Help:      "Frames handed to a renderer",
	}, []string{"renderer"})
}

// RecordFrameDecoded increments the decoded frames counter.
func RecordFrameDecoded() {
	globalManager.framesDecoded.Inc()
}

// RecordFrameMalformed increments the malformed frames counter.
func RecordFrameMalformed() {
	globalManager.framesMalformed.Inc()
}

// RecordFrameDuplicate increments the duplicate frames counter.
func RecordFrameDuplicate() {
	globalManager.framesDuplicate.Inc()
}

// RecordLoadDuration records how long a game took to load, in milliseconds.
func RecordLoadDuration(ms float64) {
	globalManager.loadDuration.Observe(ms)
}

// RecordHull records one hull computation for a team side.
func RecordHull(side string, area float64) {
	globalManager.hullComputations.Inc()
	if area == 0 {
		globalManager.hullDegenerate.Inc()
	}
	globalManager.hullArea.WithLabelValues(side).Observe(area)
}

// RecordEventAggregated increments the aggregated events counter.
func RecordEventAggregated() {
	globalManager.eventsAggregated.Inc()
}

// RecordGameProcessed increments the processed games counter.
func RecordGameProcessed() {
	globalManager.gamesProcessed.Inc()
}

// RecordGameSkipped increments the skipped games counter for reason.
func RecordGameSkipped(reason string) {
	globalManager.gamesSkipped.WithLabelValues(reason).Inc()
}

// UpdateRegression publishes the outcome of the last regression fit.
func UpdateRegression(samples int, slope, r2 float64) {
	globalManager.regressionSamples.Set(float64(samples))
	globalManager.regressionSlope.Set(slope)
	globalManager.regressionR2.Set(r2)
}

// RecordFrameRendered increments the rendered frames counter for renderer.
func RecordFrameRendered(renderer string) {
	globalManager.framesRendered.WithLabelValues(renderer).Inc()
}

// Gatherer returns the gatherer backing this manager's registry.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// WriteTextfile dumps the global registry to path in the Prometheus text
// exposition format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
