package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it gets a private registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Gatherer(), ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("hulls"),
				WithAreaBuckets([]float64{10, 100}),
				WithDurationBuckets([]float64{1, 2}),
				WithPrometheusRegistry(registry),
			)
			manager.framesDecoded.Inc()

			Convey("Then metric names carry the namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_hulls_frames_decoded_total"], ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording hulls", func() {
			before := testutil.ToFloat64(globalManager.hullDegenerate)
			computed := testutil.ToFloat64(globalManager.hullComputations)
			RecordHull("home", 0)
			RecordHull("home", 412.5)

			Convey("Then degenerate hulls are counted separately", func() {
				So(testutil.ToFloat64(globalManager.hullDegenerate), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.hullComputations), ShouldEqual, computed+2)
			})
		})

		Convey("When recording batch outcomes", func() {
			RecordGameProcessed()
			RecordGameSkipped("missing_file")

			Convey("Then the labelled counter is populated", func() {
				So(testutil.ToFloat64(globalManager.gamesSkipped.WithLabelValues("missing_file")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When publishing a regression", func() {
			UpdateRegression(12, 2.0, 0.75)

			Convey("Then the gauges hold the last values", func() {
				So(testutil.ToFloat64(globalManager.regressionSamples), ShouldEqual, 12)
				So(testutil.ToFloat64(globalManager.regressionSlope), ShouldEqual, 2.0)
				So(testutil.ToFloat64(globalManager.regressionR2), ShouldEqual, 0.75)
			})
		})

		Convey("When recording decode and render activity", func() {
			So(func() {
				RecordFrameDecoded()
				RecordFrameMalformed()
				RecordFrameDuplicate()
				RecordLoadDuration(12.5)
				RecordEventAggregated()
				RecordFrameRendered("svg")
			}, ShouldNotPanic)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a temp directory", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "sportvu.prom")
		RecordFrameDecoded()

		Convey("When writing the registry", func() {
			err := WriteTextfile(path)

			Convey("Then the file holds the exposition format", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "sportvu_spacing_frames_decoded_total")
			})
		})

		Convey("When the directory does not exist", func() {
			err := WriteTextfile(filepath.Join(dir, "missing", "x.prom"))

			Convey("Then a write error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
