package svg_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/sportvu/internal/adapters/render/svg"
	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/internal/domain/geometry"
	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/regression"
	"github.com/okian/sportvu/internal/domain/spacing"
	. "github.com/smartystreets/goconvey/convey"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func displayState() spacing.DisplayState {
	return spacing.DisplayState{
		Index:     3,
		Total:     10,
		Quarter:   2,
		ClockText: "Quarter 2\n05:07\n14.0",
		Ball:      spacing.BallMarker{X: 50, Y: 25, Radius: 1, Color: "#FF8C00"},
		Players: []spacing.PlayerMarker{
			{ID: 1, Side: model.Home, X: 10, Y: 10, Jersey: "30", Color: "#FDB927"},
			{ID: 2, Side: model.Home, X: 20, Y: 10, Jersey: "11", Color: "#FDB927"},
			{ID: 3, Side: model.Home, X: 15, Y: 20, Jersey: "23", Color: "#FDB927"},
			{ID: 11, Side: model.Visitor, X: 80, Y: 40, Jersey: "23", Color: "#860038"},
		},
		Hull: spacing.HullOverlay{
			Side:     model.Home,
			Color:    "#FDB927",
			Vertices: []geometry.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 15, Y: 20}},
			Area:     50,
		},
		Table: []spacing.TableColumn{
			{Side: model.Home, Name: "Golden State Warriors", Color: "#FDB927", Rows: []string{"Stephen Curry #30"}},
			{Side: model.Visitor, Name: "Cleveland Cavaliers", Color: "#860038", Rows: []string{"LeBron James #23"}},
		},
	}
}

func TestFrameRenderer(t *testing.T) {
	Convey("Given a frame renderer over the default court", t, func() {
		r := svg.NewFrameRenderer(config.New().Court)

		Convey("When rendering a display state", func() {
			var buf bytes.Buffer
			err := r.Render(&buf, displayState())
			out := buf.String()

			Convey("Then the document carries hull, markers, clock and table", func() {
				So(err, ShouldBeNil)
				So(out, ShouldStartWith, "<?xml")
				So(out, ShouldContainSubstring, "<polygon")
				So(out, ShouldContainSubstring, "fill-opacity:0.3")
				So(strings.Count(out, "fill:#FDB927"), ShouldBeGreaterThanOrEqualTo, 4)
				So(out, ShouldContainSubstring, "fill:#FF8C00")
				So(out, ShouldContainSubstring, "Quarter 2")
				So(out, ShouldContainSubstring, "05:07")
				So(out, ShouldContainSubstring, "Golden State Warriors")
				So(out, ShouldContainSubstring, "LeBron James #23")
				So(out, ShouldContainSubstring, "frame 4 of 10")
				So(strings.TrimSpace(out), ShouldEndWith, "</svg>")
			})
		})

		Convey("When the hull is degenerate", func() {
			st := displayState()
			st.Hull.Vertices = nil
			var buf bytes.Buffer

			So(r.Render(&buf, st), ShouldBeNil)
			So(buf.String(), ShouldNotContainSubstring, "<polygon")
		})

		Convey("When the writer fails", func() {
			err := r.Render(failingWriter{}, displayState())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "disk full")
		})

		Convey("Then the canvas grows with the table", func() {
			w, h := r.Size(5)
			So(w, ShouldEqual, 1120)
			So(h, ShouldEqual, 620+28+5*22)
		})
	})
}

func TestScatter(t *testing.T) {
	Convey("Given feature samples and a fitted model", t, func() {
		samples := spacing.Samples{
			{EventID: "1", SpacingDifferential: -10, ScoreDifferential: -2},
			{EventID: "2", SpacingDifferential: 0, ScoreDifferential: 1},
			{EventID: "3", SpacingDifferential: 12, ScoreDifferential: 4},
		}
		m, err := regression.Fit(samples.Spacing(), samples.Score())
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		So(svg.Scatter(&buf, samples, m), ShouldBeNil)
		out := buf.String()

		Convey("Then every sample and the fitted line are drawn", func() {
			So(strings.Count(out, "<circle"), ShouldEqual, 3)
			So(out, ShouldContainSubstring, "stroke:#C8102E")
			So(out, ShouldContainSubstring, "n=3")
		})
	})

	Convey("Given no samples", t, func() {
		err := svg.Scatter(&bytes.Buffer{}, nil, regression.Model{})
		So(errors.Is(err, svg.ErrNoData), ShouldBeTrue)
	})
}

func TestBarChart(t *testing.T) {
	Convey("Given team spacing bars", t, func() {
		var buf bytes.Buffer
		err := svg.BarChart(&buf, "Average Defensive Spacing", []svg.Bar{
			{Label: "GSW", Value: 310.5, Color: "#FDB927"},
			{Label: "CLE", Value: 290.25, Color: "#860038"},
		})
		out := buf.String()

		Convey("Then one labelled bar per team is drawn", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Average Defensive Spacing")
			So(out, ShouldContainSubstring, "fill:#FDB927")
			So(out, ShouldContainSubstring, "fill:#860038")
			So(out, ShouldContainSubstring, ">GSW<")
			So(out, ShouldContainSubstring, "310.5")
		})
	})

	Convey("Given no bars", t, func() {
		err := svg.BarChart(&bytes.Buffer{}, "empty", nil)
		So(errors.Is(err, svg.ErrNoData), ShouldBeTrue)
	})
}
