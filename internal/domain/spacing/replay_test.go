package spacing_test

import (
	"errors"
	"testing"

	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/spacing"
	"github.com/okian/sportvu/internal/domain/team"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReplayerRender(t *testing.T) {
	Convey("Given a replayer over a two-frame event", t, func() {
		r, err := spacing.NewReplayer(event("0001", frameA(), frameB()), team.DefaultRegistry())
		So(err, ShouldBeNil)
		So(r.Len(), ShouldEqual, 2)

		Convey("When rendering the first frame", func() {
			st, err := r.Render(0)
			So(err, ShouldBeNil)

			Convey("Then clock and ball are scaled for display", func() {
				So(st.Index, ShouldEqual, 0)
				So(st.Total, ShouldEqual, 2)
				So(st.Quarter, ShouldEqual, 1)
				So(st.ClockText, ShouldEqual, "Quarter 1\n11:40\n20.0")
				So(st.Ball.Radius, ShouldEqual, 2.0)
				So(st.Ball.Color, ShouldEqual, team.BallColor)
			})

			Convey("Then every player carries roster and team attributes", func() {
				So(st.Players, ShouldHaveLength, 10)
				first := st.Players[0]
				So(first.Side, ShouldEqual, model.Home)
				So(first.Jersey, ShouldEqual, "1")
				So(first.Name, ShouldEqual, "Home P1")
				So(first.Color, ShouldEqual, "#FDB927")
				So(st.Players[9].Side, ShouldEqual, model.Visitor)
				So(st.Players[9].Color, ShouldEqual, "#860038")
			})

			Convey("Then the home hull is overlaid", func() {
				So(st.Hull.Side, ShouldEqual, model.Home)
				So(st.Hull.Area, ShouldEqual, 100.0)
				So(st.Hull.Vertices, ShouldHaveLength, 4)
			})

			Convey("Then the team table lists home first", func() {
				So(st.Table, ShouldHaveLength, 2)
				So(st.Table[0].Name, ShouldEqual, "Golden State Warriors")
				So(st.Table[0].Rows[0], ShouldEqual, "Home P1 #1")
				So(st.Table[1].Side, ShouldEqual, model.Visitor)
				So(st.Table[1].Rows, ShouldHaveLength, 5)
			})
		})

		Convey("When rendering past either end", func() {
			_, errHigh := r.Render(2)
			_, errLow := r.Render(-1)

			Convey("Then the index is rejected", func() {
				So(errors.Is(errHigh, spacing.ErrFrameIndex), ShouldBeTrue)
				So(errors.Is(errLow, spacing.ErrFrameIndex), ShouldBeTrue)
			})
		})
	})

	Convey("Given a replayer highlighting the visitors", t, func() {
		r, err := spacing.NewReplayer(event("0001", frameB()), team.DefaultRegistry(),
			spacing.WithHullSide(model.Visitor), spacing.WithBallScale(14), spacing.WithClockWrap(0))
		So(err, ShouldBeNil)

		st, err := r.Render(0)
		So(err, ShouldBeNil)
		So(st.Hull.Area, ShouldEqual, 6.0)
		So(st.Hull.Color, ShouldEqual, "#860038")
		So(st.Ball.Radius, ShouldEqual, 1.0)
		So(st.ClockText, ShouldEqual, "Quarter 1\n11:39\n0.0")
	})
}

func TestNewReplayer_Failures(t *testing.T) {
	Convey("Given an event with an unregistered team", t, func() {
		e := event("0001", frameA())
		e.Home.TeamID = 42

		_, err := spacing.NewReplayer(e, team.DefaultRegistry())
		So(errors.Is(err, team.ErrUnknownTeam), ShouldBeTrue)
	})
}

func TestReplayer_UnlistedPlayer(t *testing.T) {
	Convey("Given a tracked player missing from the roster", t, func() {
		e := event("0001", frameA())
		e.Home.Players = e.Home.Players[1:]

		r, err := spacing.NewReplayer(e, team.DefaultRegistry())
		So(err, ShouldBeNil)

		st, err := r.Render(0)
		So(err, ShouldBeNil)

		Convey("Then the player is drawn by id with an unknown jersey", func() {
			var unlisted spacing.PlayerMarker
			for _, p := range st.Players {
				if p.ID == 1 {
					unlisted = p
				}
			}
			So(unlisted.Name, ShouldEqual, "1")
			So(unlisted.Jersey, ShouldEqual, "?")
			So(unlisted.Color, ShouldEqual, "#FDB927")
		})

		Convey("Then the table row falls back to the id", func() {
			So(st.Table[0].Rows, ShouldHaveLength, 5)
			So(st.Table[0].Rows[0], ShouldEqual, "1 #?")
			So(st.Table[0].Rows[1], ShouldEqual, "Home P2 #2")
		})
	})
}

func TestClampIndex(t *testing.T) {
	Convey("Given event index requests", t, func() {
		cases := []struct {
			requested, length, want int
			clamped                 bool
		}{
			{5, 3, 2, true},
			{1, 3, 1, false},
			{-1, 3, 0, true},
			{0, 0, 0, true},
		}
		for _, c := range cases {
			got, clamped := spacing.ClampIndex(c.requested, c.length)
			So(got, ShouldEqual, c.want)
			So(clamped, ShouldEqual, c.clamped)
		}
	})
}
