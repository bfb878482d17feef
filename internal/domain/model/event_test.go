package model_test

import (
	"errors"
	"testing"

	"github.com/okian/sportvu/internal/domain/model"
	"github.com/okian/sportvu/internal/domain/team"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseSide(t *testing.T) {
	convey.Convey("Given side names", t, func() {
		for in, want := range map[string]model.Side{"home": model.Home, "HOME": model.Home, " visitor ": model.Visitor, "away": model.Visitor} {
			got, err := model.ParseSide(in)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}

		_, err := model.ParseSide("bench")
		convey.So(errors.Is(err, model.ErrInvalidSide), convey.ShouldBeTrue)
	})
}

func TestEvent(t *testing.T) {
	convey.Convey("Given an event between two teams", t, func() {
		ev := model.Event{
			ID:           "0021500001-1",
			Home:         model.TeamInfo{TeamID: 1610612741, Players: []team.PlayerInfo{{ID: 201, FirstName: "Jimmy", LastName: "Butler", Jersey: "21"}}},
			Visitor:      model.TeamInfo{TeamID: 1610612752, Players: []team.PlayerInfo{{ID: 301, FirstName: "Carmelo", LastName: "Anthony", Jersey: "7"}}},
			HomeScore:    98,
			VisitorScore: 103,
		}

		convey.Convey("Then sides resolve from team ids", func() {
			side, ok := ev.SideOf(1610612752)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(side, convey.ShouldEqual, model.Visitor)
			_, ok = ev.SideOf(-1)
			convey.So(ok, convey.ShouldBeFalse)
			convey.So(ev.Team(model.Home).TeamID, convey.ShouldEqual, 1610612741)
		})

		convey.Convey("Then the score differential is home minus visitor", func() {
			convey.So(ev.ScoreDifferential(), convey.ShouldEqual, -5)
		})

		convey.Convey("Then the roster covers both teams", func() {
			r := ev.Roster()
			convey.So(r.Len(), convey.ShouldEqual, 2)
			p, err := r.Lookup(301)
			convey.So(err, convey.ShouldBeNil)
			convey.So(p.Label(), convey.ShouldEqual, "Carmelo Anthony #7")
		})
	})

	convey.Convey("Given a game with several events", t, func() {
		g := model.Game{Events: []model.Event{{Frames: make([]model.Frame, 3)}, {Frames: make([]model.Frame, 2)}}}
		convey.So(g.FrameCount(), convey.ShouldEqual, 5)
	})
}
