package geometry_test

import (
	"testing"

	"github.com/okian/sportvu/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConvexHull_Degenerate(t *testing.T) {
	Convey("Given point sets that cannot enclose area", t, func() {
		cases := []struct {
			name string
			pts  []geometry.Point
		}{
			{"no points", nil},
			{"one point", []geometry.Point{{X: 1, Y: 1}}},
			{"two points", []geometry.Point{{X: 1, Y: 1}, {X: 5, Y: 2}}},
			{"duplicates", []geometry.Point{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}}},
			{"two distinct", []geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 4, Y: 4}, {X: 4, Y: 4}}},
			{"collinear", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
			{"collinear mixed", []geometry.Point{{X: 2, Y: 2}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 5, Y: 5}}},
			{"vertical segment", []geometry.Point{{X: 7, Y: 0}, {X: 7, Y: 10}, {X: 7, Y: 4}}},
			{"collinear with float noise", []geometry.Point{{X: 0.1, Y: 0.3}, {X: 0.2, Y: 0.6}, {X: 0.3, Y: 0.9}, {X: 0.7, Y: 2.1}}},
			{"collinear on court scale", []geometry.Point{{X: 12.3, Y: 4.1}, {X: 24.6, Y: 8.2}, {X: 36.9, Y: 12.3}, {X: 49.2, Y: 16.4}}},
		}

		for _, tc := range cases {
			pts := tc.pts
			Convey("When the input is "+tc.name, func() {
				var hull geometry.Hull
				So(func() { hull = geometry.ConvexHull(pts) }, ShouldNotPanic)

				Convey("Then the area is zero and no vertices are produced", func() {
					So(hull.Area, ShouldEqual, 0.0)
					So(hull.Perimeter, ShouldEqual, 0.0)
					So(hull.Vertices, ShouldBeEmpty)
					So(hull.Degenerate(), ShouldBeTrue)
					So(geometry.Area(pts), ShouldEqual, 0.0)
				})
			})
		}
	})
}

func TestConvexHull_KnownShapes(t *testing.T) {
	Convey("Given a 3-4-5 right triangle", t, func() {
		pts := []geometry.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}
		hull := geometry.ConvexHull(pts)

		Convey("Then the area is exactly 6", func() {
			So(hull.Area, ShouldEqual, 6.0)
		})

		Convey("And the perimeter is 12", func() {
			So(hull.Perimeter, ShouldAlmostEqual, 12.0, 1e-9)
		})

		Convey("And the vertices run counter-clockwise", func() {
			So(hull.Vertices, ShouldResemble, []geometry.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}})
		})
	})

	Convey("Given a square of side 10 with an interior point", t, func() {
		pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5}}
		hull := geometry.ConvexHull(pts)

		Convey("Then the area is 100 and the interior point is excluded", func() {
			So(hull.Area, ShouldEqual, 100.0)
			So(hull.Vertices, ShouldHaveLength, 4)
			So(hull.Vertices, ShouldNotContain, geometry.Point{X: 5, Y: 5})
		})
	})

	Convey("Given a square with points on its edges", t, func() {
		pts := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 5}}
		hull := geometry.ConvexHull(pts)

		Convey("Then edge points are not hull vertices", func() {
			So(hull.Area, ShouldEqual, 100.0)
			So(hull.Vertices, ShouldHaveLength, 4)
		})
	})

	Convey("Given a thin but real triangle in fractional feet", t, func() {
		pts := []geometry.Point{{X: 0.1, Y: 0.3}, {X: 0.7, Y: 2.1}, {X: 0.3, Y: 0.95}}
		hull := geometry.ConvexHull(pts)

		Convey("Then it is not mistaken for a line", func() {
			So(hull.Degenerate(), ShouldBeFalse)
			So(hull.Vertices, ShouldHaveLength, 3)
			So(hull.Area, ShouldAlmostEqual, 0.015, 1e-12)
		})
	})

	Convey("Given five players spread on a half court", t, func() {
		pts := []geometry.Point{
			{X: 10, Y: 5}, {X: 30, Y: 25}, {X: 12, Y: 45}, {X: 20, Y: 25}, {X: 5, Y: 25},
		}
		input := append([]geometry.Point(nil), pts...)
		hull := geometry.ConvexHull(pts)

		Convey("Then the caller's slice is untouched", func() {
			So(pts, ShouldResemble, input)
		})

		Convey("Then the hull keeps only the outer players", func() {
			So(hull.Vertices, ShouldHaveLength, 4)
			So(hull.Vertices, ShouldNotContain, geometry.Point{X: 20, Y: 25})
			So(hull.Area, ShouldAlmostEqual, 500.0, 1e-9)
		})
	})
}
