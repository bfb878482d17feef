// Package geometry computes planar convex hulls used as team spacing areas.
package geometry

import (
	"math"
	"sort"
)

// Point is a position on the court plane, in feet.
type Point struct {
	X float64
	Y float64
}

// Hull is the convex hull of a point set. Vertices are ordered
// counter-clockwise starting from the lowest-leftmost point. A degenerate
// hull has no vertices and zero Area and Perimeter.
type Hull struct {
	Vertices  []Point
	Area      float64
	Perimeter float64
}

// Degenerate reports whether the hull encloses no area.
func (h Hull) Degenerate() bool {
	return len(h.Vertices) < 3
}

// relTolerance scales the collinearity and zero-area tests by the squared
// extent of the point set, so float noise on collinear input reads as flat.
const relTolerance = 1e-9

// ConvexHull returns the convex hull of points using Andrew's monotone chain.
// Duplicate and collinear points never cause a failure: fewer than three
// distinct points, or points that all lie on one line within tolerance, yield
// a zero hull. The input slice is not modified.
func ConvexHull(points []Point) Hull {
	pts := uniqueSorted(points)
	if len(pts) < 3 {
		return Hull{}
	}
	eps := relTolerance * extentSquared(pts)

	lower := make([]Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= eps {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= eps {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Last point of each chain is the first point of the other.
	vertices := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(vertices) < 3 {
		return Hull{}
	}

	area := shoelace(vertices)
	if area <= eps {
		return Hull{}
	}
	return Hull{
		Vertices:  vertices,
		Area:      area,
		Perimeter: perimeter(vertices),
	}
}

// Area is a shortcut for ConvexHull(points).Area.
func Area(points []Point) float64 {
	return ConvexHull(points).Area
}

func uniqueSorted(points []Point) []Point {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// extentSquared is the square of the larger side of the bounding box of
// pts, which must be sorted by X.
func extentSquared(pts []Point) float64 {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	d := math.Max(pts[len(pts)-1].X-pts[0].X, maxY-minY)
	return d * d
}

// cross is the z component of (a->b) x (a->c); positive for a left turn.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func shoelace(vertices []Point) float64 {
	var sum float64
	for i, p := range vertices {
		q := vertices[(i+1)%len(vertices)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

func perimeter(vertices []Point) float64 {
	var sum float64
	for i, p := range vertices {
		q := vertices[(i+1)%len(vertices)]
		sum += math.Hypot(q.X-p.X, q.Y-p.Y)
	}
	return sum
}
