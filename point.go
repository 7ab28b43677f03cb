package vpath

import (
	"fmt"
	"math"
)

// Point is a position in the plane. Anchor positions, handles and every
// vertex of a vertex stream are points.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes p−o.
// To subtract a vector from p, use Translate and negate the vector.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Reflect returns the point mirrored through center.
func (pt Point) Reflect(center Point) Point {
	return Point{
		X: 2*center.X - pt.X,
		Y: 2*center.Y - pt.Y,
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// NearlyEqual reports whether both coordinates of pt and o differ by no more
// than [Epsilon].
func (pt Point) NearlyEqual(o Point) bool {
	return nearlyEqual(pt.X, o.X) && nearlyEqual(pt.Y, o.Y)
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// pointAtLength returns the point at distance offs from p0 in the direction
// of p1, clamped to the segment.
func pointAtLength(p0, p1 Point, offs float64) Point {
	if offs <= 0 {
		return p0
	}
	l := p0.Distance(p1)
	if offs >= l {
		return p1
	}
	return p0.Lerp(p1, offs/l)
}

// segmentSide classifies pt against the directed line through p0 and p1. The
// result is 0 for points on the line (within [Epsilon]), 1 for one side and -1
// for the other.
func segmentSide(p0, p1, pt Point) int {
	v := (pt.Y-p0.Y)*(p1.X-p0.X) + (pt.X-p0.X)*(p0.Y-p1.Y)
	switch {
	case math.Abs(v) <= Epsilon:
		return 0
	case v > 0:
		return 1
	default:
		return -1
	}
}
