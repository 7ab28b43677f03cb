package vpath

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

// Nearest returns the squared distance from pt to the segment and the
// parameter of the closest point, clamped to [0, 1].
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 || dSquared == 0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// nearestSnapEnds is like Nearest, but reports an exact distance of zero
// with t snapped to 0 or 1 when pt lies within sqrTol of an endpoint.
func (l Line) nearestSnapEnds(pt Point, sqrTol float64) (distSq, t float64) {
	if pt.DistanceSquared(l.P0) <= sqrTol {
		return 0, 0
	}
	if pt.DistanceSquared(l.P1) <= sqrTol {
		return 0, 1
	}
	return l.Nearest(pt)
}
