package vpath

import "math"

// QuadBez is a quadratic Bézier segment, as produced by a Curve command.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Start() Point {
	return q.P0
}

func (q QuadBez) End() Point {
	return q.P2
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// Raise the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

// isLinear reports whether the quadratic term vanishes, in which case the
// curve traces the straight segment from P0 to P2.
func (q QuadBez) isLinear() bool {
	a := Vec2(q.P0).Sub(Vec2(q.P1).Mul(2.0)).Add(Vec2(q.P2))
	return a.IsZero()
}

// Extrema returns the parameters in (0, 1) at which one of the coordinates
// has a local extremum, in increasing order.
func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	// Finding the extrema of a quadratic bezier means finding the roots in the
	// quadratic's first derivative, which is a line.

	var out [MaxExtrema]float64
	var outN int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

// Nearest finds the point of the curve nearest to pt.
//
// The squared distance is a quartic in t; its derivative is a cubic that is
// solved in closed form. The endpoints are always candidates.
func (q QuadBez) Nearest(pt Point) (distSq, outT float64) {
	d0 := q.P1.Sub(q.P0)
	d1 := Vec2(q.P0).Add(Vec2(q.P2)).Sub(Vec2(q.P1).Mul(2.0))
	d := q.P0.Sub(pt)
	c0 := d.Dot(d0)
	c1 := 2.0*d0.Hypot2() + d.Dot(d1)
	c2 := 3.0 * d1.Dot(d0)
	c3 := d1.Hypot2()
	roots, n := SolveCubic(c0, c1, c2, c3)

	var best option[float64]
	try := func(t float64) {
		r := q.Eval(t).DistanceSquared(pt)
		if !best.isSet || r < best.value {
			best.set(r)
			outT = t
		}
	}
	try(0)
	try(1)
	for _, t := range roots[:n] {
		if t > 0.0 && t < 1.0 && !math.IsNaN(t) {
			try(t)
		}
	}
	return best.unwrap(), outT
}
