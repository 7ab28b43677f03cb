package vpath

import (
	"math"
	"slices"
	"sort"
)

// CubicBez is a cubic Bézier segment, as produced by a Curve2 command.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	if t0 == 0 && t1 == 1 {
		return c
	}
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Extrema returns the parameters in (0, 1) at which one of the coordinates
// has a local extremum, in increasing order.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// Inflections returns the inflection points.
//
// The function returns up to two inflection points in the first return
// parameter, with the second parameter specifying the number of points
// returned.
func (cb CubicBez) Inflections() ([2]float64, int) {
	a := cb.P1.Sub(cb.P0)
	b := cb.P2.Sub(cb.P1).Sub(a)
	c := cb.P3.Sub(cb.P0).Sub(cb.P2.Sub(cb.P1).Mul(3))
	nums, n := SolveQuadratic(a.Cross(b), a.Cross(c), b.Cross(c))
	var out [2]float64
	var outN int
	for _, num := range nums[:n] {
		if num >= 0 && num <= 1 {
			out[outN] = num
			outN++
		}
	}
	return out, outN
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}

// polys returns the power basis polynomials of both coordinates.
func (c CubicBez) polys() (px, py poly) {
	x0, x1, x2, x3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	y0, y1, y2, y3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	return newPoly(x0, x1, x2, x3), newPoly(y0, y1, y2, y3)
}

// splits returns the sorted, deduplicated parameters that cut the curve into
// pieces free of inflections and coordinate extrema, including 0 and 1.
func (c CubicBez) splits() []float64 {
	out := make([]float64, 0, MaxExtrema+4)
	out = append(out, 0, 1)
	ex, n := c.Extrema()
	out = append(out, ex[:n]...)
	infl, m := c.Inflections()
	out = append(out, infl[:m]...)
	return uniqueInUnit(out)
}

// regionSplits returns the parameters at which the curve has to be cut so
// that every piece bounds a conic region: the inflection points, or, for
// curves without any, the parameters of the self-intersection. The result is
// sorted, deduplicated and includes 0 and 1.
func (c CubicBez) regionSplits() []float64 {
	out := make([]float64, 0, 5)

	// With P'(t) = 3(at² + bt + c), inflections satisfy
	// (bx ay − by ax)t² + 2(cx ay − cy ax)t + cx by − cy bx = 0.
	cv := c.P1.Sub(c.P0)
	tmp := c.P2.Sub(c.P1).Sub(cv)
	b := tmp.Mul(2)
	a := c.P3.Sub(c.P2).Sub(cv).Sub(b)
	roots, n := solveQuadraticPlain(b.X*a.Y-b.Y*a.X, 2*(cv.X*a.Y-cv.Y*a.X), cv.X*b.Y-cv.Y*b.X)
	out = append(out, roots[:n]...)

	if n == 0 {
		// A curve without inflections may loop. Following Zingl, shift the
		// parameter to [-1/2, 1/2] and solve for the double point.
		px, py := c.polys()
		sx := px.shift(0.5)
		sy := py.shift(0.5)
		xa, xb, xc := -sx.c[3], sx.c[2]/3, -sx.c[1]/3
		ya, yb, yc := -sy.c[3], sy.c[2]/3, -sy.c[1]/3
		cac := xa*yc - xc*ya
		cab := xa*yb - xb*ya
		cbc := xb*yc - xc*yb
		if d := 12*cab*cbc - 3*cac*cac; d > 0 {
			sq := math.Sqrt(d)
			tv1 := (cac - sq) / (2 * cab)
			tv2 := (cac + sq) / (2 * cab)
			in1 := tv1 > -0.5 && tv1 < 0.5
			in2 := tv2 > -0.5 && tv2 < 0.5
			if in1 {
				out = append(out, tv1+0.5)
			}
			if in2 {
				out = append(out, tv2+0.5)
			}
			if in1 && in2 {
				// The loop's tip lies between the two parameters.
				out = append(out, (tv1+tv2)/2+0.5)
			}
		}
	}
	out = append(out, 0, 1)
	return uniqueInUnit(out)
}

// uniqueInUnit sorts ts in place and returns the distinct values in [0, 1].
func uniqueInUnit(ts []float64) []float64 {
	ts = slices.DeleteFunc(ts, func(t float64) bool {
		return !(t >= 0 && t <= 1)
	})
	slices.Sort(ts)
	return slices.Compact(ts)
}

// solveQuadraticPlain returns the real roots of ax² + bx + c using the
// textbook formula, treating a == 0 as a linear equation. Unlike
// [SolveQuadratic], an all-zero equation has no roots.
func solveQuadraticPlain(a, b, c float64) ([2]float64, int) {
	if a == 0 {
		if b != 0 {
			return [2]float64{-c / b}, 1
		}
		return [2]float64{}, 0
	}
	d := b*b - 4*a*c
	switch {
	case d == 0:
		return [2]float64{-b / (2 * a)}, 1
	case d > 0:
		sd := math.Sqrt(d)
		return [2]float64{(-b + sd) / (2 * a), (-b - sd) / (2 * a)}, 2
	default:
		return [2]float64{}, 0
	}
}
