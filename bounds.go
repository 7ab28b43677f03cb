package vpath

import "math"

// Bounds computes the bounding box of the vertex stream of src.
//
// In approximate mode the box covers all end and control points. In exact
// mode control points are replaced by the extrema of the curves they shape,
// which gives the tight bounds of the outline.
//
// It reports false if src has no vertices, and returns an
// [*UnknownCommandError] for malformed streams.
func Bounds(src VertexSource, exact bool) (Rect, bool, error) {
	b := boundsBuilder{
		r: Rect{
			X0: math.Inf(1),
			Y0: math.Inf(1),
			X1: math.Inf(-1),
			Y1: math.Inf(-1),
		},
	}
	r := newElementReader(src)
	var (
		el  PathElement
		cur Point
	)
	for r.next(&el) {
		switch el.Kind {
		case MoveCommand, LineCommand:
			b.add(el.P0)
		case CurveCommand:
			q := QuadBez{cur, el.P0, el.P1}
			b.add(q.P2)
			if exact {
				b.addQuadExtrema(q)
			} else {
				b.add(q.P1)
			}
		case Curve2Command:
			c := CubicBez{cur, el.P0, el.P1, el.P2}
			b.add(c.P3)
			if exact {
				b.addCubicExtrema(c)
			} else {
				b.add(c.P1)
				b.add(c.P2)
			}
		case CloseCommand:
			continue
		}
		cur = el.End()
	}
	if r.err != nil {
		return Rect{}, false, r.err
	}
	if !b.any {
		return Rect{}, false, nil
	}
	return b.r, true, nil
}

type boundsBuilder struct {
	r   Rect
	any bool
}

func (b *boundsBuilder) add(pt Point) {
	b.r = b.r.UnionPoint(pt)
	b.any = true
}

// addQuadExtrema adds the points at which q is tangent to a vertical or
// horizontal line.
func (b *boundsBuilder) addQuadExtrema(q QuadBez) {
	p1, c, p2 := q.P0, q.P1, q.P2
	// P'(t) = 0 at t = (p1 − c) / (p1 − 2c + p2), where
	// P(t) = (p1 p2 − c²) / (p1 − 2c + p2).
	if s := p2.X - 2*c.X + p1.X; s != 0 {
		if t := (p1.X - c.X) / s; t > 0 && t < 1 {
			b.add(Pt((p1.X*p2.X-c.X*c.X)/s, q.Eval(t).Y))
		}
	}
	if s := p2.Y - 2*c.Y + p1.Y; s != 0 {
		if t := (p1.Y - c.Y) / s; t > 0 && t < 1 {
			b.add(Pt(q.Eval(t).X, (p1.Y*p2.Y-c.Y*c.Y)/s))
		}
	}
}

// addCubicExtrema adds the points at which either coordinate of c has a
// zero derivative.
func (b *boundsBuilder) addCubicExtrema(c CubicBez) {
	// P'(t) = 3(at² + bt + c) per axis.
	cv := c.P1.Sub(c.P0)
	bv := c.P2.Sub(c.P1).Sub(cv).Mul(2)
	av := c.P3.Sub(c.P2).Sub(cv).Sub(bv)
	for _, coeffs := range [2][3]float64{{av.X, bv.X, cv.X}, {av.Y, bv.Y, cv.Y}} {
		roots, n := solveQuadraticPlain(coeffs[0], coeffs[1], coeffs[2])
		for _, t := range roots[:n] {
			if t > 0 && t < 1 {
				b.add(c.Eval(t))
			}
		}
	}
}
