package vpath

// The fill test follows J. Ruiz de Miras and F. R. Feito, "Inclusion Test
// for Curved-Edge Polygons". Every segment spans a triangle with the origin,
// and curves additionally bound a conic region between their chord and
// themselves. Each segment scores the query point in {-2, …, 2} depending on
// which of these regions it falls into and their orientation; a total of ±2
// means the point is inside.
//
// The implicit forms of the curves are from Alois Zingl, "A Rasterizing
// Algorithm for Drawing Curves".

// underSegment scores pt against the triangle spanned by the origin, p1 and
// p2. With onChord set, points on the segment itself count as on an edge of
// the triangle.
func underSegment(p1, p2, pt Point, onChord bool) int {
	var o Point
	s1 := segmentSide(o, p1, pt)
	s2 := segmentSide(p1, p2, pt)
	s3 := segmentSide(p2, o, pt)

	agree := func(a, b int) int {
		switch {
		case a > 0 && b > 0:
			return 1
		case a < 0 && b < 0:
			return -1
		default:
			return 0
		}
	}

	switch {
	case s1 > 0 && s2 > 0 && s3 > 0:
		return 2
	case s1 < 0 && s2 < 0 && s3 < 0:
		return -2
	case s1 == 0:
		return agree(s2, s3)
	case s3 == 0:
		return agree(s1, s2)
	case onChord && s2 == 0:
		return agree(s1, s3)
	default:
		return 0
	}
}

// conicRegion describes the region between a curve piece from p1 to p2 and
// its chord.
type conicRegion struct {
	p1, p2 Point
	// ctrl is a control point off the chord, telling the side the curve
	// bulges to.
	ctrl Point
	// hull returns -1 for points outside the control polygon, 0 for points
	// on the chord and 1 for points inside.
	hull func(pt Point) int
	// implicit is the curve's implicit equation.
	implicit func(pt Point) float64
}

func (r *conicRegion) score(pt Point) int {
	sign := -segmentSide(r.p1, r.p2, r.ctrl)
	if sign == 0 {
		return underSegment(r.p1, r.p2, pt, false)
	}
	alpha := underSegment(r.p1, r.p2, pt, true)
	switch r.hull(pt) {
	case -1:
		return alpha
	case 0:
		return sign + alpha
	}
	sideC := -r.implicit(r.ctrl)
	sidePt := -r.implicit(pt)
	if (sidePt > 0 && sideC < 0) || (sidePt < 0 && sideC > 0) {
		// Between the chord and the curve.
		return 2*sign + alpha
	}
	return alpha
}

// underQuad scores pt against the region below the quadratic q.
func underQuad(q QuadBez, pt Point) int {
	p1, c, p2 := q.P0, q.P1, q.P2
	r := conicRegion{
		p1:   p1,
		p2:   p2,
		ctrl: c,
		implicit: func(pt Point) float64 {
			curv := (p1.X-c.X)*(p2.Y-c.Y) + (c.X-p2.X)*(p1.Y-c.Y)
			xn := pt.X - c.X
			yn := pt.Y - c.Y
			t := xn*(p1.Y-2*c.Y+p2.Y) - yn*(p1.X-2*c.X+p2.X)
			return t*t + (2*(xn*(p1.Y-p2.Y)+yn*(p2.X-p1.X))+curv)*curv
		},
		hull: func(pt Point) int {
			mid := Pt((p1.X+c.X+p2.X)/3, (p1.Y+c.Y+p2.Y)/3)
			s3 := segmentSide(p2, p1, pt)
			if s3 == 0 {
				return 0
			}
			if segmentSide(p1, c, pt) != segmentSide(p1, c, mid) ||
				segmentSide(c, p2, pt) != segmentSide(c, p2, mid) ||
				s3 != segmentSide(p2, p1, mid) {
				return -1
			}
			return 1
		},
	}
	return r.score(pt)
}

// underCubic scores pt against the region below the cubic c, cut into
// pieces that each bound a conic region.
func underCubic(c CubicBez, pt Point) int {
	var tot int
	ts := c.regionSplits()
	for i := 0; i+1 < len(ts); i++ {
		tot += underCubicPiece(c.Subsegment(ts[i], ts[i+1]), pt)
	}
	return tot
}

func underCubicPiece(c CubicBez, pt Point) int {
	ctrl := [4]Point{c.P0, c.P1, c.P2, c.P3}
	f := newCubicImplicit(c)
	r := conicRegion{
		p1:       c.P0,
		p2:       c.P3,
		ctrl:     c.P1,
		implicit: f.eval,
		hull: func(pt Point) int {
			mid := Pt((c.P0.X+c.P1.X+c.P2.X+c.P3.X)/4, (c.P0.Y+c.P1.Y+c.P2.Y+c.P3.Y)/4)
			for j := range 4 {
				a, b := ctrl[j], ctrl[(j+1)%4]
				s := segmentSide(a, b, pt)
				if j == 3 && s == 0 {
					return 0
				}
				if s*segmentSide(a, b, mid) < 0 {
					return -1
				}
			}
			return 1
		},
	}
	if c.P0.NearlyEqual(c.P1) {
		r.ctrl = c.P2
	}
	return r.score(pt)
}

// cubicImplicit holds the coefficients of the implicit form of a cubic
// Bézier,
//
//	ax³ − 3bx²y + 3cxy² − dy³ + 3ex² − 3fxy + 3gy² + 3hx − 3iy + j = 0.
type cubicImplicit struct {
	a, b, c, d, e, f, g, h, i, j float64
}

func newCubicImplicit(cb CubicBez) cubicImplicit {
	p0, p1, p2, p3 := cb.P0, cb.P1, cb.P2, cb.P3
	xa := p0.X - 3*p1.X + 3*p2.X - p3.X
	xb := (p0.X - p1.X - p2.X + p3.X) / 2
	xc := (p0.X + p1.X - p2.X - p3.X) / 4
	xd := (p0.X + 3*p1.X + 3*p2.X + p3.X) / 8
	ya := p0.Y - 3*p1.Y + 3*p2.Y - p3.Y
	yb := (p0.Y - p1.Y - p2.Y + p3.Y) / 2
	yc := (p0.Y + p1.Y - p2.Y - p3.Y) / 4
	yd := (p0.Y + 3*p1.Y + 3*p2.Y + p3.Y) / 8

	cac := xa*yc - xc*ya
	cab := xa*yb - xb*ya
	cbc := xb*yc - xc*yb
	cad := xa*yd - xd*ya
	cbd := xb*yd - xd*yb
	ccd := xc*yd - xd*yc

	mu1 := 3*cab*cbd - cac*cad
	mu2 := 3*cac*cac - cab*(4*cad+9*cbc)

	return cubicImplicit{
		a: ya * ya * ya,
		b: xa * ya * ya,
		c: xa * xa * ya,
		d: xa * xa * xa,
		e: cad*ya*ya - 3*ya*(2*cab*yc+cac*yb) + 9*cab*yb*yb,
		f: (2*cad+3*cbc)*xa*ya + 9*(2*cab*xb*yb+xb*xc*ya*ya-xa*xa*yb*yc),
		g: cad*xa*xa - 3*(2*cab*xc+cac*xb)*xa + 9*cab*xb*xb,
		h: cad*cad*ya + 6*mu1*yb + 3*mu2*yc + 9*cab*cac*yd,
		i: cad*cad*xa + 6*mu1*xb + 3*mu2*xc + 9*cab*cac*xd,
		j: cad*(cad*cad-9*(cac*cbd+2*cab*ccd)) + 27*(cab*cbd*cbd+cac*cac*ccd) - 81*cab*cbc*ccd,
	}
}

func (k *cubicImplicit) eval(pt Point) float64 {
	x, y := pt.X, pt.Y
	return (k.a*x-3*k.b*y+3*k.e)*x*x + (3*k.c*x-k.d*y+3*k.g)*y*y + ((k.h-k.f*y)*x-k.i*y)*3 + k.j
}
