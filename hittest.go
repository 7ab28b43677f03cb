package vpath

import (
	"cmp"
	"math"
	"slices"
)

// Orientation selects which winding direction counts as inside for the area
// part of a hit test.
type Orientation int

const (
	// Either winding direction counts as inside.
	AnyOrientation Orientation = iota
	// Only clockwise outlines, in a y-up coordinate system, count.
	Clockwise
	// Only counterclockwise outlines, in a y-up coordinate system, count.
	CounterClockwise
)

// HitOptions configures [HitTest].
type HitOptions struct {
	// OutlineWidth is the stroke width. A point hits the outline if it is
	// within half of it from the path. A width of zero only accepts points
	// that lie on the path, up to [Epsilon].
	OutlineWidth float64
	// Area additionally tests whether the point lies inside the fill.
	Area        bool
	Orientation Orientation
	// Config overrides the root finder tolerances. If nil, [DefaultConfig]
	// is used.
	Config *Config
}

// HitResult describes where a hit test succeeded.
type HitResult struct {
	// Segment is the 1-based index of the hit segment among the segments of
	// the stream. It is 0 for fill hits.
	Segment int
	// X and Y are the point of the outline nearest to the query point.
	X, Y float64
	// Slope is the curve parameter, or segment fraction, of that point.
	Slope float64
	// Outline is true for outline hits and false for fill hits.
	Outline bool
}

// HitTest tests whether pt lies on the outline of the path described by src
// or, if opts.Area is set, inside its fill.
//
// Outline tests take precedence: the first segment whose stroke contains pt
// is reported. The fill test uses the inclusion test for curved polygons by
// Ruiz de Miras and Feito, which classifies pt against the region spanned by
// the origin and each segment.
//
// The only error is an [*UnknownCommandError] for malformed streams.
func HitTest(pt Point, src VertexSource, opts HitOptions) (HitResult, bool, error) {
	cfg := opts.Config
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	h := hitter{
		pt:     pt,
		sqrTol: Epsilon,
		cfg:    cfg,
	}
	if opts.OutlineWidth != 0 {
		h.sqrTol = (opts.OutlineWidth / 2) * (opts.OutlineWidth / 2)
	}
	// The region test degenerates for a query at the origin, which is the
	// apex of every region. Shift everything sideways in that case.
	var shift Vec2
	if pt.NearlyEqual(Point{}) {
		shift = Vec(1, 0)
	}
	apt := pt.Translate(shift)

	r := newElementReader(src)
	var (
		el        PathElement
		segment   int
		cur       Point
		start     Point
		score     int
		res       HitResult
		hit       bool
		haveStart bool
	)
	for r.next(&el) {
		switch el.Kind {
		case MoveCommand:
			cur, start = el.P0, el.P0
			haveStart = true
			continue
		case CloseCommand:
			if !haveStart || cur == start {
				continue
			}
			el = PathElement{Kind: LineCommand, P0: start}
		}

		segment++
		switch el.Kind {
		case LineCommand:
			l := Line{cur, el.P0}
			res, hit = h.hitLine(l)
			if !hit && opts.Area {
				score += underSegment(l.P0.Translate(shift), l.P1.Translate(shift), apt, false)
			}
		case CurveCommand:
			q := QuadBez{cur, el.P0, el.P1}
			res, hit = h.hitQuad(q)
			if !hit && opts.Area {
				score += underQuad(q.Transform(Translate(shift)), apt)
			}
		case Curve2Command:
			c := CubicBez{cur, el.P0, el.P1, el.P2}
			res, hit = h.hitCubic(c)
			if !hit && opts.Area {
				score += underCubic(c.Transform(Translate(shift)), apt)
			}
		}
		if hit {
			res.Segment = segment
			res.Outline = true
			return res, true, nil
		}
		cur = el.End()
	}
	if r.err != nil {
		return HitResult{}, false, r.err
	}

	if opts.Area {
		inside := false
		switch opts.Orientation {
		case AnyOrientation:
			inside = score == 2 || score == -2
		case Clockwise:
			inside = score == -2
		case CounterClockwise:
			inside = score == 2
		}
		if inside {
			return HitResult{X: pt.X, Y: pt.Y}, true, nil
		}
	}
	return HitResult{}, false, nil
}

type hitter struct {
	pt     Point
	sqrTol float64
	cfg    *Config
}

func (h *hitter) result(t float64, pt Point) HitResult {
	return HitResult{X: pt.X, Y: pt.Y, Slope: t}
}

func (h *hitter) hitLine(l Line) (HitResult, bool) {
	d, t := l.nearestSnapEnds(h.pt, h.sqrTol)
	if d > h.sqrTol {
		return HitResult{}, false
	}
	switch t {
	case 0:
		return h.result(0, l.P0), true
	case 1:
		return h.result(1, l.P1), true
	default:
		return h.result(t, l.Eval(t)), true
	}
}

// hitEnds tests the end points of a curve.
func (h *hitter) hitEnds(p0, p1 Point) (HitResult, bool) {
	d0 := h.pt.DistanceSquared(p0)
	d1 := h.pt.DistanceSquared(p1)
	if d0 > h.sqrTol && d1 > h.sqrTol {
		return HitResult{}, false
	}
	if d0 <= d1 {
		return h.result(0, p0), true
	}
	return h.result(1, p1), true
}

func (h *hitter) hitQuad(q QuadBez) (HitResult, bool) {
	if res, ok := h.hitEnds(q.P0, q.P2); ok {
		return res, true
	}
	if !mayHit(h.pt, h.sqrTol, q.P0, q.P1, q.P2) {
		return HitResult{}, false
	}
	if q.isLinear() {
		return h.hitLine(Line{q.P0, q.P2})
	}
	d, t := q.Nearest(h.pt)
	if d > h.sqrTol {
		return HitResult{}, false
	}
	return h.result(t, q.Eval(t)), true
}

func (h *hitter) hitCubic(c CubicBez) (HitResult, bool) {
	// Points on the ends never need any root finding.
	if res, ok := h.hitEnds(c.P0, c.P3); ok {
		return res, true
	}
	if !mayHit(h.pt, h.sqrTol, c.P0, c.P1, c.P2, c.P3) {
		return HitResult{}, false
	}

	// D(t) = |c(t) − pt|² is a sextic; the candidates are the roots of its
	// derivative.
	px, py := c.polys()
	px.c[0] -= h.pt.X
	py.c[0] -= h.pt.Y
	dist := px.mul(px).add(py.mul(py))
	f := dist.deriv()
	if f.descartes(0, 1) == 0 {
		// D is monotonic and the ends have already been checked.
		return HitResult{}, false
	}
	df := f.deriv()

	var (
		best  option[float64]
		bestT float64
		sturm *sturmSeq
		ivs   [][2]float64
	)
	try := func(t float64) {
		d := c.Eval(t).DistanceSquared(h.pt)
		if d <= h.sqrTol && (!best.isSet || d < best.value) {
			best.set(d)
			bestT = t
		}
	}
	refine := func(a, b float64) {
		t, _ := newtonRoot(f, df, a, b, h.cfg)
		try(t)
	}

	splits := c.splits()
	nudge := h.cfg.EndNudge
	for i := 0; i+1 < len(splits); i++ {
		a, b := splits[i], splits[i+1]
		if i > 0 {
			try(a)
		}
		piece := c.Subsegment(a, b)
		if !mayHit(h.pt, h.sqrTol, piece.P0, piece.P1, piece.P2, piece.P3) {
			continue
		}
		if b-a > 2*nudge {
			if math.Abs(f.eval(a)) <= Epsilon {
				a += nudge
			}
			if math.Abs(f.eval(b)) <= Epsilon {
				b -= nudge
			}
		}

		switch n := f.descartes(a, b); {
		case n == 0:
		case n == 1:
			refine(a, b)
		default:
			if sturm == nil {
				s := newSturmSeq(f)
				sturm = &s
			}
			switch k := sturm.count(a, b); {
			case k == 1:
				refine(a, b)
			case k > 1:
				ivs = sturm.isolate(a, b, k, ivs[:0])
				for _, iv := range ivs {
					refine(iv[0], iv[1])
				}
			}
		}
	}
	if !best.isSet {
		return HitResult{}, false
	}
	return h.result(bestT, c.Eval(bestT)), true
}

// mayHit reports whether pt can lie within sqrt(sqrTol) of a curve with the
// given control points. Curves lie inside the convex hull of their control
// points, so this only fails for points outside of it and away from its
// edges.
func mayHit(pt Point, sqrTol float64, ctrl ...Point) bool {
	var buf [4]Point
	hull := convexHull(buf[:0], ctrl)
	if len(hull) < 3 {
		return true
	}
	inside := true
	for i := range hull {
		e := Line{hull[i], hull[(i+1)%len(hull)]}
		if d, _ := e.Nearest(pt); d <= sqrTol {
			return true
		}
		if segmentSide(e.P0, e.P1, pt) < 0 {
			inside = false
		}
	}
	return inside
}

// convexHull appends the counterclockwise convex hull of pts to dst, using
// Andrew's monotone chain.
func convexHull(dst []Point, pts []Point) []Point {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	sorted = slices.Compact(sorted)
	if len(sorted) < 3 {
		return append(dst, sorted...)
	}
	turn := func(o, a, b Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}
	base := len(dst)
	for _, p := range sorted {
		for len(dst)-base >= 2 && turn(dst[len(dst)-2], dst[len(dst)-1], p) <= 0 {
			dst = dst[:len(dst)-1]
		}
		dst = append(dst, p)
	}
	lower := len(dst)
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(dst) > lower && turn(dst[len(dst)-2], dst[len(dst)-1], p) <= 0 {
			dst = dst[:len(dst)-1]
		}
		dst = append(dst, p)
	}
	return dst[:len(dst)-1]
}
