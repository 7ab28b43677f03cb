package vpath

// GenerateVertices flattens seq into a vertex stream, mapping all positions
// and handles through aff. With styled set, anchors of a corner type whose
// shoulder lengths are both positive get their corners cut and filled in as
// the type describes.
//
// The result is a pure function of its inputs.
func GenerateVertices(seq *Sequence, aff Affine, styled bool) *VertexBuffer {
	var b VertexBuffer
	generate(&b, seq, aff, styled)
	return &b
}

func generate(b *VertexBuffer, seq *Sequence, aff Affine, styled bool) {
	n := seq.Len()
	if n == 0 {
		return
	}
	// Shoulder lengths are not transformed, only positions and handles.
	pts := make([]AnchorPoint, n)
	for i, ap := range seq.pts {
		pts[i] = ap.transformed(aff)
	}
	g := generator{
		b:      b,
		pts:    pts,
		styled: styled,
	}

	b.moveTo(g.start(seq.closed))
	if n == 1 {
		return
	}
	if seq.closed {
		// The segment into the first point comes last and ends at the start
		// point computed above.
		for k := 1; k <= n; k++ {
			i := k % n
			g.middle(&pts[i], &pts[(i+n-1)%n], &pts[(i+1)%n])
		}
		b.close()
		return
	}
	for i := 1; i < n-1; i++ {
		g.middle(&pts[i], &pts[i-1], &pts[i+1])
	}
	g.segment(&pts[n-1], &pts[n-2])
}

type generator struct {
	b      *VertexBuffer
	pts    []AnchorPoint
	styled bool
}

// hasCorner reports whether the point has a styled corner: a corner type
// and two positive shoulder lengths.
func (ap *AnchorPoint) hasCorner() bool {
	return ap.Type.IsCorner() && ap.LeftCorner > 0 && ap.RightCorner > 0
}

func (g *generator) start(closed bool) Point {
	first := &g.pts[0]
	n := len(g.pts)
	if !g.styled || !closed || n == 1 || !first.hasCorner() {
		return first.Pos
	}
	// A connector sitting on top of the first point cancels its corner.
	if prev := &g.pts[n-1]; prev.Type == Connector && prev.Pos == first.Pos {
		return first.Pos
	}
	return rightShoulder(first, &g.pts[1], false)
}

// segmentHandles returns the control points of the segment from prev to cur. If
// only one exists, it is returned as h1.
func segmentHandles(cur, prev *AnchorPoint) (h1, h2 Handle) {
	switch {
	case cur.LeftHandle.Valid && prev.RightHandle.Valid:
		return prev.RightHandle, cur.LeftHandle
	case cur.LeftHandle.Valid:
		return cur.LeftHandle, Handle{}
	default:
		return prev.RightHandle, Handle{}
	}
}

// segment emits the unstyled segment from prev to cur.
func (g *generator) segment(cur, prev *AnchorPoint) {
	h1, h2 := segmentHandles(cur, prev)
	switch {
	case !h1.Valid:
		g.b.lineTo(cur.Pos)
	case !h2.Valid:
		g.b.quadTo(cur.Pos, h1.Point)
	default:
		g.b.cubicTo(cur.Pos, h1.Point, h2.Point)
	}
}

// middle emits the segment from prev to cur and, for styled corners, the
// corner at cur up to its right shoulder.
func (g *generator) middle(cur, prev, next *AnchorPoint) {
	if !g.styled || !cur.hasCorner() {
		g.segment(cur, prev)
		return
	}

	var pt Point
	h1, h2 := segmentHandles(cur, prev)
	switch {
	case !h1.Valid:
		pt = shoulderPoint(cur.Pos, cur.LeftCorner, prev.Pos, prev.RightCorner)
		g.b.lineTo(pt)
	case !h2.Valid:
		pt = pointAtLength(cur.Pos, h1.Point, cur.LeftCorner)
		g.b.quadTo(pt, h1.Point)
	default:
		pt = pointAtLength(cur.Pos, h2.Point, cur.LeftCorner)
		g.b.cubicTo(pt, h1.Point, h2.Point)
	}
	g.corner(pt, rightShoulder(cur, next, false), cur.Pos, cur.Type)
}

// corner fills the corner at edge between its shoulder points p1 and p2.
func (g *generator) corner(p1, p2, edge Point, typ AnchorType) {
	b := g.b
	if p1 == p2 {
		if edge != p1 {
			b.lineTo(edge)
			b.lineTo(p2)
		}
		return
	}
	if p1 == edge || p2 == edge {
		b.lineTo(p2)
		return
	}

	switch typ {
	case Rounded, InverseRounded:
		if (p1.X == p2.X && p1.X == edge.X) || (p1.Y == p2.Y && p1.Y == edge.Y) {
			b.quadTo(p2, edge)
			return
		}
		arc := edge
		if typ == InverseRounded {
			arc = edge.Reflect(p1.Midpoint(p2))
		}
		b.cubicTo(p2, p1.Lerp(arc, CircleCoeff), p2.Lerp(arc, CircleCoeff))
	case Bevel:
		b.lineTo(p2)
	case Inset:
		b.lineTo(edge.Reflect(p1.Midpoint(p2)))
		b.lineTo(p2)
	case Fancy:
		// Two steps in, one step back, in thirds of each shoulder.
		c1 := p2.Sub(edge).Div(3)
		c2 := edge.Sub(p1).Div(3)
		pt := p1
		for _, step := range [...]Vec2{c1.Mul(2), c2.Mul(2), c1.Negate(), c2.Negate(), c1.Mul(2), c2.Mul(2)} {
			pt = pt.Translate(step)
			b.lineTo(pt)
		}
	default:
		// No corner shape defined; go through the anchor itself.
		b.lineTo(edge)
		b.lineTo(p2)
	}
}

// shoulderPoint returns the point at distance s1 from p1 toward p2. If the
// shoulders s1 at p1 and s2 at p2 together exceed the distance between the
// points, the distance is split between them proportionally.
func shoulderPoint(p1 Point, s1 float64, p2 Point, s2 float64) Point {
	s1, s2 = max(s1, 0), max(s2, 0)
	total := s1 + s2
	if total <= 0 {
		return p1
	}
	d := p1.Distance(p2)
	if d >= total {
		return pointAtLength(p1, p2, s1)
	}
	return pointAtLength(p1, p2, d*s1/total)
}

// rightShoulder returns the end of the corner at cur, on the way to next.
// The shoulder follows the handle shaping the outgoing segment if there is
// one. With limit set it returns the farthest point the shoulder may reach.
func rightShoulder(cur, next *AnchorPoint, limit bool) Point {
	var h Handle
	switch {
	case cur.RightHandle.Valid:
		h = cur.RightHandle
	case next.LeftHandle.Valid:
		h = next.LeftHandle
	}
	switch {
	case h.Valid && limit:
		return h.Point
	case h.Valid:
		return pointAtLength(cur.Pos, h.Point, cur.RightCorner)
	case limit:
		return next.Pos
	default:
		return shoulderPoint(cur.Pos, cur.RightCorner, next.Pos, next.LeftCorner)
	}
}

// leftShoulder is the counterpart of rightShoulder for the start of the
// corner, coming from prev.
func leftShoulder(cur, prev *AnchorPoint, limit bool) Point {
	var h Handle
	switch {
	case cur.LeftHandle.Valid:
		h = cur.LeftHandle
	case prev.RightHandle.Valid:
		h = prev.RightHandle
	}
	switch {
	case h.Valid && limit:
		return h.Point
	case h.Valid:
		return pointAtLength(cur.Pos, h.Point, cur.LeftCorner)
	case limit:
		return prev.Pos
	default:
		return shoulderPoint(cur.Pos, cur.LeftCorner, prev.Pos, prev.RightCorner)
	}
}
