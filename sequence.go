package vpath

import (
	"fmt"
	"iter"
	"slices"
)

// Sequence is an ordered, optionally closed list of anchor points forming
// one path. It owns its points and keeps their derived handles up to date as
// points are inserted, removed and changed.
//
// Every change increments the sequence's version, which caches of the
// generated vertices compare against.
type Sequence struct {
	pts     []AnchorPoint
	closed  bool
	version uint64
}

// NewSequence returns a sequence containing pts, appended in order.
func NewSequence(closed bool, pts ...AnchorPoint) *Sequence {
	s := &Sequence{closed: closed}
	for _, ap := range pts {
		s.Append(ap)
	}
	return s
}

func (s *Sequence) String() string {
	return fmt.Sprintf("Sequence(%d points, closed=%t)", len(s.pts), s.closed)
}

func (s *Sequence) Len() int        { return len(s.pts) }
func (s *Sequence) Closed() bool    { return s.closed }
func (s *Sequence) Version() uint64 { return s.version }

// At returns a copy of the i-th point.
func (s *Sequence) At(i int) AnchorPoint {
	s.checkIndex(i)
	return s.pts[i]
}

// All returns an iterator over the points and their indices.
func (s *Sequence) All() iter.Seq2[int, AnchorPoint] {
	return func(yield func(int, AnchorPoint) bool) {
		for i, ap := range s.pts {
			if !yield(i, ap) {
				return
			}
		}
	}
}

func (s *Sequence) checkIndex(i int) {
	if i < 0 || i >= len(s.pts) {
		panic(fmt.Sprintf("anchor index %d out of range [0:%d]", i, len(s.pts)))
	}
}

// Prev returns the index of the point before i. The first point of a closed
// sequence is preceded by the last one.
func (s *Sequence) Prev(i int) (int, bool) {
	s.checkIndex(i)
	switch {
	case i > 0:
		return i - 1, true
	case s.closed:
		return len(s.pts) - 1, true
	default:
		return 0, false
	}
}

// Next returns the index of the point after i. The last point of a closed
// sequence is followed by the first one.
func (s *Sequence) Next(i int) (int, bool) {
	s.checkIndex(i)
	switch {
	case i < len(s.pts)-1:
		return i + 1, true
	case s.closed:
		return 0, true
	default:
		return 0, false
	}
}

// prevOf and nextOf are like Prev and Next but never return i itself, which
// happens for closed sequences of a single point.
func (s *Sequence) prevOf(i int) (*AnchorPoint, int) {
	if j, ok := s.Prev(i); ok && j != i {
		return &s.pts[j], j
	}
	return nil, -1
}

func (s *Sequence) nextOf(i int) (*AnchorPoint, int) {
	if j, ok := s.Next(i); ok && j != i {
		return &s.pts[j], j
	}
	return nil, -1
}

// SetClosed opens or closes the sequence. This changes the neighbours of the
// first and last points.
func (s *Sequence) SetClosed(closed bool) {
	if s.closed == closed {
		return
	}
	s.closed = closed
	s.version++
	if len(s.pts) > 0 {
		s.invalidateRight(0)
		s.invalidateLeft(len(s.pts) - 1)
	}
}

// Append adds ap to the end of the sequence.
func (s *Sequence) Append(ap AnchorPoint) {
	s.Insert(len(s.pts), ap)
}

// Insert adds ap at index i, shifting later points. The handles of the new
// point and of its neighbours are recomputed as their types require.
func (s *Sequence) Insert(i int, ap AnchorPoint) {
	if i < 0 || i > len(s.pts) {
		panic(fmt.Sprintf("anchor index %d out of range [0:%d]", i, len(s.pts)+1))
	}
	if !ap.Type.valid() {
		panic(fmt.Sprintf("unhandled case %v", ap.Type))
	}
	if ap.UniformCorners {
		ap.RightCorner = ap.LeftCorner
	}
	s.pts = slices.Insert(s.pts, i, ap)
	s.version++

	cur := &s.pts[i]
	prev, pi := s.prevOf(i)
	next, ni := s.nextOf(i)
	if cur.Type == Connector {
		// A connector next to a curve starts out with a handle pointing at
		// the neighbour.
		if prev != nil && prev.RightHandle.Valid {
			if h := handleToward(cur.Pos, prev.Pos); !h.NearlyEqual(cur.Pos) {
				cur.LeftHandle = HandleAt(h)
			}
		}
		if next != nil && next.LeftHandle.Valid {
			if h := handleToward(cur.Pos, next.Pos); !h.NearlyEqual(cur.Pos) {
				cur.RightHandle = HandleAt(h)
			}
		}
	}
	if cur.AutoHandles || cur.Type == Connector {
		s.recompute(i)
	}
	s.invalidateLeft(pi)
	s.invalidateRight(ni)
}

// Remove deletes the point at index i and returns it.
func (s *Sequence) Remove(i int) AnchorPoint {
	s.checkIndex(i)
	_, pi := s.prevOf(i)
	_, ni := s.nextOf(i)
	ap := s.pts[i]
	s.pts = slices.Delete(s.pts, i, i+1)
	s.version++

	shift := func(j int) int {
		if j > i {
			return j - 1
		}
		return j
	}
	s.invalidateLeft(shift(pi))
	if ni != pi {
		s.invalidateRight(shift(ni))
	}
	return ap
}

// Update applies fn to the point at index i and then restores the
// invariants of the point and its neighbours. A change of position
// recomputes the neighbours that depend on it; a change of type recomputes
// the adjacent auto-handle and connector points.
func (s *Sequence) Update(i int, fn func(ap *AnchorPoint)) {
	s.checkIndex(i)
	ap := &s.pts[i]
	old := *ap
	fn(ap)
	c := ap.settle(old)
	if c == 0 {
		return
	}
	s.version++
	s.recompute(i)

	prev, pi := s.prevOf(i)
	next, ni := s.nextOf(i)
	switch {
	case c&changedPos != 0:
		s.invalidateLeft(pi)
		s.invalidateRight(ni)
	case c&changedType != 0:
		if prev != nil && (prev.AutoHandles || prev.Type == Connector) {
			s.recompute(pi)
		}
		if next != nil && (next.AutoHandles || next.Type == Connector) {
			s.recompute(ni)
		}
	}
}

// invalidateLeft is called for the point at i after its right neighbour
// moved. The point is recomputed if it derives its handles from neighbours,
// and if it is smooth, so is its left neighbour.
func (s *Sequence) invalidateLeft(i int) {
	if i < 0 {
		return
	}
	ap := &s.pts[i]
	if ap.AutoHandles || ap.Type == Connector {
		s.recompute(i)
	}
	if ap.Type.smooth() {
		if prev, pi := s.prevOf(i); prev != nil && prev.AutoHandles {
			s.recompute(pi)
		}
	}
}

// invalidateRight mirrors invalidateLeft for a point whose left neighbour
// moved.
func (s *Sequence) invalidateRight(i int) {
	if i < 0 {
		return
	}
	ap := &s.pts[i]
	if ap.AutoHandles || ap.Type == Connector {
		s.recompute(i)
	}
	if ap.Type.smooth() {
		if next, ni := s.nextOf(i); next != nil && next.AutoHandles {
			s.recompute(ni)
		}
	}
}

// recompute derives the handles of the point at i. Connectors take
// precedence over explicitly smooth points, which take precedence over auto
// handles.
func (s *Sequence) recompute(i int) {
	ap := &s.pts[i]
	switch {
	case ap.Type == Connector:
		s.recomputeConnector(i)
	case ap.Type.smooth() && !ap.AutoHandles:
		ap.recomputeSmooth()
	case ap.AutoHandles:
		if ap.Type.smooth() {
			s.recomputeAutoSmooth(i)
		} else {
			s.recomputeAuto(i)
		}
	}
}

func (s *Sequence) recomputeConnector(i int) {
	ap := &s.pts[i]
	prev, _ := s.prevOf(i)
	next, _ := s.nextOf(i)
	var lenPrev, lenNext float64
	if prev != nil {
		lenPrev = ap.Pos.Distance(prev.Pos)
	}
	if next != nil {
		lenNext = ap.Pos.Distance(next.Pos)
	}
	degenerate := prev == nil || next == nil || nearlyEqual(lenPrev, 0) || nearlyEqual(lenNext, 0)

	if ap.AutoHandles {
		// Continue the straight segment on one side into the curve on the
		// other side.
		ap.RightHandle = Handle{}
		ap.LeftHandle = Handle{}
		if !degenerate && next.Type.smooth() {
			dir := ap.Pos.Sub(prev.Pos).Div(lenPrev)
			ap.RightHandle = HandleAt(ap.Pos.Translate(dir.Mul(lenNext * HandleCoeff)))
		}
		if !degenerate && prev.Type.smooth() {
			dir := ap.Pos.Sub(next.Pos).Div(lenNext)
			ap.LeftHandle = HandleAt(ap.Pos.Translate(dir.Mul(lenPrev * HandleCoeff)))
		}
		return
	}

	// Rotate existing handles onto the line of the opposite segment, keeping
	// their lengths.
	if ap.LeftHandle.Valid && next != nil && !nearlyEqual(lenNext, 0) {
		hLen := ap.Pos.Distance(ap.LeftHandle.Point)
		ap.LeftHandle = HandleAt(ap.Pos.Translate(ap.Pos.Sub(next.Pos).Mul(hLen / lenNext)))
	}
	if ap.RightHandle.Valid && prev != nil && !nearlyEqual(lenPrev, 0) {
		hLen := ap.Pos.Distance(ap.RightHandle.Point)
		ap.RightHandle = HandleAt(ap.Pos.Translate(ap.Pos.Sub(prev.Pos).Mul(hLen / lenPrev)))
	}
}

// recomputeAutoSmooth places the handles of a smooth point tangent to the
// circle through its neighbours.
func (s *Sequence) recomputeAutoSmooth(i int) {
	ap := &s.pts[i]
	prev, _ := s.prevOf(i)
	next, _ := s.nextOf(i)

	set := func(l, r Point) {
		if l.NearlyEqual(ap.Pos) && r.NearlyEqual(ap.Pos) {
			ap.LeftHandle, ap.RightHandle = Handle{}, Handle{}
			return
		}
		ap.LeftHandle, ap.RightHandle = HandleAt(l), HandleAt(r)
	}

	switch {
	case prev == nil && next == nil:
	case next != nil && (prev == nil || prev.Pos == ap.Pos):
		h := handleToward(ap.Pos, next.Pos)
		set(h.Reflect(ap.Pos), h)
	case prev != nil && (next == nil || next.Pos == ap.Pos):
		h := handleToward(ap.Pos, prev.Pos)
		set(h, h.Reflect(ap.Pos))
	default:
		lenPrev := ap.Pos.Distance(prev.Pos) * HandleCoeff
		lenNext := ap.Pos.Distance(next.Pos) * HandleCoeff
		dir, ok := tangentDir(ap.Pos, prev.Pos, next.Pos)
		if !ok {
			if prev.Pos.NearlyEqual(next.Pos) {
				// Going back the way we came; stand the handles up.
				d := perpendicular(ap.Pos, prev.Pos)
				set(ap.Pos.Translate(d.Negate()), ap.Pos.Translate(d))
				return
			}
			// Collinear neighbours have no circle through them. The
			// handles lie on their line, not across it.
			dir = prev.Pos.Sub(next.Pos)
			dir = dir.Div(dir.Hypot())
		}
		set(ap.Pos.Translate(dir.Mul(lenPrev)), ap.Pos.Translate(dir.Mul(-lenNext)))
	}
}

// recomputeAuto computes the handles of a non-smooth auto point. A side
// only gets a handle if the neighbour on that side is smooth, in which case
// it follows the circle through the neighbour and the point beyond it.
func (s *Sequence) recomputeAuto(i int) {
	ap := &s.pts[i]
	prev, pi := s.prevOf(i)
	next, ni := s.nextOf(i)

	if prev != nil && prev.Pos != ap.Pos {
		if prev.Type.smooth() {
			far, _ := s.prevOf(pi)
			ap.LeftHandle = HandleAt(autoHandle(ap.Pos, prev.Pos, far))
		} else {
			ap.LeftHandle = Handle{}
		}
	}
	if next != nil && next.Pos != ap.Pos {
		if next.Type.smooth() {
			far, _ := s.nextOf(ni)
			ap.RightHandle = HandleAt(autoHandle(ap.Pos, next.Pos, far))
		} else {
			ap.RightHandle = Handle{}
		}
	}
}

// autoHandle returns the handle at pos on the side of near, tangent to the
// circle through pos, near and far.
func autoHandle(pos, near Point, far *AnchorPoint) Point {
	if far == nil || far.Pos == near {
		return handleToward(pos, near)
	}
	dir, ok := tangentDir(pos, near, far.Pos)
	if !ok {
		if far.Pos.NearlyEqual(pos) {
			return pos.Translate(perpendicular(pos, near).Negate())
		}
		return handleToward(pos, near)
	}
	return pos.Translate(dir.Mul(pos.Distance(near) * HandleCoeff))
}

// LeftShoulder returns the point at which the styled corner of the point at
// i begins. It reports false if the point has no corner, which requires
// both shoulder lengths to be positive, or no previous point.
func (s *Sequence) LeftShoulder(i int) (Point, bool) {
	s.checkIndex(i)
	ap := &s.pts[i]
	prev, _ := s.prevOf(i)
	if prev == nil || !ap.hasCorner() {
		return Point{}, false
	}
	return leftShoulder(ap, prev, false), true
}

// RightShoulder returns the point at which the styled corner of the point at
// i ends.
func (s *Sequence) RightShoulder(i int) (Point, bool) {
	s.checkIndex(i)
	ap := &s.pts[i]
	next, _ := s.nextOf(i)
	if next == nil || !ap.hasCorner() {
		return Point{}, false
	}
	return rightShoulder(ap, next, false), true
}

// LeftShoulderLimit returns the farthest point the left shoulder of the
// point at i can extend to: the handle that shapes the incoming segment, or
// the previous point.
func (s *Sequence) LeftShoulderLimit(i int) (Point, bool) {
	s.checkIndex(i)
	ap := &s.pts[i]
	prev, _ := s.prevOf(i)
	if prev == nil {
		return Point{}, false
	}
	return leftShoulder(ap, prev, true), true
}

// RightShoulderLimit is the counterpart of LeftShoulderLimit for the
// outgoing segment.
func (s *Sequence) RightShoulderLimit(i int) (Point, bool) {
	s.checkIndex(i)
	ap := &s.pts[i]
	next, _ := s.nextOf(i)
	if next == nil {
		return Point{}, false
	}
	return rightShoulder(ap, next, true), true
}
