package vpath

import "fmt"

// AnchorType determines how the handles of an anchor point are derived and,
// for the corner kinds, how its corner is styled.
type AnchorType int

const (
	// Handles are independent of each other.
	Asymmetric AnchorType = iota
	// Handles are collinear through the anchor, with independent lengths.
	Symmetric
	// Handles are reflections of each other.
	Mirror
	// Handles stay aligned with the adjacent straight segments.
	Connector

	// The corner kinds. For handle computation they behave like Asymmetric.

	Rounded
	InverseRounded
	Bevel
	Inset
	Fancy
)

var anchorTypeTags = [...]string{
	Asymmetric:     "TA",
	Symmetric:      "TS",
	Mirror:         "TM",
	Connector:      "TC",
	Rounded:        "R",
	InverseRounded: "U",
	Bevel:          "B",
	Inset:          "I",
	Fancy:          "F",
}

var anchorTypeNames = [...]string{
	Asymmetric:     "Asymmetric",
	Symmetric:      "Symmetric",
	Mirror:         "Mirror",
	Connector:      "Connector",
	Rounded:        "Rounded",
	InverseRounded: "InverseRounded",
	Bevel:          "Bevel",
	Inset:          "Inset",
	Fancy:          "Fancy",
}

func (typ AnchorType) valid() bool {
	return typ >= Asymmetric && typ <= Fancy
}

func (typ AnchorType) String() string {
	if !typ.valid() {
		return fmt.Sprintf("AnchorType(%d)", int(typ))
	}
	return anchorTypeNames[typ]
}

// Tag returns the short tag used in the anchor stream encoding.
func (typ AnchorType) Tag() string {
	if !typ.valid() {
		panic(fmt.Sprintf("unhandled case %v", typ))
	}
	return anchorTypeTags[typ]
}

// ParseAnchorType is the inverse of [AnchorType.Tag].
func ParseAnchorType(tag string) (AnchorType, bool) {
	for typ, t := range anchorTypeTags {
		if t == tag {
			return AnchorType(typ), true
		}
	}
	return 0, false
}

// IsCorner reports whether typ is one of the styled corner kinds.
func (typ AnchorType) IsCorner() bool {
	return typ >= Rounded && typ <= Fancy
}

func (typ AnchorType) smooth() bool {
	return typ == Symmetric || typ == Mirror
}

// Handle is an optional tangent handle. A handle that isn't valid means the
// adjoining segment has no curvature on that side.
type Handle struct {
	Point
	Valid bool
}

// HandleAt returns a valid handle at pt.
func HandleAt(pt Point) Handle {
	return Handle{Point: pt, Valid: true}
}

func (h Handle) String() string {
	if !h.Valid {
		return "none"
	}
	return h.Point.String()
}

func (h Handle) transform(aff Affine) Handle {
	if !h.Valid {
		return h
	}
	return HandleAt(h.Point.Transform(aff))
}

// AnchorPoint is a single control point of a path.
//
// The zero value is an Asymmetric point at the origin without handles and
// with non-uniform corners; use [NewAnchorPoint] for the usual defaults.
// Fields may be read directly, but changes should go through
// [AnchorPoint.Update] or [Sequence.Update] so that derived handles and
// corner lengths stay consistent.
type AnchorPoint struct {
	Type        AnchorType
	Pos         Point
	LeftHandle  Handle
	RightHandle Handle
	// AutoHandles makes the handles follow the neighbouring anchors.
	AutoHandles bool
	// UniformCorners keeps LeftCorner and RightCorner equal.
	UniformCorners bool
	// LeftCorner and RightCorner are the shoulder lengths of a styled corner.
	LeftCorner  float64
	RightCorner float64

	// leadRight records that the right handle was edited last, so that
	// Symmetric and Mirror points align the left handle to it.
	leadRight bool
}

// NewAnchorPoint returns an Asymmetric anchor at pos with uniform corners.
func NewAnchorPoint(pos Point) AnchorPoint {
	return AnchorPoint{
		Pos:            pos,
		UniformCorners: true,
	}
}

func (ap AnchorPoint) String() string {
	return fmt.Sprintf("%s%s(l=%s r=%s auto=%t corners=%g/%g)",
		ap.Type, ap.Pos, ap.LeftHandle, ap.RightHandle, ap.AutoHandles, ap.LeftCorner, ap.RightCorner)
}

// LeadingRight reports whether the right handle is the leading one of a
// Symmetric or Mirror point.
func (ap *AnchorPoint) LeadingRight() bool { return ap.leadRight }

// Update applies fn to the point and then restores its invariants: uniform
// corner lengths, the leading handle, and the handles of Symmetric and
// Mirror points. Points inside a [Sequence] must be changed with
// [Sequence.Update] instead, which also updates the neighbours.
func (ap *AnchorPoint) Update(fn func(ap *AnchorPoint)) {
	old := *ap
	fn(ap)
	ap.settle(old)
	if ap.constrainedStandalone() {
		ap.recomputeSmooth()
	}
}

// Flip swaps the left and right sides of the point.
func (ap *AnchorPoint) Flip() {
	ap.Update(func(ap *AnchorPoint) {
		ap.LeftHandle, ap.RightHandle = ap.RightHandle, ap.LeftHandle
		ap.LeftCorner, ap.RightCorner = ap.RightCorner, ap.LeftCorner
	})
}

type changeSet uint8

const (
	changedPos changeSet = 1 << iota
	changedType
	changedLeft
	changedRight
	changedAuto
	changedCorners
)

func (ap *AnchorPoint) diff(old AnchorPoint) changeSet {
	var c changeSet
	if ap.Pos != old.Pos {
		c |= changedPos
	}
	if ap.Type != old.Type {
		c |= changedType
	}
	if ap.LeftHandle != old.LeftHandle {
		c |= changedLeft
	}
	if ap.RightHandle != old.RightHandle {
		c |= changedRight
	}
	if ap.AutoHandles != old.AutoHandles {
		c |= changedAuto
	}
	if ap.LeftCorner != old.LeftCorner || ap.RightCorner != old.RightCorner || ap.UniformCorners != old.UniformCorners {
		c |= changedCorners
	}
	return c
}

// settle enforces corner uniformity and tracks the leading handle after a
// change from old. It returns what changed.
func (ap *AnchorPoint) settle(old AnchorPoint) changeSet {
	if !ap.Type.valid() {
		panic(fmt.Sprintf("unhandled case %v", ap.Type))
	}
	if ap.UniformCorners {
		switch {
		case ap.LeftCorner != old.LeftCorner:
			ap.RightCorner = ap.LeftCorner
		case ap.RightCorner != old.RightCorner:
			ap.LeftCorner = ap.RightCorner
		case !old.UniformCorners:
			ap.RightCorner = ap.LeftCorner
		}
	}

	c := ap.diff(old)
	left := c&changedLeft != 0
	right := c&changedRight != 0
	typ := c&changedType != 0
	if ap.constrainedStandalone() && (left || right || typ) {
		ap.leadRight = (right && !left) || (typ && !left && ap.RightHandle.Valid)
	}
	return c
}

// constrainedStandalone reports whether the handles are constrained by the
// point itself, without looking at any neighbours.
func (ap *AnchorPoint) constrainedStandalone() bool {
	if ap.AutoHandles {
		return false
	}
	switch ap.Type {
	case Symmetric:
		return ap.LeftHandle.Valid && ap.RightHandle.Valid
	case Mirror:
		return ap.LeftHandle.Valid || ap.RightHandle.Valid
	default:
		return false
	}
}

// recomputeSmooth aligns the trailing handle of a Symmetric or Mirror point
// with the leading one.
func (ap *AnchorPoint) recomputeSmooth() {
	switch ap.Type {
	case Symmetric:
		if !ap.LeftHandle.Valid || !ap.RightHandle.Valid {
			return
		}
		lead, trail := &ap.LeftHandle, &ap.RightHandle
		if ap.leadRight {
			lead, trail = trail, lead
		}
		dirLen := ap.Pos.Distance(lead.Point)
		if nearlyEqual(dirLen, 0) {
			return
		}
		hLen := ap.Pos.Distance(trail.Point)
		*trail = HandleAt(ap.Pos.Translate(ap.Pos.Sub(lead.Point).Mul(hLen / dirLen)))
	case Mirror:
		if ap.leadRight && ap.RightHandle.Valid {
			ap.LeftHandle = HandleAt(ap.RightHandle.Reflect(ap.Pos))
		} else if !ap.leadRight && ap.LeftHandle.Valid {
			ap.RightHandle = HandleAt(ap.LeftHandle.Reflect(ap.Pos))
		}
	}
}

// transformed returns a copy with position and handles mapped through aff.
// Corner lengths are kept as they are.
func (ap AnchorPoint) transformed(aff Affine) AnchorPoint {
	ap.Pos = ap.Pos.Transform(aff)
	ap.LeftHandle = ap.LeftHandle.transform(aff)
	ap.RightHandle = ap.RightHandle.transform(aff)
	return ap
}

// handleToward returns a handle on the segment from pos toward other, at
// HandleCoeff of the distance.
func handleToward(pos, other Point) Point {
	return pos.Lerp(other, HandleCoeff)
}

// circumcenter returns the center of the circle through a, b and c. It
// reports false when the points are collinear or coincide.
func circumcenter(a, b, c Point) (Point, bool) {
	// Intersect the perpendicular bisectors of ab and bc.
	d1 := a.Sub(b)
	d2 := b.Sub(c)
	c1 := -d1.X*(a.X+b.X)/2 - d1.Y*(a.Y+b.Y)/2
	c2 := -d2.X*(b.X+c.X)/2 - d2.Y*(b.Y+c.Y)/2
	det := d1.X*d2.Y - d2.X*d1.Y
	if nearlyEqual(det, 0) {
		return Point{}, false
	}
	return Pt((d1.Y*c2-d2.Y*c1)/det, (c1*d2.X-c2*d1.X)/det), true
}

// tangentDir returns the unit tangent at pos of the circle through pos, near
// and far, oriented toward near. It falls back to the perpendicular of the
// segment to near when the circle does not exist; ok is false then.
func tangentDir(pos, near, far Point) (dir Vec2, ok bool) {
	center, ok := circumcenter(pos, near, far)
	if !ok {
		return Vec2{}, false
	}
	r := center.Sub(pos)
	dir = Vec(-r.Y, r.X).Div(r.Hypot())
	mid := near.Midpoint(far)
	if segmentSide(pos, mid, near) != segmentSide(pos, mid, pos.Translate(dir)) {
		dir = dir.Negate()
	}
	return dir, true
}

// perpendicular returns the offset of a handle perpendicular to the segment
// from pos to other, scaled by HandleCoeff.
func perpendicular(pos, other Point) Vec2 {
	return Vec(pos.Y-other.Y, other.X-pos.X).Mul(HandleCoeff)
}
