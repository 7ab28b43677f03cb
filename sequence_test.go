package vpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchor(x, y float64, typ AnchorType, auto bool) AnchorPoint {
	ap := NewAnchorPoint(Pt(x, y))
	ap.Type = typ
	ap.AutoHandles = auto
	return ap
}

func assertHandle(t *testing.T, want Point, got Handle) {
	t.Helper()
	require.True(t, got.Valid, "handle isn't set, want %s", want)
	assert.InDelta(t, want.X, got.X, 1e-9, "x of %s", got)
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y of %s", got)
}

func TestSequenceNeighbours(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		anchor(1, 0, Asymmetric, false),
		anchor(2, 0, Asymmetric, false),
	)
	_, ok := s.Prev(0)
	assert.False(t, ok)
	_, ok = s.Next(2)
	assert.False(t, ok)
	j, ok := s.Next(0)
	assert.True(t, ok)
	assert.Equal(t, 1, j)

	s.SetClosed(true)
	j, _ = s.Prev(0)
	assert.Equal(t, 2, j)
	j, _ = s.Next(2)
	assert.Equal(t, 0, j)

	single := NewSequence(true, anchor(5, 5, Asymmetric, false))
	j, ok = single.Prev(0)
	assert.True(t, ok)
	assert.Equal(t, 0, j)
	ap, _ := single.prevOf(0)
	assert.Nil(t, ap)

	assert.Panics(t, func() { s.At(3) })
	assert.Panics(t, func() { s.Insert(0, AnchorPoint{Type: AnchorType(-1)}) })
}

func TestSequenceVersion(t *testing.T) {
	s := NewSequence(false, anchor(0, 0, Asymmetric, false), anchor(10, 0, Asymmetric, false))
	v := s.Version()
	s.Update(0, func(ap *AnchorPoint) {})
	assert.Equal(t, v, s.Version(), "no-op update changed the version")

	s.Update(0, func(ap *AnchorPoint) { ap.Pos = Pt(1, 1) })
	assert.Greater(t, s.Version(), v)

	v = s.Version()
	s.SetClosed(false)
	assert.Equal(t, v, s.Version())
	s.SetClosed(true)
	assert.Greater(t, s.Version(), v)

	v = s.Version()
	s.Remove(1)
	assert.Greater(t, s.Version(), v)
	assert.Equal(t, 1, s.Len())
}

func TestSequenceAutoSmooth(t *testing.T) {
	s := NewSequence(false,
		anchor(-10, 0, Asymmetric, false),
		anchor(0, 10, Symmetric, true),
		anchor(10, 0, Asymmetric, false),
	)
	// The handles are tangent to the circle around the origin.
	ap := s.At(1)
	l := 10 * math.Sqrt2 * HandleCoeff
	assertHandle(t, Pt(-l, 10), ap.LeftHandle)
	assertHandle(t, Pt(l, 10), ap.RightHandle)

	// Removing a neighbour falls back to handles toward the other one.
	s.Remove(2)
	ap = s.At(1)
	h := Pt(0, 10).Lerp(Pt(-10, 0), HandleCoeff)
	assertHandle(t, h, ap.LeftHandle)
	assertHandle(t, h.Reflect(Pt(0, 10)), ap.RightHandle)
}

func TestSequenceAutoSmoothCollinear(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		anchor(10, 0, Mirror, true),
		anchor(30, 0, Asymmetric, false),
	)
	ap := s.At(1)
	assertHandle(t, Pt(10-10*HandleCoeff, 0), ap.LeftHandle)
	assertHandle(t, Pt(10+20*HandleCoeff, 0), ap.RightHandle)

	// Neighbours on top of each other: the handles stand up.
	s.Update(2, func(ap *AnchorPoint) { ap.Pos = Pt(0, 0) })
	ap = s.At(1)
	assertCollinear(t, ap)
	assert.InDelta(t, 10, ap.LeftHandle.X, 1e-9)
	assert.InDelta(t, 10, ap.RightHandle.X, 1e-9)

	// All three points coincide.
	s.Update(1, func(ap *AnchorPoint) { ap.Pos = Pt(0, 0) })
	ap = s.At(1)
	assert.False(t, ap.LeftHandle.Valid)
	assert.False(t, ap.RightHandle.Valid)
}

func TestSequenceSmoothInvariant(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		anchor(10, 0, Symmetric, false),
		anchor(20, 0, Asymmetric, false),
	)
	s.Update(1, func(ap *AnchorPoint) {
		ap.LeftHandle = HandleAt(Pt(5, -5))
		ap.RightHandle = HandleAt(Pt(20, 20))
	})
	assertCollinear(t, s.At(1))

	s.Update(1, func(ap *AnchorPoint) { ap.RightHandle = HandleAt(Pt(10, 3)) })
	assertCollinear(t, s.At(1))
	lead := s.At(1)
	assert.True(t, lead.LeadingRight())

	s.Update(1, func(ap *AnchorPoint) { ap.Type = Mirror })
	ap := s.At(1)
	assertHandle(t, Pt(10, -3), ap.LeftHandle)

	s.Update(1, func(ap *AnchorPoint) { ap.LeftCorner = 2 })
	assert.Equal(t, 2.0, s.At(1).RightCorner)
}

func TestSequenceConnector(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		anchor(10, 0, Connector, true),
	)
	ap := s.At(1)
	assert.False(t, ap.LeftHandle.Valid)
	assert.False(t, ap.RightHandle.Valid)

	// A smooth point after the connector continues the straight segment.
	s.Append(anchor(20, 10, Symmetric, false))
	ap = s.At(1)
	assertHandle(t, Pt(10+math.Sqrt(200)*HandleCoeff, 0), ap.RightHandle)
	assert.False(t, ap.LeftHandle.Valid)

	s.Update(2, func(ap *AnchorPoint) { ap.Type = Asymmetric })
	assert.False(t, s.At(1).RightHandle.Valid)
}

func TestSequenceConnectorRotates(t *testing.T) {
	first := anchor(0, 0, Asymmetric, false)
	first.RightHandle = HandleAt(Pt(3, 3))
	s := NewSequence(false, first, anchor(10, 0, Connector, false))
	// The connector picks up a handle toward the curved segment.
	assertHandle(t, Pt(10-10*HandleCoeff, 0), s.At(1).LeftHandle)

	s.Append(anchor(20, 0, Asymmetric, false))
	assertHandle(t, Pt(10-10*HandleCoeff, 0), s.At(1).LeftHandle)

	// Moving the far neighbour rotates the handle, keeping its length.
	s.Update(2, func(ap *AnchorPoint) { ap.Pos = Pt(10, 10) })
	assertHandle(t, Pt(10, -10*HandleCoeff), s.At(1).LeftHandle)
}

func TestSequenceAutoNextToSmooth(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		anchor(10, 0, Symmetric, false),
		anchor(20, 0, Asymmetric, true),
	)
	assertHandle(t, Pt(20-10*HandleCoeff, 0), s.At(2).LeftHandle)
	assert.False(t, s.At(2).RightHandle.Valid)

	s.Update(1, func(ap *AnchorPoint) { ap.Type = Asymmetric })
	assert.False(t, s.At(2).LeftHandle.Valid)
}

func TestSequenceSetClosed(t *testing.T) {
	s := NewSequence(false,
		anchor(0, 0, Symmetric, true),
		anchor(10, 0, Asymmetric, false),
		anchor(5, 10, Asymmetric, false),
	)
	before := s.At(0)
	h := Pt(0, 0).Lerp(Pt(10, 0), HandleCoeff)
	assertHandle(t, h, before.RightHandle)

	s.SetClosed(true)
	after := s.At(0)
	assert.NotEqual(t, before.LeftHandle, after.LeftHandle)
	assertCollinear(t, after)
}

func TestSequenceShoulders(t *testing.T) {
	corner := anchor(10, 0, Bevel, false)
	corner.LeftCorner = 2
	s := NewSequence(false,
		anchor(0, 0, Asymmetric, false),
		corner,
		anchor(10, 10, Asymmetric, false),
	)
	require.Equal(t, 2.0, s.At(1).RightCorner)

	pt, ok := s.LeftShoulder(1)
	require.True(t, ok)
	assert.Equal(t, Pt(8, 0), pt)
	pt, ok = s.RightShoulder(1)
	require.True(t, ok)
	assert.Equal(t, Pt(10, 2), pt)

	pt, ok = s.LeftShoulderLimit(1)
	require.True(t, ok)
	assert.Equal(t, Pt(0, 0), pt)
	pt, ok = s.RightShoulderLimit(1)
	require.True(t, ok)
	assert.Equal(t, Pt(10, 10), pt)

	_, ok = s.LeftShoulder(0)
	assert.False(t, ok)
	_, ok = s.RightShoulder(2)
	assert.False(t, ok)
	_, ok = s.LeftShoulderLimit(0)
	assert.False(t, ok)
}

func TestSequenceAll(t *testing.T) {
	s := NewSequence(false, anchor(0, 0, Asymmetric, false), anchor(1, 2, Asymmetric, false))
	var got []Point
	for i, ap := range s.All() {
		assert.Equal(t, len(got), i)
		got = append(got, ap.Pos)
	}
	assert.Equal(t, []Point{Pt(0, 0), Pt(1, 2)}, got)
}
