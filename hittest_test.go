package vpath

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTestLine(t *testing.T) {
	src := NewVertexBuffer(mv(0, 0), ln(10, 0))
	tests := []struct {
		width float64
		d     float64
	}{
		{0, 0},
		{0, 0.1},
		{2, 0},
		{2, 0.5},
		{2, 1},
		{2, -1},
		{2, 1.01},
		{1, 0.6},
		{6, -2.9},
	}
	for _, tt := range tests {
		res, ok, err := HitTest(Pt(5, tt.d), src, HitOptions{OutlineWidth: tt.width})
		require.NoError(t, err)
		want := math.Abs(tt.d) <= tt.width/2
		if !assert.Equal(t, want, ok, "width %g, offset %g", tt.width, tt.d) || !ok {
			continue
		}
		assert.Equal(t, HitResult{Segment: 1, X: 5, Y: 0, Slope: 0.5, Outline: true}, res)
	}
}

func TestHitTestEndsAreExact(t *testing.T) {
	src := NewVertexBuffer(
		mv(-10, 0),
		ln(0, 0),
		cv(10, 0), cv(0, 10), cv(10, 10),
	)
	res, ok, err := HitTest(Pt(10, 0), src, HitOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, HitResult{Segment: 2, X: 10, Y: 0, Slope: 1, Outline: true}, res)

	// The shared point belongs to the first segment that reaches it.
	res, ok, err = HitTest(Pt(0, 0), src, HitOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, HitResult{Segment: 1, X: 0, Y: 0, Slope: 1, Outline: true}, res)

	res, ok, err = HitTest(Pt(0.1, 0), NewVertexBuffer(mv(0, 0), cv(10, 0), cv(0, 10), cv(10, 10)), HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, HitResult{Segment: 1, X: 0, Y: 0, Slope: 0, Outline: true}, res)
}

func TestHitTestCubic(t *testing.T) {
	src := NewVertexBuffer(mv(0, 0), cv(10, 0), cv(0, 10), cv(10, 10))

	// 0.2 away from c(0.3) = (2.16, 6.3), along the normal.
	res, ok, err := HitTest(Pt(2.0220689655172412, 6.4448275862068956), src, HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, res.Segment)
	assert.InDelta(t, 0.3, res.Slope, 1e-5)
	assert.InDelta(t, 2.16, res.X, 1e-5)
	assert.InDelta(t, 6.3, res.Y, 1e-5)

	// The top of the arch is a split point of the curve.
	res, ok, err = HitTest(Pt(5, 7.5), src, HitOptions{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.5, res.Slope)

	res, ok, err = HitTest(Pt(5, 7.6), src, HitOptions{OutlineWidth: 0.4})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.5, res.Slope, 1e-6)
	assert.InDelta(t, 7.5, res.Y, 1e-9)

	for _, pt := range []Point{Pt(5, 7.8), Pt(5, 20), Pt(5, 5), Pt(-1, 5)} {
		_, ok, err = HitTest(pt, src, HitOptions{OutlineWidth: 0.4})
		require.NoError(t, err)
		assert.False(t, ok, "%s", pt)
	}
}

// cubicSource returns a stream holding just c.
func cubicSource(c CubicBez) VertexSource {
	return NewVertexBuffer(
		mv(c.P0.X, c.P0.Y),
		cv(c.P3.X, c.P3.Y), cv(c.P1.X, c.P1.Y), cv(c.P2.X, c.P2.Y),
	)
}

// sampledDistance returns the smallest distance between pt and n+1 evenly
// spaced points of c.
func sampledDistance(c CubicBez, pt Point, n int) float64 {
	best := math.Inf(1)
	for i := range n + 1 {
		best = min(best, c.Eval(float64(i)/float64(n)).Distance(pt))
	}
	return best
}

func TestHitTestCubicStroke(t *testing.T) {
	// Points near the middle of a stroke of width 4 that a truncated Sturm
	// chain used to miss.
	tests := []struct {
		c  CubicBez
		pt Point
	}{
		{
			CubicBez{
				Pt(50.22592203457993, 88.95318555260897),
				Pt(82.97260266397039, 23.515302457869513),
				Pt(14.569214999738932, 98.0746169693825),
				Pt(35.97402703285376, 13.049232593032912),
			},
			Pt(39.46332124221859, 55.11411253140287),
		},
		{
			CubicBez{
				Pt(96.37728470871569, 10.92332317619833),
				Pt(17.25548017445445, 80.26585179977128),
				Pt(77.30224821400341, 40.339066048283044),
				Pt(13.215295900244273, 80.21146032655454),
			},
			Pt(48.67571081080485, 57.7631385716407),
		},
	}
	for _, tt := range tests {
		res, ok, err := HitTest(tt.pt, cubicSource(tt.c), HitOptions{OutlineWidth: 4})
		require.NoError(t, err)
		if assert.True(t, ok, "%v at %s", tt.c, tt.pt) {
			got := Pt(res.X, res.Y)
			sampled := sampledDistance(tt.c, tt.pt, 2000)
			assert.LessOrEqual(t, got.Distance(tt.pt), sampled+1e-9)
			assert.InDelta(t, sampled, got.Distance(tt.pt), 0.02)
			assertNear(t, tt.c.Eval(res.Slope), got, 1e-9)
		}
	}
}

func TestHitTestCubicSampled(t *testing.T) {
	const (
		halfWidth = 2.0
		samples   = 2000
	)
	rng := rand.New(rand.NewPCG(1, 2))
	coord := func() float64 { return rng.Float64() * 100 }
	n := 2000
	if testing.Short() {
		n = 200
	}
	for range n {
		c := CubicBez{Pt(coord(), coord()), Pt(coord(), coord()), Pt(coord(), coord()), Pt(coord(), coord())}
		on := c.Eval(rng.Float64())
		pt := Pt(on.X+rng.Float64()*6-3, on.Y+rng.Float64()*6-3)
		d := sampledDistance(c, pt, samples)

		_, ok, err := HitTest(pt, cubicSource(c), HitOptions{OutlineWidth: 2 * halfWidth})
		require.NoError(t, err)
		switch {
		case d < 0.98*halfWidth:
			assert.True(t, ok, "%v at %s is %g away", c, pt, d)
		case d > 1.02*halfWidth:
			assert.False(t, ok, "%v at %s is %g away", c, pt, d)
		}
	}
}

func TestHitTestQuad(t *testing.T) {
	src := NewVertexBuffer(mv(0, 0), qv(10, 0), qv(5, 10))
	res, ok, err := HitTest(Pt(5, 5.2), src, HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.5, res.Slope, 1e-9)
	assert.InDelta(t, 5, res.X, 1e-9)
	assert.InDelta(t, 5, res.Y, 1e-9)

	_, ok, err = HitTest(Pt(5, 6), src, HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	// A quadratic with its control point on the chord is a line.
	src = NewVertexBuffer(mv(0, 0), qv(10, 0), qv(5, 0))
	res, ok, err = HitTest(Pt(2, 0.1), src, HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.2, res.Slope, 1e-12)
}

func TestHitTestArea(t *testing.T) {
	ccw := GenerateVertices(square(), Identity, false)
	cw := NewVertexBuffer(mv(0, 0), ln(0, 10), ln(10, 10), ln(10, 0), ln(0, 0), closeVertex)

	tests := []struct {
		src    VertexSource
		orient Orientation
		pt     Point
		want   bool
	}{
		{ccw, AnyOrientation, Pt(5, 5), true},
		{ccw, CounterClockwise, Pt(5, 5), true},
		// Only the path's own orientation fills it.
		{ccw, Clockwise, Pt(5, 5), false},
		{cw, AnyOrientation, Pt(5, 5), true},
		{cw, Clockwise, Pt(5, 5), true},
		{cw, CounterClockwise, Pt(5, 5), false},
		{ccw, AnyOrientation, Pt(15, 5), false},
		{cw, AnyOrientation, Pt(15, 5), false},
		{ccw, AnyOrientation, Pt(-5, -5), false},
	}
	for _, tt := range tests {
		res, ok, err := HitTest(tt.pt, tt.src, HitOptions{Area: true, Orientation: tt.orient})
		require.NoError(t, err)
		if assert.Equal(t, tt.want, ok, "%s with orientation %d", tt.pt, tt.orient) && ok {
			assert.Equal(t, HitResult{X: tt.pt.X, Y: tt.pt.Y}, res)
		}
	}

	// Without Area, the inside of the square is a miss.
	_, ok, err := HitTest(Pt(5, 5), ccw, HitOptions{})
	require.NoError(t, err)
	assert.False(t, ok)

	// The outline wins over the fill.
	res, ok, err := HitTest(Pt(5, 0.5), ccw, HitOptions{OutlineWidth: 2, Area: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, res.Outline)
	assert.Equal(t, 1, res.Segment)
}

func TestHitTestAreaCurved(t *testing.T) {
	// Auto-smooth points on a circle of radius 10 around the origin.
	circle := NewSequence(true,
		anchor(10, 0, Symmetric, true),
		anchor(0, 10, Symmetric, true),
		anchor(-10, 0, Symmetric, true),
		anchor(0, -10, Symmetric, true),
	)
	src := GenerateVertices(circle, Identity, false)
	inside := []Point{Pt(0, 0), Pt(3, 0), Pt(9.5, 0), Pt(5, 5), Pt(7, 7), Pt(0, 9.9), Pt(-3, -4)}
	outside := []Point{Pt(7.2, 7.2), Pt(20, 0), Pt(0, 10.1), Pt(15, 15)}
	for _, pt := range inside {
		_, ok, err := HitTest(pt, src, HitOptions{Area: true, Orientation: CounterClockwise})
		require.NoError(t, err)
		assert.True(t, ok, "%s should be inside", pt)
	}
	for _, pt := range outside {
		_, ok, err := HitTest(pt, src, HitOptions{Area: true})
		require.NoError(t, err)
		assert.False(t, ok, "%s should be outside", pt)
	}

	// A D shape made of a line and a quadratic, drawn clockwise.
	d := NewVertexBuffer(mv(0, 0), ln(0, 10), qv(0, 0), qv(10, 5), closeVertex)
	for pt, want := range map[Point]bool{Pt(2, 5): true, Pt(6, 5): false, Pt(-1, 5): false} {
		_, ok, err := HitTest(pt, d, HitOptions{Area: true, Orientation: Clockwise})
		require.NoError(t, err)
		assert.Equal(t, want, ok, "%s", pt)
	}
}

func TestHitTestCloseSegment(t *testing.T) {
	// The closing segment from (0, 10) back to the start is tested too.
	src := NewVertexBuffer(mv(0, 0), ln(10, 0), ln(0, 10), closeVertex)
	res, ok, err := HitTest(Pt(0, 5), src, HitOptions{OutlineWidth: 1})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, res.Segment)
	assert.InDelta(t, 0.5, res.Slope, 1e-12)
}

func TestHitTestUnknownCommand(t *testing.T) {
	src := NewVertexBuffer(mv(0, 0), ln(10, 0), Vertex{Command: 42})
	_, ok, err := HitTest(Pt(50, 50), src, HitOptions{Area: true})
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	var uerr *UnknownCommandError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, 2, uerr.Index)
}

func TestMayHit(t *testing.T) {
	ctrl := []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	assert.True(t, mayHit(Pt(5, 5), Epsilon, ctrl...))
	assert.True(t, mayHit(Pt(5, -0.5), 1, ctrl...))
	assert.False(t, mayHit(Pt(5, -2), 1, ctrl...))
	// Collinear control points have no area to reject with.
	assert.True(t, mayHit(Pt(5, 5), Epsilon, Pt(0, 0), Pt(1, 0), Pt(2, 0)))
}

func TestConvexHull(t *testing.T) {
	got := convexHull(nil, []Point{Pt(0, 0), Pt(10, 10), Pt(5, 2), Pt(10, 0), Pt(0, 10), Pt(0, 0)})
	diff(t, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}, got)
}
