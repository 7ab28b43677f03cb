package vpath

import "math"

// maxDegree is the highest polynomial degree the hit tester deals with: the
// squared distance between a point and a cubic Bézier.
const maxDegree = 6

// poly is a polynomial of degree at most maxDegree, stored as
// c[0] + c[1] x + ... + c[n] xⁿ.
type poly struct {
	c [maxDegree + 1]float64
	n int
}

func newPoly(cs ...float64) poly {
	if len(cs) == 0 || len(cs) > maxDegree+1 {
		panic("unsupported polynomial degree")
	}
	var p poly
	copy(p.c[:], cs)
	p.n = len(cs) - 1
	return p
}

func (p poly) coeffs() []float64 { return p.c[:p.n+1] }

func (p poly) lead() float64 { return p.c[p.n] }

func (p poly) eval(x float64) float64 {
	v := p.c[p.n]
	for i := p.n - 1; i >= 0; i-- {
		v = v*x + p.c[i]
	}
	return v
}

func (p poly) deriv() poly {
	if p.n == 0 {
		return poly{}
	}
	var d poly
	d.n = p.n - 1
	for i := 1; i <= p.n; i++ {
		d.c[i-1] = float64(i) * p.c[i]
	}
	return d
}

func (p poly) add(o poly) poly {
	out := p
	out.n = max(p.n, o.n)
	for i := 0; i <= o.n; i++ {
		out.c[i] += o.c[i]
	}
	return out
}

func (p poly) mul(o poly) poly {
	if p.n+o.n > maxDegree {
		panic("unsupported polynomial degree")
	}
	var out poly
	out.n = p.n + o.n
	for i := 0; i <= p.n; i++ {
		for j := 0; j <= o.n; j++ {
			out.c[i+j] += p.c[i] * o.c[j]
		}
	}
	return out
}

func (p poly) scaleBy(f float64) poly {
	for i := 0; i <= p.n; i++ {
		p.c[i] *= f
	}
	return p
}

// shift returns q with q(x) = p(x + s).
func (p poly) shift(s float64) poly {
	// Repeated synthetic division (Taylor shift).
	q := p
	for i := 0; i < q.n; i++ {
		for j := q.n - 1; j >= i; j-- {
			q.c[j] += s * q.c[j+1]
		}
	}
	return q
}

// stretch returns q with q(x) = p(kx).
func (p poly) stretch(k float64) poly {
	f := 1.0
	for i := 1; i <= p.n; i++ {
		f *= k
		p.c[i] *= f
	}
	return p
}

// reverse returns xⁿ p(1/x).
func (p poly) reverse() poly {
	q := p
	for i := 0; i <= p.n; i++ {
		q.c[i] = p.c[p.n-i]
	}
	return q
}

// signChanges counts the sign changes in the coefficient sequence, ignoring
// zeros.
func (p poly) signChanges() int {
	var n int
	var last float64
	for _, c := range p.coeffs() {
		if c == 0 {
			continue
		}
		if last != 0 && (c > 0) != (last > 0) {
			n++
		}
		last = c
	}
	return n
}

// descartes bounds the number of roots of p in the open interval (a, b).
//
// The interval is mapped onto (0, ∞) with x = a + (b−a)/(1+y) and Descartes'
// rule of signs is applied to the result. The bound is exact when it is 0 or
// 1, and has the parity of the true count otherwise.
func (p poly) descartes(a, b float64) int {
	q := p.shift(a).stretch(b - a).reverse().shift(1)
	return q.signChanges()
}

// trim lowers the degree past leading coefficients that are negligible
// relative to scale.
func (p poly) trim(scale float64) poly {
	tol := scale * 1e-12
	for p.n > 0 && math.Abs(p.c[p.n]) <= tol {
		p.c[p.n] = 0
		p.n--
	}
	return p
}

func (p poly) maxAbs() float64 {
	var m float64
	for _, c := range p.coeffs() {
		m = max(m, math.Abs(c))
	}
	return m
}

// normalize scales p by a positive constant so that its largest
// coefficient has magnitude 1. Signs, and thus roots, are unchanged.
func (p poly) normalize() poly {
	if m := p.maxAbs(); m > 0 {
		return p.scaleBy(1 / m)
	}
	return p
}

// prem computes the pseudo-remainder of a by b, that is the remainder of
// lc(b)^(deg a − deg b + 1) · a divided by b. The second result is the factor
// lc(b)^(deg a − deg b + 1). Leading coefficients of the remainder that
// vanish relative to the inputs are dropped.
func prem(a, b poly) (poly, float64) {
	if b.n > a.n {
		return a, 1
	}
	lb := b.lead()
	factor := math.Pow(lb, float64(a.n-b.n+1))
	if b.n == 0 {
		return poly{}, factor
	}
	r := a
	for j := a.n; j >= b.n; j-- {
		lr := r.c[j]
		shift := j - b.n
		for i := 0; i <= j; i++ {
			r.c[i] *= lb
		}
		for i := 0; i <= b.n; i++ {
			r.c[i+shift] -= lr * b.c[i]
		}
	}
	for i := b.n; i <= a.n; i++ {
		r.c[i] = 0
	}
	r.n = b.n - 1
	return r.trim(max(math.Abs(factor)*a.maxAbs(), b.maxAbs())), factor
}

// sturmSeq is a generalized Sturm sequence built from pseudo-remainders.
// Every member is normalized and has its sign corrected, so that it is a
// positive multiple of the negated remainder of its two predecessors. Sign
// variations then count distinct real roots.
type sturmSeq struct {
	p [maxDegree + 1]poly
	n int
}

func newSturmSeq(f poly) sturmSeq {
	f = f.trim(f.maxAbs())
	var s sturmSeq
	s.p[0] = f.normalize()
	s.p[1] = f.deriv().normalize()
	s.n = 2
	for s.n <= maxDegree && s.p[s.n-1].n > 0 {
		a, b := s.p[s.n-2], s.p[s.n-1]
		r, factor := prem(a, b)
		// Both inputs are normalized, so this is relative to the terms that
		// made up r.
		if r.maxAbs() <= 1e-12*max(math.Abs(factor)*a.maxAbs(), b.maxAbs()) {
			break
		}
		// rem(a, b) = r / factor, and the next member is −rem(a, b).
		r = r.normalize()
		if factor > 0 {
			r = r.scaleBy(-1)
		}
		s.p[s.n] = r
		s.n++
	}
	return s
}

// variations counts the sign changes of the sequence evaluated at x.
func (s *sturmSeq) variations(x float64) int {
	var n int
	var last float64
	for i := range s.n {
		v := s.p[i].eval(x)
		if v == 0 {
			continue
		}
		if last != 0 && (v > 0) != (last > 0) {
			n++
		}
		last = v
	}
	return n
}

// count returns the number of distinct real roots in (a, b].
func (s *sturmSeq) count(a, b float64) int {
	return abs(s.variations(a) - s.variations(b))
}

// isolate appends intervals to out that each contain exactly one of the n
// roots in (a, b], bisecting as needed.
func (s *sturmSeq) isolate(a, b float64, n int, out [][2]float64) [][2]float64 {
	return s.isolateDepth(a, b, n, out, 0)
}

func (s *sturmSeq) isolateDepth(a, b float64, n int, out [][2]float64, depth int) [][2]float64 {
	switch {
	case n <= 0:
		return out
	case n == 1:
		return append(out, [2]float64{a, b})
	case depth >= 52:
		// Roots closer than the float resolution; treat them as one.
		return append(out, [2]float64{a, b})
	}
	mid := 0.5 * (a + b)
	n1 := s.count(a, mid)
	out = s.isolateDepth(a, mid, n1, out, depth+1)
	return s.isolateDepth(mid, b, n-n1, out, depth+1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// newtonRoot refines the root of f that is known to be the only one in
// [a, b]. It reports false if Newton's method left the interval and no
// bracket was available to fall back on; the midpoint is returned then.
func newtonRoot(f, df poly, a, b float64, cfg *Config) (float64, bool) {
	fa, fb := f.eval(a), f.eval(b)
	switch {
	case math.Abs(fa) <= Epsilon:
		return a, true
	case math.Abs(fb) <= Epsilon:
		return b, true
	}

	// Start from the end at which f and f'' agree in sign, which guarantees
	// monotone convergence for a simple root.
	d2f := df.deriv()
	x := 0.5 * (a + b)
	if fa*d2f.eval(a) > 0 {
		x = a
	} else if fb*d2f.eval(b) > 0 {
		x = b
	}

	for range cfg.NewtonMaxIter {
		fx := f.eval(x)
		if fx == 0 {
			return x, true
		}
		d := df.eval(x)
		if math.Abs(d) <= Epsilon {
			break
		}
		next := x - fx/d
		if next < a || next > b || math.IsNaN(next) {
			break
		}
		if math.Abs(next-x) <= cfg.Accuracy*1e-3 {
			return next, true
		}
		x = next
	}

	if (fa < 0) != (fb < 0) {
		Logger().Debug("newton did not converge, bracketing instead", "a", a, "b", b)
		g := f.eval
		ya, yb := fa, fb
		if fa > 0 {
			g = func(x float64) float64 { return -f.eval(x) }
			ya, yb = -fa, -fb
		}
		return SolveITP(g, a, b, cfg.Accuracy*1e-3, 1, 0.2/(b-a), ya, yb), true
	}
	Logger().Debug("newton did not converge", "a", a, "b", b)
	return 0.5 * (a + b), false
}
