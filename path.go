package vpath

var _ VertexSource = (*Path)(nil)

// Path is a sequence of anchor points together with a transform. It is a
// [VertexSource] of the styled vertices, which are generated on demand and
// cached until the sequence or the transform changes.
//
// A Path must not be used concurrently.
type Path struct {
	seq       *Sequence
	transform Affine

	cache        VertexBuffer
	cacheValid   bool
	cacheVersion uint64
	cacheAff     Affine
}

// NewPath returns a path over seq. If seq is nil, the path starts out empty
// and open.
func NewPath(seq *Sequence) *Path {
	if seq == nil {
		seq = &Sequence{}
	}
	return &Path{
		seq:       seq,
		transform: Identity,
	}
}

// Sequence returns the path's anchor points. Changes made through it are
// picked up by the next Rewind.
func (p *Path) Sequence() *Sequence { return p.seq }

func (p *Path) Transform() Affine { return p.transform }

func (p *Path) SetTransform(aff Affine) { p.transform = aff }

// Rewind implements VertexSource. Rewinding regenerates the vertices if the
// sequence or the transform changed since they were last generated.
func (p *Path) Rewind(index int) bool {
	p.refresh()
	return p.cache.Rewind(index)
}

// ReadNext implements VertexSource.
func (p *Path) ReadNext(v *Vertex) bool {
	return p.cache.ReadNext(v)
}

func (p *Path) refresh() {
	version := p.seq.Version()
	if p.cacheValid && p.cacheVersion == version && p.cacheAff == p.transform {
		return
	}
	// Start from a fresh buffer; readers may still hold the old slice.
	p.cache = VertexBuffer{}
	generate(&p.cache, p.seq, p.transform, true)
	p.cacheValid = true
	p.cacheVersion = version
	p.cacheAff = p.transform
	Logger().Debug("regenerated path vertices",
		"anchors", p.seq.Len(),
		"vertices", p.cache.Len(),
		"version", version)
}

// HitTest tests pt, given in the path's transformed space, against the
// styled outline the path yields as a vertex source. Cut corners are not part
// of the outline.
func (p *Path) HitTest(pt Point, opts HitOptions) (HitResult, bool, error) {
	return HitTest(pt, p, opts)
}

// Bounds returns the bounding box of the styled, transformed path. It
// reports false for a path without anchor points.
func (p *Path) Bounds(exact bool) (Rect, bool, error) {
	return Bounds(p, exact)
}
