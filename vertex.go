package vpath

import (
	"errors"
	"fmt"
	"iter"
)

// VertexCommand is the drawing primitive a vertex belongs to.
type VertexCommand int

const (
	// Start a new subpath at the vertex.
	MoveCommand VertexCommand = iota + 1
	// Draw a straight line to the vertex.
	LineCommand
	// Draw a quadratic Bézier. Encoded as the end point followed by the
	// control point.
	CurveCommand
	// Draw a cubic Bézier. Encoded as the end point followed by both control
	// points.
	Curve2Command
	// Close off the subpath. The vertex carries no coordinates.
	CloseCommand
)

func (cmd VertexCommand) String() string {
	switch cmd {
	case MoveCommand:
		return "Move"
	case LineCommand:
		return "Line"
	case CurveCommand:
		return "Curve"
	case Curve2Command:
		return "Curve2"
	case CloseCommand:
		return "Close"
	default:
		return fmt.Sprintf("VertexCommand(%d)", int(cmd))
	}
}

// arity returns the number of vertices that make up one primitive.
func (cmd VertexCommand) arity() int {
	switch cmd {
	case CurveCommand:
		return 2
	case Curve2Command:
		return 3
	default:
		return 1
	}
}

// Vertex is one entry of a vertex stream. Primitives that need several
// points are encoded as consecutive vertices sharing the same command.
type Vertex struct {
	Command VertexCommand
	X, Y    float64
}

func (v Vertex) Point() Point { return Point{v.X, v.Y} }

func (v Vertex) String() string {
	return fmt.Sprintf("%s(%g, %g)", v.Command, v.X, v.Y)
}

// VertexSource is a rewindable, sequential reader of vertices.
type VertexSource interface {
	// Rewind positions the source at the vertex with the given index. It
	// returns false if there is nothing to read from there.
	Rewind(index int) bool
	// ReadNext stores the next vertex in v and advances. It returns false at
	// the end of the stream, leaving v untouched.
	ReadNext(v *Vertex) bool
}

// ErrUnknownCommand is matched by every [*UnknownCommandError].
var ErrUnknownCommand = errors.New("unknown vertex command")

// UnknownCommandError is returned by traversals that encounter a vertex
// whose command is not one of the five known commands.
type UnknownCommandError struct {
	// Index is the position of the offending vertex in the stream.
	Index   int
	Command VertexCommand
}

func (err *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown vertex command %d at vertex %d", int(err.Command), err.Index)
}

func (err *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// VertexBuffer is a VertexSource backed by a slice.
type VertexBuffer struct {
	verts []Vertex
	pos   int
}

// NewVertexBuffer returns a buffer reading verts. The slice is not copied.
func NewVertexBuffer(verts ...Vertex) *VertexBuffer {
	return &VertexBuffer{verts: verts}
}

func (b *VertexBuffer) Len() int { return len(b.verts) }

// Vertices returns the buffer's contents. The slice must not be modified.
func (b *VertexBuffer) Vertices() []Vertex { return b.verts }

func (b *VertexBuffer) Rewind(index int) bool {
	if index < 0 || index >= len(b.verts) {
		b.pos = len(b.verts)
		return false
	}
	b.pos = index
	return true
}

func (b *VertexBuffer) ReadNext(v *Vertex) bool {
	if b.pos >= len(b.verts) {
		return false
	}
	*v = b.verts[b.pos]
	b.pos++
	return true
}

func (b *VertexBuffer) add(cmd VertexCommand, pt Point) {
	b.verts = append(b.verts, Vertex{cmd, pt.X, pt.Y})
}

func (b *VertexBuffer) moveTo(pt Point) { b.add(MoveCommand, pt) }
func (b *VertexBuffer) lineTo(pt Point) { b.add(LineCommand, pt) }
func (b *VertexBuffer) close()          { b.add(CloseCommand, Point{}) }

func (b *VertexBuffer) quadTo(end, ctrl Point) {
	b.add(CurveCommand, end)
	b.add(CurveCommand, ctrl)
}

func (b *VertexBuffer) cubicTo(end, c1, c2 Point) {
	b.add(Curve2Command, end)
	b.add(Curve2Command, c1)
	b.add(Curve2Command, c2)
}

// Vertices returns an iterator over all vertices of src, starting from the
// beginning.
func Vertices(src VertexSource) iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		if !src.Rewind(0) {
			return
		}
		var v Vertex
		for src.ReadNext(&v) {
			if !yield(v) {
				return
			}
		}
	}
}

// PathElement is one decoded primitive of a vertex stream, with its points
// in drawing order: control points first, end point last.
type PathElement struct {
	Kind VertexCommand
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveCommand, LineCommand:
		return fmt.Sprintf("%s(%s)", el.Kind, el.P0)
	case CurveCommand:
		return fmt.Sprintf("%s(%s, %s)", el.Kind, el.P0, el.P1)
	case Curve2Command:
		return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
	case CloseCommand:
		return "Close"
	default:
		return "InvalidPathElement"
	}
}

// End returns the point the element ends at. It is undefined for Close.
func (el PathElement) End() Point {
	switch el.Kind {
	case CurveCommand:
		return el.P1
	case Curve2Command:
		return el.P2
	default:
		return el.P0
	}
}

// elementReader decodes a vertex stream into path elements.
type elementReader struct {
	src VertexSource
	idx int
	err error
}

func newElementReader(src VertexSource) *elementReader {
	r := &elementReader{src: src}
	if !src.Rewind(0) {
		r.idx = -1
	}
	return r
}

// next decodes the next element. It returns false at the end of the stream
// or on error; a truncated trailing primitive is dropped.
func (r *elementReader) next(el *PathElement) bool {
	if r.idx < 0 || r.err != nil {
		return false
	}
	var v Vertex
	if !r.src.ReadNext(&v) {
		return false
	}
	first := r.idx
	r.idx++
	var pts [3]Point
	pts[0] = v.Point()
	switch v.Command {
	case MoveCommand, LineCommand, CloseCommand:
	case CurveCommand, Curve2Command:
		for i := 1; i < v.Command.arity(); i++ {
			var w Vertex
			if !r.src.ReadNext(&w) {
				return false
			}
			r.idx++
			pts[i] = w.Point()
		}
	default:
		r.err = &UnknownCommandError{Index: first, Command: v.Command}
		Logger().Warn("malformed vertex stream", "index", first, "command", int(v.Command))
		return false
	}

	switch v.Command {
	case CurveCommand:
		*el = PathElement{Kind: CurveCommand, P0: pts[1], P1: pts[0]}
	case Curve2Command:
		*el = PathElement{Kind: Curve2Command, P0: pts[1], P1: pts[2], P2: pts[0]}
	default:
		*el = PathElement{Kind: v.Command, P0: pts[0]}
	}
	return true
}

// Elements decodes src into path elements. Decoding stops at the first
// unknown command, and the error is then available from the returned
// function.
func Elements(src VertexSource) (iter.Seq[PathElement], func() error) {
	var r *elementReader
	seq := func(yield func(PathElement) bool) {
		r = newElementReader(src)
		var el PathElement
		for r.next(&el) {
			if !yield(el) {
				return
			}
		}
	}
	errf := func() error {
		if r == nil {
			return nil
		}
		return r.err
	}
	return seq, errf
}
