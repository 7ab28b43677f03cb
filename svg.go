package vpath

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts the vertex stream of src to a string of SVG path commands.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(src VertexSource, opts SVGOptions) (string, error) {
	sb := &strings.Builder{}
	err := WriteSVG(sb, src, opts)
	return sb.String(), err
}

// WriteSVG converts the vertex stream of src to a string of SVG path
// commands and writes it to w. Quadratic and cubic primitives map to Q and
// C commands with their control points first.
//
// The output is meant for debugging and tests and makes no attempt at being
// short.
func WriteSVG(w io.Writer, src VertexSource, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(pt Point) string {
		f := func(n float64) string {
			if opts.MaxPrecision <= 0 {
				return strconv.FormatFloat(n, 'f', -1, 64)
			}
			s := strconv.FormatFloat(n, 'f', opts.MaxPrecision, 64)
			s = strings.TrimRight(s, "0")
			return strings.TrimSuffix(s, ".")
		}
		return f(pt.X) + "," + f(pt.Y)
	}

	r := newElementReader(src)
	var el PathElement
	sep := ""
	for r.next(&el) {
		switch el.Kind {
		case MoveCommand:
			writef("%sM%s", sep, format(el.P0))
		case LineCommand:
			writef("%sL%s", sep, format(el.P0))
		case CurveCommand:
			writef("%sQ%s %s", sep, format(el.P0), format(el.P1))
		case Curve2Command:
			writef("%sC%s %s %s", sep, format(el.P0), format(el.P1), format(el.P2))
		case CloseCommand:
			writef("%sZ", sep)
		}
		if err != nil {
			return err
		}
		sep = " "
	}
	if r.err != nil {
		return r.err
	}
	return err
}
