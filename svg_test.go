package vpath

import (
	"errors"
	"strings"
	"testing"
)

func TestSVG(t *testing.T) {
	tests := []struct {
		name string
		src  VertexSource
		opts SVGOptions
		want string
	}{
		{
			"square",
			GenerateVertices(square(), Identity, true),
			SVGOptions{},
			"M0,0 L10,0 L10,10 L0,10 L0,0 Z",
		},
		{
			"curves",
			NewVertexBuffer(mv(0, 0), qv(10, 0), qv(5, 5), cv(20, 0), cv(12, 1), cv(18, 1)),
			SVGOptions{},
			"M0,0 Q5,5 10,0 C12,1 18,1 20,0",
		},
		{
			"precision",
			NewVertexBuffer(mv(1.23456, 0.5), ln(1.0/3, 2)),
			SVGOptions{MaxPrecision: 2},
			"M1.23,0.5 L0.33,2",
		},
		{
			"empty",
			NewVertexBuffer(),
			SVGOptions{},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SVG(tt.src, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSVGUnknownCommand(t *testing.T) {
	got, err := SVG(NewVertexBuffer(mv(1, 1), Vertex{Command: 12}), SVGOptions{})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("got error %v, want %v", err, ErrUnknownCommand)
	}
	if got != "M1,1" {
		t.Errorf("got %q, want the output up to the error", got)
	}
}

type failingWriter struct{ n int }

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.n == 0 {
		return 0, errWriteFailed
	}
	w.n--
	return len(b), nil
}

func TestWriteSVGWriteError(t *testing.T) {
	w := &failingWriter{n: 1}
	err := WriteSVG(w, NewVertexBuffer(mv(0, 0), ln(1, 0), ln(2, 0)), SVGOptions{})
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("got error %v, want %v", err, errWriteFailed)
	}

	var sb strings.Builder
	if err := WriteSVG(&sb, NewVertexBuffer(mv(0, 0)), SVGOptions{}); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "M0,0" {
		t.Errorf("got %q", sb.String())
	}
}
