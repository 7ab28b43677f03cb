package vpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Markers of the optional triplets in the anchor stream encoding.
const (
	markLeftHandle  = "h"
	markRightHandle = "H"
	markCorners     = "C"
)

// DecodeError describes a malformed anchor stream.
type DecodeError struct {
	// Index is the position of the offending element in the stream.
	Index  int
	Reason string
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("malformed anchor stream at element %d: %s", err.Index, err.Reason)
}

// Encode returns the compact stream encoding of the point:
//
//	[tag] [true] x y ["h" lx ly] ["H" rx ry] ["C" lc rc]
//
// The type tag is omitted for Asymmetric points and the boolean is only
// present for automatic handles. Handles are omitted when they are absent or
// automatic, since those are derived from the neighbours. Corner lengths are
// omitted when both are zero.
func (ap AnchorPoint) Encode() []any {
	out := make([]any, 0, 13)
	if ap.Type != Asymmetric {
		out = append(out, ap.Type.Tag())
	}
	if ap.AutoHandles {
		out = append(out, true)
	}
	out = append(out, ap.Pos.X, ap.Pos.Y)
	if !ap.AutoHandles {
		if h := ap.LeftHandle; h.Valid {
			out = append(out, markLeftHandle, h.X, h.Y)
		}
		if h := ap.RightHandle; h.Valid {
			out = append(out, markRightHandle, h.X, h.Y)
		}
	}
	if math.Abs(ap.LeftCorner) > Epsilon || math.Abs(ap.RightCorner) > Epsilon {
		out = append(out, markCorners, ap.LeftCorner, ap.RightCorner)
	}
	return out
}

// DecodeAnchorPoint is the inverse of [AnchorPoint.Encode]. Numbers may be
// given as any Go integer or float type or as [json.Number].
//
// Corners are uniform exactly when the decoded lengths are equal. Automatic
// handles are left unset until the point is added to a [Sequence].
func DecodeAnchorPoint(stream []any) (AnchorPoint, error) {
	ap := AnchorPoint{UniformCorners: true}
	i := 0
	if i < len(stream) {
		if tag, ok := stream[i].(string); ok {
			typ, ok := ParseAnchorType(tag)
			if !ok {
				return AnchorPoint{}, &DecodeError{i, fmt.Sprintf("unknown anchor type %q", tag)}
			}
			ap.Type = typ
			i++
		}
	}
	if i < len(stream) {
		if auto, ok := stream[i].(bool); ok {
			ap.AutoHandles = auto
			i++
		}
	}

	var err error
	num := func() float64 {
		if err != nil {
			return 0
		}
		if i >= len(stream) {
			err = &DecodeError{i, "unexpected end of stream"}
			return 0
		}
		var f float64
		f, err = toFloat(stream[i])
		if err != nil {
			err = &DecodeError{i, err.Error()}
		}
		i++
		return f
	}

	ap.Pos.X = num()
	ap.Pos.Y = num()
	for err == nil && i < len(stream) {
		mark, ok := stream[i].(string)
		if !ok {
			return AnchorPoint{}, &DecodeError{i, fmt.Sprintf("expected marker, got %T", stream[i])}
		}
		at := i
		i++
		switch mark {
		case markLeftHandle:
			ap.LeftHandle = HandleAt(Pt(num(), num()))
		case markRightHandle:
			ap.RightHandle = HandleAt(Pt(num(), num()))
		case markCorners:
			ap.LeftCorner = num()
			ap.RightCorner = num()
			ap.UniformCorners = ap.LeftCorner == ap.RightCorner
		default:
			return AnchorPoint{}, &DecodeError{at, fmt.Sprintf("unknown marker %q", mark)}
		}
	}
	if err != nil {
		return AnchorPoint{}, err
	}
	if ap.AutoHandles {
		ap.LeftHandle = Handle{}
		ap.RightHandle = Handle{}
	}
	return ap, nil
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return strconv.ParseFloat(string(v), 64)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func (ap AnchorPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(ap.Encode())
}

func (ap *AnchorPoint) UnmarshalJSON(data []byte) error {
	var stream []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&stream); err != nil {
		return err
	}
	out, err := DecodeAnchorPoint(stream)
	if err != nil {
		return err
	}
	*ap = out
	return nil
}

type sequenceJSON struct {
	Closed bool          `json:"closed,omitempty"`
	Points []AnchorPoint `json:"points"`
}

// MarshalJSON encodes the sequence as an object holding the closed flag and
// the stream encodings of its points.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	pts := s.pts
	if pts == nil {
		pts = []AnchorPoint{}
	}
	return json.Marshal(sequenceJSON{Closed: s.closed, Points: pts})
}

// UnmarshalJSON replaces the sequence's contents. Automatic handles are
// recomputed as the points are added.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var v sequenceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	version := s.version
	*s = *NewSequence(v.Closed, v.Points...)
	s.version += version + 1
	return nil
}
