// Package slicesyntax parses a compact per-dimension range string into
// layout.SliceRange values, for call sites that want a string DSL instead
// of constructing SliceRange values by hand. One dimension's syntax is one
// of:
//
//	"2"     a single forward index
//	"-1"    a single reverse index (from the end)
//	"1:3"   [1, 3)
//	":2"    [0, 2)
//	"1:"    [1, end)
//	":"     the whole dimension (layout.Full())
//
// Dimensions are separated by commas: "1:3,:2,-1:".
package slicesyntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itohio/tensorgraph/layout"
)

// ErrBadSyntax reports a dimension range string that could not be parsed.
type ErrBadSyntax struct {
	Dim  int
	Text string
}

func (e *ErrBadSyntax) Error() string {
	return fmt.Sprintf("slicesyntax: dimension %d: invalid range %q", e.Dim, e.Text)
}

// Parse splits s on commas and parses each field as one dimension's range.
func Parse(s string) ([]layout.SliceRange, error) {
	fields := strings.Split(s, ",")
	ranges := make([]layout.SliceRange, len(fields))
	for i, f := range fields {
		r, err := parseDim(i, strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ranges[i] = r
	}
	return ranges, nil
}

func parseDim(dim int, f string) (layout.SliceRange, error) {
	if f == ":" {
		return layout.Full(), nil
	}

	if !strings.Contains(f, ":") {
		idx, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return layout.SliceRange{}, &ErrBadSyntax{Dim: dim, Text: f}
		}
		return singleIndex(int32(idx)), nil
	}

	parts := strings.SplitN(f, ":", 2)
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	switch {
	case start == "" && end == "":
		return layout.Full(), nil
	case start == "":
		e, err := parseInt32(end)
		if err != nil {
			return layout.SliceRange{}, &ErrBadSyntax{Dim: dim, Text: f}
		}
		return layout.To(e), nil
	case end == "":
		s, err := parseInt32(start)
		if err != nil {
			return layout.SliceRange{}, &ErrBadSyntax{Dim: dim, Text: f}
		}
		return layout.From(s), nil
	default:
		s, err1 := parseInt32(start)
		e, err2 := parseInt32(end)
		if err1 != nil || err2 != nil {
			return layout.SliceRange{}, &ErrBadSyntax{Dim: dim, Text: f}
		}
		return layout.RangeOf(s, e), nil
	}
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

// singleIndex builds the one-element SliceRange for a bare index, forward
// or reverse. idx == -1 (the last element) needs layout.From, since the
// "one past" reverse bound would otherwise have to express reverse
// magnitude 0, which collides with the forward-index zero bound; every
// other case is a plain [idx, idx+1).
func singleIndex(idx int32) layout.SliceRange {
	if idx == -1 {
		return layout.From(idx)
	}
	return layout.RangeOf(idx, idx+1)
}
