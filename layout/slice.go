package layout

import "fmt"

// boundKind tags which form a SliceRange endpoint takes.
type boundKind uint8

const (
	boundBeginning boundKind = iota
	boundIndex
	boundReverseIndex
	boundEnd
)

type bound struct {
	kind  boundKind
	index int32 // meaningful for boundIndex / boundReverseIndex
}

// SliceRange describes one dimension's slice request: a start bound and an
// end bound, each either the dimension boundary, a forward index, or a
// reverse (negative) index resolved against the dimension's extent.
//
// SliceRange is constructed programmatically by callers (Full, RangeOf,
// From, To); parsing a human-typed range syntax such as "1:3" is the job of
// the slicesyntax package, which sits outside the core and builds
// SliceRange values from strings.
type SliceRange struct {
	start, end bound
}

// Full selects an entire dimension unchanged.
func Full() SliceRange {
	return SliceRange{start: bound{kind: boundBeginning}, end: bound{kind: boundEnd}}
}

// RangeOf selects [start, end) along a dimension. Negative values are
// resolved from the dimension's extent at slice time (e.g. -1 means
// "one before the end").
func RangeOf(start, end int32) SliceRange {
	return SliceRange{start: indexBound(start), end: indexBound(end)}
}

// From selects [start, dimension end).
func From(start int32) SliceRange {
	return SliceRange{start: indexBound(start), end: bound{kind: boundEnd}}
}

// To selects [0, end).
func To(end int32) SliceRange {
	return SliceRange{start: bound{kind: boundBeginning}, end: indexBound(end)}
}

func indexBound(v int32) bound {
	if v >= 0 {
		return bound{kind: boundIndex, index: v}
	}
	return bound{kind: boundReverseIndex, index: -v}
}

func (b bound) resolveStart(dimSize int32, stride int32, offset *int) int32 {
	switch b.kind {
	case boundBeginning:
		return 0
	case boundIndex:
		*offset += int(b.index) * int(stride)
		return b.index
	case boundReverseIndex:
		idx := dimSize - b.index
		*offset += int(idx) * int(stride)
		return idx
	default:
		panic("layout: start bound cannot be End")
	}
}

func (b bound) resolveEnd(dimSize int32) int32 {
	switch b.kind {
	case boundEnd:
		return dimSize
	case boundIndex:
		return b.index
	case boundReverseIndex:
		return dimSize - b.index
	default:
		panic("layout: end bound cannot be Beginning")
	}
}

// ErrBadSlice reports a slice whose bounds are out of range or empty.
type ErrBadSlice struct {
	Dim        int
	Start, End int32
}

func (e *ErrBadSlice) Error() string {
	return fmt.Sprintf("layout: invalid slice on dim %d: start=%d end=%d", e.Dim, e.Start, e.End)
}

// Slice computes the new shape, stride and offset produced by applying
// ranges (one per leading dimension; trailing dimensions are passed through
// with Full semantics). Stride is unchanged; adj_stride and offset are
// recomputed. Slicing never copies — the result shares the source's
// Storage.
func (l Layout) Slice(ranges []SliceRange) (Layout, error) {
	if len(ranges) > len(l.shape) {
		panic("layout: more slice ranges than dimensions")
	}
	newShape := l.shape.clone()
	offset := l.offset
	for dim, r := range ranges {
		dimSize := l.shape[dim]
		start := r.start.resolveStart(dimSize, l.stride[dim], &offset)
		end := r.end.resolveEnd(dimSize)
		if start >= end {
			return Layout{}, &ErrBadSlice{Dim: dim, Start: start, End: end}
		}
		if start < 0 || end > dimSize {
			return Layout{}, &ErrBadSlice{Dim: dim, Start: start, End: end}
		}
		newShape[dim] = end - start
	}
	return Layout{
		shape:     newShape,
		stride:    append([]int32(nil), l.stride...),
		adjStride: adjacentStride(l.stride, newShape),
		offset:    offset,
		len:       newShape.Size(),
	}, nil
}
