// Package tensordata pairs a storage.Storage buffer with a layout.Layout,
// forming the concrete materialized value that flows through the
// computation graph. Two TensorData values may point at the same Storage
// under different Layouts — that is precisely what a view is.
package tensordata

import (
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/storage"
)

// TensorData is the pair (Storage, Layout).
type TensorData struct {
	Storage storage.Storage
	Layout  layout.Layout
}

// New pairs an existing Storage with a Layout.
func New(s storage.Storage, l layout.Layout) TensorData {
	return TensorData{Storage: s, Layout: l}
}

// FromScalar builds a contiguous TensorData of shape filled with v.
func FromScalar(v float64, shape layout.Shape) TensorData {
	l := layout.FromShape(shape, 0)
	return TensorData{Storage: storage.NewScalar(v, l.Len()), Layout: l}
}

// FromFlat builds a contiguous TensorData directly from a flat buffer (no
// copy); the buffer's length must equal shape's element count.
func FromFlat(data []float64, shape layout.Shape) TensorData {
	l := layout.FromShape(shape, 0)
	if len(data) != l.Len() {
		panic("tensordata: flat buffer length does not match shape")
	}
	return TensorData{Storage: storage.New(data), Layout: l}
}

// FromIterator builds a contiguous TensorData by draining seq in row-major
// order.
func FromIterator(shape layout.Shape, seq func(func(float64) bool)) TensorData {
	l := layout.FromShape(shape, 0)
	buf := make([]float64, 0, l.Len())
	seq(func(v float64) bool {
		buf = append(buf, v)
		return true
	})
	if len(buf) != l.Len() {
		panic("tensordata: iterator element count does not match shape")
	}
	return TensorData{Storage: storage.New(buf), Layout: l}
}

// WithLayout returns a TensorData sharing this one's Storage (one more
// share) under a new Layout. No data moves.
func (t TensorData) WithLayout(l layout.Layout) TensorData {
	return TensorData{Storage: t.Storage.CloneReference(), Layout: l}
}

// CloneReference returns a cheap reference-counted clone: same Storage,
// same Layout.
func (t TensorData) CloneReference() TensorData {
	return TensorData{Storage: t.Storage.CloneReference(), Layout: t.Layout}
}

// CloneValue deep-copies the underlying buffer into a freshly owned
// Storage, preserving the Layout.
func (t TensorData) CloneValue() TensorData {
	return TensorData{Storage: t.Storage.CloneValue(), Layout: t.Layout}
}

// At returns the element at the given multi-dimensional indices, resolved
// through the layout's stride.
func (t TensorData) At(indices ...int32) float64 {
	stride := t.Layout.Stride()
	if len(indices) != len(stride) {
		panic("tensordata: index count does not match rank")
	}
	pos := t.Layout.Offset()
	for i, idx := range indices {
		pos += int(idx) * int(stride[i])
	}
	var v float64
	t.Storage.WithRead(func(buf []float64) { v = buf[pos] })
	return v
}
