// Package tensor is the public surface of the engine: Tensor wraps a
// materialized value, Promise and CachedPromise wrap unmaterialized
// computation nodes, and the package-level arithmetic functions lift any
// combination of the three (or a scalar) into a new Promise without
// materializing anything.
package tensor

import (
	"github.com/itohio/tensorgraph/graph"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/tensordata"
)

// Operand is satisfied only by Tensor, Promise and CachedPromise — the
// closed set of things arithmetic and view operations accept. The method
// is unexported so the set can never grow from outside the package.
type Operand interface {
	graphNode() graph.Node
}

// Tensor is a materialized handle over a TensorData.
type Tensor struct {
	edge *graph.Edge
}

func (t Tensor) graphNode() graph.Node { return t.edge }

// FromScalar builds a contiguous Tensor of shape, every element set to v.
func FromScalar(v float64, shape layout.Shape) Tensor {
	return Tensor{edge: graph.NewEdge(tensordata.FromScalar(v, shape))}
}

// FromFlat builds a contiguous Tensor directly from a flat buffer (no
// copy); len(data) must equal shape's element count.
func FromFlat(data []float64, shape layout.Shape) Tensor {
	return Tensor{edge: graph.NewEdge(tensordata.FromFlat(data, shape))}
}

// FromIterator builds a contiguous Tensor by draining seq in row-major
// order.
func FromIterator(shape layout.Shape, seq func(func(float64) bool)) Tensor {
	return Tensor{edge: graph.NewEdge(tensordata.FromIterator(shape, seq))}
}

// FromTensorData wraps an already-built TensorData as a Tensor.
func FromTensorData(td tensordata.TensorData) Tensor {
	return Tensor{edge: graph.NewEdge(td)}
}

// Data returns the underlying TensorData (a cheap reference clone).
func (t Tensor) Data() tensordata.TensorData { return t.edge.Data() }

// Shape returns the tensor's dimension sizes.
func (t Tensor) Shape() layout.Shape { return t.edge.Layout().Shape() }

// Stride returns the tensor's per-dimension element strides.
func (t Tensor) Stride() []int32 { return t.edge.Layout().Stride() }

// AdjStride returns the tensor's cached adjacent-stride corrections.
func (t Tensor) AdjStride() []int32 { return t.edge.Layout().AdjStride() }

// Offset returns the element offset of the tensor's logical origin.
func (t Tensor) Offset() int { return t.edge.Layout().Offset() }

// Len returns the tensor's element count.
func (t Tensor) Len() int { return t.edge.Layout().Len() }

// At returns the element at the given multi-dimensional indices.
func (t Tensor) At(indices ...int32) float64 { return t.edge.Data().At(indices...) }

// AsPromise wraps t in a NoOp Promise whose sole input is t's Edge — the
// entry point for chaining arithmetic or view ops off an already-concrete
// Tensor.
func (t Tensor) AsPromise() Promise {
	return Promise{node: graph.New(noOpKind(), []graph.Node{t.edge})}
}

// CloneReference shares the same Edge: any Promise built from either copy
// observes the same node id, so a CachedPromise downstream of one sees
// fills made through the other.
func (t Tensor) CloneReference() Tensor {
	return Tensor{edge: t.edge}
}

// CloneDetached shares the same underlying Storage through a brand-new
// Edge: later mutation performed through a Promise chain rooted at the
// original Edge is invisible to one rooted at the detached copy, and vice
// versa, since they are different graph nodes even though (for now) they
// read the same buffer.
func (t Tensor) CloneDetached() Tensor {
	return Tensor{edge: graph.NewEdge(t.edge.Data())}
}

// Clone deep-copies the underlying buffer into a freshly owned Storage.
func (t Tensor) Clone() Tensor {
	return Tensor{edge: graph.NewEdge(t.edge.Data().CloneValue())}
}
