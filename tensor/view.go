package tensor

import (
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
)

// View reinterprets a's layout under a new shape — legal iff the new
// shape's element count matches a's current length — returning a Promise
// wrapping a View op. Since the output layout is fully known at
// construction time, this never needs a's subgraph to be materialized
// first.
func View(a Operand, shape layout.Shape) (Promise, error) {
	l, err := a.graphNode().Layout().View(shape)
	if err != nil {
		return Promise{}, err
	}
	return promiseWithLayout(ops.ViewOp(l), []Operand{a}, l), nil
}

// Transpose swaps dims i and j in a's layout, returning a Promise wrapping
// a View op over the transposed layout.
func Transpose(a Operand, i, j int) Promise {
	l := a.graphNode().Layout().Transpose(i, j)
	return promiseWithLayout(ops.ViewOp(l), []Operand{a}, l)
}

// Slice applies ranges (one per leading dimension) to a's layout, returning
// a Promise wrapping a View op over the sliced layout.
func Slice(a Operand, ranges []layout.SliceRange) (Promise, error) {
	l, err := a.graphNode().Layout().Slice(ranges)
	if err != nil {
		return Promise{}, err
	}
	return promiseWithLayout(ops.ViewOp(l), []Operand{a}, l), nil
}

func (t Tensor) View(shape layout.Shape) (Promise, error)         { return View(t, shape) }
func (t Tensor) Transpose(i, j int) Promise                       { return Transpose(t, i, j) }
func (t Tensor) Slice(ranges []layout.SliceRange) (Promise, error) { return Slice(t, ranges) }

func (p Promise) View(shape layout.Shape) (Promise, error)         { return View(p, shape) }
func (p Promise) Transpose(i, j int) Promise                       { return Transpose(p, i, j) }
func (p Promise) Slice(ranges []layout.SliceRange) (Promise, error) { return Slice(p, ranges) }

func (c CachedPromise) View(shape layout.Shape) (Promise, error)         { return View(c, shape) }
func (c CachedPromise) Transpose(i, j int) Promise                       { return Transpose(c, i, j) }
func (c CachedPromise) Slice(ranges []layout.SliceRange) (Promise, error) { return Slice(c, ranges) }
