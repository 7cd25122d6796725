// Package gen provides the engine's tensor-construction conveniences:
// arange-style sequential fills (a plain loop) and evenly spaced ranges
// (gonum's floats.Span).
package gen

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/tensor"
)

// Arange returns a rank-1 Tensor of shape [n] holding 0, 1, …, n-1.
func Arange(n int) tensor.Tensor {
	return SRange(n, layout.Shape{int32(n)})
}

// SRange fills a Tensor of the given shape with 0, 1, …, total-1 in
// row-major order; shape's element count must equal total.
func SRange(total int, shape layout.Shape) tensor.Tensor {
	if shape.Size() != total {
		panic(fmt.Sprintf("gen: shape %v does not hold %d elements", shape, total))
	}
	buf := make([]float64, total)
	for i := range buf {
		buf[i] = float64(i)
	}
	return tensor.FromFlat(buf, shape)
}

// Linspace returns a rank-1 Tensor of shape [n] with n values evenly spaced
// between lo and hi inclusive, via gonum's floats.Span.
func Linspace(lo, hi float64, n int) tensor.Tensor {
	buf := make([]float64, n)
	floats.Span(buf, lo, hi)
	return tensor.FromFlat(buf, layout.Shape{int32(n)})
}

// Full returns a contiguous Tensor of shape with every element set to v.
func Full(v float64, shape layout.Shape) tensor.Tensor {
	return tensor.FromScalar(v, shape)
}

// Zeros returns a contiguous Tensor of shape filled with 0.
func Zeros(shape layout.Shape) tensor.Tensor { return Full(0, shape) }

// Ones returns a contiguous Tensor of shape filled with 1.
func Ones(shape layout.Shape) tensor.Tensor { return Full(1, shape) }
