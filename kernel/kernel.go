// Package kernel implements the elementwise and scalar-broadcast kernels
// the evaluator dispatches to. Binary kernels consume operand 0 (written in
// place) and stream operand 1 through the chunked iterator; scalar kernels
// always write in place into the owned input buffer. The vector routines
// themselves come from gorgonia.org/vecf64, the vendor math library this
// engine standardizes on (any library exposing the same contiguous-chunk
// add/sub/mul/div/scale contract would do — spec §6 fixes only the
// contract, not the vendor).
package kernel

import (
	"github.com/itohio/tensorgraph/iter"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
	"gorgonia.org/vecf64"
)

// ChunkSize controls the packing granularity used by Binary for
// non-contiguous operands. It is package-level (rather than a parameter
// threaded through every call) so internal/config can tune it once at
// startup, mirroring how the teacher's backends take a single
// process-wide tuning knob rather than per-call overrides.
var ChunkSize = iter.DefaultChunkSize

// Binary applies op element-wise over dst and src (dst op= src), where dst
// is the buffer the evaluator has authorized for in-place writes and src is
// read through its own layout. When dst is contiguous, src is streamed
// through the chunked packer and each chunk is one vector call; if src is
// contiguous too (the common case — freshly materialized tensors, or views
// that happen to still be dense) the packer yields a single chunk covering
// the whole buffer and the kernel runs as one vector call (spec §4.8's fast
// path). When dst is not contiguous, dst is written through a position walk
// in lockstep with a strided walk of src, element by element, which is
// still correct for arbitrary strides but makes no vector calls.
func Binary(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) {
	if dstLayout.IsContiguous() {
		binaryContiguousDst(tag, dst, dstLayout, srcBuf, srcLayout)
		return
	}
	binaryStridedDst(tag, dst, dstLayout, srcBuf, srcLayout)
}

func binaryContiguousDst(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) {
	base := dstLayout.Offset()
	packer := iter.NewChunked(srcBuf, srcLayout, ChunkSize)
	for {
		chunk, ok := packer.Next()
		if !ok {
			break
		}
		lo := base + chunk.AbsoluteBufferPos
		hi := lo + len(chunk.Data)
		applyVector(tag, dst[lo:hi], chunk.Data)
	}
}

func binaryStridedDst(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) {
	positions := iter.NewPositions(dstLayout)
	src := iter.NewStrided(srcBuf, srcLayout)
	for {
		pos, ok := positions.Next()
		if !ok {
			break
		}
		v, ok := src.Next()
		if !ok {
			panic("kernel: operand shapes disagree on element count")
		}
		dst[pos] = applyScalarPair(tag, dst[pos], v)
	}
}

func applyVector(tag ops.Tag, dst, src []float64) {
	switch tag {
	case ops.Add:
		vecf64.Add(dst, src)
	case ops.Sub:
		vecf64.Sub(dst, src)
	case ops.Mul:
		vecf64.Mul(dst, src)
	case ops.Div:
		vecf64.Div(dst, src)
	default:
		panic("kernel: Binary called with a non-binary op tag")
	}
}

func applyScalarPair(tag ops.Tag, a, b float64) float64 {
	switch tag {
	case ops.Add:
		return a + b
	case ops.Sub:
		return a - b
	case ops.Mul:
		return a * b
	case ops.Div:
		return a / b
	default:
		panic("kernel: Binary called with a non-binary op tag")
	}
}

// Scalar applies a single scalar op in place over buf under layout l. When
// l is contiguous, the whole run is handed to vecf64 in one call (spec
// §4.8: "a vectorized scaling routine for Mul/Div and a straight loop for
// Sum/Sub" — here Sum/Sub also route through vecf64.Trans, which is exactly
// that straight loop under the hood). A non-contiguous but uniquely-owned
// view (e.g. an in-place op on a transposed tensor) is walked one position
// at a time instead.
func Scalar(s ops.Scalar, buf []float64, l layout.Layout) {
	if l.IsContiguous() {
		scalarVector(s, buf[l.Offset():l.Offset()+l.Len()])
		return
	}
	positions := iter.NewPositions(l)
	for {
		pos, ok := positions.Next()
		if !ok {
			break
		}
		buf[pos] = scalarOne(s, buf[pos])
	}
}

func scalarVector(s ops.Scalar, window []float64) {
	switch s.Tag {
	case ops.ScalarSum:
		vecf64.Trans(window, s.Value)
	case ops.ScalarSub:
		// Resolved sign convention (spec §4.5/§9 Open Question): Sub(s)
		// means element - s, realized as Trans(window, -s).
		vecf64.Trans(window, -s.Value)
	case ops.ScalarMul:
		vecf64.Scale(window, s.Value)
	case ops.ScalarDiv:
		vecf64.Scale(window, 1.0/s.Value)
	default:
		panic("kernel: Scalar called with an unknown scalar tag")
	}
}

func scalarOne(s ops.Scalar, v float64) float64 {
	switch s.Tag {
	case ops.ScalarSum:
		return v + s.Value
	case ops.ScalarSub:
		return v - s.Value
	case ops.ScalarMul:
		return v * s.Value
	case ops.ScalarDiv:
		return v / s.Value
	default:
		panic("kernel: Scalar called with an unknown scalar tag")
	}
}

// Chain applies an ordered FusedScalar chain in place, one scalar op at a
// time — the whole point of fusion is that this never round-trips through
// an intermediate buffer between the ops in the chain.
func Chain(chain []ops.Scalar, buf []float64, l layout.Layout) {
	for _, s := range chain {
		Scalar(s, buf, l)
	}
}

// Backend is the kernel execution surface this package's free functions
// implement directly over vecf64. It exists so a non-CPU implementation
// (see package gpu) is provably swappable, mirroring the teacher's
// GraphBackend/BackendCapabilities pattern of naming execution modes before
// more than one is implemented.
type Backend interface {
	Binary(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) error
	Scalar(s ops.Scalar, buf []float64, l layout.Layout) error
	Chain(chain []ops.Scalar, buf []float64, l layout.Layout) error
}

// CPU is the default Backend, backed directly by this package's
// vecf64-based kernels.
type CPU struct{}

func (CPU) Binary(tag ops.Tag, dst []float64, dstLayout layout.Layout, srcBuf []float64, srcLayout layout.Layout) error {
	Binary(tag, dst, dstLayout, srcBuf, srcLayout)
	return nil
}

func (CPU) Scalar(s ops.Scalar, buf []float64, l layout.Layout) error {
	Scalar(s, buf, l)
	return nil
}

func (CPU) Chain(chain []ops.Scalar, buf []float64, l layout.Layout) error {
	Chain(chain, buf, l)
	return nil
}
