package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/tensorgraph/kernel"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
)

func TestBinaryContiguousAdd(t *testing.T) {
	dst := []float64{1, 2, 3, 4}
	src := []float64{10, 20, 30, 40}
	l := layout.FromShape(layout.Shape{4}, 0)

	kernel.Binary(ops.Add, dst, l, src, l)

	assert.Equal(t, []float64{11, 22, 33, 44}, dst)
}

func TestBinaryStridedDstWalksPositionByPosition(t *testing.T) {
	// Every-other-element layout over a 6-element buffer: non-contiguous
	// (stride 2), forcing Binary's strided fallback path.
	strided := layout.FromStride(layout.Shape{3}, []int32{2}, 0)

	dst := []float64{1, 2, 3, 4, 5, 6}
	src := []float64{10, 20, 30, 40, 50, 60}

	kernel.Binary(ops.Sub, dst, strided, src, strided)

	assert.Equal(t, []float64{-9, 2, -27, 4, -45, 6}, dst)
}

func TestScalarContiguousSumAndSub(t *testing.T) {
	buf := []float64{1, 2, 3}
	l := layout.FromShape(layout.Shape{3}, 0)

	kernel.Scalar(ops.Scalar{Tag: ops.ScalarSum, Value: 10}, buf, l)
	assert.Equal(t, []float64{11, 12, 13}, buf)

	kernel.Scalar(ops.Scalar{Tag: ops.ScalarSub, Value: 1}, buf, l)
	assert.Equal(t, []float64{10, 11, 12}, buf)
}

func TestScalarMulAndDiv(t *testing.T) {
	buf := []float64{2, 4, 8}
	l := layout.FromShape(layout.Shape{3}, 0)

	kernel.Scalar(ops.Scalar{Tag: ops.ScalarMul, Value: 2}, buf, l)
	assert.Equal(t, []float64{4, 8, 16}, buf)

	kernel.Scalar(ops.Scalar{Tag: ops.ScalarDiv, Value: 4}, buf, l)
	assert.Equal(t, []float64{1, 2, 4}, buf)
}

func TestChainAppliesEveryStepInOrder(t *testing.T) {
	buf := []float64{1, 1, 1}
	l := layout.FromShape(layout.Shape{3}, 0)

	kernel.Chain([]ops.Scalar{
		{Tag: ops.ScalarSum, Value: 4},
		{Tag: ops.ScalarMul, Value: 3},
	}, buf, l)

	assert.Equal(t, []float64{15, 15, 15}, buf)
}

func TestCPUBackendMatchesPackageFunctions(t *testing.T) {
	var backend kernel.Backend = kernel.CPU{}

	buf := []float64{1, 2, 3}
	l := layout.FromShape(layout.Shape{3}, 0)
	require := assert.New(t)

	require.NoError(backend.Scalar(ops.Scalar{Tag: ops.ScalarMul, Value: 2}, buf, l))
	require.Equal([]float64{2, 4, 6}, buf)

	dst := []float64{1, 1, 1}
	src := []float64{1, 1, 1}
	require.NoError(backend.Binary(ops.Add, dst, l, src, l))
	require.Equal([]float64{2, 2, 2}, dst)

	require.NoError(backend.Chain([]ops.Scalar{{Tag: ops.ScalarSum, Value: 1}}, dst, l))
	require.Equal([]float64{3, 3, 3}, dst)
}
