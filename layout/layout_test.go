package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromShapeContiguousAdjStrideAllOnes(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"rank1", Shape{12}},
		{"rank2", Shape{2, 2}},
		{"rank3", Shape{3, 3, 3}},
		{"rank4", Shape{2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := FromShape(tt.shape, 0)
			for _, a := range l.AdjStride() {
				assert.EqualValues(t, 1, a)
			}
			assert.True(t, l.IsContiguous())
		})
	}
}

func TestViewRoundTrip(t *testing.T) {
	l := FromShape(Shape{2, 2}, 0)
	v, err := l.View(Shape{4})
	require.NoError(t, err)
	assert.Equal(t, Shape{4}, v.Shape())

	back, err := l.View(l.Shape())
	require.NoError(t, err)
	assert.Equal(t, l.Shape(), back.Shape())
	assert.Equal(t, l.Stride(), back.Stride())
}

func TestViewRejectsMismatchedSize(t *testing.T) {
	l := FromShape(Shape{2, 2}, 0)
	_, err := l.View(Shape{5})
	require.Error(t, err)
	var target *ErrInvalidViewShape
	require.ErrorAs(t, err, &target)
}

func TestTransposeInvolution(t *testing.T) {
	l := FromShape(Shape{2, 3, 4}, 0)
	once := l.Transpose(0, 2)
	twice := once.Transpose(0, 2)
	assert.Equal(t, l.Shape(), twice.Shape())
	assert.Equal(t, l.Stride(), twice.Stride())
	assert.Equal(t, l.AdjStride(), twice.AdjStride())
}

func TestAdjacentStrideDerivation(t *testing.T) {
	// Shape [2,3], row-major stride [3,1]; adj_stride should collapse to all 1s.
	l := FromStride(Shape{2, 3}, []int32{3, 1}, 0)
	assert.Equal(t, []int32{1, 1}, l.AdjStride())

	// A transposed [3,2] view of the same buffer: stride [1,3].
	transposed := l.Transpose(0, 1)
	assert.Equal(t, Shape{3, 2}, transposed.Shape())
	assert.Equal(t, []int32{1, 3}, transposed.Stride())
}

func TestSliceCenterColumnShape(t *testing.T) {
	// srange(27, [3,3,3]).slice([full, 1..2, 1..2]) -> shape [3,1,1]
	l := FromShape(Shape{3, 3, 3}, 0)
	sliced, err := l.Slice([]SliceRange{Full(), RangeOf(1, 2), RangeOf(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 1, 1}, sliced.Shape())
}

func TestSliceNegativeIndices(t *testing.T) {
	l := FromShape(Shape{4}, 0)
	sliced, err := l.Slice([]SliceRange{From(-1)})
	require.NoError(t, err)
	assert.Equal(t, Shape{1}, sliced.Shape())
	assert.Equal(t, 3, sliced.Offset())
}

func TestSliceRejectsEmptyRange(t *testing.T) {
	l := FromShape(Shape{4}, 0)
	_, err := l.Slice([]SliceRange{RangeOf(2, 2)})
	require.Error(t, err)
}
