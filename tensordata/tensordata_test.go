package tensordata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/storage"
	"github.com/itohio/tensorgraph/tensordata"
)

func TestFromFlatAtResolvesRowMajorIndices(t *testing.T) {
	td := tensordata.FromFlat([]float64{0, 1, 2, 3, 4, 5}, layout.Shape{2, 3})
	assert.Equal(t, 0.0, td.At(0, 0))
	assert.Equal(t, 4.0, td.At(1, 1))
	assert.Equal(t, 5.0, td.At(1, 2))
}

func TestFromFlatPanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		tensordata.FromFlat([]float64{1, 2, 3}, layout.Shape{2, 2})
	})
}

func TestFromScalarFillsConstant(t *testing.T) {
	td := tensordata.FromScalar(3, layout.Shape{2, 2})
	assert.Equal(t, 3.0, td.At(0, 0))
	assert.Equal(t, 3.0, td.At(1, 1))
}

func TestFromIteratorDrainsInOrder(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	i := 0
	td := tensordata.FromIterator(layout.Shape{4}, func(yield func(float64) bool) {
		for i < len(vals) {
			if !yield(vals[i]) {
				return
			}
			i++
		}
	})
	assert.Equal(t, 3.0, td.At(2))
}

func TestWithLayoutSharesStorageUnderNewLayout(t *testing.T) {
	td := tensordata.FromFlat([]float64{1, 2, 3, 4}, layout.Shape{4})
	reshaped := td.WithLayout(layout.FromShape(layout.Shape{2, 2}, 0))

	assert.True(t, storage.SameBuffer(td.Storage, reshaped.Storage))
	assert.Equal(t, 3.0, reshaped.At(1, 0))
}

func TestCloneValueIsIndependentFromOriginal(t *testing.T) {
	td := tensordata.FromFlat([]float64{1, 2, 3}, layout.Shape{3})
	cp := td.CloneValue()

	cp.Storage.WithWrite(func(buf []float64) { buf[0] = 99 })
	assert.Equal(t, 1.0, td.At(0))
	assert.Equal(t, 99.0, cp.At(0))
}

func TestCloneReferenceSharesStorage(t *testing.T) {
	td := tensordata.FromFlat([]float64{1, 2, 3}, layout.Shape{3})
	ref := td.CloneReference()

	require.True(t, storage.SameBuffer(td.Storage, ref.Storage))
	ref.Storage.WithWrite(func(buf []float64) { buf[0] = 5 })
	assert.Equal(t, 5.0, td.At(0))
}
