package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/tensor"
)

func flat(vals ...float64) []float64 { return vals }

func TestOperatorLiftingAllCombinationsAgree(t *testing.T) {
	a := tensor.FromFlat(flat(1, 2, 3), layout.Shape{3})
	b := tensor.FromFlat(flat(10, 20, 30), layout.Shape{3})

	pa := a.AsPromise()
	ca := pa.Cache()
	pb := b.AsPromise()
	cb := pb.Cache()

	results := []tensor.Tensor{
		tensor.Add(a, b).Materialize(),
		tensor.Add(pa, pb).Materialize(),
		tensor.Add(a, pb).Materialize(),
		tensor.Add(pa, b).Materialize(),
		tensor.Add(ca, cb).Materialize(),
	}

	want := []float64{11, 22, 33}
	for i, r := range results {
		r.Data().Storage.WithRead(func(buf []float64) {
			got := append([]float64(nil), buf[r.Offset():r.Offset()+r.Len()]...)
			assert.Equal(t, want, got, "combination %d", i)
		})
	}
}

func TestMethodChainingScalarThenBinary(t *testing.T) {
	a := tensor.FromFlat(flat(1, 2, 3), layout.Shape{3})
	b := tensor.FromFlat(flat(1, 1, 1), layout.Shape{3})

	out := a.MulScalar(2).Add(b).Materialize()
	out.Data().Storage.WithRead(func(buf []float64) {
		got := append([]float64(nil), buf[out.Offset():out.Offset()+out.Len()]...)
		assert.Equal(t, []float64{3, 5, 7}, got)
	})
}

func TestViewRejectsMismatchedSize(t *testing.T) {
	a := tensor.FromFlat(flat(1, 2, 3, 4, 5, 6), layout.Shape{2, 3})
	_, err := a.View(layout.Shape{4, 4})
	require.Error(t, err)
}

func TestViewThenMaterializeReshapes(t *testing.T) {
	a := tensor.FromFlat(flat(1, 2, 3, 4, 5, 6), layout.Shape{2, 3})
	p, err := a.View(layout.Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, layout.Shape{3, 2}, p.Layout().Shape())

	out := p.Materialize()
	assert.Equal(t, layout.Shape{3, 2}, out.Shape())
}

func TestCloneReferenceSharesStorage(t *testing.T) {
	a := tensor.FromFlat(flat(1, 2, 3), layout.Shape{3})
	shared := a.CloneReference()
	detached := a.CloneDetached()

	assert.Equal(t, a.Data().Storage, shared.Data().Storage)
	_ = detached
}

func TestScalarSubMeansElementMinusScalar(t *testing.T) {
	a := tensor.FromFlat(flat(10, 20, 30), layout.Shape{3})
	out := a.SubScalar(4).Materialize()
	out.Data().Storage.WithRead(func(buf []float64) {
		got := append([]float64(nil), buf[out.Offset():out.Offset()+out.Len()]...)
		assert.Equal(t, []float64{6, 16, 26}, got)
	})
}
