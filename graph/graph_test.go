package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tensorgraph/graph"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
	"github.com/itohio/tensorgraph/storage"
	"github.com/itohio/tensorgraph/tensordata"
)

func leafEdge(n int) *graph.Edge {
	buf := make([]float64, n)
	return graph.NewEdge(tensordata.New(storage.New(buf), layout.FromShape(layout.Shape{int32(n)}, 0)))
}

func TestNewAssignsMonotonicDistinctIDs(t *testing.T) {
	a := leafEdge(3)
	b := graph.New(ops.Sum(1), []graph.Node{a})
	c := graph.New(ops.MulOp(2), []graph.Node{a})
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, b.ID(), c.ID())
}

func TestNewFusesChainedScalarOps(t *testing.T) {
	a := leafEdge(4)
	first := graph.New(ops.Sum(1), []graph.Node{a})
	second := graph.New(ops.Sum(2), []graph.Node{first})

	require.Equal(t, ops.ScalarOp, second.Op().Tag)
	assert.Equal(t, 3.0, second.Op().Scalar.Value)
	require.Len(t, second.Inputs(), 1)
	assert.Equal(t, a.ID(), second.Inputs()[0].ID())
}

func TestNewFusionSkipsBinaryParents(t *testing.T) {
	a := leafEdge(3)
	b := leafEdge(3)
	sum := graph.New(ops.Kind{Tag: ops.Add}, []graph.Node{a, b})
	scaled := graph.New(ops.MulOp(2), []graph.Node{sum})

	require.Equal(t, ops.ScalarOp, scaled.Op().Tag)
	require.Len(t, scaled.Inputs(), 1)
	assert.Equal(t, sum.ID(), scaled.Inputs()[0].ID())
}

func TestNewPanicsOnShapeMismatch(t *testing.T) {
	a := leafEdge(3)
	b := leafEdge(4)
	assert.Panics(t, func() {
		graph.New(ops.Kind{Tag: ops.Add}, []graph.Node{a, b})
	})
}

func TestCacheNodeFillIsFirstWriterWins(t *testing.T) {
	a := leafEdge(2)
	op := graph.New(ops.Sum(1), []graph.Node{a})
	cache := graph.FromNode(op)

	_, filled := cache.TryGet()
	assert.False(t, filled)

	first := tensordata.New(storage.NewZeros(2), layout.FromShape(layout.Shape{2}, 0))
	result := cache.Fill(first)
	assert.True(t, storage.SameBuffer(result.Storage, first.Storage))

	second := tensordata.New(storage.NewScalar(9, 2), layout.FromShape(layout.Shape{2}, 0))
	lost := cache.Fill(second)
	assert.False(t, storage.SameBuffer(lost.Storage, second.Storage))

	cached, filled := cache.TryGet()
	require.True(t, filled)
	assert.True(t, storage.SameBuffer(cached.Storage, first.Storage))
}
