package tensor

import (
	"github.com/itohio/tensorgraph/eval"
	"github.com/itohio/tensorgraph/graph"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
)

func noOpKind() ops.Kind { return ops.Kind{Tag: ops.NoOp} }

// Promise is an unmaterialized computation node.
type Promise struct {
	node *graph.OpNode
}

func (p Promise) graphNode() graph.Node { return p.node }

// newPromise validates layouts and fuses, per graph.New.
func newPromise(op ops.Kind, inputs []Operand) Promise {
	nodes := make([]graph.Node, len(inputs))
	for i, in := range inputs {
		nodes[i] = in.graphNode()
	}
	return Promise{node: graph.New(op, nodes)}
}

// promiseWithLayout accepts a pre-computed layout and skips validation.
func promiseWithLayout(op ops.Kind, inputs []Operand, l layout.Layout) Promise {
	nodes := make([]graph.Node, len(inputs))
	for i, in := range inputs {
		nodes[i] = in.graphNode()
	}
	return Promise{node: graph.WithLayout(op, nodes, l)}
}

// Layout returns the promise's statically computed output layout — known
// at construction time, before materialization.
func (p Promise) Layout() layout.Layout { return p.node.Layout() }

// Materialize runs the evaluator and yields a Tensor.
func (p Promise) Materialize() Tensor {
	return Tensor{edge: graph.NewEdge(eval.Materialize(p.node))}
}

// Cache returns a CachedPromise sharing the same subgraph.
func (p Promise) Cache() CachedPromise {
	return CachedPromise{node: graph.FromNode(p.node)}
}

// CachedPromise has the same contract as Promise but memoizes the first
// materialization; subsequent materializations of any subgraph depending
// on it reuse the cached TensorData.
type CachedPromise struct {
	node *graph.CacheNode
}

func (c CachedPromise) graphNode() graph.Node { return c.node }

// Layout returns the cached promise's statically computed output layout.
func (c CachedPromise) Layout() layout.Layout { return c.node.Layout() }

// Materialize runs the evaluator (or returns the memoized value if already
// filled) and yields a Tensor.
func (c CachedPromise) Materialize() Tensor {
	return Tensor{edge: graph.NewEdge(eval.Materialize(c.node))}
}
