// Package graph implements the DAG node types — Edge, OpNode, CacheNode —
// that make up the lazy computation graph. Nodes are immutable after
// construction and are built bottom-up from already-built inputs, which is
// what guarantees the graph is acyclic: a node can never reference a node
// built after it.
package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/itohio/tensorgraph/fusion"
	"github.com/itohio/tensorgraph/layout"
	"github.com/itohio/tensorgraph/ops"
	"github.com/itohio/tensorgraph/tensordata"
)

var nextID atomic.Uint64

func allocID() uint64 {
	return nextID.Add(1)
}

// Node is the common surface every graph member exposes. The evaluator
// type-switches on the concrete type to drive its iterative walk (see
// package eval) rather than dispatching through virtual "compute" calls —
// a closed, three-member sum type, not an open interface hierarchy.
type Node interface {
	ID() uint64
	Layout() layout.Layout
}

// Edge is the leaf of the DAG: it owns a concrete TensorData.
type Edge struct {
	id   uint64
	data tensordata.TensorData
}

// NewEdge wraps data as a new leaf node.
func NewEdge(data tensordata.TensorData) *Edge {
	return &Edge{id: allocID(), data: data}
}

func (e *Edge) ID() uint64            { return e.id }
func (e *Edge) Layout() layout.Layout { return e.data.Layout }

// Data returns a cheap reference-counted clone of the edge's TensorData —
// an Edge's "compute" is never more than this.
func (e *Edge) Data() tensordata.TensorData { return e.data.CloneReference() }

// OpNode owns an op, its ordered inputs, and the output layout computed at
// construction time. OpNodes are immutable after New returns.
type OpNode struct {
	id     uint64
	op     ops.Kind
	inputs []Node
	layout layout.Layout
}

func (n *OpNode) ID() uint64            { return n.id }
func (n *OpNode) Layout() layout.Layout { return n.layout }
func (n *OpNode) Op() ops.Kind          { return n.op }
func (n *OpNode) Inputs() []Node        { return n.inputs }

// layoutOf extracts a Node's output layout regardless of its concrete kind.
func layoutOf(n Node) layout.Layout { return n.Layout() }

// opOf reports the op (and ok=true) if n is an OpNode or a CacheNode,
// unwrapping the CacheNode to its inner OpNode; ok is false for an Edge.
func opOf(n Node) (ops.Kind, bool) {
	switch v := n.(type) {
	case *OpNode:
		return v.op, true
	case *CacheNode:
		return v.node.op, true
	default:
		return ops.Kind{}, false
	}
}

// New builds an OpNode, first attempting to fuse op into the single input's
// op (if that input is itself a scalar-family OpNode/CacheNode), then
// computing the output layout. Shape mismatches and invalid views are
// fatal here: spec §7 treats construction-time errors arising inside
// operator construction as programming bugs, not recoverable input.
func New(op ops.Kind, inputs []Node) *OpNode {
	fusedOp, fusedInputs := tryFuse(op, inputs)

	layouts := make([]layout.Layout, len(fusedInputs))
	for i, in := range fusedInputs {
		layouts[i] = layoutOf(in)
	}
	outLayout, err := ops.ComputeLayout(fusedOp, layouts)
	if err != nil {
		panic(fmt.Sprintf("graph: %v", err))
	}

	return &OpNode{id: allocID(), op: fusedOp, inputs: fusedInputs, layout: outLayout}
}

// WithLayout builds an OpNode with a pre-computed layout, skipping both
// fusion and validation — for call sites that already know the answer
// (e.g. the public surface reusing a layout it just derived itself).
func WithLayout(op ops.Kind, inputs []Node, l layout.Layout) *OpNode {
	return &OpNode{id: allocID(), op: op, inputs: inputs, layout: l}
}

// tryFuse rewrites op against its sole input when that input is itself a
// scalar-family op node, per package fusion. Only single-input ops
// (ScalarOp) are eligible; binary ops and View are returned unchanged.
func tryFuse(op ops.Kind, inputs []Node) (ops.Kind, []Node) {
	if op.Tag != ops.ScalarOp || len(inputs) != 1 {
		return op, inputs
	}
	parentOp, ok := opOf(inputs[0])
	if !ok || !parentOp.IsScalarFamily() {
		return op, inputs
	}

	fused, didFuse := fusion.Try(fusion.Parent{Op: parentOp}, op.Scalar)
	if !didFuse {
		return op, inputs
	}

	// The fused op replaces both this op and its parent: its inputs become
	// the parent's inputs.
	var parentInputs []Node
	switch v := inputs[0].(type) {
	case *OpNode:
		parentInputs = v.inputs
	case *CacheNode:
		parentInputs = v.node.inputs
	}
	return fused, parentInputs
}

// CacheNode wraps an OpNode plus an at-most-once-fillable slot holding the
// materialized TensorData for that subgraph. It uses its inner OpNode's id.
type CacheNode struct {
	node *OpNode
	slot atomic.Pointer[tensordata.TensorData]
}

// NewCache builds a CacheNode around a freshly constructed OpNode.
func NewCache(op ops.Kind, inputs []Node) *CacheNode {
	return &CacheNode{node: New(op, inputs)}
}

// FromNode wraps an already-built OpNode in a CacheNode.
func FromNode(node *OpNode) *CacheNode {
	return &CacheNode{node: node}
}

func (c *CacheNode) ID() uint64            { return c.node.ID() }
func (c *CacheNode) Layout() layout.Layout { return c.node.Layout() }
func (c *CacheNode) Inner() *OpNode        { return c.node }

// TryGet returns the cached TensorData and true if the slot has been
// filled, else the zero value and false.
func (c *CacheNode) TryGet() (tensordata.TensorData, bool) {
	p := c.slot.Load()
	if p == nil {
		return tensordata.TensorData{}, false
	}
	return p.CloneReference(), true
}

// Fill writes the slot if empty (first writer wins) and returns the stored
// value either way, satisfying "at most once, race-free: first writer
// wins, readers observe either empty-or-full" (spec §5).
func (c *CacheNode) Fill(data tensordata.TensorData) tensordata.TensorData {
	stored := data.CloneReference()
	if c.slot.CompareAndSwap(nil, &stored) {
		return data
	}
	// Someone else won the race: our clone was never installed, and our
	// own computed value is being discarded in favor of theirs.
	stored.Release()
	data.Release()
	return c.slot.Load().CloneReference()
}
