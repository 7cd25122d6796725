// Package eval implements the DAG evaluator: an iterative (not recursive —
// a naive recursive compute blows the stack on deep fusion chains, per
// spec §9) postorder walk that dispatches each node to a kernel while
// consuming its inputs under a refcount discipline that licenses in-place
// buffer reuse.
package eval

import (
	"fmt"

	"github.com/itohio/tensorgraph/graph"
	"github.com/itohio/tensorgraph/internal/xlog"
	"github.com/itohio/tensorgraph/kernel"
	"github.com/itohio/tensorgraph/ops"
	"github.com/itohio/tensorgraph/tensordata"
)

// Materialize walks root's subgraph to a concrete TensorData: a postorder
// sort of root's inputs (root itself evaluated last), evaluated forward so
// every node's inputs are already cached by the time it runs, under a
// refcount-driven cache eviction that authorizes in-place kernel reuse.
// root may be an Edge (returned as-is), an OpNode, or a CacheNode.
func Materialize(root graph.Node) tensordata.TensorData {
	sorted, refcount := topoSort(root)

	cache := make(map[uint64]tensordata.TensorData, len(sorted))
	for _, node := range sorted {
		cache[node.ID()] = evalNode(node, cache, refcount)
	}

	result := evalNode(root, cache, refcount)

	if len(cache) != 0 {
		panic(fmt.Sprintf("eval: computation cache not empty after materialize: %d entries remain", len(cache)))
	}
	return result
}

// rootInputs reports the inputs root itself consumes, so topoSort can seed
// its walk the same way regardless of root's concrete kind.
func rootInputs(root graph.Node) []graph.Node {
	switch v := root.(type) {
	case *graph.Edge:
		return nil
	case *graph.OpNode:
		return v.Inputs()
	case *graph.CacheNode:
		if _, filled := v.TryGet(); filled {
			return nil
		}
		return v.Inner().Inputs()
	default:
		panic(fmt.Sprintf("eval: unhandled node type %T", root))
	}
}

// topoSort performs the DFS walk described in spec §4.6: starting from
// root's inputs, visit depth-first; the first visit to a node id sets its
// refcount to 1 and recurses into its own inputs (unless it is a CacheNode
// whose slot is already filled, which counts as a leaf) before appending
// the node itself to sorted; subsequent visits to an already-seen id only
// bump the refcount and do not recurse again. Appending after descent
// (postorder) guarantees every node lands after all of its inputs,
// including a node shared by more than one parent — which a node's
// *first* visit (preorder) cannot guarantee once the DAG stops being a
// tree. The resulting order is evaluated forward, as-is.
func topoSort(root graph.Node) ([]graph.Node, map[uint64]int) {
	refcount := make(map[uint64]int)
	var sorted []graph.Node

	var visit func(n graph.Node)
	visit = func(n graph.Node) {
		if _, seen := refcount[n.ID()]; seen {
			refcount[n.ID()]++
			return
		}
		refcount[n.ID()] = 1

		switch v := n.(type) {
		case *graph.Edge:
			// leaf, nothing to descend into
		case *graph.OpNode:
			for _, in := range v.Inputs() {
				visit(in)
			}
		case *graph.CacheNode:
			if _, filled := v.TryGet(); !filled {
				for _, in := range v.Inner().Inputs() {
					visit(in)
				}
			}
		default:
			panic(fmt.Sprintf("eval: unhandled node type %T", n))
		}

		sorted = append(sorted, n)
	}

	for _, in := range rootInputs(root) {
		visit(in)
	}

	return sorted, refcount
}

// take looks up id in cache under the refcount discipline: the refcount is
// decremented; if it reaches zero the entry is removed and its value
// returned as-is (ownership transferred to the caller, licensing an
// in-place kernel write); otherwise the caller receives a reference clone
// and the cache keeps its entry for the remaining consumers. A missing
// entry is a fatal invariant violation — the sort and the walk must agree.
func take(id uint64, cache map[uint64]tensordata.TensorData, refcount map[uint64]int) tensordata.TensorData {
	td, ok := cache[id]
	if !ok {
		panic(fmt.Sprintf("eval: invariant violation: no cache entry for node %d", id))
	}
	refcount[id]--
	if refcount[id] == 0 {
		delete(cache, id)
		return td
	}
	return td.CloneReference()
}

func evalNode(n graph.Node, cache map[uint64]tensordata.TensorData, refcount map[uint64]int) tensordata.TensorData {
	switch v := n.(type) {
	case *graph.Edge:
		return v.Data()
	case *graph.OpNode:
		return evalOpNode(v, cache, refcount)
	case *graph.CacheNode:
		if cached, ok := v.TryGet(); ok {
			xlog.Debug("eval.cache_hit", "node_id", v.ID())
			return cached
		}
		result := evalOpNode(v.Inner(), cache, refcount)
		return v.Fill(result)
	default:
		panic(fmt.Sprintf("eval: unhandled node type %T", n))
	}
}

func evalOpNode(n *graph.OpNode, cache map[uint64]tensordata.TensorData, refcount map[uint64]int) tensordata.TensorData {
	op := n.Op()
	inputs := n.Inputs()

	ins := make([]tensordata.TensorData, len(inputs))
	for i, in := range inputs {
		ins[i] = take(in.ID(), cache, refcount)
	}

	xlog.Debug("eval.dispatch", "node_id", n.ID(), "op", op.Tag.String())

	switch op.Tag {
	case ops.NoOp:
		return ins[0]
	case ops.View:
		// ins[0] is already an owned share (either exclusively, or a clone we
		// hold for ourselves per the take() discipline); relabel it under the
		// op's layout rather than cloning another share we'd have to release.
		return tensordata.TensorData{Storage: ins[0].Storage, Layout: n.Layout()}
	case ops.ScalarOp:
		out := ownedCopyIfShared(ins[0])
		out.Storage.WithWrite(func(buf []float64) {
			kernel.Scalar(op.Scalar, buf, out.Layout)
		})
		return out
	case ops.FusedScalar:
		out := ownedCopyIfShared(ins[0])
		out.Storage.WithWrite(func(buf []float64) {
			kernel.Chain(op.Chain, buf, out.Layout)
		})
		return out
	case ops.Add, ops.Sub, ops.Mul, ops.Div:
		out := ownedCopyIfShared(ins[0])
		ins[1].Storage.WithRead(func(srcBuf []float64) {
			out.Storage.WithWrite(func(dstBuf []float64) {
				kernel.Binary(op.Tag, dstBuf, out.Layout, srcBuf, ins[1].Layout)
			})
		})
		// ins[1] is read-only here and never becomes part of out; release the
		// share take() handed us.
		ins[1].Storage.Release()
		return out
	default:
		panic(fmt.Sprintf("eval: unhandled op tag %v", op.Tag))
	}
}

// ownedCopyIfShared returns td unchanged if its Storage is uniquely held
// (authorizing an in-place kernel write), else a deep-copied TensorData
// with identical Layout values backed by a freshly allocated, uniquely
// owned Storage — spec §4.2's "uniqueness check... otherwise the kernel
// allocates a fresh output".
func ownedCopyIfShared(td tensordata.TensorData) tensordata.TensorData {
	if td.Storage.Unique() {
		return td
	}
	fresh := td.Storage.CloneValue()
	td.Storage.Release() // we held one share of the original; we're replacing it, not keeping it
	return tensordata.TensorData{Storage: fresh, Layout: td.Layout}
}
