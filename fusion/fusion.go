// Package fusion rewrites chains of scalar ops applied to the same input
// into a single scalar op or a FusedScalar chain, eliminating intermediate
// buffers. It runs once at every OpNode's construction; it never crosses
// Edges or binary ops, and never needs a fixed-point loop because each
// input was itself already fused when it was constructed.
package fusion

import "github.com/itohio/tensorgraph/ops"

// Parent describes the node a new op's single input resolves to, as far as
// fusion cares: its op kind. Binary ops and Edges report IsScalarFamily()
// == false and are left alone.
type Parent struct {
	Op ops.Kind
}

// Try attempts to fuse a new scalar op onto parent. It returns the
// rewritten Kind and true if fusion applied, or a zero Kind and false if
// parent's op isn't in the scalar family (an Edge, a binary op, a View,
// or NoOp).
func Try(parent Parent, child ops.Scalar) (ops.Kind, bool) {
	switch parent.Op.Tag {
	case ops.ScalarOp:
		return fuseScalars(parent.Op.Scalar, child), true
	case ops.FusedScalar:
		return fuseIntoChain(parent.Op.Chain, child), true
	default:
		return ops.Kind{}, false
	}
}

// sumSignedValue normalizes a Sum/Sub op to its signed additive value: Sum(s)
// contributes +s, Sub(s) contributes -s to a combined Sum chain. This is the
// resolved sign convention for the Sub-fusion Open Question (spec §4.5/§9):
// Sub(s) means "element - s", i.e. "+(-s)" when folded into a running sum.
func sumSignedValue(s ops.Scalar) float64 {
	switch s.Tag {
	case ops.ScalarSum:
		return s.Value
	case ops.ScalarSub:
		return -s.Value
	default:
		panic("fusion: sumSignedValue called on non-additive scalar op")
	}
}

func isAdditive(tag ops.ScalarTag) bool {
	return tag == ops.ScalarSum || tag == ops.ScalarSub
}

func isMultiplicative(tag ops.ScalarTag) bool {
	return tag == ops.ScalarMul || tag == ops.ScalarDiv
}

// fuseScalars applies the pairwise rewrite table from spec §4.5 to a single
// parent scalar op and an incoming child scalar op.
func fuseScalars(parent, child ops.Scalar) ops.Kind {
	switch {
	case isAdditive(parent.Tag) && isAdditive(child.Tag):
		combined := sumSignedValue(parent) + sumSignedValue(child)
		return ops.Sum(combined)

	case isMultiplicative(parent.Tag) && isMultiplicative(child.Tag):
		return fuseMultiplicative(parent, child)

	default:
		return ops.Kind{Tag: ops.FusedScalar, Chain: []ops.Scalar{parent, child}}
	}
}

func fuseMultiplicative(parent, child ops.Scalar) ops.Kind {
	switch parent.Tag {
	case ops.ScalarMul:
		switch child.Tag {
		case ops.ScalarMul:
			return ops.MulOp(parent.Value * child.Value)
		case ops.ScalarDiv:
			return ops.MulOp(parent.Value / child.Value)
		}
	case ops.ScalarDiv:
		switch child.Tag {
		case ops.ScalarMul:
			return ops.MulOp(child.Value / parent.Value)
		case ops.ScalarDiv:
			return ops.DivOp(parent.Value * child.Value)
		}
	}
	panic("fusion: fuseMultiplicative called with non-multiplicative operands")
}

// fuseIntoChain applies the pair rule to the tail of an existing
// FusedScalar chain and the incoming child: either the tail is replaced (if
// the pair rule collapses to a single ScalarOp) or the chain is extended
// (if the pair rule says "combine into FusedScalar", meaning tail and child
// don't cancel).
func fuseIntoChain(chain []ops.Scalar, child ops.Scalar) ops.Kind {
	tail := chain[len(chain)-1]
	fused := fuseScalars(tail, child)

	switch fused.Tag {
	case ops.ScalarOp:
		newChain := make([]ops.Scalar, len(chain))
		copy(newChain, chain)
		newChain[len(newChain)-1] = fused.Scalar
		return collapseOrChain(newChain)
	case ops.FusedScalar:
		newChain := make([]ops.Scalar, len(chain)+1)
		copy(newChain, chain)
		newChain[len(newChain)-1] = child
		return ops.Kind{Tag: ops.FusedScalar, Chain: newChain}
	default:
		panic("fusion: fuseScalars returned an unexpected tag")
	}
}

// collapseOrChain returns a ScalarOp directly when the chain has collapsed
// to a single element, else a FusedScalar.
func collapseOrChain(chain []ops.Scalar) ops.Kind {
	if len(chain) == 1 {
		return ops.Kind{Tag: ops.ScalarOp, Scalar: chain[0]}
	}
	return ops.Kind{Tag: ops.FusedScalar, Chain: chain}
}
