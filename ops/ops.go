// Package ops enumerates the closed op catalogue and the per-op output
// layout rule. The catalogue is a tagged variant, not an interface
// hierarchy: the set of ops is fixed, so there is no reason to reach for
// virtual dispatch.
package ops

import (
	"fmt"

	"github.com/itohio/tensorgraph/layout"
)

// ScalarTag is the scalar-family op kind.
type ScalarTag uint8

const (
	ScalarSum ScalarTag = iota
	ScalarSub
	ScalarMul
	ScalarDiv
)

func (t ScalarTag) String() string {
	switch t {
	case ScalarSum:
		return "Sum"
	case ScalarSub:
		return "Sub"
	case ScalarMul:
		return "Mul"
	case ScalarDiv:
		return "Div"
	default:
		return "ScalarTag(?)"
	}
}

// Scalar is one (tag, constant) pair in a scalar op or a FusedScalar chain.
type Scalar struct {
	Tag   ScalarTag
	Value float64
}

// Tag discriminates the closed op catalogue.
type Tag uint8

const (
	NoOp Tag = iota
	Add
	Sub
	Mul
	Div
	ScalarOp
	FusedScalar
	View
)

func (t Tag) String() string {
	switch t {
	case NoOp:
		return "NoOp"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case ScalarOp:
		return "ScalarOp"
	case FusedScalar:
		return "FusedScalar"
	case View:
		return "View"
	default:
		return "Tag(?)"
	}
}

// Kind is the tagged-variant op descriptor. Only the fields relevant to Tag
// are meaningful: Scalar for ScalarOp, Chain for FusedScalar, Layout for
// View.
type Kind struct {
	Tag    Tag
	Scalar Scalar
	Chain  []Scalar
	Layout layout.Layout
}

// IsScalarFamily reports whether the op is one the fusion rewriter may walk
// through (ScalarOp or FusedScalar). NoOp is not scalar-family: fusion
// never sees through the NoOp an AsPromise() wraps a Tensor in, so the
// first scalar op chained onto a freshly lifted Tensor sits un-fused atop
// it.
func (k Kind) IsScalarFamily() bool {
	return k.Tag == ScalarOp || k.Tag == FusedScalar
}

func scalarOp(tag ScalarTag, v float64) Kind {
	return Kind{Tag: ScalarOp, Scalar: Scalar{Tag: tag, Value: v}}
}

// Sum builds a ScalarOp(Sum, s).
func Sum(s float64) Kind { return scalarOp(ScalarSum, s) }

// SubOp builds a ScalarOp(Sub, s).
func SubOp(s float64) Kind { return scalarOp(ScalarSub, s) }

// MulOp builds a ScalarOp(Mul, s).
func MulOp(s float64) Kind { return scalarOp(ScalarMul, s) }

// DivOp builds a ScalarOp(Div, s).
func DivOp(s float64) Kind { return scalarOp(ScalarDiv, s) }

// ViewOp builds a View(layout) op.
func ViewOp(l layout.Layout) Kind { return Kind{Tag: View, Layout: l} }

// ErrNotSameShape is returned when a binary op's operands have mismatched
// shapes.
type ErrNotSameShape struct {
	Expected, Got layout.Shape
}

func (e *ErrNotSameShape) Error() string {
	return fmt.Sprintf("ops: expected shape %v, got %v", e.Expected, e.Got)
}

// ComputeLayout derives the output Layout for op given its inputs' layouts,
// per the table in spec §4.4: scalar-family/NoOp/View ops clone a layout
// directly; binary ops require matching shapes and clone input[0]'s
// layout. Broadcasting is never performed.
func ComputeLayout(op Kind, inputs []layout.Layout) (layout.Layout, error) {
	switch op.Tag {
	case ScalarOp, FusedScalar, NoOp:
		return inputs[0], nil
	case View:
		return op.Layout, nil
	case Add, Sub, Mul, Div:
		if !inputs[0].Shape().Equal(inputs[1].Shape()) {
			return layout.Layout{}, &ErrNotSameShape{Expected: inputs[0].Shape(), Got: inputs[1].Shape()}
		}
		return inputs[0], nil
	default:
		panic(fmt.Sprintf("ops: unhandled op tag %v", op.Tag))
	}
}
