package tensor

import "github.com/itohio/tensorgraph/ops"

// Add, Sub, Mul and Div lift binary arithmetic over any pair of operands
// from {Tensor, Promise, CachedPromise}. Go has no owned/borrowed
// distinction — every Operand value here is already a cheap handle (a
// pointer-sized wrapper around a graph node), so the four
// owned/borrowed/mixed combinations the original design distinguishes
// collapse into one signature; passing the same Tensor to two different
// calls is exactly "borrowing" it twice. Mismatched shapes panic inside
// graph.New, per spec §7: a binary-op construction error is a programming
// bug, not recoverable input.
func Add(a, b Operand) Promise { return newPromise(ops.Kind{Tag: ops.Add}, []Operand{a, b}) }
func Sub(a, b Operand) Promise { return newPromise(ops.Kind{Tag: ops.Sub}, []Operand{a, b}) }
func Mul(a, b Operand) Promise { return newPromise(ops.Kind{Tag: ops.Mul}, []Operand{a, b}) }
func Div(a, b Operand) Promise { return newPromise(ops.Kind{Tag: ops.Div}, []Operand{a, b}) }

// AddScalar, SubScalar, MulScalar and DivScalar lift arithmetic between an
// operand and a scalar constant. These are the scalar-family ops that the
// fusion rewriter may collapse into their parent at construction time.
func AddScalar(a Operand, s float64) Promise { return newPromise(ops.Sum(s), []Operand{a}) }
func SubScalar(a Operand, s float64) Promise { return newPromise(ops.SubOp(s), []Operand{a}) }
func MulScalar(a Operand, s float64) Promise { return newPromise(ops.MulOp(s), []Operand{a}) }
func DivScalar(a Operand, s float64) Promise { return newPromise(ops.DivOp(s), []Operand{a}) }

// Add lifts t + other; see the package-level Add for the general contract.
func (t Tensor) Add(other Operand) Promise { return Add(t, other) }
func (t Tensor) Sub(other Operand) Promise { return Sub(t, other) }
func (t Tensor) Mul(other Operand) Promise { return Mul(t, other) }
func (t Tensor) Div(other Operand) Promise { return Div(t, other) }

func (t Tensor) AddScalar(s float64) Promise { return AddScalar(t, s) }
func (t Tensor) SubScalar(s float64) Promise { return SubScalar(t, s) }
func (t Tensor) MulScalar(s float64) Promise { return MulScalar(t, s) }
func (t Tensor) DivScalar(s float64) Promise { return DivScalar(t, s) }

func (p Promise) Add(other Operand) Promise { return Add(p, other) }
func (p Promise) Sub(other Operand) Promise { return Sub(p, other) }
func (p Promise) Mul(other Operand) Promise { return Mul(p, other) }
func (p Promise) Div(other Operand) Promise { return Div(p, other) }

func (p Promise) AddScalar(s float64) Promise { return AddScalar(p, s) }
func (p Promise) SubScalar(s float64) Promise { return SubScalar(p, s) }
func (p Promise) MulScalar(s float64) Promise { return MulScalar(p, s) }
func (p Promise) DivScalar(s float64) Promise { return DivScalar(p, s) }

func (c CachedPromise) Add(other Operand) Promise { return Add(c, other) }
func (c CachedPromise) Sub(other Operand) Promise { return Sub(c, other) }
func (c CachedPromise) Mul(other Operand) Promise { return Mul(c, other) }
func (c CachedPromise) Div(other Operand) Promise { return Div(c, other) }

func (c CachedPromise) AddScalar(s float64) Promise { return AddScalar(c, s) }
func (c CachedPromise) SubScalar(s float64) Promise { return SubScalar(c, s) }
func (c CachedPromise) MulScalar(s float64) Promise { return MulScalar(c, s) }
func (c CachedPromise) DivScalar(s float64) Promise { return DivScalar(c, s) }
