// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autograd

import (
	"fmt"
	"math"
)

// Value is a single differentiable scalar in a computation graph.
// Val is the forward value, Grad the accumulated gradient of the output
// that Backward was last called on.  A and B point to the Values this one
// was computed from (B is nil for unary ops, both are nil for leaves).
// Parents are shared, not owned: one Value can feed many others.
type Value struct {

	// forward value -- parameters are updated in place through this field
	Val float64

	// accumulated gradient -- zero until a backward pass reaches this node
	Grad float64

	// operation that produced this value
	Op Ops

	// first operand, nil for leaves
	A *Value

	// second operand, only for binary ops
	B *Value

	// constant exponent, only for OpPow
	Exp float64
}

// NewValue returns a new leaf Value with no parents.
// Used for inputs, parameters and constants alike.
func NewValue(val float64) *Value {
	return &Value{Val: val}
}

// Parents returns the operands this value was computed from, in order
func (v *Value) Parents() []*Value {
	switch v.Op.NParents() {
	case 2:
		return []*Value{v.A, v.B}
	case 1:
		return []*Value{v.A}
	}
	return nil
}

// IsLeaf returns true if the value has no parents
func (v *Value) IsLeaf() bool {
	return v.Op == OpLeaf
}

func (v *Value) String() string {
	return fmt.Sprintf("Value(%s, val: %g, grad: %g)", v.Op, v.Val, v.Grad)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Ops

// Add returns v + o
func (v *Value) Add(o *Value) *Value {
	return &Value{Val: v.Val + o.Val, Op: OpAdd, A: v, B: o}
}

// AddScalar returns v + x, with x as a constant leaf
func (v *Value) AddScalar(x float64) *Value {
	return v.Add(NewValue(x))
}

// Neg returns -v, computed as v * -1
func (v *Value) Neg() *Value {
	return v.MulScalar(-1)
}

// Sub returns v - o, computed as v + (-o)
func (v *Value) Sub(o *Value) *Value {
	return v.Add(o.Neg())
}

// SubScalar returns v - x, with x as a constant leaf
func (v *Value) SubScalar(x float64) *Value {
	return v.Sub(NewValue(x))
}

// Mul returns v * o
func (v *Value) Mul(o *Value) *Value {
	return &Value{Val: v.Val * o.Val, Op: OpMul, A: v, B: o}
}

// MulScalar returns v * x, with x as a constant leaf
func (v *Value) MulScalar(x float64) *Value {
	return v.Mul(NewValue(x))
}

// Pow returns v ^ n for a constant exponent n.
// v = 0 with n < 1 gives Inf or NaN gradients, which are passed on as is.
func (v *Value) Pow(n float64) *Value {
	return &Value{Val: math.Pow(v.Val, n), Op: OpPow, A: v, Exp: n}
}

// Div returns v / o, computed as v * o^-1
func (v *Value) Div(o *Value) *Value {
	return v.Mul(o.Pow(-1))
}

// DivScalar returns v / x, with x as a constant leaf
func (v *Value) DivScalar(x float64) *Value {
	return v.Div(NewValue(x))
}

// Abs returns |v|.  The gradient sign is +1 for v > 0 and -1 otherwise:
// at exactly 0 the -1 branch is taken, a fixed tie-break convention.
func (v *Value) Abs() *Value {
	return &Value{Val: math.Abs(v.Val), Op: OpAbs, A: v}
}

// Sigmoid returns the logistic function 1 / (1 + e^-v)
func (v *Value) Sigmoid() *Value {
	return &Value{Val: 1 / (1 + math.Exp(-v.Val)), Op: OpSigmoid, A: v}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Helpers over slices

// Sum returns the sum of the given values, as a left-to-right chain of Add.
// An empty list sums to a constant 0.
func Sum(vs []*Value) *Value {
	if len(vs) == 0 {
		return NewValue(0)
	}
	sum := vs[0]
	for _, v := range vs[1:] {
		sum = sum.Add(v)
	}
	return sum
}

// Mean returns Sum(vs) / len(vs).  An empty list gives NaN.
func Mean(vs []*Value) *Value {
	return Sum(vs).DivScalar(float64(len(vs)))
}

// NewValues returns fresh leaves for each of the given numbers
func NewValues(xs []float64) []*Value {
	vs := make([]*Value, len(xs))
	for i, x := range xs {
		vs[i] = NewValue(x)
	}
	return vs
}

// Vals returns the forward values of the given nodes
func Vals(vs []*Value) []float64 {
	xs := make([]float64, len(vs))
	for i, v := range vs {
		xs[i] = v.Val
	}
	return xs
}
