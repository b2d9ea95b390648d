// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autograd

import "math"

// Topo returns all values reachable from v through parent links, each once,
// in depth-first post-order: every value comes after all of its parents,
// so v itself is last.
func (v *Value) Topo() []*Value {
	var topo []*Value
	visited := make(map[*Value]bool)

	var build func(nd *Value)
	build = func(nd *Value) {
		if visited[nd] {
			return
		}
		visited[nd] = true
		for _, p := range nd.Parents() {
			build(p)
		}
		topo = append(topo, nd)
	}
	build(v)
	return topo
}

// OpCounts returns the number of values of each op in the graph of v
func (v *Value) OpCounts() map[Ops]int {
	cnt := make(map[Ops]int)
	for _, nd := range v.Topo() {
		cnt[nd.Op]++
	}
	return cnt
}

// Backward computes the gradient of v with respect to every value it
// depends on, adding into their Grad fields.  v.Grad is set to 1 and each
// node's local rule runs exactly once, output first.  No other Grad is
// reset: zero the parameters before calling, or the new gradients are
// added on top of the old ones.
func (v *Value) Backward() {
	topo := v.Topo()
	v.Grad = 1
	for i := len(topo) - 1; i >= 0; i-- {
		topo[i].backStep()
	}
}

// backStep adds this node's gradient, scaled by the local derivative of
// its op, into its parents
func (v *Value) backStep() {
	g := v.Grad
	switch v.Op {
	case OpAdd:
		v.A.Grad += g
		v.B.Grad += g
	case OpMul:
		v.A.Grad += v.B.Val * g
		v.B.Grad += v.A.Val * g
	case OpPow:
		v.A.Grad += v.Exp * math.Pow(v.A.Val, v.Exp-1) * g
	case OpAbs:
		sign := -1.0 // 0 counts as negative
		if v.A.Val > 0 {
			sign = 1
		}
		v.A.Grad += sign * g
	case OpSigmoid:
		v.A.Grad += g * v.Val * (1 - v.Val)
	}
}

// ZeroGrads sets the gradient of each of the given values to 0
func ZeroGrads(vs []*Value) {
	for _, v := range vs {
		v.Grad = 0
	}
}
