// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package autograd is a minimal reverse-mode automatic differentiation engine
operating on individual scalar values.

Each Value records the operation that produced it (one of the Ops enum)
and pointers to the Values it was computed from, so that a forward
computation builds a directed acyclic graph.  Calling Backward on an output
Value walks that graph in reverse topological order and accumulates the
gradient of the output into the Grad field of every ancestor.

* `value.go` has the Value type and the differentiable operations:
  Add, Sub, Neg, Mul, Div, Pow, Abs and Sigmoid, with `*Scalar` variants
  that promote a plain number to a constant leaf.

* `ops.go` defines the Ops enum used to dispatch the local derivative
  rules in a single switch.

* `backward.go` has the topological sort and the backward pass.

Gradients are summed into Grad, never overwritten, so a Value used in more
than one place receives the total of all downstream contributions.  This
also means gradients carry over between passes: call ZeroGrads (or
mlp.Network.ZeroGrad) on the parameters before each backward pass.

Numerical degeneracy (division by zero, overflow, 0 to a negative power)
is not trapped: it shows up as NaN or Inf values and gradients.
*/
package autograd
