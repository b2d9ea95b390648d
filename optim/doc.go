// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package optim provides gradient-descent optimizers that update a fixed list
of autograd parameters in place, from the gradients left on them by the last
backward pass.

The parameter list is bound once at construction, and any per-parameter
state (e.g., the RMSProp running average of squared gradients) is kept in a
slice aligned with it.  Step does not zero gradients: callers do that
before each backward pass (see mlp.Network.ZeroGrad).
*/
package optim
