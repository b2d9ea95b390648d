// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dqn is the overall repository for a small Deep Q-Network learning
stack built on a scalar reverse-mode automatic differentiation engine,
implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* autograd: the scalar computation graph.  Each Value records the operation
and operands that produced it, and Backward accumulates gradients into every
node reachable from an output.

* mlp: fully-connected multilayer perceptrons built from autograd Values,
with a stable parameter order shared by all networks of the same shape.

* optim: RMSProp and SGD optimizers updating parameters in place.

* rl: the DQN agent, with replay buffer, target network, epsilon-greedy
exploration and Huber loss, plus an adapter for emergent env.Env
environments.

* examples: these actually compile into runnable programs.  examples/car
trains an agent to drive a car around a track from three distance sensors.
*/
package dqn
