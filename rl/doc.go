// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rl provides Deep Q-Network (DQN) reinforcement learning on top of
the mlp and optim packages.

* `dqn.go` defines the `Agent`, which owns an online Q network, a target
  network of the same shape, an optimizer over the online parameters and
  a replay buffer.  `EndEpisode` trains from the buffer once it holds
  enough transitions, and periodically syncs the target network.

* `td.go` computes temporal-differences targets r + gamma * max Q'(s'),
  with the future term dropped on terminal transitions, and the Huber
  (smooth L1) loss against them.  Targets are constants in the graph, so
  the target network never receives gradients.

* `buffer.go` is the fixed-capacity FIFO replay buffer, sampled uniformly
  with replacement.

* `epsilon.go` is the exponentially decaying epsilon-greedy schedule.

* `gym.go` defines the minimal `Env` interface used by `RunEpisode`, and
  `EmerEnv` which adapts any emergent `env.Env` to it.

Everything runs synchronously on one goroutine, and all randomness comes
from an injected erand.Rand.
*/
package rl
