// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"github.com/emer/dqn/autograd"
	"gonum.org/v1/gonum/floats"
)

// TDTarget returns the temporal-differences target rew + gamma * maxQ,
// with the future term multiplied by 0 when done.  A non-finite maxQ
// propagates even when done.
func TDTarget(rew, maxQ, gamma float64, done bool) float64 {
	notDone := 1.0
	if done {
		notDone = 0
	}
	return rew + gamma*maxQ*notDone
}

// TDTarget returns the target for given transition, using the best
// action value of the target network in the next state
func (ag *Agent) TDTarget(tr *Transition) (float64, error) {
	q, err := ag.Target.Predict(tr.Next)
	if err != nil {
		return 0, err
	}
	return TDTarget(tr.Reward, floats.Max(q), ag.Params.Gamma, tr.Done), nil
}

// Huber returns the smooth L1 loss between pred and target:
// 0.5 * d^2 if |d| < 1, else |d| - 0.5, with d = pred - target
func Huber(pred, target *autograd.Value) *autograd.Value {
	d := pred.Sub(target)
	ad := d.Abs()
	if ad.Val < 1 {
		return d.Mul(d).MulScalar(0.5)
	}
	return ad.SubScalar(0.5)
}
