// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/dqn/autograd"
	"github.com/emer/dqn/mlp"
	"github.com/emer/dqn/optim"
	"github.com/emer/emergent/v2/erand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Params are the DQN learning parameters
type Params struct {

	// discount factor applied to the target network's next-state value
	Gamma float64 `default:"0.98" min:"0" max:"1"`

	// capacity of the replay buffer
	BufferSize int `default:"10000" min:"1"`

	// number of transitions sampled per training batch
	BatchSize int `default:"64" min:"1"`

	// number of batches trained at the end of each episode
	Epochs int `default:"20" min:"0"`

	// minimum number of buffered transitions before training starts
	MinBuffer int `default:"1000" min:"0"`

	// target network is synced every SyncInterval episodes -- 0 disables
	SyncInterval int `default:"10" min:"0"`

	// optimizer learning rate
	LRate float64 `default:"0.01"`

	// number of units in each hidden layer of the Q network
	Hidden []int

	// name of the activation function applied after every layer
	Act string `default:"Sigmoid"`

	// name of the optimizer: RMSProp or SGD
	Opt string `default:"RMSProp"`

	// maximum number of steps per episode -- 0 = until done
	MaxSteps int `default:"0" min:"0"`

	// standard deviation of the Gaussian initial weights, with mean 0
	WtStd float64 `default:"1" min:"0"`

	// epsilon-greedy exploration schedule
	Eps EpsilonParams `view:"inline"`
}

func (pr *Params) Defaults() {
	pr.Gamma = 0.98
	pr.BufferSize = 10000
	pr.BatchSize = 64
	pr.Epochs = 20
	pr.MinBuffer = 1000
	pr.SyncInterval = 10
	pr.LRate = 0.01
	pr.Hidden = []int{5, 5}
	pr.Act = "Sigmoid"
	pr.Opt = "RMSProp"
	pr.MaxSteps = 0
	pr.WtStd = 1
	pr.Eps.Defaults()
}

// Agent is a DQN agent: an online Q network trained toward targets from a
// periodically synced copy of itself, on transitions replayed from a
// buffer
type Agent struct {

	// learning parameters
	Params Params

	// number of discrete actions, = number of Q network outputs
	NActions int

	// Q network that selects actions and is trained
	Online *mlp.Network

	// copy of Online providing TD targets, updated only by SyncTarget
	Target *mlp.Network

	// optimizer over the Online parameters
	Opt optim.Optimizer

	// recorded transitions
	Buffer *ReplayBuffer

	// random source for initial weights, exploration and sampling
	Rand erand.Rand

	// exploration threshold used by the last SelectAction
	Epsilon float64

	// mean loss of the last Train
	Loss float64
}

// NewAgent returns a new agent for states of width nIn and nActions
// discrete actions, with the target network synced to the online one
func NewAgent(nIn, nActions int, pars Params, rnd erand.Rand) (*Agent, error) {
	act, err := mlp.ActFuncByName(pars.Act)
	if err != nil {
		return nil, err
	}
	shape := append([]int{nIn}, pars.Hidden...)
	shape = append(shape, nActions)
	init := mlp.NormalInit(rnd, 0, pars.WtStd)
	online, err := mlp.NewNetwork("Online", shape, act, init)
	if err != nil {
		return nil, err
	}
	target, err := mlp.NewNetwork("Target", shape, act, init)
	if err != nil {
		return nil, err
	}
	opt, err := optim.New(pars.Opt, online.Params(), pars.LRate)
	if err != nil {
		return nil, err
	}
	buf, err := NewReplayBuffer(pars.BufferSize)
	if err != nil {
		return nil, err
	}
	ag := &Agent{Params: pars, NActions: nActions, Online: online, Target: target, Opt: opt, Buffer: buf, Rand: rnd}
	if err := ag.SyncTarget(); err != nil {
		return nil, err
	}
	return ag, nil
}

// Greedy returns the action with the highest online Q value,
// the first one on ties
func (ag *Agent) Greedy(state []float64) (int, error) {
	q, err := ag.Online.Predict(state)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(q), nil
}

// SelectAction returns an epsilon-greedy action: greedy if a uniform draw
// exceeds Params.Eps.Epsilon(step), otherwise uniformly random
func (ag *Agent) SelectAction(state []float64, step int) (int, error) {
	ag.Epsilon = ag.Params.Eps.Epsilon(step)
	if ag.Rand.Float64(-1) > ag.Epsilon {
		return ag.Greedy(state)
	}
	return ag.Rand.Intn(ag.NActions, -1), nil
}

// Record adds a transition to the replay buffer
func (ag *Agent) Record(tr Transition) {
	ag.Buffer.Add(tr)
}

// TrainBatch does one optimizer step on the mean Huber loss of the online
// Q value of each taken action against its TD target, and returns the loss
func (ag *Agent) TrainBatch(batch []Transition) (float64, error) {
	if len(batch) == 0 {
		return 0, fmt.Errorf("rl: train on empty batch: %w", ErrEmptyBuffer)
	}
	losses := make([]*autograd.Value, len(batch))
	for i := range batch {
		tr := &batch[i]
		if tr.Action < 0 || tr.Action >= ag.NActions {
			return 0, fmt.Errorf("rl: transition action %d out of range [0, %d)", tr.Action, ag.NActions)
		}
		q, err := ag.Online.Forward(tr.State)
		if err != nil {
			return 0, err
		}
		targ, err := ag.TDTarget(tr)
		if err != nil {
			return 0, err
		}
		losses[i] = Huber(q[tr.Action], autograd.NewValue(targ))
	}
	loss := autograd.Mean(losses)
	ag.Online.ZeroGrad()
	loss.Backward()
	ag.Opt.Step()
	return loss.Val, nil
}

// Train runs Params.Epochs batches of Params.BatchSize transitions sampled
// from the buffer, and returns the mean batch loss
func (ag *Agent) Train() (float64, error) {
	if ag.Buffer.Len() == 0 {
		return 0, ErrEmptyBuffer
	}
	if ag.Params.Epochs < 1 {
		return 0, nil
	}
	losses := make([]float64, ag.Params.Epochs)
	for ep := range losses {
		batch, err := ag.Buffer.Sample(ag.Rand, ag.Params.BatchSize)
		if err != nil {
			return 0, err
		}
		losses[ep], err = ag.TrainBatch(batch)
		if err != nil {
			return 0, err
		}
	}
	ag.Loss = stat.Mean(losses, nil)
	return ag.Loss, nil
}

// SyncTarget copies the online parameter values into the target network
func (ag *Agent) SyncTarget() error {
	return ag.Target.CopyParamsFrom(ag.Online)
}

// EndEpisode is called after each episode: it trains if the buffer holds
// at least Params.MinBuffer transitions, then syncs the target network if
// episode is a multiple of Params.SyncInterval
func (ag *Agent) EndEpisode(episode int) (trained bool, loss float64, err error) {
	if ag.Buffer.Len() > 0 && ag.Buffer.Len() >= ag.Params.MinBuffer {
		loss, err = ag.Train()
		if err != nil {
			return false, 0, err
		}
		trained = true
	}
	if ag.Params.SyncInterval > 0 && episode%ag.Params.SyncInterval == 0 {
		err = ag.SyncTarget()
	}
	return
}
