// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"fmt"

	"github.com/emer/emergent/v2/env"
	"github.com/emer/etable/v2/etensor"
)

// StepResult is the outcome of one environment step
type StepResult struct {

	// state after the step
	State []float64

	// reward for the step
	Reward float64

	// true if the episode ended
	Done bool
}

// Env is an episodic environment with a discrete action space
type Env interface {

	// Reset starts a new episode and returns the initial state
	Reset() ([]float64, error)

	// Step applies the action and advances one step
	Step(action int) (StepResult, error)
}

// EmerEnv adapts an emergent env.Env to Env.  The wrapped env must provide
// the float states named by StateElement, RewardElement and DoneElement
// (non-zero = done), and accept an int action under ActionElement.
// Reset calls Init, so each episode restarts the env.
type EmerEnv struct {

	// the wrapped environment
	Env env.Env

	// number of valid actions
	NActions int

	// run number passed to Init
	Run int

	// name of the state element with the observation
	StateElement string

	// name of the state element with the reward of the last step
	RewardElement string

	// name of the state element that is non-zero at episode end
	DoneElement string

	// name of the action element
	ActionElement string

	// action tensor passed to Action
	Act *etensor.Int
}

// NewEmerEnv returns an adapter for ev with the standard element names:
// State, Reward, Done and Action
func NewEmerEnv(ev env.Env, nActions int) *EmerEnv {
	return &EmerEnv{Env: ev, NActions: nActions, StateElement: "State", RewardElement: "Reward", DoneElement: "Done", ActionElement: "Action", Act: etensor.NewInt([]int{1}, nil, []string{"Action"})}
}

func (ee *EmerEnv) Reset() ([]float64, error) {
	if err := ee.Env.Validate(); err != nil {
		return nil, err
	}
	ee.Env.Init(ee.Run)
	return ee.state()
}

func (ee *EmerEnv) Step(action int) (StepResult, error) {
	if action < 0 || action >= ee.NActions {
		return StepResult{}, fmt.Errorf("rl: env %s: action %d out of range [0, %d)", ee.Env.Name(), action, ee.NActions)
	}
	ee.Act.Values[0] = action
	ee.Env.Action(ee.ActionElement, ee.Act)
	more := ee.Env.Step()
	st, err := ee.state()
	if err != nil {
		return StepResult{}, err
	}
	rew, err := ee.scalar(ee.RewardElement)
	if err != nil {
		return StepResult{}, err
	}
	done, err := ee.scalar(ee.DoneElement)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{State: st, Reward: rew, Done: done != 0 || !more}, nil
}

// state returns a copy of the observation tensor values
func (ee *EmerEnv) state() ([]float64, error) {
	tsr := ee.Env.State(ee.StateElement)
	if tsr == nil {
		return nil, fmt.Errorf("rl: env %s has no state element %q", ee.Env.Name(), ee.StateElement)
	}
	st := make([]float64, tsr.Len())
	for i := range st {
		st[i] = tsr.FloatVal1D(i)
	}
	return st, nil
}

func (ee *EmerEnv) scalar(element string) (float64, error) {
	tsr := ee.Env.State(element)
	if tsr == nil || tsr.Len() == 0 {
		return 0, fmt.Errorf("rl: env %s has no state element %q", ee.Env.Name(), element)
	}
	return tsr.FloatVal1D(0), nil
}
