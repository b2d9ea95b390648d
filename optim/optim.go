// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optim

import (
	"fmt"

	"github.com/emer/dqn/autograd"
)

// Optimizer updates its parameters from their current gradients
type Optimizer interface {

	// Step applies one update to every parameter, using its Grad
	Step()

	// Reset clears any accumulated state, keeping the parameter values
	Reset()

	// Name returns the optimizer name, as used in configs
	Name() string
}

// New returns the optimizer of given name ("RMSProp" or "SGD") over the
// given parameters, with default params and learning rate lr
func New(name string, params []*autograd.Value, lr float64) (Optimizer, error) {
	switch name {
	case "RMSProp":
		return NewRMSProp(params, lr), nil
	case "SGD":
		return NewSGD(params, lr), nil
	}
	return nil, fmt.Errorf("optim: optimizer %q not found", name)
}

//////////////////////////////////////////////////////////////////////////////////////
//  SGD

// SGD is plain stochastic gradient descent: v -= LRate * g
type SGD struct {

	// learning rate
	LRate float64

	// parameters updated by Step
	Params []*autograd.Value
}

// NewSGD returns a new SGD optimizer over given parameters
func NewSGD(params []*autograd.Value, lr float64) *SGD {
	return &SGD{LRate: lr, Params: params}
}

func (sg *SGD) Step() {
	for _, p := range sg.Params {
		p.Val -= sg.LRate * p.Grad
	}
}

// Reset is a no-op: SGD has no state
func (sg *SGD) Reset() {}

func (sg *SGD) Name() string { return "SGD" }
