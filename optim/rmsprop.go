// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optim

import (
	"math"

	"github.com/emer/dqn/autograd"
)

// RMSPropParams are the RMSProp learning parameters
type RMSPropParams struct {

	// learning rate
	LRate float64 `default:"0.01"`

	// decay rate of the running average of squared gradients
	Beta float64 `default:"0.9" min:"0" max:"1"`

	// added to the root of the running average to avoid division by zero
	Eps float64 `default:"1e-8"`
}

func (rp *RMSPropParams) Defaults() {
	rp.LRate = 0.01
	rp.Beta = 0.9
	rp.Eps = 1e-8
}

// RMSProp scales each parameter's step by the root of a running average of
// its squared gradients:
//
//	acc = Beta * acc + (1 - Beta) * g^2
//	v  -= LRate * g / (sqrt(acc) + Eps)
//
// A zero gradient leaves the value unchanged.
type RMSProp struct {
	RMSPropParams

	// parameters updated by Step
	Params []*autograd.Value

	// running average of squared gradients, one per parameter
	Acc []float64
}

// NewRMSProp returns a new RMSProp optimizer over given parameters, with
// default Beta and Eps
func NewRMSProp(params []*autograd.Value, lr float64) *RMSProp {
	rm := &RMSProp{Params: params, Acc: make([]float64, len(params))}
	rm.Defaults()
	rm.LRate = lr
	return rm
}

func (rm *RMSProp) Step() {
	for i, p := range rm.Params {
		g := p.Grad
		rm.Acc[i] = rm.Beta*rm.Acc[i] + (1-rm.Beta)*g*g
		p.Val -= rm.LRate * g / (math.Sqrt(rm.Acc[i]) + rm.Eps)
	}
}

// Reset zeroes the running averages
func (rm *RMSProp) Reset() {
	for i := range rm.Acc {
		rm.Acc[i] = 0
	}
}

func (rm *RMSProp) Name() string { return "RMSProp" }
