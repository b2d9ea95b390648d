// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlp

import (
	"fmt"

	"github.com/emer/dqn/autograd"
	"github.com/emer/emergent/v2/erand"
)

// Initializer returns the initial value for each new parameter, called
// once per weight and bias in Params order
type Initializer func() float64

// NormalInit returns an Initializer drawing from a Gaussian with the given
// mean and standard deviation, using the given random source
func NormalInit(rnd erand.Rand, mean, std float64) Initializer {
	rp := erand.RndParams{Dist: erand.Gaussian, Mean: mean, Var: std}
	return func() float64 {
		return rp.Gen(-1, rnd)
	}
}

// UniformInit returns an Initializer drawing uniformly from [min, max)
func UniformInit(rnd erand.Rand, min, max float64) Initializer {
	return func() float64 {
		return min + (max-min)*rnd.Float64(-1)
	}
}

// ConstInit returns an Initializer that always returns c
func ConstInit(c float64) Initializer {
	return func() float64 { return c }
}

// SeqInit returns an Initializer that returns the given values in order,
// wrapping around at the end.  Useful for fully deterministic networks.
func SeqInit(vals ...float64) Initializer {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Activations

// ActFunc is an activation function applied to each output of a layer
type ActFunc func(x *autograd.Value) *autograd.Value

// Sigmoid is the logistic activation function
func Sigmoid(x *autograd.Value) *autograd.Value { return x.Sigmoid() }

// Identity passes the value through unchanged
func Identity(x *autograd.Value) *autograd.Value { return x }

// ActFuncs has the activation functions available by name, for configs
var ActFuncs = map[string]ActFunc{
	"Sigmoid":  Sigmoid,
	"Identity": Identity,
}

// ActFuncByName returns the activation function of given name
func ActFuncByName(name string) (ActFunc, error) {
	af, ok := ActFuncs[name]
	if !ok {
		return nil, fmt.Errorf("mlp: activation function %q not found", name)
	}
	return af, nil
}
