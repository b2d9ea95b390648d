// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlp

import (
	"errors"
	"fmt"

	"github.com/emer/dqn/autograd"
)

// ErrShape is wrapped by all errors about mismatched widths
var ErrShape = errors.New("shape mismatch")

// Unit computes the weighted sum of its inputs plus a bias
type Unit struct {

	// one weight per input
	Wts []*autograd.Value

	// bias term
	Bias *autograd.Value
}

// NewUnit returns a new unit over nIn inputs, with weights and then the
// bias set by init
func NewUnit(nIn int, init Initializer) (*Unit, error) {
	if nIn < 1 {
		return nil, fmt.Errorf("mlp: unit needs at least 1 input, got %d: %w", nIn, ErrShape)
	}
	un := &Unit{Wts: make([]*autograd.Value, nIn)}
	for i := range un.Wts {
		un.Wts[i] = autograd.NewValue(init())
	}
	un.Bias = autograd.NewValue(init())
	return un, nil
}

// NIn returns the number of inputs
func (un *Unit) NIn() int { return len(un.Wts) }

// Forward returns sum_i Wts[i] * in[i] + Bias
func (un *Unit) Forward(in []*autograd.Value) (*autograd.Value, error) {
	if len(in) != len(un.Wts) {
		return nil, fmt.Errorf("mlp: unit input width: expected %d, got %d: %w", len(un.Wts), len(in), ErrShape)
	}
	prods := make([]*autograd.Value, len(in))
	for i, x := range in {
		prods[i] = x.Mul(un.Wts[i])
	}
	return autograd.Sum(prods).Add(un.Bias), nil
}

// Params returns the weights followed by the bias
func (un *Unit) Params() []*autograd.Value {
	ps := make([]*autograd.Value, 0, len(un.Wts)+1)
	ps = append(ps, un.Wts...)
	return append(ps, un.Bias)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Layer

// Layer is a set of units all receiving the same inputs
type Layer struct {

	// name of the layer
	Nm string

	// number of inputs to each unit
	NIn int

	// the units, one output each
	Units []*Unit
}

// NewLayer returns a new layer with nOut units over nIn inputs
func NewLayer(name string, nIn, nOut int, init Initializer) (*Layer, error) {
	if nOut < 1 {
		return nil, fmt.Errorf("mlp: layer %s needs at least 1 unit, got %d: %w", name, nOut, ErrShape)
	}
	ly := &Layer{Nm: name, NIn: nIn, Units: make([]*Unit, nOut)}
	for i := range ly.Units {
		un, err := NewUnit(nIn, init)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", name, err)
		}
		ly.Units[i] = un
	}
	return ly, nil
}

// NewLayerFromUnits returns a layer from existing units, which must all
// have the same number of inputs
func NewLayerFromUnits(name string, units []*Unit) (*Layer, error) {
	if len(units) == 0 {
		return nil, fmt.Errorf("mlp: layer %s has no units: %w", name, ErrShape)
	}
	nIn := units[0].NIn()
	for i, un := range units {
		if un.NIn() != nIn {
			return nil, fmt.Errorf("mlp: layer %s unit %d input width: expected %d, got %d: %w", name, i, nIn, un.NIn(), ErrShape)
		}
	}
	return &Layer{Nm: name, NIn: nIn, Units: units}, nil
}

// NOut returns the number of units
func (ly *Layer) NOut() int { return len(ly.Units) }

// Forward returns the output of each unit, in order
func (ly *Layer) Forward(in []*autograd.Value) ([]*autograd.Value, error) {
	if len(in) != ly.NIn {
		return nil, fmt.Errorf("mlp: layer %s input width: expected %d, got %d: %w", ly.Nm, ly.NIn, len(in), ErrShape)
	}
	out := make([]*autograd.Value, len(ly.Units))
	for i, un := range ly.Units {
		o, err := un.Forward(in)
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}

// Params returns the parameters of all units, in unit order
func (ly *Layer) Params() []*autograd.Value {
	ps := make([]*autograd.Value, 0, ly.NParams())
	for _, un := range ly.Units {
		ps = append(ps, un.Params()...)
	}
	return ps
}

// NParams returns the total number of weights and biases
func (ly *Layer) NParams() int {
	return len(ly.Units) * (ly.NIn + 1)
}
