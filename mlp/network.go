// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mlp

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/dqn/autograd"
)

// mlp.Network is a stack of fully-connected layers with an activation
// function applied after every layer
type Network struct {

	// name of the network
	Nm string

	// layer widths: Shape[0] inputs, then units per layer
	Shape []int

	// activation applied to each output of every layer
	Act ActFunc `json:"-"`

	// the layers, in forward order
	Layers []*Layer
}

// NewNetwork returns a new network with given shape: shape[0] is the
// input width and each following entry is the number of units in the next
// layer.  act defaults to Sigmoid if nil.
func NewNetwork(name string, shape []int, act ActFunc, init Initializer) (*Network, error) {
	if len(shape) < 2 {
		return nil, fmt.Errorf("mlp: network %s needs at least input and output widths, got shape %v: %w", name, shape, ErrShape)
	}
	nl := len(shape) - 1
	lays := make([]*Layer, nl)
	for li := 0; li < nl; li++ {
		lnm := fmt.Sprintf("Hidden%d", li+1)
		if li == nl-1 {
			lnm = "Output"
		}
		ly, err := NewLayer(lnm, shape[li], shape[li+1], init)
		if err != nil {
			return nil, fmt.Errorf("network %s: %w", name, err)
		}
		lays[li] = ly
	}
	return NewNetworkFromLayers(name, lays, act)
}

// NewNetworkFromLayers returns a network stacking the given layers, whose
// widths must line up: each layer's number of units must equal the number
// of inputs of the next one.
func NewNetworkFromLayers(name string, layers []*Layer, act ActFunc) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("mlp: network %s has no layers: %w", name, ErrShape)
	}
	if act == nil {
		act = Sigmoid
	}
	shape := []int{layers[0].NIn}
	for li, ly := range layers {
		if li > 0 && ly.NIn != layers[li-1].NOut() {
			return nil, fmt.Errorf("mlp: network %s layer %s input width: expected %d, got %d: %w", name, ly.Nm, layers[li-1].NOut(), ly.NIn, ErrShape)
		}
		shape = append(shape, ly.NOut())
	}
	return &Network{Nm: name, Shape: shape, Act: act, Layers: layers}, nil
}

// NIn returns the number of inputs
func (nt *Network) NIn() int { return nt.Shape[0] }

// NOut returns the number of outputs
func (nt *Network) NOut() int { return nt.Shape[len(nt.Shape)-1] }

// Forward wraps each input in a fresh leaf Value and runs it through all
// layers, applying Act after each one.  The returned outputs carry the full
// backward graph.
func (nt *Network) Forward(in []float64) ([]*autograd.Value, error) {
	if len(in) != nt.NIn() {
		return nil, fmt.Errorf("mlp: network %s input width: expected %d, got %d: %w", nt.Nm, nt.NIn(), len(in), ErrShape)
	}
	xs := autograd.NewValues(in)
	for _, ly := range nt.Layers {
		out, err := ly.Forward(xs)
		if err != nil {
			return nil, err
		}
		for i, o := range out {
			out[i] = nt.Act(o)
		}
		xs = out
	}
	return xs, nil
}

// Predict returns the forward values only
func (nt *Network) Predict(in []float64) ([]float64, error) {
	out, err := nt.Forward(in)
	if err != nil {
		return nil, err
	}
	return autograd.Vals(out), nil
}

// Params returns all weights and biases, layer by layer
func (nt *Network) Params() []*autograd.Value {
	ps := make([]*autograd.Value, 0, nt.NParams())
	for _, ly := range nt.Layers {
		ps = append(ps, ly.Params()...)
	}
	return ps
}

// NParams returns the total number of parameters
func (nt *Network) NParams() int {
	n := 0
	for _, ly := range nt.Layers {
		n += ly.NParams()
	}
	return n
}

// ZeroGrad sets the gradient of every parameter to 0.
// Must be called before each backward pass that is followed by an
// optimizer step.
func (nt *Network) ZeroGrad() {
	autograd.ZeroGrads(nt.Params())
}

// SameShape returns true if other has exactly the same layer widths
func (nt *Network) SameShape(other *Network) bool {
	if len(nt.Shape) != len(other.Shape) {
		return false
	}
	for i, w := range nt.Shape {
		if other.Shape[i] != w {
			return false
		}
	}
	return true
}

// CopyParamsFrom sets each parameter value to that of the parameter at the
// same index in src.  Only values are copied: the parameter nodes stay the
// same, and gradients are left untouched.
func (nt *Network) CopyParamsFrom(src *Network) error {
	if !nt.SameShape(src) {
		return fmt.Errorf("mlp: copy params from %s %v into %s %v: %w", src.Nm, src.Shape, nt.Nm, nt.Shape, ErrShape)
	}
	sps := src.Params()
	for i, p := range nt.Params() {
		p.Val = sps[i].Val
	}
	return nil
}

func (nt *Network) String() string {
	return fmt.Sprintf("%s: shape %v, %d params", nt.Nm, nt.Shape, nt.NParams())
}

// SizeReport returns a string reporting the size of each layer
// in the network, and total memory footprint of the parameters.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	psz := int(unsafe.Sizeof(autograd.Value{}))
	nunits := 0
	nparams := 0
	for _, ly := range nt.Layers {
		np := ly.NParams()
		nunits += ly.NOut()
		nparams += np
		fmt.Fprintf(&b, "%14s:\t Units: %d\t Inputs: %d\t Params: %d\t ParamMem: %v\n", ly.Nm, ly.NOut(), ly.NIn, np, (datasize.ByteSize)(np*psz).HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t Units: %d\t Params: %d\t ParamMem: %v\n", nt.Nm, nunits, nparams, (datasize.ByteSize)(nparams*psz).HumanReadable())
	return b.String()
}
