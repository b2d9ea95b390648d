// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mlp provides a small fully-connected feed-forward network built
entirely from autograd Values, so that every output carries a backward
graph to all weights, biases and inputs.

The hierarchy is Unit (weighted sum plus bias), Layer (list of Units over
the same inputs) and Network (stack of Layers, with an activation function
applied to the output of every layer, including the last).

Parameters are created once by an Initializer and then only have their Val
changed in place (by an optimizer or by CopyParamsFrom), so the slice
returned by Params keeps pointing at the live parameters for the lifetime
of the network.  The order of Params is fixed: for each layer, for each
unit, the weights in input order followed by the bias.  Two networks of the
same Shape therefore line up index for index.
*/
package mlp
