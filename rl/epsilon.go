// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import "math"

// EpsilonParams is the exploration schedule: the probability of a random
// action decays exponentially from Start toward End
type EpsilonParams struct {

	// exploration probability at step 0
	Start float64 `default:"0.2" min:"0" max:"1"`

	// asymptotic exploration probability
	End float64 `default:"0.001" min:"0" max:"1"`

	// time constant of the decay, in steps
	Decay float64 `default:"200" min:"1"`
}

func (ep *EpsilonParams) Defaults() {
	ep.Start = 0.2
	ep.End = 0.001
	ep.Decay = 200
}

// Epsilon returns End + (Start - End) * exp(-step / Decay)
func (ep *EpsilonParams) Epsilon(step int) float64 {
	return ep.End + (ep.Start-ep.End)*math.Exp(-float64(step)/ep.Decay)
}
