// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autograd

import (
	"github.com/goki/ki/kit"
)

// Ops are the operations that can produce a Value.
// Each op has a fixed local derivative rule applied by Value.backStep.
type Ops int32

//go:generate stringer -type=Ops

var KiT_Ops = kit.Enums.AddEnum(OpsN, false, nil)

func (ev Ops) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Ops) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// OpLeaf is an input, parameter or constant: no parents, nothing to propagate
	OpLeaf Ops = iota

	// OpAdd is A + B
	OpAdd

	// OpMul is A * B
	OpMul

	// OpPow is A ^ Exp, where Exp is a constant exponent
	OpPow

	// OpAbs is |A|
	OpAbs

	// OpSigmoid is the logistic function 1 / (1 + e^-A)
	OpSigmoid

	OpsN
)

// NParents returns the number of parent Values used by the op
func (ev Ops) NParents() int {
	switch ev {
	case OpAdd, OpMul:
		return 2
	case OpPow, OpAbs, OpSigmoid:
		return 1
	}
	return 0
}
