// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"errors"
	"fmt"

	"github.com/emer/emergent/v2/erand"
)

// ErrEmptyBuffer is returned when sampling or training with no transitions
var ErrEmptyBuffer = errors.New("replay buffer is empty")

// Transition is one recorded environment step
type Transition struct {

	// state the action was taken in
	State []float64

	// action taken
	Action int

	// reward received for the step
	Reward float64

	// state after the step
	Next []float64

	// true if the step ended the episode
	Done bool
}

// ReplayBuffer holds the most recent transitions, up to a fixed capacity.
// When full, each new transition evicts the oldest one.
type ReplayBuffer struct {

	// maximum number of transitions held
	Capacity int

	// transitions, in ring order once full
	Trans []Transition

	// index in Trans of the oldest transition
	Start int
}

// NewReplayBuffer returns a new empty buffer with given capacity
func NewReplayBuffer(capacity int) (*ReplayBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("rl: replay buffer capacity must be positive, got %d", capacity)
	}
	return &ReplayBuffer{Capacity: capacity, Trans: make([]Transition, 0, capacity)}, nil
}

// Len returns the number of transitions held
func (rb *ReplayBuffer) Len() int { return len(rb.Trans) }

// Add records a copy of the transition, evicting the oldest if full.
// The state vectors are copied so later changes by the caller do not
// affect the stored transition.
func (rb *ReplayBuffer) Add(tr Transition) {
	tr.State = append([]float64(nil), tr.State...)
	tr.Next = append([]float64(nil), tr.Next...)
	if len(rb.Trans) < rb.Capacity {
		rb.Trans = append(rb.Trans, tr)
		return
	}
	rb.Trans[rb.Start] = tr
	rb.Start = (rb.Start + 1) % rb.Capacity
}

// At returns the i-th transition, with 0 the oldest
func (rb *ReplayBuffer) At(i int) *Transition {
	return &rb.Trans[(rb.Start+i)%len(rb.Trans)]
}

// Sample returns n transitions drawn uniformly with replacement
func (rb *ReplayBuffer) Sample(rnd erand.Rand, n int) ([]Transition, error) {
	if len(rb.Trans) == 0 {
		return nil, ErrEmptyBuffer
	}
	batch := make([]Transition, n)
	for i := range batch {
		batch[i] = rb.Trans[rnd.Intn(len(rb.Trans), -1)]
	}
	return batch, nil
}
