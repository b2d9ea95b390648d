// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/dqn/autograd"
	"github.com/emer/emergent/v2/env"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etensor"
)

const difTol = 1.0e-12

func testParams() Params {
	var pr Params
	pr.Defaults()
	pr.BufferSize = 100
	pr.BatchSize = 8
	pr.Epochs = 2
	pr.MinBuffer = 5
	pr.SyncInterval = 3
	return pr
}

func TestHuber(t *testing.T) {
	tests := []struct {
		pred, targ, loss, grad float64
	}{
		{0.5, 0, 0.125, 0.5},
		{0, 0.5, 0.125, -0.5},
		{2, 0, 1.5, 1},
		{-3, 0, 2.5, -1},
		{1.25, 1, 0.03125, 0.25},
	}
	for _, ts := range tests {
		pred := autograd.NewValue(ts.pred)
		loss := Huber(pred, autograd.NewValue(ts.targ))
		loss.Backward()
		if math.Abs(loss.Val-ts.loss) > difTol {
			t.Errorf("huber(%v, %v): %v != %v", ts.pred, ts.targ, loss.Val, ts.loss)
		}
		if math.Abs(pred.Grad-ts.grad) > difTol {
			t.Errorf("huber(%v, %v) grad: %v != %v", ts.pred, ts.targ, pred.Grad, ts.grad)
		}
	}
	// continuous at |d| = 1
	below := Huber(autograd.NewValue(1-1e-9), autograd.NewValue(0)).Val
	at := Huber(autograd.NewValue(1), autograd.NewValue(0)).Val
	if math.Abs(below-0.5) > 1e-6 || math.Abs(at-0.5) > difTol {
		t.Errorf("huber not continuous at 1: %v, %v", below, at)
	}
}

func TestTDTarget(t *testing.T) {
	if v := TDTarget(1, 2, 0.5, false); v != 2 {
		t.Errorf("not done: %v != 2", v)
	}
	if v := TDTarget(-10, 2, 0.5, true); v != -10 {
		t.Errorf("done: %v != -10", v)
	}
	if v := TDTarget(1, math.NaN(), 0.5, true); !math.IsNaN(v) {
		t.Errorf("NaN future value should propagate: %v", v)
	}
}

func TestReplayBuffer(t *testing.T) {
	if _, err := NewReplayBuffer(0); err == nil {
		t.Errorf("expected error for zero capacity")
	}
	rb, _ := NewReplayBuffer(3)
	st := []float64{0}
	for i := 0; i < 4; i++ {
		st[0] = float64(i)
		rb.Add(Transition{State: st, Action: i, Next: st})
	}
	if rb.Len() != 3 {
		t.Fatalf("len: %d != 3", rb.Len())
	}
	for i := 0; i < 3; i++ {
		tr := rb.At(i)
		if tr.Action != i+1 {
			t.Errorf("at %d: action %d != %d", i, tr.Action, i+1)
		}
		if tr.State[0] != float64(i+1) {
			t.Errorf("at %d: state %v not copied", i, tr.State)
		}
	}
	rb.Add(Transition{Action: 4})
	rb.Add(Transition{Action: 5})
	for i := 0; i < 3; i++ {
		if a := rb.At(i).Action; a != i+3 {
			t.Errorf("after wrap at %d: action %d != %d", i, a, i+3)
		}
	}

	rnd := erand.NewSysRand(1)
	batch, err := rb.Sample(rnd, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 10 {
		t.Errorf("batch len: %d", len(batch))
	}
	for _, tr := range batch {
		if tr.Action < 3 || tr.Action > 5 {
			t.Errorf("sampled evicted transition: %d", tr.Action)
		}
	}

	empty, _ := NewReplayBuffer(3)
	if _, err := empty.Sample(rnd, 1); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected empty buffer error: %v", err)
	}
}

func TestSampleSeeded(t *testing.T) {
	b1, _ := NewReplayBuffer(10)
	b2, _ := NewReplayBuffer(10)
	for i := 0; i < 10; i++ {
		tr := Transition{State: []float64{float64(i)}, Action: i % 2, Reward: float64(i), Next: []float64{float64(i + 1)}}
		b1.Add(tr)
		b2.Add(tr)
	}
	s1, err := b1.Sample(erand.NewSysRand(11), 50)
	if err != nil {
		t.Fatal(err)
	}
	s2, _ := b2.Sample(erand.NewSysRand(11), 50)
	seen := make(map[float64]bool)
	for i := range s1 {
		if s1[i].Reward != s2[i].Reward {
			t.Fatalf("same seed gave different samples at %d: %v != %v", i, s1[i].Reward, s2[i].Reward)
		}
		seen[s1[i].Reward] = true
	}
	if len(seen) < 5 {
		t.Errorf("50 samples drew only %d distinct transitions", len(seen))
	}
}

func TestEpsilon(t *testing.T) {
	var ep EpsilonParams
	ep.Defaults()
	if v := ep.Epsilon(0); math.Abs(v-0.2) > difTol {
		t.Errorf("start: %v", v)
	}
	prv := ep.Epsilon(0)
	for s := 1; s < 3000; s++ {
		v := ep.Epsilon(s)
		if v > prv {
			t.Fatalf("epsilon increased at step %d: %v > %v", s, v, prv)
		}
		if v < ep.End {
			t.Fatalf("epsilon below end at step %d: %v", s, v)
		}
		prv = v
	}
	if math.Abs(prv-0.001) > 1e-6 {
		t.Errorf("end: %v", prv)
	}
}

func TestSyncTarget(t *testing.T) {
	ag, err := NewAgent(2, 3, testParams(), erand.NewSysRand(2))
	if err != nil {
		t.Fatal(err)
	}
	tps := ag.Target.Params()
	for i, p := range ag.Online.Params() {
		if p.Val != tps[i].Val {
			t.Fatalf("target not synced at construction, param %d", i)
		}
	}
	before := autograd.Vals(tps)

	for i := 0; i < 10; i++ {
		ag.Record(Transition{State: []float64{float64(i), 1}, Action: i % 3, Reward: 1, Next: []float64{1, 0}})
	}
	if _, err := ag.Train(); err != nil {
		t.Fatal(err)
	}
	changed := false
	for i, p := range ag.Online.Params() {
		if tps[i].Val != before[i] {
			t.Errorf("target param %d changed by training", i)
		}
		if p.Val != before[i] {
			changed = true
		}
		if tps[i].Grad != 0 {
			t.Errorf("target param %d received gradient", i)
		}
	}
	if !changed {
		t.Errorf("training did not change the online network")
	}

	if err := ag.SyncTarget(); err != nil {
		t.Fatal(err)
	}
	for i, p := range ag.Online.Params() {
		if p.Val != tps[i].Val {
			t.Errorf("param %d not equal after sync", i)
		}
	}
}

func TestTrainEmpty(t *testing.T) {
	ag, _ := NewAgent(2, 3, testParams(), erand.NewSysRand(3))
	if _, err := ag.Train(); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected empty buffer error: %v", err)
	}
	if _, err := ag.TrainBatch(nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("expected empty buffer error for empty batch: %v", err)
	}
	if _, err := ag.TrainBatch([]Transition{{State: []float64{0, 0}, Action: 3, Next: []float64{0, 0}}}); err == nil {
		t.Errorf("expected error for out of range action")
	}
}

func TestSelectAction(t *testing.T) {
	pr := testParams()
	a1, _ := NewAgent(3, 3, pr, erand.NewSysRand(7))
	a2, _ := NewAgent(3, 3, pr, erand.NewSysRand(7))
	st := []float64{0.1, 0.5, 0.9}
	for s := 0; s < 50; s++ {
		x1, err := a1.SelectAction(st, s)
		if err != nil {
			t.Fatal(err)
		}
		x2, _ := a2.SelectAction(st, s)
		if x1 != x2 {
			t.Fatalf("same seed gave different actions at step %d: %d != %d", s, x1, x2)
		}
	}

	// epsilon 0 is always greedy
	pr.Eps.Start, pr.Eps.End = 0, 0
	gr, _ := NewAgent(3, 3, pr, erand.NewSysRand(8))
	best, _ := gr.Greedy(st)
	for s := 0; s < 20; s++ {
		if a, _ := gr.SelectAction(st, s); a != best {
			t.Errorf("epsilon 0 should be greedy: %d != %d", a, best)
		}
	}

	// epsilon 1 is always random
	pr.Eps.Start, pr.Eps.End = 1, 1
	rn, _ := NewAgent(3, 3, pr, erand.NewSysRand(9))
	counts := make([]int, 3)
	for s := 0; s < 3000; s++ {
		a, _ := rn.SelectAction(st, s)
		counts[a]++
	}
	for a, n := range counts {
		if n < 850 || n > 1150 {
			t.Errorf("random action %d chosen %d of 3000 times, not uniform: %v", a, n, counts)
		}
	}
	if rn.Epsilon != 1 {
		t.Errorf("epsilon not recorded: %v", rn.Epsilon)
	}
}

func TestEndEpisode(t *testing.T) {
	ag, _ := NewAgent(1, 2, testParams(), erand.NewSysRand(4))
	for i := 0; i < 4; i++ {
		ag.Record(Transition{State: []float64{0}, Action: 0, Next: []float64{0}})
	}
	trained, _, err := ag.EndEpisode(1)
	if err != nil || trained {
		t.Errorf("should not train below MinBuffer: %v %v", trained, err)
	}
	ag.Record(Transition{State: []float64{0}, Action: 1, Reward: 1, Next: []float64{0}, Done: true})
	trained, loss, err := ag.EndEpisode(2)
	if err != nil || !trained {
		t.Fatalf("should train at MinBuffer: %v %v", trained, err)
	}
	if loss != ag.Loss || loss <= 0 {
		t.Errorf("loss: %v, agent loss %v", loss, ag.Loss)
	}
	// not a sync episode: target lags online
	tps := ag.Target.Params()
	same := true
	for i, p := range ag.Online.Params() {
		if p.Val != tps[i].Val {
			same = false
		}
	}
	if same {
		t.Errorf("target synced on a non-sync episode")
	}
	if _, _, err := ag.EndEpisode(3); err != nil {
		t.Fatal(err)
	}
	for i, p := range ag.Online.Params() {
		if p.Val != tps[i].Val {
			t.Errorf("param %d not synced at episode 3", i)
		}
	}
}

// banditEnv is a one-step env where action 1 pays 1 and action 0 pays 0
type banditEnv struct {
	resets int
}

func (be *banditEnv) Reset() ([]float64, error) {
	be.resets++
	return []float64{1}, nil
}

func (be *banditEnv) Step(action int) (StepResult, error) {
	return StepResult{State: []float64{0}, Reward: float64(action), Done: true}, nil
}

func TestLearnBandit(t *testing.T) {
	pr := testParams()
	pr.Hidden = []int{4}
	pr.LRate = 0.05
	pr.BatchSize = 16
	pr.Epochs = 10
	pr.MinBuffer = 1
	pr.Eps.Start, pr.Eps.End = 1, 1
	ag, err := NewAgent(1, 2, pr, erand.NewSysRand(5))
	if err != nil {
		t.Fatal(err)
	}
	be := &banditEnv{}
	for ep := 0; ep < 50; ep++ {
		es, err := RunEpisode(ag, be, ep, true)
		if err != nil {
			t.Fatal(err)
		}
		if es.Steps != 1 {
			t.Fatalf("bandit episode steps: %d", es.Steps)
		}
		if _, _, err := ag.EndEpisode(ep); err != nil {
			t.Fatal(err)
		}
	}
	q, _ := ag.Online.Predict([]float64{1})
	if q[1] <= q[0] {
		t.Errorf("rewarded action should have higher value: %v", q)
	}
	es, _ := RunEpisode(ag, be, 50, false)
	if es.Score != 1 {
		t.Errorf("greedy episode should pick the rewarded action: score %v", es.Score)
	}
	if ag.Buffer.Len() != 50 {
		t.Errorf("greedy episode should not record: len %d", ag.Buffer.Len())
	}
}

// walkEnv moves a position by action - 1 and never ends
type walkEnv struct {
	pos float64
}

func (we *walkEnv) Reset() ([]float64, error) {
	we.pos = 0
	return []float64{we.pos}, nil
}

func (we *walkEnv) Step(action int) (StepResult, error) {
	we.pos += float64(action - 1)
	return StepResult{State: []float64{we.pos}, Reward: 0.5}, nil
}

func TestRunEpisodeMaxSteps(t *testing.T) {
	pr := testParams()
	pr.MaxSteps = 7
	ag, _ := NewAgent(1, 3, pr, erand.NewSysRand(6))
	es, err := RunEpisode(ag, &walkEnv{}, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if es.Steps != 7 || math.Abs(es.Score-3.5) > difTol || es.Episode != 4 {
		t.Errorf("episode stats: %+v", es)
	}
	if es.Epsilon != pr.Eps.Epsilon(4) {
		t.Errorf("episode epsilon: %v", es.Epsilon)
	}
	// each recorded next state is the following state
	for i := 0; i+1 < ag.Buffer.Len(); i++ {
		if ag.Buffer.At(i).Next[0] != ag.Buffer.At(i+1).State[0] {
			t.Errorf("transition %d next state does not chain", i)
		}
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  EmerEnv

// countEnv is an emergent env whose state counts steps, with reward equal
// to the last action and done after Max steps
type countEnv struct {
	Max    int
	Obs    etensor.Float64
	Rew    etensor.Float64
	Done   etensor.Float64
	Act    int
	Trial  env.Ctr
	Inited int
}

func (ev *countEnv) Name() string { return "Count" }
func (ev *countEnv) Desc() string { return "counts steps" }

func (ev *countEnv) Validate() error {
	if ev.Max == 0 {
		return errors.New("countEnv: Max == 0")
	}
	return nil
}

func (ev *countEnv) Init(run int) {
	ev.Obs.SetShape([]int{2}, nil, nil)
	ev.Rew.SetShape([]int{1}, nil, nil)
	ev.Done.SetShape([]int{1}, nil, nil)
	ev.Trial.Scale = env.Trial
	ev.Trial.Init()
	ev.Obs.Values[0] = 0
	ev.Obs.Values[1] = 1
	ev.Done.Values[0] = 0
	ev.Inited++
}

func (ev *countEnv) Step() bool {
	ev.Trial.Incr()
	ev.Obs.Values[0] = float64(ev.Trial.Cur)
	ev.Rew.Values[0] = float64(ev.Act)
	if ev.Trial.Cur >= ev.Max {
		ev.Done.Values[0] = 1
	}
	return true
}

func (ev *countEnv) State(element string) etensor.Tensor {
	switch element {
	case "State":
		return &ev.Obs
	case "Reward":
		return &ev.Rew
	case "Done":
		return &ev.Done
	}
	return nil
}

func (ev *countEnv) Action(element string, input etensor.Tensor) {
	if element == "Action" {
		ev.Act = int(input.FloatVal1D(0))
	}
}

func (ev *countEnv) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	if scale == env.Trial {
		return ev.Trial.Query()
	}
	return -1, -1, false
}

var _ env.Env = (*countEnv)(nil)

func TestEmerEnv(t *testing.T) {
	ce := &countEnv{Max: 3}
	ee := NewEmerEnv(ce, 2)
	st, err := ee.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if len(st) != 2 || st[0] != 0 || st[1] != 1 || ce.Inited != 1 {
		t.Errorf("reset state: %v, inited %d", st, ce.Inited)
	}
	for i := 1; i <= 3; i++ {
		res, err := ee.Step(1)
		if err != nil {
			t.Fatal(err)
		}
		if res.State[0] != float64(i) || res.Reward != 1 {
			t.Errorf("step %d: %+v", i, res)
		}
		if res.Done != (i == 3) {
			t.Errorf("step %d done: %v", i, res.Done)
		}
	}
	if _, err := ee.Step(2); err == nil {
		t.Errorf("expected error for out of range action")
	}
	if _, err := NewEmerEnv(&countEnv{}, 2).Reset(); err == nil {
		t.Errorf("expected validation error")
	}
	ee.StateElement = "Missing"
	if _, err := ee.Reset(); err == nil {
		t.Errorf("expected missing element error")
	}
}
