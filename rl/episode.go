// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rl

// EpisodeStats summarizes one episode
type EpisodeStats struct {

	// episode number
	Episode int

	// sum of rewards
	Score float64

	// number of steps taken
	Steps int

	// exploration threshold of the last action, 0 for greedy episodes
	Epsilon float64
}

// RunEpisode runs one episode of ev until done, or Params.MaxSteps if > 0.
// If explore, actions are epsilon-greedy with the schedule at step =
// episode, and every transition is recorded in the buffer.  Otherwise
// actions are greedy and nothing is recorded.  Training is left to
// EndEpisode.
func RunEpisode(ag *Agent, ev Env, episode int, explore bool) (EpisodeStats, error) {
	es := EpisodeStats{Episode: episode}
	state, err := ev.Reset()
	if err != nil {
		return es, err
	}
	for ag.Params.MaxSteps <= 0 || es.Steps < ag.Params.MaxSteps {
		var act int
		if explore {
			act, err = ag.SelectAction(state, episode)
			es.Epsilon = ag.Epsilon
		} else {
			act, err = ag.Greedy(state)
		}
		if err != nil {
			return es, err
		}
		res, err := ev.Step(act)
		if err != nil {
			return es, err
		}
		if explore {
			ag.Record(Transition{State: state, Action: act, Reward: res.Reward, Next: res.State, Done: res.Done})
		}
		es.Score += res.Reward
		es.Steps++
		state = res.State
		if res.Done {
			break
		}
	}
	return es, nil
}
