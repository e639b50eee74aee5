package engine

import (
	"crowny/game"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal action.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) ChooseAction(_ *game.GameState, actions []game.Action) game.Action {
	return actions[a.rng.Intn(len(actions))]
}

// FirstAgent always plays the lowest action id.
type FirstAgent struct{}

func (FirstAgent) ChooseAction(_ *game.GameState, actions []game.Action) game.Action {
	return actions[0]
}
