package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// NumNonDoubleOutcomes is the number of unordered rolls with two distinct faces.
const NumNonDoubleOutcomes = 15

// chanceOutcomeValues lists the 21 rolls: the 15 non-doubles first, then the 6 doubles.
var chanceOutcomeValues = [NumChanceOutcomes][2]int{
	{1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {2, 3}, {2, 4},
	{2, 5}, {2, 6}, {3, 4}, {3, 5}, {3, 6}, {4, 5}, {4, 6},
	{5, 6}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6},
}

type ChanceOutcome struct {
	Action      Action
	Probability float64
}

// NormalOutcomes is the distribution of a regular roll: each non-double comes up
// twice as often as each double.
func NormalOutcomes() []ChanceOutcome {
	outcomes := make([]ChanceOutcome, NumChanceOutcomes)
	for i := range outcomes {
		p := 1.0 / 18
		if i >= NumNonDoubleOutcomes {
			p = 1.0 / 36
		}
		outcomes[i] = ChanceOutcome{Action: Action(i), Probability: p}
	}
	return outcomes
}

// OpeningOutcomes decides who starts together with the starter's first roll.
// Doubles are not possible. Outcomes below 15 start Red, the rest start Blue.
func OpeningOutcomes() []ChanceOutcome {
	outcomes := make([]ChanceOutcome, MaxChanceOutcomes)
	for i := range outcomes {
		outcomes[i] = ChanceOutcome{Action: Action(i), Probability: 1.0 / MaxChanceOutcomes}
	}
	return outcomes
}

// RollValues returns the two faces of a normal chance outcome.
func RollValues(outcome Action) ([2]int, error) {
	if outcome < 0 || int(outcome) >= NumChanceOutcomes {
		return [2]int{}, fmt.Errorf("chance outcome %d: %w", outcome, ErrOutOfRange)
	}
	return chanceOutcomeValues[outcome], nil
}

// OpeningOutcome returns the opening chance action that starts player with the given roll.
// The roll must not be a double.
func OpeningOutcome(player int, first, second int) (Action, error) {
	side, err := sideOf(player)
	if err != nil {
		return 0, err
	}
	if first > second {
		first, second = second, first
	}
	for i := 0; i < NumNonDoubleOutcomes; i++ {
		if chanceOutcomeValues[i] == [2]int{first, second} {
			return Action(i + int(side)*NumNonDoubleOutcomes), nil
		}
	}
	return 0, fmt.Errorf("opening roll %d-%d: %w", first, second, ErrOutOfRange)
}

// RollOutcome returns the normal chance action for the given roll.
func RollOutcome(first, second int) (Action, error) {
	if first > second {
		first, second = second, first
	}
	for i, v := range chanceOutcomeValues {
		if v == [2]int{first, second} {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("roll %d-%d: %w", first, second, ErrOutOfRange)
}

// SampleChance draws an outcome according to its probability.
func SampleChance(outcomes []ChanceOutcome, rng *rand.Rand) Action {
	if len(outcomes) == 0 {
		panic("no chance outcomes to sample")
	}
	r := rng.Float64()
	acc := 0.0
	for _, o := range outcomes {
		acc += o.Probability
		if r < acc {
			return o.Action
		}
	}
	return outcomes[len(outcomes)-1].Action
}
