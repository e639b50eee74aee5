package game

import "fmt"

// ScoringType selects how decisive wins are rewarded.
type ScoringType int

const (
	WinLossScoring ScoringType = iota // "winloss_scoring": one point per win
	EnableGammons                     // "enable_gammons": two points if the loser retired nothing
	FullScoring                       // "full_scoring": gammons, and three points for a backgammon
)

const DefaultScoringType = "winloss_scoring"

func ParseScoringType(s string) (ScoringType, error) {
	switch s {
	case "winloss_scoring":
		return WinLossScoring, nil
	case "enable_gammons":
		return EnableGammons, nil
	case "full_scoring":
		return FullScoring, nil
	default:
		return 0, fmt.Errorf("unrecognized scoring_type %q: %w", s, ErrInvalidConfiguration)
	}
}

func (st ScoringType) String() string {
	switch st {
	case WinLossScoring:
		return "winloss_scoring"
	case EnableGammons:
		return "enable_gammons"
	case FullScoring:
		return "full_scoring"
	default:
		return fmt.Sprintf("ScoringType(%d)", int(st))
	}
}

func (st ScoringType) MaxUtility() float64 {
	switch st {
	case EnableGammons:
		return 2
	case FullScoring:
		return 3
	default:
		return 1
	}
}

// magnitude scores a finished game for the winner.
func (st ScoringType) magnitude(gs *GameState, winner Side) float64 {
	if st == WinLossScoring {
		return 1
	}
	loser := winner.Opponent()
	if len(gs.retired[loser]) > 0 {
		return 1
	}
	if st == FullScoring && gs.hasPieceIn(loser, winner) {
		return 3
	}
	return 2
}

// hasPieceIn reports whether side still has a piece inside owner's home quadrant.
func (gs *GameState) hasPieceIn(side, owner Side) bool {
	for i, stack := range gs.board.cells {
		for _, p := range stack {
			if p.Side == side && InHome(owner, cellAt(i)) {
				return true
			}
		}
	}
	return false
}
