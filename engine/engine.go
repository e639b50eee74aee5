package engine

import (
	"crowny/experiments/metrics"
	"crowny/game"
)

const MaxMoves = game.MaxGameLength

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Agent picks the action for the player to move. It must not modify gs.
type Agent interface {
	ChooseAction(gs *game.GameState, actions []game.Action) game.Action
}
