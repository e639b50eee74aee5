package game

// Config holds the game parameters resolved before construction.
type Config struct {
	ScoringType ScoringType
}

// Game is the static description shared by every state of one game.
type Game struct {
	scoring ScoringType
}

func NewGame(cfg Config) *Game {
	return &Game{scoring: cfg.ScoringType}
}

// NewGameFromParams resolves the scoring parameter string. An unknown value is
// a configuration error, reported before any state exists.
func NewGameFromParams(scoringType string) (*Game, error) {
	st, err := ParseScoringType(scoringType)
	if err != nil {
		return nil, err
	}
	return NewGame(Config{ScoringType: st}), nil
}

func (g *Game) ScoringType() ScoringType { return g.scoring }

func (g *Game) NumDistinctActions() int { return NumDistinctActions }

func (g *Game) MaxChanceOutcomes() int { return MaxChanceOutcomes }

func (g *Game) MaxGameLength() int { return MaxGameLength }

// One chance node per move, plus the opening roll.
func (g *Game) MaxChanceNodesInHistory() int { return MaxGameLength + 1 }

func (g *Game) NumPlayers() int { return NumPlayers }

func (g *Game) NumCheckersPerPlayer() int { return NumCheckersPerPlayer }

func (g *Game) MaxUtility() float64 { return g.scoring.MaxUtility() }

func (g *Game) MinUtility() float64 { return -g.scoring.MaxUtility() }

// NewInitialState returns the starting position, waiting for the opening roll.
func (g *Game) NewInitialState() *GameState {
	gs := &GameState{
		game:  g,
		board: NewBoard(),
		turn: TurnState{
			CurPlayer:  ChancePlayerID,
			PrevPlayer: ChancePlayerID,
			Turns:      -1,
		},
	}
	gs.board.InitialSetup()
	return gs
}
