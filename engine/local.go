package engine

import (
	"crowny/experiments/metrics"
	"crowny/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalEngine)

// LocalEngine drives one game between two in-process agents and samples the dice itself.
type LocalEngine struct {
	state    *game.GameState
	agents   [game.NumPlayers]Agent
	rng      *rand.Rand
	maxMoves int
	metrics  metrics.Collector
}

func WithSeed(seed uint64) Option {
	return func(e *LocalEngine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMaxMoves(moves int) Option {
	return func(e *LocalEngine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

func WithMetrics() Option {
	return func(e *LocalEngine) {
		e.metrics = metrics.NewCollector()
	}
}

// WithState starts from gs instead of the initial position.
func WithState(gs *game.GameState) Option {
	return func(e *LocalEngine) {
		if gs != nil {
			e.state = gs.Clone()
		}
	}
}

func NewLocalEngine(g *game.Game, agents [game.NumPlayers]Agent, options ...Option) *LocalEngine {
	for i, agent := range agents {
		if agent == nil {
			panic(fmt.Sprintf("no agent for player %d", i))
		}
	}

	e := &LocalEngine{ // Default values
		state:    g.NewInitialState(),
		agents:   agents,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		maxMoves: MaxMoves,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) State() *game.GameState {
	return e.state
}

// Run plays until the game ends, won or drawn, or maxMoves player decisions have been made.
func (e *LocalEngine) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: -1,
		Winner:         -1,
		StartTime:      time.Now(),
	}

	pass, err := game.Encode([2]game.CheckerMove{game.PassMove, game.PassMove})
	if err != nil {
		panic(err)
	}

	for !e.state.IsTerminal() && gameMetric.TotalMoves < e.maxMoves {
		if e.state.IsChanceNode() {
			outcome := game.SampleChance(e.state.ChanceOutcomes(), e.rng)
			if err := e.state.ApplyAction(outcome); err != nil {
				panic(err)
			}
			gameMetric.ChanceNodes++
			if gameMetric.StartingPlayer < 0 {
				gameMetric.StartingPlayer = e.state.CurrentPlayer()
				log.Info().Msgf("player %d is starting with %v", gameMetric.StartingPlayer, e.state.Dice())
			}
			continue
		}

		player := e.state.CurrentPlayer()
		actions := e.state.LegalActions()
		gameMetric.TotalMoves++

		e.metrics.StartMove(gameMetric.TotalMoves, player, len(actions), e.state.DoubleTurn())
		action := e.agents[player].ChooseAction(e.state, actions)
		if !slices.Contains(actions, action) {
			panic(fmt.Sprintf("agent for player %d chose illegal action %d", player, action))
		}
		e.metrics.CompleteMove(action == pass)

		if event := log.Debug(); event.Enabled() {
			moves, _ := game.Decode(action)
			event.Int("step", gameMetric.TotalMoves).Int("player", player).
				Str("dice", fmt.Sprint(e.state.Dice())).Msgf("%v %v", moves[0], moves[1])
		}

		if err := e.state.ApplyAction(action); err != nil {
			panic(err)
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.state.Winner()
	gameMetric.Draw = e.state.IsDraw()
	switch {
	case gameMetric.Winner >= 0:
		gameMetric.Points = e.state.Returns()[gameMetric.Winner]
		log.Info().Msgf("player %d won %v after %d moves", gameMetric.Winner, gameMetric.Points, gameMetric.TotalMoves)
	case gameMetric.Draw:
		log.Info().Msgf("drawn after %d moves and %d turns", gameMetric.TotalMoves, e.state.Turns())
	default:
		log.Info().Msgf("stopped at the %d move cap without a result", gameMetric.TotalMoves)
	}

	return gameMetric.Winner, gameMetric, e.metrics.Moves()
}
