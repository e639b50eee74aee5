package experiments

import (
	"crowny/engine"
	"crowny/experiments/metrics"
	"crowny/game"
	"crowny/meta"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Agents of a self-play run: both sides play uniformly random moves.
var selfPlayAgents = []metrics.AgentConfig{
	{ID: 1, Name: "random"},
	{ID: 2, Name: "random"},
}

type SelfPlayResult struct {
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary metrics.Summary
	Dir     string // where the CSV files went, empty if none were written
}

// RunSelfPlay plays config.Games random games, config.Goroutines at a time.
// Game i uses seeds derived from config.Seed, so a run is reproducible.
func RunSelfPlay(config meta.Config) (SelfPlayResult, error) {
	if err := config.Validate(); err != nil {
		return SelfPlayResult{}, err
	}
	g, err := config.NewGame()
	if err != nil {
		return SelfPlayResult{}, err
	}

	log.Info().Msgf("starting self-play of %d games with %v...", config.Games, g.ScoringType())

	task := make(chan int, config.Games)
	for i := 1; i <= config.Games; i++ {
		task <- i
	}
	close(task)

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		gameRecords []metrics.GameRecord
		moveRecords []metrics.MoveRecord
	)
	for i := 0; i < config.Goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range task {
				record, moves := runGame(g, config, id)

				mu.Lock()
				gameRecords = append(gameRecords, record)
				moveRecords = append(moveRecords, moves...)
				mu.Unlock()

				log.Info().Msgf("completed game %d of %d with winner: %d", id, config.Games, record.Winner)
			}
		}()
	}
	wg.Wait()

	slices.SortFunc(gameRecords, func(a, b metrics.GameRecord) int { return a.ID - b.ID })
	slices.SortStableFunc(moveRecords, func(a, b metrics.MoveRecord) int {
		if a.Game != b.Game {
			return a.Game - b.Game
		}
		return a.Step - b.Step
	})

	result := SelfPlayResult{
		Games:   gameRecords,
		Moves:   moveRecords,
		Summary: metrics.Summarize(gameRecords, moveRecords),
	}
	log.Info().Msgf("completed self-play: %+v", result.Summary)

	if config.OutputDir == "" {
		return result, nil
	}

	writer, err := metrics.NewWriter(config.OutputDir, "selfplay")
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(selfPlayAgents); err != nil {
		return result, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	result.Dir = writer.Dir()
	return result, nil
}

// runGame plays game id to the end or to config.MaxMoves.
func runGame(g *game.Game, config meta.Config, id int) (metrics.GameRecord, []metrics.MoveRecord) {
	seed := config.Seed*1000003 + uint64(id)
	agents := [game.NumPlayers]engine.Agent{
		engine.NewRandomAgent(seed + 1),
		engine.NewRandomAgent(seed + 2),
	}
	e := engine.NewLocalEngine(g, agents,
		engine.WithSeed(seed),
		engine.WithMaxMoves(config.MaxMoves),
		engine.WithMetrics(),
	)

	_, gameMetric, moveMetrics := e.Run()

	record := metrics.GameRecord{
		ID:         id,
		Red:        selfPlayAgents[0].ID,
		Blue:       selfPlayAgents[1].ID,
		Seed:       seed,
		GameMetric: gameMetric,
	}
	moves := make([]metrics.MoveRecord, len(moveMetrics))
	for i, mm := range moveMetrics {
		moves[i] = metrics.MoveRecord{Game: id, MoveMetric: mm}
	}
	return record, moves
}
