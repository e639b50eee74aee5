package experiments

import (
	"crowny/experiments/metrics"
	"crowny/meta"
	"crowny/searcher"
	"fmt"

	"github.com/rs/zerolog/log"
)

// RunThroughput times a perft walk from the initial position at config.Depth
// once per goroutine count. The leaf counts must agree; a mismatch is a bug.
func RunThroughput(config meta.Config, goroutines []int) ([]metrics.PerftRecord, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	g, err := config.NewGame()
	if err != nil {
		return nil, err
	}
	if len(goroutines) == 0 {
		goroutines = []int{1, config.Goroutines}
	}

	log.Info().Msgf("starting throughput experiment at depth %d...", config.Depth)

	records := make([]metrics.PerftRecord, 0, len(goroutines))
	for _, n := range goroutines {
		walker := searcher.NewWalker(config.Depth, searcher.WithGoroutines(n), searcher.WithMetrics())
		counts, metric := walker.Run(g.NewInitialState())

		record := metrics.PerftRecord{
			Depth:           config.Depth,
			Goroutines:      metric.Goroutines,
			Leaves:          searcher.Total(counts),
			Duration:        metric.Duration,
			LeavesPerSecond: metric.LeavesPerSecond(),
		}
		if len(records) > 0 && records[0].Leaves != record.Leaves {
			panic(fmt.Sprintf("perft with %d goroutines counted %d leaves, %d goroutines counted %d",
				record.Goroutines, record.Leaves, records[0].Goroutines, records[0].Leaves))
		}
		records = append(records, record)

		log.Info().Msgf("goroutines=%d leaves=%d in %v (%.0f/s)",
			record.Goroutines, record.Leaves, record.Duration, record.LeavesPerSecond)
	}

	log.Info().Msg("completed throughput experiment")

	if config.OutputDir == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(config.OutputDir, "throughput")
	if err != nil {
		return records, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WritePerftRecords(records); err != nil {
		return records, fmt.Errorf("failed to write perft records: %w", err)
	}
	log.Info().Msg("stored perft records")
	return records, nil
}
