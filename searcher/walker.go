package searcher

import (
	"crowny/game"
	"runtime"

	"github.com/rs/zerolog/log"
)

type Option func(w *Walker)

// Walker runs timed perft walks with a fixed depth.
type Walker struct {
	depth      int
	goroutines int
	metrics    Collector
}

func WithGoroutines(goroutines int) Option {
	return func(w *Walker) {
		if goroutines > 0 {
			w.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(w *Walker) {
		w.metrics = NewCollector()
	}
}

func NewWalker(depth int, options ...Option) *Walker {
	w := &Walker{ // Default values
		depth:      depth,
		goroutines: runtime.NumCPU(),
		metrics:    NewNoCollector(),
	}
	for _, option := range options {
		option(w)
	}
	if w.depth < 0 {
		panic("perft depth must not be negative")
	}
	return w
}

// Run divides the walk below gs by root action.
func (w *Walker) Run(gs *game.GameState) (map[game.Action]uint64, WalkMetrics) {
	w.metrics.Start(w.depth, w.goroutines)
	log.Debug().Int("depth", w.depth).Int("goroutines", w.goroutines).Str("phase", gs.Phase().String()).Msg("perft started")

	var counts map[game.Action]uint64
	if w.goroutines == 1 {
		counts = Divide(gs, w.depth)
		for _, n := range counts {
			w.metrics.AddLeaves(n)
			w.metrics.AddRootAction()
		}
	} else {
		counts = ParallelPerft(gs, w.depth, w.goroutines, w.metrics)
	}

	metric := w.metrics.Complete()
	log.Debug().Uint64("leaves", Total(counts)).Dur("duration", metric.Duration).Msg("perft finished")
	return counts, metric
}
