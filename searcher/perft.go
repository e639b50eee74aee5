package searcher

import (
	"crowny/game"
	"sync"

	"github.com/rs/zerolog/log"
)

// Perft counts the leaves depth plies below gs, chance outcomes included.
// It walks in place with ApplyAction and Undo, so gs is back where it started
// when Perft returns. A terminal state is a single leaf.
func Perft(gs *game.GameState, depth int) uint64 {
	if depth == 0 || gs.IsTerminal() {
		return 1
	}

	player := gs.CurrentPlayer()
	var nodes uint64
	for _, action := range gs.LegalActions() {
		if err := gs.ApplyAction(action); err != nil {
			panic(err)
		}
		nodes += Perft(gs, depth-1)
		if err := gs.Undo(player, action); err != nil {
			panic(err)
		}
	}
	return nodes
}

// PerftClone is Perft over copy-on-play states. The counts must agree.
func PerftClone(state game.State, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return 1
	}

	var nodes uint64
	for _, action := range actions {
		nodes += PerftClone(state.Play(action), depth-1)
	}
	return nodes
}

// Divide splits the perft count of gs by root action.
func Divide(gs *game.GameState, depth int) map[game.Action]uint64 {
	counts := make(map[game.Action]uint64)
	if depth == 0 || gs.IsTerminal() {
		return counts
	}

	player := gs.CurrentPlayer()
	for _, action := range gs.LegalActions() {
		if err := gs.ApplyAction(action); err != nil {
			panic(err)
		}
		counts[action] = Perft(gs, depth-1)
		if err := gs.Undo(player, action); err != nil {
			panic(err)
		}
	}
	return counts
}

// ParallelPerft runs Divide with the root actions shared out between goroutines.
// Each worker owns a clone of gs; gs itself is only read.
func ParallelPerft(gs *game.GameState, depth int, goroutines int, collector Collector) map[game.Action]uint64 {
	counts := make(map[game.Action]uint64)
	if depth == 0 || gs.IsTerminal() {
		return counts
	}
	if goroutines < 1 {
		goroutines = 1
	}

	// Enumerate before cloning so every clone shares the cached legal set.
	actions := gs.LegalActions()
	player := gs.CurrentPlayer()

	task := make(chan game.Action, len(actions))
	for _, action := range actions {
		task <- action
	}
	close(task)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(local *game.GameState) {
			defer wg.Done()

			for action := range task {
				if err := local.ApplyAction(action); err != nil {
					panic(err)
				}
				nodes := Perft(local, depth-1)
				if err := local.Undo(player, action); err != nil {
					panic(err)
				}

				collector.AddLeaves(nodes)
				collector.AddRootAction()
				log.Trace().Int("action", int(action)).Uint64("nodes", nodes).Msg("perft root action done")

				mu.Lock()
				counts[action] = nodes
				mu.Unlock()
			}
		}(gs.Clone())
	}

	wg.Wait()
	return counts
}

// Total sums a divide result.
func Total(counts map[game.Action]uint64) uint64 {
	var total uint64
	for _, n := range counts {
		total += n
	}
	return total
}
