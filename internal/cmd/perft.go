package cmd

import (
	"crowny/game"
	"crowny/searcher"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// crowny perft
func Perft() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perft",
		Short: "Count the leaves of the game tree",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`perft walks every line of play from the initial position
			down to the given depth and prints the number of leaves under
			each root action, followed by the total.

			Chance outcomes count as plies, so depth 1 lists the 30
			opening rolls and depth 2 adds the first player's moves.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("depth") {
				config.Depth, _ = cmd.Flags().GetInt("depth")
			}
			if cmd.Flags().Changed("goroutines") {
				config.Goroutines, _ = cmd.Flags().GetInt("goroutines")
			}
			if err := config.Validate(); err != nil {
				return err
			}

			g, err := config.NewGame()
			if err != nil {
				return err
			}

			s := newSpinner()
			s.Start()
			walker := searcher.NewWalker(config.Depth, searcher.WithGoroutines(config.Goroutines), searcher.WithMetrics())
			counts, metric := walker.Run(g.NewInitialState())
			s.Stop()

			actions := make([]game.Action, 0, len(counts))
			for a := range counts {
				actions = append(actions, a)
			}
			slices.Sort(actions)

			out := cmd.OutOrStdout()
			for _, a := range actions {
				fmt.Fprintf(out, "%s: %d\n", describe(a), counts[a])
			}
			fmt.Fprintf(out, "\nleaves %d in %v\n", searcher.Total(counts), metric.Duration)
			return nil
		},
	}

	cmd.Flags().IntP("depth", "d", 0, "Perft depth (overrides the config)")
	cmd.Flags().IntP("goroutines", "g", 0, "Worker goroutines (overrides the config)")
	return cmd
}

// Root actions from the initial position are opening rolls.
func describe(a game.Action) string {
	outcome := int(a)
	player := game.RedPlayerID
	if outcome >= game.NumNonDoubleOutcomes {
		player = game.BluePlayerID
		outcome -= game.NumNonDoubleOutcomes
	}
	values, err := game.RollValues(game.Action(outcome))
	if err != nil {
		return fmt.Sprint(int(a))
	}
	return fmt.Sprintf("%2d %v %d-%d", int(a), game.Side(player), values[0], values[1])
}
