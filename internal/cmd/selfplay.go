package cmd

import (
	"crowny/experiments"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// crowny selfplay
func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play random games against itself",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`selfplay plays the configured number of games between two
			uniformly random agents and prints win counts and game
			length statistics.

			Game and move records are written as CSV below the output
			directory unless it is set to the empty string.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("games") {
				config.Games, _ = cmd.Flags().GetInt("games")
			}
			if cmd.Flags().Changed("seed") {
				config.Seed, _ = cmd.Flags().GetUint64("seed")
			}

			result, err := experiments.RunSelfPlay(config)
			if err != nil {
				return err
			}

			s := result.Summary
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "games %d, finished %d, x won %d, o won %d, drawn %d\n",
				s.Games, s.Finished, s.Wins[0], s.Wins[1], s.Draws)
			fmt.Fprintf(out, "moves mean %.1f sd %.1f median %.0f, branching %.1f, points %.2f\n",
				s.MeanMoves, s.StdDevMoves, s.MedianMoves, s.MeanBranches, s.MeanPoints)
			if result.Dir != "" {
				fmt.Fprintf(out, "records in %s\n", result.Dir)
			}
			return nil
		},
	}

	cmd.Flags().IntP("games", "n", 0, "Number of games (overrides the config)")
	cmd.Flags().Uint64P("seed", "s", 0, "Random seed (overrides the config)")
	return cmd
}
