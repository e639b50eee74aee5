package cmd

import (
	"crowny/experiments"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// crowny throughput
func Throughput() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "throughput",
		Short: "Time perft with different goroutine counts",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`throughput repeats the perft walk from the initial position
			once per goroutine count and reports leaves per second, so
			the speedup of the parallel walk can be compared.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			counts, _ := cmd.Flags().GetIntSlice("goroutines")

			s := newSpinner()
			s.Start()
			records, err := experiments.RunThroughput(config, counts)
			s.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range records {
				fmt.Fprintf(out, "%3d goroutines  %d leaves  %v  %.0f/s\n", r.Goroutines, r.Leaves, r.Duration, r.LeavesPerSecond)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceP("goroutines", "g", []int{1, 2, 4, 8}, "Goroutine counts to compare")
	return cmd
}
