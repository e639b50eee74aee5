package cmd

import (
	"crowny/meta"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// SPIN is the spinner charset shown during long computations.
const SPIN = 14

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "crowny",
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default "+meta.DefaultPath()+")")

	root.AddCommand(Perft())
	root.AddCommand(SelfPlay())
	root.AddCommand(Throughput())

	return root
}

// loadConfig reads --config, or the default config file when the flag is unset.
func loadConfig(cmd *cobra.Command) (meta.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return meta.Config{}, err
	}
	return meta.Load(path)
}

func newSpinner() *spinner.Spinner {
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)
	s.Writer = os.Stderr
	return s
}
