package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"crowny/internal/cmd"
)

func main() {
	if err := crowny(); err != nil {
		log.Fatal().Err(err).Msg("crowny failed")
	}
}

func crowny() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
