// meta/meta.go
package meta

import (
	"crowny/game"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// APP_NAME names the configuration directory.
const APP_NAME = "crowny"

// GO_ROUTINES defines the number of goroutines for parallel perft.
const GO_ROUTINES = 8

// GAMES defines the number of self-play games per run.
const GAMES = 10

// MAX_MOVES caps the player decisions of a self-play game.
const MAX_MOVES = game.MaxGameLength

// PERFT_DEPTH defines the default perft depth.
const PERFT_DEPTH = 3

const SEED = 1

// OUTPUT_DIR is where experiment CSV files go. Empty disables writing.
const OUTPUT_DIR = "experiments"

type Config struct {
	ScoringType string `yaml:"scoring_type"`
	Seed        uint64 `yaml:"seed"`
	Games       int    `yaml:"games"`
	MaxMoves    int    `yaml:"max_moves"`
	Goroutines  int    `yaml:"goroutines"`
	Depth       int    `yaml:"depth"`
	OutputDir   string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		ScoringType: game.DefaultScoringType,
		Seed:        SEED,
		Games:       GAMES,
		MaxMoves:    MAX_MOVES,
		Goroutines:  GO_ROUTINES,
		Depth:       PERFT_DEPTH,
		OutputDir:   OUTPUT_DIR,
	}
}

// DefaultPath is config.yaml under the user's XDG config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, APP_NAME, "config.yaml")
}

// Load reads a YAML config file on top of the defaults. An empty path means
// DefaultPath, which may be missing.
func Load(path string) (Config, error) {
	config := Default()

	optional := path == ""
	if optional {
		path = DefaultPath()
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	if _, err := game.ParseScoringType(c.ScoringType); err != nil {
		return err
	}
	switch {
	case c.Games < 1:
		return fmt.Errorf("games %d: %w", c.Games, game.ErrInvalidConfiguration)
	case c.MaxMoves < 1:
		return fmt.Errorf("max_moves %d: %w", c.MaxMoves, game.ErrInvalidConfiguration)
	case c.Goroutines < 1:
		return fmt.Errorf("goroutines %d: %w", c.Goroutines, game.ErrInvalidConfiguration)
	case c.Depth < 0:
		return fmt.Errorf("depth %d: %w", c.Depth, game.ErrInvalidConfiguration)
	}
	return nil
}

func (c Config) GameConfig() (game.Config, error) {
	st, err := game.ParseScoringType(c.ScoringType)
	if err != nil {
		return game.Config{}, err
	}
	return game.Config{ScoringType: st}, nil
}

func (c Config) NewGame() (*game.Game, error) {
	cfg, err := c.GameConfig()
	if err != nil {
		return nil, err
	}
	return game.NewGame(cfg), nil
}
