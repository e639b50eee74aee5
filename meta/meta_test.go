package meta

import (
	"crowny/game"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, "scoring_type: full_scoring\ngames: 3\nseed: 99\n")
		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "full_scoring", config.ScoringType)
		require.Equal(t, 3, config.Games)
		require.Equal(t, uint64(99), config.Seed)
		require.Equal(t, GO_ROUTINES, config.Goroutines)
		require.Equal(t, PERFT_DEPTH, config.Depth)

		g, err := config.NewGame()
		require.NoError(t, err)
		require.Equal(t, game.FullScoring, g.ScoringType())
	})

	t.Run("unknown scoring type", func(t *testing.T) {
		path := writeConfig(t, "scoring_type: cubeful\n")
		_, err := Load(path)
		require.ErrorIs(t, err, game.ErrInvalidConfiguration)
	})

	t.Run("invalid counts", func(t *testing.T) {
		path := writeConfig(t, "goroutines: 0\n")
		_, err := Load(path)
		require.ErrorIs(t, err, game.ErrInvalidConfiguration)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "games: [1, 2\n")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	cfg, err := config.GameConfig()
	require.NoError(t, err)
	require.Equal(t, game.WinLossScoring, cfg.ScoringType)

	require.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
	require.Equal(t, APP_NAME, filepath.Base(filepath.Dir(DefaultPath())))
}
