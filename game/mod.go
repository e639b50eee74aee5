package game

const (
	NumPlayers = 2

	RedPlayerID      = 0
	BluePlayerID     = 1
	ChancePlayerID   = -1
	TerminalPlayerID = -4

	// Number of pieces per side in the standard layout.
	NumCheckersPerPlayer = 15

	// Arbitrary bound that keeps unbounded tree walks finite.
	MaxGameLength = 1000

	// The opening roll has 30 outcomes: 15 non-double rolls for each starting side.
	MaxChanceOutcomes = 2 * NumNonDoubleOutcomes
	NumChanceOutcomes = 21
)

type StateHash uint64

// State is the copy-on-play view of a game: Play never mutates the receiver.
// Drivers that backtrack in place use GameState.ApplyAction and GameState.Undo instead.
type State interface {
	Player() int
	LegalActions() []Action
	Play(Action) State
	Hash() StateHash
	Winner() int
}
