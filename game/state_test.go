package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func openedState(t *testing.T, player, first, second int) *GameState {
	t.Helper()
	gs := NewGame(Config{}).NewInitialState()
	a, err := OpeningOutcome(player, first, second)
	require.NoError(t, err)
	require.NoError(t, gs.ApplyAction(a))
	return gs
}

func TestInitialState(t *testing.T) {
	gs := NewGame(Config{}).NewInitialState()

	require.Equal(t, AwaitingOpeningRoll, gs.Phase())
	require.Equal(t, ChancePlayerID, gs.CurrentPlayer())
	require.True(t, gs.IsChanceNode())
	require.False(t, gs.IsTerminal())
	require.Equal(t, -1, gs.Turns())
	require.True(t, gs.Dice().IsEmpty())
	require.Len(t, gs.LegalActions(), MaxChanceOutcomes)
	require.Equal(t, [NumPlayers]float64{}, gs.Returns())
	require.Equal(t, -1, gs.Winner())

	score, err := gs.Score(RedPlayerID)
	require.NoError(t, err)
	require.Zero(t, score)

	_, err = gs.Score(2)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestOpeningRoll(t *testing.T) {
	t.Run("red starts with six five", func(t *testing.T) {
		gs := openedState(t, RedPlayerID, 6, 5)

		require.Equal(t, AwaitingMove, gs.Phase())
		require.Equal(t, RedPlayerID, gs.CurrentPlayer())
		require.Equal(t, 0, gs.Turns())
		require.Equal(t, 2, gs.RemainingSteps())

		values := []int{}
		for i := 0; i < 2; i++ {
			v, err := gs.DiceValue(i)
			require.NoError(t, err)
			values = append(values, v)
		}
		require.ElementsMatch(t, []int{5, 6}, values)

		a, err := Encode([2]CheckerMove{
			{From: Cell{8, 0}, To: Cell{3, 0}},
			{From: Cell{8, 1}, To: Cell{2, 1}},
		})
		require.NoError(t, err)
		require.Contains(t, gs.LegalActions(), a)
		require.NoError(t, gs.ApplyAction(a))

		pieces, err := gs.PiecesAt(Cell{3, 0})
		require.NoError(t, err)
		require.Equal(t, []Piece{{Pawn, Red}}, pieces)
		pieces, err = gs.PiecesAt(Cell{8, 0})
		require.NoError(t, err)
		require.Empty(t, pieces)

		require.Equal(t, NumCheckersPerPlayer, gs.board.Count(Red))
		require.Equal(t, AwaitingRoll, gs.Phase())
		require.True(t, gs.Dice().IsEmpty())

		roll, err := RollOutcome(3, 1)
		require.NoError(t, err)
		require.NoError(t, gs.ApplyAction(roll))
		require.Equal(t, BluePlayerID, gs.CurrentPlayer())
	})

	t.Run("six then five with one piece", func(t *testing.T) {
		gs := openedState(t, RedPlayerID, 6, 5)

		a, err := Encode([2]CheckerMove{
			{From: Cell{8, 0}, To: Cell{2, 0}},
			{From: Cell{2, 0}, To: Cell{2, 5}},
		})
		require.NoError(t, err)
		require.NoError(t, gs.ApplyAction(a))

		pieces, err := gs.PiecesAt(Cell{2, 5})
		require.NoError(t, err)
		require.Equal(t, []Piece{{Pawn, Red}}, pieces)
		pieces, err = gs.PiecesAt(Cell{2, 0})
		require.NoError(t, err)
		require.Empty(t, pieces)

		for _, side := range []Side{Red, Blue} {
			require.Equal(t, NumCheckersPerPlayer, gs.board.Count(side))
		}
		require.Equal(t, AwaitingRoll, gs.Phase())
		require.NoError(t, gs.ApplyAction(0))
		require.Equal(t, BluePlayerID, gs.CurrentPlayer())
	})

	t.Run("blue starts", func(t *testing.T) {
		gs := openedState(t, BluePlayerID, 1, 2)
		require.Equal(t, BluePlayerID, gs.CurrentPlayer())
	})

	t.Run("opening outcome out of range", func(t *testing.T) {
		gs := NewGame(Config{}).NewInitialState()
		require.ErrorIs(t, gs.ApplyAction(Action(MaxChanceOutcomes)), ErrOutOfRange)
		require.Equal(t, AwaitingOpeningRoll, gs.Phase())
	})
}

func TestDoubles(t *testing.T) {
	gs := openedState(t, RedPlayerID, 2, 1)
	require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))

	double, err := RollOutcome(1, 1)
	require.NoError(t, err)
	require.NoError(t, gs.ApplyAction(double))

	require.Equal(t, BluePlayerID, gs.CurrentPlayer())
	require.False(t, gs.DoubleTurn())
	require.Equal(t, 4, gs.RemainingSteps())

	require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))
	require.Equal(t, BluePlayerID, gs.CurrentPlayer())
	require.True(t, gs.DoubleTurn())
	require.Equal(t, 2, gs.RemainingSteps())

	require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))
	require.Equal(t, AwaitingRoll, gs.Phase())
	require.False(t, gs.DoubleTurn())

	require.Equal(t, 2, gs.Turns())
	turns, err := gs.PlayerTurns(BluePlayerID)
	require.NoError(t, err)
	require.Equal(t, 1, turns)
	turns, err = gs.PlayerTurns(RedPlayerID)
	require.NoError(t, err)
	require.Equal(t, 1, turns)

	// Red rolls next.
	require.NoError(t, gs.ApplyAction(0))
	require.Equal(t, RedPlayerID, gs.CurrentPlayer())
}

func TestApplyUndo(t *testing.T) {
	t.Run("every action is undone exactly", func(t *testing.T) {
		gs := openedState(t, BluePlayerID, 6, 3)
		before := gs.Clone()
		player := gs.CurrentPlayer()

		for _, a := range gs.LegalActions() {
			require.NoError(t, gs.ApplyAction(a))
			require.NoError(t, gs.Undo(player, a))
			require.True(t, before.Equal(gs), "action %d", a)
		}
	})

	t.Run("chance outcomes are undone", func(t *testing.T) {
		gs := NewGame(Config{}).NewInitialState()
		before := gs.Clone()
		require.NoError(t, gs.ApplyAction(17))
		require.NoError(t, gs.Undo(ChancePlayerID, 17))
		require.True(t, before.Equal(gs))
		require.Equal(t, AwaitingOpeningRoll, gs.Phase())
	})

	t.Run("undo of the wrong action", func(t *testing.T) {
		gs := NewGame(Config{}).NewInitialState()
		require.ErrorIs(t, gs.Undo(ChancePlayerID, 0), ErrIllegalAction)

		require.NoError(t, gs.ApplyAction(4))
		require.ErrorIs(t, gs.Undo(ChancePlayerID, 5), ErrIllegalAction)
		require.ErrorIs(t, gs.Undo(RedPlayerID, 4), ErrIllegalAction)
	})

	t.Run("both halves of a double", func(t *testing.T) {
		gs := openedState(t, RedPlayerID, 2, 1)
		require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))
		double, err := RollOutcome(3, 3)
		require.NoError(t, err)
		require.NoError(t, gs.ApplyAction(double))

		rolled := gs.Clone()
		first := gs.LegalActions()[0]
		require.NoError(t, gs.ApplyAction(first))
		require.True(t, gs.DoubleTurn())

		halfway := gs.Clone()
		second := gs.LegalActions()[0]
		require.NoError(t, gs.ApplyAction(second))
		require.False(t, gs.DoubleTurn())
		require.True(t, gs.Dice().IsEmpty())

		require.NoError(t, gs.Undo(BluePlayerID, second))
		require.True(t, halfway.Equal(gs))
		require.True(t, gs.DoubleTurn())
		require.Equal(t, 2, gs.RemainingSteps())

		require.NoError(t, gs.Undo(BluePlayerID, first))
		require.True(t, rolled.Equal(gs))
		require.False(t, gs.DoubleTurn())
		require.Equal(t, 4, gs.RemainingSteps())

		require.NoError(t, gs.ApplyAction(first))
		require.Equal(t, halfway.LegalActions(), gs.LegalActions())
	})

	t.Run("game ending bear off", func(t *testing.T) {
		b := NewBoard()
		stack(b, Cell{1, 10}, Red, Pawn, 1)
		stack(b, Cell{2, 8}, Blue, Pawn, NumCheckersPerPlayer)
		gs := positioned(t, b, Red, Dice{2, 3})
		before := gs.Clone()

		actions := gs.LegalActions()
		require.Len(t, actions, 1)
		require.NoError(t, gs.ApplyAction(actions[0]))
		require.True(t, gs.IsTerminal())
		require.Equal(t, RedPlayerID, gs.Winner())

		require.NoError(t, gs.Undo(RedPlayerID, actions[0]))
		require.True(t, before.Equal(gs))
		require.False(t, gs.IsTerminal())
		score, err := gs.Score(RedPlayerID)
		require.NoError(t, err)
		require.Equal(t, NumCheckersPerPlayer-1, score)
		pieces, err := gs.PiecesAt(Cell{1, 10})
		require.NoError(t, err)
		require.Equal(t, []Piece{{Pawn, Red}}, pieces)
	})

	t.Run("every action along a playout", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		gs := NewGame(Config{ScoringType: FullScoring}).NewInitialState()

		for i := 0; i < 200 && !gs.IsTerminal(); i++ {
			player := gs.CurrentPlayer()
			before := gs.Clone()

			if !gs.IsChanceNode() {
				for a, seq := range gs.legalMoves() {
					moves, err := Decode(a)
					require.NoError(t, err)
					require.Equal(t, seq.moves(), moves)
					encoded, err := Encode(moves)
					require.NoError(t, err)
					require.Equal(t, a, encoded)
				}
			}

			actions := gs.LegalActions()
			for _, a := range actions {
				require.NoError(t, gs.ApplyAction(a))
				require.NoError(t, gs.Undo(player, a))
				require.True(t, before.Equal(gs), "ply %d action %d", i, a)
			}

			var a Action
			if gs.IsChanceNode() {
				a = SampleChance(gs.ChanceOutcomes(), rng)
			} else {
				a = actions[rng.Intn(len(actions))]
			}
			require.NoError(t, gs.ApplyAction(a))
		}
	})

	t.Run("illegal action changes nothing", func(t *testing.T) {
		gs := openedState(t, RedPlayerID, 4, 3)
		before := gs.Clone()

		pass, err := Encode([2]CheckerMove{PassMove, PassMove})
		require.NoError(t, err)
		require.ErrorIs(t, gs.ApplyAction(pass), ErrIllegalAction)
		require.ErrorIs(t, gs.ApplyAction(-3), ErrOutOfRange)
		require.ErrorIs(t, gs.ApplyAction(NumDistinctActions), ErrOutOfRange)
		require.True(t, before.Equal(gs))
	})

	t.Run("play leaves the receiver alone", func(t *testing.T) {
		gs := openedState(t, RedPlayerID, 4, 3)
		before := gs.Clone()
		next := gs.Play(gs.LegalActions()[0])

		require.True(t, before.Equal(gs))
		require.Equal(t, ChancePlayerID, next.Player())
		require.NotEqual(t, gs.Hash(), next.Hash())
		require.Equal(t, gs.Hash(), before.Hash())
	})
}

func TestRandomPlayout(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gs := NewGame(Config{}).NewInitialState()

	for i := 0; i < 300 && !gs.IsTerminal(); i++ {
		var a Action
		if gs.IsChanceNode() {
			a = SampleChance(gs.ChanceOutcomes(), rng)
		} else {
			actions := gs.LegalActions()
			require.NotEmpty(t, actions)
			a = actions[rng.Intn(len(actions))]
		}
		require.NoError(t, gs.ApplyAction(a))

		for _, side := range []Side{Red, Blue} {
			score, err := gs.Score(int(side))
			require.NoError(t, err)
			require.Equal(t, NumCheckersPerPlayer, gs.board.Count(side)+score)
		}
	}
}

func TestTerminal(t *testing.T) {
	endgame := func(t *testing.T, scoring ScoringType, blueScore int) *GameState {
		b := NewBoard()
		stack(b, Cell{1, 10}, Red, Pawn, 1)
		stack(b, Cell{2, 8}, Blue, Pawn, NumCheckersPerPlayer-blueScore)

		gs := NewGame(Config{ScoringType: scoring}).NewInitialState()
		turn := TurnState{CurPlayer: RedPlayerID, PrevPlayer: BluePlayerID, Turns: 30}
		require.NoError(t, gs.SetState(turn, Dice{2, 3}, [NumPlayers]int{14, blueScore}, b))
		require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))
		return gs
	}

	t.Run("game over", func(t *testing.T) {
		gs := endgame(t, WinLossScoring, 0)
		require.True(t, gs.IsTerminal())
		require.Equal(t, Terminal, gs.Phase())
		require.Equal(t, TerminalPlayerID, gs.CurrentPlayer())
		require.Equal(t, RedPlayerID, gs.Winner())
		require.Empty(t, gs.LegalActions())
		require.ErrorIs(t, gs.ApplyAction(0), ErrGameOver)
		require.Equal(t, [NumPlayers]float64{1, -1}, gs.Returns())
	})

	t.Run("gammon", func(t *testing.T) {
		require.Equal(t, [NumPlayers]float64{2, -2}, endgame(t, EnableGammons, 0).Returns())
		require.Equal(t, [NumPlayers]float64{1, -1}, endgame(t, EnableGammons, 1).Returns())
	})

	t.Run("backgammon", func(t *testing.T) {
		require.Equal(t, [NumPlayers]float64{3, -3}, endgame(t, FullScoring, 0).Returns())
		require.Equal(t, [NumPlayers]float64{1, -1}, endgame(t, FullScoring, 1).Returns())
	})
}

func TestDraw(t *testing.T) {
	// Each side has fourteen pieces on its exit corner and one piece pinned
	// under the other side's stack, so it can neither move nor bear off.
	deadlocked := func() *Board {
		b := NewBoard()
		stack(b, Cell{0, 10}, Blue, Pawn, 1)
		stack(b, Cell{0, 10}, Red, Pawn, NumCheckersPerPlayer-1)
		stack(b, Cell{10, 0}, Red, Pawn, 1)
		stack(b, Cell{10, 0}, Blue, Pawn, NumCheckersPerPlayer-1)
		return b
	}

	pass, err := Encode([2]CheckerMove{PassMove, PassMove})
	require.NoError(t, err)

	t.Run("neither side can move", func(t *testing.T) {
		gs := positioned(t, deadlocked(), Red, Dice{3, 4})
		require.False(t, gs.IsTerminal())
		require.Equal(t, []Action{pass}, gs.LegalActions())

		require.NoError(t, gs.ApplyAction(pass))
		require.True(t, gs.IsTerminal())
		require.True(t, gs.IsDraw())
		require.Equal(t, Terminal, gs.Phase())
		require.Equal(t, TerminalPlayerID, gs.CurrentPlayer())
		require.Equal(t, -1, gs.Winner())
		require.Equal(t, [NumPlayers]float64{}, gs.Returns())
		require.Empty(t, gs.LegalActions())
		require.ErrorIs(t, gs.ApplyAction(pass), ErrGameOver)

		require.NoError(t, gs.Undo(RedPlayerID, pass))
		require.False(t, gs.IsTerminal())
		require.Equal(t, []Action{pass}, gs.LegalActions())
	})

	t.Run("opponent can still move", func(t *testing.T) {
		b := deadlocked()
		_, err := b.PopTop(Cell{10, 0})
		require.NoError(t, err)
		stack(b, Cell{5, 5}, Blue, Pawn, 1)

		gs := positioned(t, b, Red, Dice{3, 4})
		require.NoError(t, gs.ApplyAction(pass))
		require.False(t, gs.IsTerminal())
		require.False(t, gs.IsDraw())
		require.Equal(t, AwaitingRoll, gs.Phase())
	})

	t.Run("turn limit", func(t *testing.T) {
		b := NewBoard()
		b.InitialSetup()
		gs := NewGame(Config{}).NewInitialState()
		turn := TurnState{CurPlayer: RedPlayerID, PrevPlayer: BluePlayerID, Turns: MaxGameLength - 1}
		require.NoError(t, gs.SetState(turn, Dice{3, 1}, [NumPlayers]int{}, b))
		require.False(t, gs.IsTerminal())

		require.NoError(t, gs.ApplyAction(gs.LegalActions()[0]))
		require.Equal(t, MaxGameLength, gs.Turns())
		require.True(t, gs.IsDraw())
		require.Equal(t, Terminal, gs.Phase())
		require.Equal(t, [NumPlayers]float64{}, gs.Returns())
	})
}

func TestSetState(t *testing.T) {
	t.Run("pieces must be conserved", func(t *testing.T) {
		b := NewBoard()
		b.InitialSetup()
		gs := NewGame(Config{}).NewInitialState()
		turn := TurnState{CurPlayer: RedPlayerID, PrevPlayer: BluePlayerID}
		err := gs.SetState(turn, Dice{1, 2}, [NumPlayers]int{1, 0}, b)
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("dice must be rolled when a side moves", func(t *testing.T) {
		b := NewBoard()
		b.InitialSetup()
		gs := NewGame(Config{}).NewInitialState()
		turn := TurnState{CurPlayer: BluePlayerID, PrevPlayer: RedPlayerID}
		require.ErrorIs(t, gs.SetState(turn, Dice{}, [NumPlayers]int{}, b), ErrInvalidConfiguration)
	})

	t.Run("unknown player", func(t *testing.T) {
		gs := NewGame(Config{}).NewInitialState()
		err := gs.SetState(TurnState{CurPlayer: 5}, Dice{1, 2}, [NumPlayers]int{}, NewBoard())
		require.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("scores become retired pieces", func(t *testing.T) {
		b := NewBoard()
		stack(b, Cell{5, 5}, Red, Pawn, 5)
		stack(b, Cell{6, 6}, Blue, Pawn, 15)
		gs := NewGame(Config{}).NewInitialState()
		turn := TurnState{CurPlayer: ChancePlayerID, PrevPlayer: BluePlayerID, Turns: 8}
		require.NoError(t, gs.SetState(turn, Dice{}, [NumPlayers]int{10, 0}, b))

		score, err := gs.Score(RedPlayerID)
		require.NoError(t, err)
		require.Equal(t, 10, score)
		require.Equal(t, AwaitingRoll, gs.Phase())

		require.NoError(t, gs.ApplyAction(2))
		require.Equal(t, RedPlayerID, gs.CurrentPlayer())
	})
}

func TestHash(t *testing.T) {
	gs := NewGame(Config{}).NewInitialState()
	require.Equal(t, gs.Hash(), gs.Clone().Hash())

	red := openedState(t, RedPlayerID, 1, 2)
	blue := openedState(t, BluePlayerID, 1, 2)
	require.NotEqual(t, gs.Hash(), red.Hash())
	require.NotEqual(t, red.Hash(), blue.Hash())
}

func TestScoringType(t *testing.T) {
	for _, st := range []ScoringType{WinLossScoring, EnableGammons, FullScoring} {
		parsed, err := ParseScoringType(st.String())
		require.NoError(t, err)
		require.Equal(t, st, parsed)
	}

	_, err := NewGameFromParams("doubling_cube")
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	g, err := NewGameFromParams(DefaultScoringType)
	require.NoError(t, err)
	require.Equal(t, 1.0, g.MaxUtility())
	require.Equal(t, -1.0, g.MinUtility())

	g, err = NewGameFromParams("full_scoring")
	require.NoError(t, err)
	require.Equal(t, 3.0, g.MaxUtility())
}
