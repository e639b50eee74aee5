package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/slices"
)

type Phase int

const (
	AwaitingOpeningRoll Phase = iota
	AwaitingRoll
	AwaitingMove
	Terminal
)

func (p Phase) String() string {
	switch p {
	case AwaitingOpeningRoll:
		return "awaiting-opening-roll"
	case AwaitingRoll:
		return "awaiting-roll"
	case AwaitingMove:
		return "awaiting-move"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// TurnState is the bookkeeping that changes once per applied action.
type TurnState struct {
	CurPlayer   int
	PrevPlayer  int
	Turns       int // -1 until the opening roll
	PlayerTurns [NumPlayers]int
	DoubleTurn  bool // second half of a double is being played
	Stalled     bool // neither side can ever move again
}

// historyEntry holds what Undo needs to restore the state before an action.
type historyEntry struct {
	player int
	action Action
	turn   TurnState
	dice   Dice
	seq    moveSeq
	legal  map[Action]moveSeq
}

// GameState is one game in progress. It is owned by a single goroutine: even
// LegalActions temporarily mutates the board while it enumerates.
type GameState struct {
	game    *Game
	board   *Board
	dice    Dice
	turn    TurnState
	retired [NumPlayers][]Piece // pieces borne off, per side

	history []historyEntry

	// Legal move sequences of the current position, nil until computed.
	// The map is never mutated once built, so clones and history share it.
	legal map[Action]moveSeq
}

func (gs *GameState) Game() *Game { return gs.game }

func (gs *GameState) Phase() Phase {
	switch {
	case gs.IsTerminal():
		return Terminal
	case gs.turn.CurPlayer != ChancePlayerID:
		return AwaitingMove
	case gs.turn.Turns < 0:
		return AwaitingOpeningRoll
	default:
		return AwaitingRoll
	}
}

func (gs *GameState) CurrentPlayer() int {
	if gs.IsTerminal() {
		return TerminalPlayerID
	}
	return gs.turn.CurPlayer
}

func (gs *GameState) IsChanceNode() bool {
	return !gs.IsTerminal() && gs.turn.CurPlayer == ChancePlayerID
}

func (gs *GameState) IsTerminal() bool {
	_, won := gs.winnerSide()
	return won || gs.IsDraw()
}

// IsDraw reports a game that ended without a winner: either both sides are stuck
// for good, or MaxGameLength turns have been played.
func (gs *GameState) IsDraw() bool {
	if _, won := gs.winnerSide(); won {
		return false
	}
	return gs.turn.Stalled || gs.turn.Turns >= MaxGameLength
}

// ChanceOutcomes returns the outcome distribution at a chance node, nil elsewhere.
func (gs *GameState) ChanceOutcomes() []ChanceOutcome {
	switch gs.Phase() {
	case AwaitingOpeningRoll:
		return OpeningOutcomes()
	case AwaitingRoll:
		return NormalOutcomes()
	default:
		return nil
	}
}

// LegalActions returns the sorted legal actions of the player to move (chance
// outcomes at chance nodes, nothing at terminal states). Outside terminal
// states there is always at least one action.
func (gs *GameState) LegalActions() []Action {
	switch gs.Phase() {
	case Terminal:
		return nil
	case AwaitingOpeningRoll, AwaitingRoll:
		outcomes := gs.ChanceOutcomes()
		actions := make([]Action, len(outcomes))
		for i, o := range outcomes {
			actions[i] = o.Action
		}
		return actions
	default:
		return sortedActions(gs.legalMoves())
	}
}

func (gs *GameState) legalMoves() map[Action]moveSeq {
	if gs.legal == nil {
		gs.legal = gs.legalSequences(Side(gs.turn.CurPlayer))
	}
	return gs.legal
}

// ApplyAction plays a chance outcome or a move. An action that is out of range
// or not legal is rejected before anything changes.
func (gs *GameState) ApplyAction(a Action) error {
	switch gs.Phase() {
	case Terminal:
		return ErrGameOver
	case AwaitingOpeningRoll:
		return gs.applyOpeningRoll(a)
	case AwaitingRoll:
		return gs.applyRoll(a)
	default:
		return gs.applyMove(a)
	}
}

func (gs *GameState) applyOpeningRoll(a Action) error {
	if a < 0 || int(a) >= MaxChanceOutcomes {
		return fmt.Errorf("opening outcome %d: %w", a, ErrOutOfRange)
	}
	if !gs.dice.IsEmpty() {
		panic(fmt.Errorf("opening roll with dice %v: %w", gs.dice, ErrInternalInconsistency))
	}
	gs.pushHistory(ChancePlayerID, a, moveSeq{})

	player := RedPlayerID
	outcome := int(a)
	if outcome >= NumNonDoubleOutcomes {
		player = BluePlayerID
		outcome -= NumNonDoubleOutcomes
	}
	values := chanceOutcomeValues[outcome]
	gs.dice.Roll(values[0], values[1])
	gs.turn.CurPlayer = player
	gs.turn.PrevPlayer = player
	gs.turn.Turns = 0
	gs.legal = nil
	return nil
}

func (gs *GameState) applyRoll(a Action) error {
	values, err := RollValues(a)
	if err != nil {
		return err
	}
	if !gs.dice.IsEmpty() {
		panic(fmt.Errorf("roll with dice %v: %w", gs.dice, ErrInternalInconsistency))
	}
	gs.pushHistory(ChancePlayerID, a, moveSeq{})

	gs.dice.Roll(values[0], values[1])
	gs.turn.CurPlayer = int(Side(gs.turn.PrevPlayer).Opponent())
	gs.legal = nil
	return nil
}

func (gs *GameState) applyMove(a Action) error {
	if a < 0 || a >= NumDistinctActions {
		return fmt.Errorf("move action %d: %w", a, ErrOutOfRange)
	}
	player := gs.turn.CurPlayer
	seq, ok := gs.legalMoves()[a]
	if !ok {
		return fmt.Errorf("action %d for player %d: %w", a, player, ErrIllegalAction)
	}
	gs.pushHistory(player, a, seq)

	side := Side(player)
	for i := 0; i < seq.n; i++ {
		gs.applyCheckerMove(side, seq.steps[i])
	}

	if !gs.turn.DoubleTurn {
		gs.turn.Turns++
		gs.turn.PlayerTurns[player]++
	}
	gs.turn.PrevPlayer = player

	// A double is played twice: if both dice of the first half got used, the
	// same player goes again with fresh dice.
	extraTurn := false
	if !gs.turn.DoubleTurn && gs.dice.IsDouble() {
		extraTurn = gs.dice.unmarkAll() == 2
	}

	if extraTurn {
		gs.turn.DoubleTurn = true
	} else {
		gs.turn.CurPlayer = ChancePlayerID
		gs.turn.DoubleTurn = false
		gs.dice.Clear()
	}
	if seq.n == 0 && !gs.canEverMove(Red) && !gs.canEverMove(Blue) {
		gs.turn.Stalled = true
	}
	gs.legal = nil
	return nil
}

func (gs *GameState) pushHistory(player int, a Action, seq moveSeq) {
	gs.history = append(gs.history, historyEntry{
		player: player,
		action: a,
		turn:   gs.turn,
		dice:   gs.dice,
		seq:    seq,
		legal:  gs.legal,
	})
}

// Undo takes back the last action, which must be action a played by player.
func (gs *GameState) Undo(player int, a Action) error {
	n := len(gs.history)
	if n == 0 {
		return fmt.Errorf("undo with empty history: %w", ErrIllegalAction)
	}
	last := gs.history[n-1]
	if last.player != player || last.action != a {
		return fmt.Errorf("undo of action %d by player %d, last was %d by %d: %w",
			a, player, last.action, last.player, ErrIllegalAction)
	}

	if player != ChancePlayerID {
		side := Side(player)
		for i := last.seq.n - 1; i >= 0; i-- {
			if m := last.seq.steps[i].move; !m.IsPass() {
				gs.unmoveOnBoard(side, m)
			}
		}
	}

	gs.turn = last.turn
	gs.dice = last.dice
	gs.legal = last.legal
	gs.history = gs.history[:n-1]
	return nil
}

func (gs *GameState) winnerSide() (Side, bool) {
	switch {
	case len(gs.retired[Red]) == NumCheckersPerPlayer:
		return Red, true
	case len(gs.retired[Blue]) == NumCheckersPerPlayer:
		return Blue, true
	default:
		return 0, false
	}
}

// Returns is zero until the game ends and for draws; otherwise the winner gets
// the scoring magnitude and the loser its negation.
func (gs *GameState) Returns() [NumPlayers]float64 {
	var returns [NumPlayers]float64
	winner, ok := gs.winnerSide()
	if !ok {
		return returns
	}
	mag := gs.game.scoring.magnitude(gs, winner)
	returns[winner] = mag
	returns[winner.Opponent()] = -mag
	return returns
}

func (gs *GameState) Clone() *GameState {
	ngs := &GameState{
		game:    gs.game,
		board:   gs.board.Clone(),
		dice:    gs.dice,
		turn:    gs.turn,
		history: slices.Clone(gs.history),
		legal:   gs.legal,
	}
	for side := range gs.retired {
		ngs.retired[side] = slices.Clone(gs.retired[side])
	}
	return ngs
}

// Player, Play, Winner and Hash implement State.

func (gs *GameState) Player() int {
	return gs.CurrentPlayer()
}

func (gs *GameState) Play(a Action) State {
	ngs := gs.Clone()
	if err := ngs.ApplyAction(a); err != nil {
		panic(err)
	}
	return ngs
}

// Winner returns the winning player id, or -1 while the game is on or after a draw.
func (gs *GameState) Winner() int {
	if side, ok := gs.winnerSide(); ok {
		return int(side)
	}
	return -1
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase()))
	binary.Write(hasher, binary.LittleEndian, int64(gs.turn.CurPlayer))
	binary.Write(hasher, binary.LittleEndian, int64(gs.turn.PrevPlayer))
	binary.Write(hasher, binary.LittleEndian, [2]int64{int64(gs.dice[0]), int64(gs.dice[1])})
	binary.Write(hasher, binary.LittleEndian, gs.turn.DoubleTurn)

	for _, pieces := range gs.retired {
		binary.Write(hasher, binary.LittleEndian, int64(len(pieces)))
	}

	for i, stack := range gs.board.cells {
		if len(stack) == 0 {
			continue
		}
		binary.Write(hasher, binary.LittleEndian, int64(i))
		for _, p := range stack {
			binary.Write(hasher, binary.LittleEndian, int64(p.Side)<<8|int64(p.Kind))
		}
	}

	return StateHash(hasher.Sum64())
}

// Equal compares board, dice, bookkeeping, borne-off pieces and history.
func (gs *GameState) Equal(o *GameState) bool {
	if gs.game.scoring != o.game.scoring || gs.dice != o.dice || gs.turn != o.turn {
		return false
	}
	if !gs.board.Equal(o.board) {
		return false
	}
	for side := range gs.retired {
		if !slices.Equal(gs.retired[side], o.retired[side]) {
			return false
		}
	}
	return slices.EqualFunc(gs.history, o.history, func(a, b historyEntry) bool {
		return a.player == b.player && a.action == b.action && a.turn == b.turn &&
			a.dice == b.dice && a.seq == b.seq
	})
}

// Board returns a copy of the board.
func (gs *GameState) Board() *Board { return gs.board.Clone() }

func (gs *GameState) PiecesAt(c Cell) ([]Piece, error) { return gs.board.PiecesAt(c) }

func (gs *GameState) Dice() Dice { return gs.dice }

func (gs *GameState) DiceValue(i int) (int, error) { return gs.dice.Value(i) }

func (gs *GameState) Turn() TurnState { return gs.turn }

func (gs *GameState) Turns() int { return gs.turn.Turns }

func (gs *GameState) DoubleTurn() bool { return gs.turn.DoubleTurn }

// MoveNumber counts the actions applied so far, chance outcomes included.
func (gs *GameState) MoveNumber() int { return len(gs.history) }

// Score is the number of pieces player has borne off.
func (gs *GameState) Score(player int) (int, error) {
	side, err := sideOf(player)
	if err != nil {
		return 0, err
	}
	return len(gs.retired[side]), nil
}

func (gs *GameState) PlayerTurns(player int) (int, error) {
	side, err := sideOf(player)
	if err != nil {
		return 0, err
	}
	return gs.turn.PlayerTurns[side], nil
}

// RemainingSteps counts the die uses still available this turn. A fresh double
// counts four: two now and two more in the second half.
func (gs *GameState) RemainingSteps() int {
	steps := gs.dice.usableCount()
	if gs.dice.IsDouble() && !gs.turn.DoubleTurn {
		steps += 2
	}
	return steps
}

// SetState overwrites the position, mainly for tests. History is dropped, so
// nothing before this point can be undone. Borne-off pieces are recorded as Pawns.
func (gs *GameState) SetState(turn TurnState, dice Dice, scores [NumPlayers]int, board *Board) error {
	switch turn.CurPlayer {
	case RedPlayerID, BluePlayerID, ChancePlayerID:
	default:
		return fmt.Errorf("current player %d: %w", turn.CurPlayer, ErrOutOfRange)
	}
	if turn.CurPlayer == ChancePlayerID && !dice.IsEmpty() {
		return fmt.Errorf("dice %v at a chance node: %w", dice, ErrInvalidConfiguration)
	}
	for i := range dice {
		if dice[i] == 0 && turn.CurPlayer == ChancePlayerID {
			continue
		}
		if _, err := dice.Value(i); err != nil {
			return fmt.Errorf("die %d: %w", i, ErrInvalidConfiguration)
		}
	}
	for _, side := range []Side{Red, Blue} {
		if board.Count(side)+scores[side] != NumCheckersPerPlayer {
			return fmt.Errorf("%v has %d on board and %d off: %w",
				side, board.Count(side), scores[side], ErrInvalidConfiguration)
		}
	}

	gs.board = board.Clone()
	gs.dice = dice
	gs.turn = turn
	for _, side := range []Side{Red, Blue} {
		gs.retired[side] = make([]Piece, scores[side])
		for i := range gs.retired[side] {
			gs.retired[side][i] = Piece{Kind: Pawn, Side: side}
		}
	}
	gs.history = nil
	gs.legal = nil
	return nil
}
