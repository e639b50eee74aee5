package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// HomeExitDistance is the largest exit distance of a cell in a side's home quadrant.
const HomeExitDistance = 6

// Forward directions for Red; Blue uses the negation.
var forward = [3][2]int{{-1, 0}, {0, 1}, {-1, 1}}

// ExitDistance is the number of pips side needs to take a piece at c off the board,
// past its goal corner: (0,10) for Red, (10,0) for Blue.
func ExitDistance(side Side, c Cell) int {
	if side == Red {
		return max(c.Row, BoardSize-1-c.Col) + 1
	}
	return max(BoardSize-1-c.Row, c.Col) + 1
}

// InHome reports whether c lies in side's home quadrant, where bearing off is possible.
func InHome(side Side, c Cell) bool {
	return ExitDistance(side, c) <= HomeExitDistance
}

func target(side Side, from Cell, dir [2]int, pips int) Cell {
	if side == Blue {
		dir = [2]int{-dir[0], -dir[1]}
	}
	return Cell{Row: from.Row + dir[0]*pips, Col: from.Col + dir[1]*pips}
}

// step is one checker move together with the die it consumes. Passes use 0 pips.
type step struct {
	move CheckerMove
	pips int
}

// moveSeq is a turn of up to two steps. It is comparable so it can key a set.
type moveSeq struct {
	steps [2]step
	n     int
}

func (s moveSeq) push(st step) moveSeq {
	s.steps[s.n] = st
	s.n++
	return s
}

// moves pads the sequence with passes.
func (s moveSeq) moves() [2]CheckerMove {
	out := [2]CheckerMove{PassMove, PassMove}
	for i := 0; i < s.n; i++ {
		out[i] = s.steps[i].move
	}
	return out
}

func (s moveSeq) swapped() moveSeq {
	return moveSeq{steps: [2]step{s.steps[1], s.steps[0]}, n: s.n}
}

// commutes reports whether the two moves touch disjoint cells, so playing them
// in either order ends in the same position.
func (s moveSeq) commutes() bool {
	a, b := s.steps[0].move, s.steps[1].move
	return a.From != b.From && a.From != b.To && a.To != b.From && a.To != b.To
}

// homeStatus summarizes what the bear-off rule needs to know about side's pieces.
type homeStatus struct {
	allHome  bool
	furthest int
}

func (gs *GameState) homeStatus(side Side) homeStatus {
	hs := homeStatus{allHome: true}
	for i, stack := range gs.board.cells {
		for _, p := range stack {
			if p.Side != side {
				continue
			}
			e := ExitDistance(side, cellAt(i))
			if e > HomeExitDistance {
				hs.allHome = false
			}
			hs.furthest = max(hs.furthest, e)
		}
	}
	return hs
}

// canBearOff applies the bear-off rule: everything home, and either an exact die or
// a larger die used on the furthest piece.
func canBearOff(side Side, from Cell, pips int, hs homeStatus) bool {
	if !hs.allHome {
		return false
	}
	e := ExitDistance(side, from)
	return pips == e || (pips > e && e == hs.furthest)
}

// legalCheckerMoves lists every single move side can make with one of its unused dice.
func (gs *GameState) legalCheckerMoves(side Side) []step {
	values := gs.dice.usableValues()
	if len(values) == 0 {
		return nil
	}
	hs := gs.homeStatus(side)

	var steps []step
	for i := range gs.board.cells {
		from := cellAt(i)
		if top, ok := gs.board.Top(from); !ok || top.Side != side {
			continue
		}
		for _, pips := range values {
			steps = gs.appendSteps(steps, side, from, pips, hs)
		}
	}
	return steps
}

func (gs *GameState) appendSteps(steps []step, side Side, from Cell, pips int, hs homeStatus) []step {
	for _, dir := range forward {
		to := target(side, from, dir, pips)
		if to.IsOff() {
			continue
		}
		if gs.board.opponents(to, side) <= 1 {
			steps = append(steps, step{move: CheckerMove{From: from, To: to}, pips: pips})
		}
	}
	if canBearOff(side, from, pips, hs) {
		steps = append(steps, step{move: CheckerMove{From: from, To: OffBoard}, pips: pips})
	}
	return steps
}

// canEverMove reports whether side has a move on some die face in the current
// position. If neither side has one, the board can never change again.
func (gs *GameState) canEverMove(side Side) bool {
	hs := gs.homeStatus(side)
	var steps []step
	for i := range gs.board.cells {
		from := cellAt(i)
		if top, ok := gs.board.Top(from); !ok || top.Side != side {
			continue
		}
		for pips := 1; pips <= NumDiceFaces; pips++ {
			if steps = gs.appendSteps(steps[:0], side, from, pips, hs); len(steps) > 0 {
				return true
			}
		}
	}
	return false
}

// applyCheckerMove moves the top piece and marks the die. Failures mean the
// generator produced a move the board cannot carry out.
func (gs *GameState) applyCheckerMove(side Side, st step) {
	if st.move.IsPass() {
		return
	}
	gs.moveOnBoard(side, st.move)
	if err := gs.dice.MarkUsed(st.pips); err != nil {
		panic(err)
	}
}

func (gs *GameState) undoCheckerMove(side Side, st step) {
	if st.move.IsPass() {
		return
	}
	if err := gs.dice.Unmark(st.pips); err != nil {
		panic(err)
	}
	gs.unmoveOnBoard(side, st.move)
}

func (gs *GameState) moveOnBoard(side Side, m CheckerMove) {
	p, err := gs.board.PopTop(m.From)
	if err != nil {
		panic(err)
	}
	if p.Side != side {
		panic(fmt.Errorf("moving %v piece for %v from %s: %w", p.Side, side, m.From, ErrInternalInconsistency))
	}
	if m.To.IsOff() {
		gs.retired[side] = append(gs.retired[side], p)
		return
	}
	gs.board.Push(m.To, p)
}

func (gs *GameState) unmoveOnBoard(side Side, m CheckerMove) {
	var p Piece
	if m.To.IsOff() {
		n := len(gs.retired[side])
		if n == 0 {
			panic(fmt.Errorf("no retired %v piece to restore: %w", side, ErrInternalInconsistency))
		}
		p = gs.retired[side][n-1]
		gs.retired[side] = gs.retired[side][:n-1]
	} else {
		var err error
		if p, err = gs.board.PopTop(m.To); err != nil {
			panic(err)
		}
	}
	gs.board.Push(m.From, p)
}

// recLegalMoves extends seq with every legal single move, recursing to depth two,
// and returns the longest sequence length found below seq.
func (gs *GameState) recLegalMoves(side Side, seq moveSeq, found map[moveSeq]struct{}) int {
	if seq.n == 2 {
		found[seq] = struct{}{}
		return seq.n
	}

	candidates := gs.legalCheckerMoves(side)
	if len(candidates) == 0 {
		found[seq] = struct{}{}
		return seq.n
	}

	longest := 0
	for _, st := range candidates {
		longest = max(longest, gs.tryStep(side, seq, st, found))
	}
	return longest
}

// tryStep plays st, recurses, and always takes st back, panics included.
func (gs *GameState) tryStep(side Side, seq moveSeq, st step, found map[moveSeq]struct{}) int {
	gs.applyCheckerMove(side, st)
	defer gs.undoCheckerMove(side, st)
	return gs.recLegalMoves(side, seq.push(st), found)
}

// legalSequences enumerates the turns available to side and keys them by action id.
// Both dice must be played when possible; otherwise only the largest playable die;
// a side that cannot move passes.
func (gs *GameState) legalSequences(side Side) map[Action]moveSeq {
	found := make(map[moveSeq]struct{})
	longest := gs.recLegalMoves(side, moveSeq{}, found)

	maxPips := 0
	if longest == 1 {
		for seq := range found {
			if seq.n == 1 {
				maxPips = max(maxPips, seq.steps[0].pips)
			}
		}
	}

	kept := make(map[moveSeq]struct{}, len(found))
	for seq := range found {
		if seq.n != longest {
			continue
		}
		if longest == 1 && seq.steps[0].pips != maxPips {
			continue
		}
		kept[seq] = struct{}{}
	}

	legal := make(map[Action]moveSeq, len(kept))
	for seq := range kept {
		if seq.n == 2 && seq.commutes() {
			other := seq.swapped()
			if _, ok := kept[other]; ok && other.steps[0].move.less(seq.steps[0].move) {
				continue
			}
		}
		a, err := Encode(seq.moves())
		if err != nil {
			panic(err)
		}
		if prev, ok := legal[a]; ok && !seqPipsLess(seq, prev) {
			continue
		}
		legal[a] = seq
	}
	return legal
}

// seqPipsLess breaks ties between sequences with the same moves but different dice,
// so enumeration is deterministic.
func seqPipsLess(a, b moveSeq) bool {
	if a.steps[0].pips != b.steps[0].pips {
		return a.steps[0].pips < b.steps[0].pips
	}
	return a.steps[1].pips < b.steps[1].pips
}

func sortedActions(legal map[Action]moveSeq) []Action {
	actions := make([]Action, 0, len(legal))
	for a := range legal {
		actions = append(actions, a)
	}
	slices.Sort(actions)
	return actions
}
