package game

import "fmt"

// Action is a chance outcome at chance nodes, and an encoded pair of checker moves otherwise.
type Action int

const (
	// Cells are digits 0..120; offDigit stands for OffBoard.
	offDigit   = NumCells
	actionBase = NumCells + 1

	// NumDistinctActions bounds move action ids: four base-122 digits.
	NumDistinctActions = actionBase * actionBase * actionBase * actionBase
)

// CheckerMove relocates the top piece of From. To == OffBoard bears the piece off.
type CheckerMove struct {
	From Cell
	To   Cell
}

// PassMove stands in for a die that cannot be played.
var PassMove = CheckerMove{From: OffBoard, To: OffBoard}

func (m CheckerMove) IsPass() bool {
	return m.From.IsOff() && m.To.IsOff()
}

func (m CheckerMove) String() string {
	if m.IsPass() {
		return "pass"
	}
	return m.From.String() + "/" + m.To.String()
}

func digit(c Cell) int {
	if c.IsOff() {
		return offDigit
	}
	return c.index()
}

func cellOf(d int) Cell {
	if d == offDigit {
		return OffBoard
	}
	return cellAt(d)
}

// less orders moves by their (from, to) digits.
func (m CheckerMove) less(o CheckerMove) bool {
	if a, b := digit(m.From), digit(o.From); a != b {
		return a < b
	}
	return digit(m.To) < digit(o.To)
}

// Encode packs two moves, in play order, into one action id:
// to2*B^3 + from2*B^2 + to1*B + from1 with B = 122.
func Encode(moves [2]CheckerMove) (Action, error) {
	d0 := digit(moves[0].From)
	d1 := digit(moves[0].To)
	d2 := digit(moves[1].From)
	d3 := digit(moves[1].To)

	a := ((d3*actionBase+d2)*actionBase+d1)*actionBase + d0
	if a < 0 || a >= NumDistinctActions {
		return 0, fmt.Errorf("encoded action %d: %w", a, ErrOutOfRange)
	}
	return Action(a), nil
}

// Decode is the inverse of Encode. Every id in range decodes, including ones
// no legal position produces.
func Decode(a Action) ([2]CheckerMove, error) {
	if a < 0 || a >= NumDistinctActions {
		return [2]CheckerMove{}, fmt.Errorf("action %d: %w", a, ErrOutOfRange)
	}

	v := int(a)
	var digits [4]int
	for i := range digits {
		digits[i] = v % actionBase
		v /= actionBase
	}

	return [2]CheckerMove{
		{From: cellOf(digits[0]), To: cellOf(digits[1])},
		{From: cellOf(digits[2]), To: cellOf(digits[3])},
	}, nil
}
