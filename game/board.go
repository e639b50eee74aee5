package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

const (
	BoardSize = 11
	NumCells  = BoardSize * BoardSize

	// Cells of the 3x3 starting corner block.
	cornerSize = 3
)

// Cell is a (row, col) coordinate. Red starts around (10,0), Blue around (0,10).
type Cell struct {
	Row int
	Col int
}

// OffBoard is the single sentinel for a piece leaving the board.
var OffBoard = Cell{Row: -1, Col: -1}

func (c Cell) IsOff() bool {
	return c.Row < 0 || c.Row >= BoardSize || c.Col < 0 || c.Col >= BoardSize
}

func (c Cell) String() string {
	if c.IsOff() {
		return "off"
	}
	return fmt.Sprintf("%d%d", c.Row, c.Col)
}

func (c Cell) index() int {
	return c.Row*BoardSize + c.Col
}

// mirror maps a Red cell onto the matching Blue cell.
func (c Cell) mirror() Cell {
	return Cell{Row: BoardSize - 1 - c.Row, Col: BoardSize - 1 - c.Col}
}

func cellAt(index int) Cell {
	return Cell{Row: index / BoardSize, Col: index % BoardSize}
}

// Board holds one ordered stack of pieces per cell; the top of a stack is its last element.
type Board struct {
	cells [NumCells][]Piece
}

// NewBoard returns an empty board. Call InitialSetup for the starting layout.
func NewBoard() *Board {
	return &Board{}
}

// InitialSetup clears the board and places both sides in their home corners:
// ten Pawns, four Archers and the King, the King on top of the corner stack.
func (b *Board) InitialSetup() {
	for i := range b.cells {
		b.cells[i] = nil
	}

	for _, side := range []Side{Red, Blue} {
		for row := BoardSize - cornerSize; row < BoardSize; row++ {
			for col := 0; col < cornerSize; col++ {
				b.place(side, Pawn, Cell{Row: row, Col: col})
			}
		}
		b.place(side, Pawn, Cell{Row: 10, Col: 0})

		for _, c := range []Cell{{9, 0}, {10, 0}, {9, 1}, {10, 1}} {
			b.place(side, Archer, c)
		}

		b.place(side, King, Cell{Row: 10, Col: 0})
	}
}

// place takes Red coordinates and mirrors them for Blue.
func (b *Board) place(side Side, kind Kind, c Cell) {
	if side == Blue {
		c = c.mirror()
	}
	b.Push(c, Piece{Kind: kind, Side: side})
}

// PiecesAt returns a copy of the stack at c, bottom first.
func (b *Board) PiecesAt(c Cell) ([]Piece, error) {
	if c.IsOff() {
		return nil, fmt.Errorf("cell (%d,%d): %w", c.Row, c.Col, ErrOutOfRange)
	}
	return slices.Clone(b.cells[c.index()]), nil
}

// Top returns the piece on top of the stack at c.
func (b *Board) Top(c Cell) (Piece, bool) {
	if c.IsOff() {
		return Piece{}, false
	}
	stack := b.cells[c.index()]
	if len(stack) == 0 {
		return Piece{}, false
	}
	return stack[len(stack)-1], true
}

// Push puts p on top of the stack at c. It panics on an off-board cell.
func (b *Board) Push(c Cell, p Piece) {
	if c.IsOff() {
		panic(fmt.Errorf("push on cell (%d,%d): %w", c.Row, c.Col, ErrOutOfRange))
	}
	i := c.index()
	b.cells[i] = append(b.cells[i], p)
}

func (b *Board) PopTop(c Cell) (Piece, error) {
	if c.IsOff() {
		return Piece{}, fmt.Errorf("cell (%d,%d): %w", c.Row, c.Col, ErrOutOfRange)
	}
	i := c.index()
	stack := b.cells[i]
	if len(stack) == 0 {
		return Piece{}, fmt.Errorf("cell %s: %w", c, ErrEmptyCell)
	}
	p := stack[len(stack)-1]
	b.cells[i] = stack[:len(stack)-1]
	return p, nil
}

// Count returns how many pieces of side are on the board, pinned ones included.
func (b *Board) Count(side Side) int {
	n := 0
	for _, stack := range b.cells {
		for _, p := range stack {
			if p.Side == side {
				n++
			}
		}
	}
	return n
}

// opponents counts the pieces in the stack at c that do not belong to side.
func (b *Board) opponents(c Cell, side Side) int {
	n := 0
	for _, p := range b.cells[c.index()] {
		if p.Side != side {
			n++
		}
	}
	return n
}

func (b *Board) Clone() *Board {
	nb := &Board{}
	for i, stack := range b.cells {
		if len(stack) > 0 {
			nb.cells[i] = slices.Clone(stack)
		}
	}
	return nb
}

// Equal compares stack contents; empty and nil stacks are the same.
func (b *Board) Equal(o *Board) bool {
	for i := range b.cells {
		if !slices.Equal(b.cells[i], o.cells[i]) {
			return false
		}
	}
	return true
}
