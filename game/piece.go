package game

import "fmt"

// Side is one of the two players. Its value doubles as the player id.
type Side int

const (
	Red Side = iota
	Blue
)

func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case Red:
		return "x"
	case Blue:
		return "o"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

type Kind int

const (
	Pawn Kind = iota
	Archer
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Archer:
		return "archer"
	case King:
		return "king"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Piece is a value: kinds carry identity only, every kind moves the same way.
type Piece struct {
	Kind Kind
	Side Side
}

func sideOf(player int) (Side, error) {
	if player != RedPlayerID && player != BluePlayerID {
		return 0, fmt.Errorf("player %d: %w", player, ErrOutOfRange)
	}
	return Side(player), nil
}
