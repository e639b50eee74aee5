package game

import "errors"

var (
	// ErrOutOfRange reports an id, player index, die index or cell outside its domain.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidConfiguration reports a game parameter that cannot be resolved.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInternalInconsistency means the move generator and the move applier disagree.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	ErrEmptyCell = wrapInternal("pop from empty cell")
	ErrNoSuchDie = wrapInternal("no unused die with that value")

	// ErrIllegalAction reports an action that is not legal in the current state.
	// The state is left untouched.
	ErrIllegalAction = errors.New("illegal action")

	ErrGameOver = errors.New("game is over")
)

type internalError struct {
	msg string
}

func wrapInternal(msg string) error {
	return &internalError{msg: msg}
}

func (e *internalError) Error() string {
	return ErrInternalInconsistency.Error() + ": " + e.msg
}

func (e *internalError) Unwrap() error {
	return ErrInternalInconsistency
}
