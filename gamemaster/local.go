package gamemaster

import (
	"crowny/game"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Update is published after every accepted action. State is a private copy.
type Update struct {
	Player int
	Action game.Action
	State  *game.GameState
}

// UpdateGetter returns the oldest unread update without blocking. ok is false
// when there is none; closed turns true once the game is over and every
// update has been read.
type UpdateGetter func() (u Update, ok bool, closed bool)

// updateBuffer bounds the unread updates; the oldest are dropped first.
const updateBuffer = 64

type played struct {
	player int
	action game.Action
}

// Session is a game shared between goroutines. Every call validates before it
// touches the state, so a rejected action leaves the game as it was.
type Session struct {
	mu       sync.Mutex
	state    *game.GameState
	played   []played
	updateCh chan Update
	gameOver bool
}

func NewSession(g *game.Game) (*Session, UpdateGetter) {
	s := &Session{
		state:    g.NewInitialState(),
		updateCh: make(chan Update, updateBuffer),
	}
	return s, s.getUpdate
}

func (s *Session) getUpdate() (Update, bool, bool) {
	select {
	case u, ok := <-s.updateCh:
		if !ok { // Game over
			return Update{}, false, true
		}
		return u, true, false
	default:
		// No updates yet
		return Update{}, false, false
	}
}

// State returns a copy of the current state.
func (s *Session) State() *game.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Session) CurrentPlayer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentPlayer()
}

func (s *Session) LegalActions() []game.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LegalActions()
}

// Play applies action for player. Chance outcomes are played by ChancePlayerID.
func (s *Session) Play(player int, action game.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play(player, action)
}

// Roll samples the pending chance outcome and plays it.
func (s *Session) Roll(rng *rand.Rand) (game.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return 0, game.ErrGameOver
	}
	if !s.state.IsChanceNode() {
		return 0, fmt.Errorf("roll while player %d is to move: %w", s.state.CurrentPlayer(), ErrNotYourTurn)
	}
	outcome := game.SampleChance(s.state.ChanceOutcomes(), rng)
	return outcome, s.play(game.ChancePlayerID, outcome)
}

func (s *Session) play(player int, action game.Action) error {
	if s.gameOver {
		return game.ErrGameOver
	}
	if current := s.state.CurrentPlayer(); player != current {
		return fmt.Errorf("player %d played while player %d is to move: %w", player, current, ErrNotYourTurn)
	}
	if !slices.Contains(s.state.LegalActions(), action) {
		return fmt.Errorf("action %d for player %d: %w", action, player, game.ErrIllegalAction)
	}

	if err := s.state.ApplyAction(action); err != nil {
		return err
	}
	s.played = append(s.played, played{player: player, action: action})
	s.publish(Update{Player: player, Action: action, State: s.state.Clone()})

	if s.state.IsTerminal() {
		s.gameOver = true
		close(s.updateCh)
	}
	return nil
}

// Undo takes back the last action, chance outcomes included. A finished game
// cannot be reopened.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return game.ErrGameOver
	}
	n := len(s.played)
	if n == 0 {
		return ErrNothingToUndo
	}
	last := s.played[n-1]
	if err := s.state.Undo(last.player, last.action); err != nil {
		return err
	}
	s.played = s.played[:n-1]
	return nil
}

// publish never blocks: a full buffer loses its oldest update.
func (s *Session) publish(u Update) {
	for {
		select {
		case s.updateCh <- u:
			return
		default:
		}
		select {
		case <-s.updateCh:
		default:
		}
	}
}
