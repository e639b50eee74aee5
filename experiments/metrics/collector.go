package metrics

import (
	"time"
)

type MoveMetric struct {
	Step       int
	Player     int // Player ID
	NumLegal   int
	Duration   time.Duration
	Pass       bool
	DoubleTurn bool
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, -1 after a draw or a cut-off
	Draw           bool
	Points         float64
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	ChanceNodes    int
}

func (g GameMetric) Finished() bool {
	return g.Winner >= 0 || g.Draw
}

// Collector records the decisions of one game. It is used from the goroutine
// that drives the game only.
type Collector interface {
	StartMove(step, player, numLegal int, doubleTurn bool)
	CompleteMove(pass bool)
	Moves() []MoveMetric
}

type collector struct {
	startTime time.Time
	current   MoveMetric
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) StartMove(step, player, numLegal int, doubleTurn bool) {
	m.startTime = time.Now()
	m.current = MoveMetric{
		Step:       step,
		Player:     player,
		NumLegal:   numLegal,
		DoubleTurn: doubleTurn,
	}
}

func (m *collector) CompleteMove(pass bool) {
	m.current.Duration = time.Since(m.startTime)
	m.current.Pass = pass
	m.moves = append(m.moves, m.current)
}

func (m *collector) Moves() []MoveMetric {
	return m.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) StartMove(step, player, numLegal int, doubleTurn bool) {}
func (m *dummyCollector) CompleteMove(pass bool)                                {}
func (m *dummyCollector) Moves() []MoveMetric                                   { return nil }
