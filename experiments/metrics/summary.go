package metrics

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of games.
type Summary struct {
	Games        int
	Finished     int // won or drawn
	Draws        int
	Wins         [2]int // by player ID
	MeanMoves    float64
	StdDevMoves  float64
	MedianMoves  float64
	MeanPoints   float64
	MeanBranches float64
}

func Summarize(games []GameRecord, moves []MoveRecord) Summary {
	s := Summary{Games: len(games)}
	if len(games) == 0 {
		return s
	}

	lengths := make([]float64, 0, len(games))
	points := make([]float64, 0, len(games))
	for _, g := range games {
		lengths = append(lengths, float64(g.TotalMoves))
		switch {
		case g.Winner >= 0:
			s.Finished++
			s.Wins[g.Winner]++
			points = append(points, g.Points)
		case g.Draw:
			s.Finished++
			s.Draws++
		}
	}

	s.MeanMoves, s.StdDevMoves = stat.MeanStdDev(lengths, nil)
	slices.Sort(lengths)
	s.MedianMoves = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	if len(points) > 0 {
		s.MeanPoints = floats.Sum(points) / float64(len(points))
	}

	if len(moves) > 0 {
		branches := make([]float64, len(moves))
		for i, m := range moves {
			branches[i] = float64(m.NumLegal)
		}
		s.MeanBranches = stat.Mean(branches, nil)
	}
	return s
}
