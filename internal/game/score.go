package game

import (
	"math"

	"github.com/robalobadob/crossword/internal/grid"
)

// Score computes accuracy (percentage of open cells filled correctly) and the
// score: accuracy*10 minus PenaltyPerHint per hint, rounded, floored at zero.
func Score(g *grid.Grid, hintsUsed int) (score int, accuracy float64) {
	open, correct := g.Counts()
	if open > 0 {
		accuracy = float64(correct) / float64(open) * 100
	}
	score = max(0, int(math.Round(accuracy*10-float64(hintsUsed*PenaltyPerHint))))
	return score, accuracy
}

func (s *Session) computeResult(solved bool) Result {
	score, accuracy := Score(s.grid, s.hintsUsed)
	return Result{
		Score:            score,
		TimeSpentSeconds: s.elapsed,
		Accuracy:         accuracy,
		HintsUsed:        s.hintsUsed,
		Completed:        solved,
		CluesCompleted:   s.completed.Size(),
		CluesTotal:       len(s.grid.Clues()),
	}
}
