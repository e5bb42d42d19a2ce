package game

import (
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/crossword/internal/grid"
)

// Completed returns the ids of every clue whose cells all hold the correct
// letter, in build order. It only reads the grid.
func Completed(g *grid.Grid) []string {
	done := lo.Filter(g.Clues(), func(c grid.Clue, _ int) bool {
		return clueSolved(g, c.ID)
	})
	return lo.Map(done, func(c grid.Clue, _ int) string { return c.ID })
}

func clueSolved(g *grid.Grid, id string) bool {
	path := g.Path(id)
	if len(path) == 0 {
		return false
	}
	for _, p := range path {
		cell, ok := g.At(p)
		if !ok || cell.Black || cell.Entry == 0 || unicode.ToUpper(cell.Entry) != cell.Solution {
			return false
		}
	}
	return true
}

func (s *Session) refreshCompleted() {
	set := mapset.New[string]()
	for _, id := range Completed(s.grid) {
		set.Put(id)
	}
	s.completed = set
}

func (s *Session) completedIDs() []string {
	out := []string{}
	for _, c := range s.grid.Clues() {
		if s.completed.Has(c.ID) {
			out = append(out, c.ID)
		}
	}
	return out
}

func (s *Session) solved() bool {
	total := len(s.grid.Clues())
	return total > 0 && s.completed.Size() == total
}

// afterEdit recomputes the completion set and, once every clue is solved,
// schedules the end of the session.
func (s *Session) afterEdit() {
	s.refreshCompleted()
	if !s.solved() || s.grace != nil {
		return
	}
	if s.opts.CompletionDelay <= 0 {
		s.fire(evComplete)
		return
	}
	log.Debug().Str("session", s.ID).Dur("delay", s.opts.CompletionDelay).Msg("puzzle solved, ending soon")
	s.grace = s.afterFunc(s.opts.CompletionDelay, func() {
		s.do(func() {
			s.grace = nil
			// the player may have broken a word during the grace period
			if s.playing() && s.solved() {
				s.fire(evComplete)
			}
		})
	})
}
