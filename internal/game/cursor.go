// internal/game/cursor.go
//
// Cursor and navigation.
//   - SelectCell: click on a grid cell; the active clue becomes the first clue
//     recorded for that cell at build time.
//   - SelectClue: click on a clue in the list; disambiguates direction.
//   - MoveArrow: one step, clamped to the grid, never onto a black cell.
//   - advance/retreat: one step along the active word, never past its ends.

package game

import (
	"github.com/samber/lo"

	"github.com/robalobadob/crossword/internal/grid"
)

// SelectCell moves the cursor to (row, col). Ignored unless playing and the
// cell is open.
func (s *Session) SelectCell(row, col int) bool {
	var ok bool
	s.do(func() {
		ok = s.selectCell(grid.Pos{Row: row, Col: col})
	})
	return ok
}

func (s *Session) selectCell(p grid.Pos) bool {
	if !s.playing() || !s.grid.Open(p) {
		return false
	}
	s.cursor = &p
	cell, _ := s.grid.At(p)
	if len(cell.Clues) > 0 {
		s.active = cell.Clues[0]
		if c, ok := s.grid.Clue(s.active); ok {
			s.speak(clueLine(s.tr, c))
		}
	}
	return true
}

// SelectClue puts the cursor on the first letter of a clue and makes it active.
func (s *Session) SelectClue(id string) bool {
	var ok bool
	s.do(func() {
		if !s.playing() {
			return
		}
		c, found := s.grid.Clue(id)
		if !found {
			return
		}
		s.cursor = &grid.Pos{Row: c.Row, Col: c.Col}
		s.active = c.ID
		ok = true
	})
	return ok
}

// MoveArrow moves the cursor one cell. A move onto a black cell is rejected.
// The active clue is kept when it passes through the destination.
func (s *Session) MoveArrow(a Arrow) bool {
	var ok bool
	s.do(func() {
		ok = s.moveArrow(a)
	})
	return ok
}

func (s *Session) moveArrow(a Arrow) bool {
	if !s.playing() || s.cursor == nil {
		return false
	}
	next := *s.cursor
	switch a {
	case ArrowUp:
		next.Row = max(0, next.Row-1)
	case ArrowDown:
		next.Row = min(s.grid.Size-1, next.Row+1)
	case ArrowLeft:
		next.Col = max(0, next.Col-1)
	case ArrowRight:
		next.Col = min(s.grid.Size-1, next.Col+1)
	default:
		return false
	}
	if next == *s.cursor || !s.grid.Open(next) {
		return false
	}
	s.cursor = &next
	cell, _ := s.grid.At(next)
	if !lo.Contains(cell.Clues, s.active) && len(cell.Clues) > 0 {
		s.active = cell.Clues[0]
	}
	return true
}

func (s *Session) advance() { s.stepAlongWord(1) }

func (s *Session) retreat() { s.stepAlongWord(-1) }

func (s *Session) stepAlongWord(delta int) {
	if s.cursor == nil || s.active == "" {
		return
	}
	path := s.grid.Path(s.active)
	i := lo.IndexOf(path, *s.cursor)
	j := i + delta
	if i < 0 || j < 0 || j >= len(path) {
		return
	}
	next := path[j]
	s.cursor = &next
}
