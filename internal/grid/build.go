// internal/grid/build.go
//
// Grid builder: turns a clue list into a square cell matrix.
//
// Layout rules:
//   - size = clamp(max(lastRow, lastCol)+1, MinSize, MaxSize), over every
//     well-formed clue in the input. A word later dropped as a duplicate or a
//     conflict still counts, so the layout does not depend on which words won.
//   - Every cell starts black; each placed clue opens its letter cells,
//     writes the upper-case solution and appends its id to the cell.
//   - The first letter's cell takes the clue number unless one is already set.
//
// A clue that cannot be placed whole (malformed, duplicate, past the size cap,
// disagreeing with an earlier word at a crossing) is dropped, logged at warn
// level and reported through the returned error. The grid is still usable.

package grid

import (
	"errors"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	MinSize = 8
	MaxSize = 15
)

// Build lays out clues on a fresh grid. Building the same list twice yields
// identical layouts; entries are always empty afterwards.
func Build(clues []Clue) (*Grid, error) {
	g := newGrid(Extent(clues))

	var errs []error
	seen := make(map[string]struct{}, len(clues))
	for _, c := range clues {
		if err := g.place(c, seen); err != nil {
			log.Warn().
				Str("clue", c.ID).
				Int("size", g.Size).
				Err(err).
				Msg("crossword clue dropped from layout")
			errs = append(errs, err)
		}
	}
	return g, errors.Join(errs...)
}

// Extent computes the square grid size required by clues, clamped to
// [MinSize, MaxSize]. Malformed clues are ignored; duplicates and words that
// conflict at a crossing are not, since that is only known while placing.
func Extent(clues []Clue) int {
	maxRow, maxCol := 0, 0
	for _, c := range clues {
		n := len([]rune(c.Answer))
		if n == 0 || !c.Direction.Valid() || c.Row < 0 || c.Col < 0 {
			continue
		}
		dr, dc := c.Direction.step()
		maxRow = max(maxRow, c.Row+dr*(n-1))
		maxCol = max(maxCol, c.Col+dc*(n-1))
	}
	return min(max(maxRow+1, maxCol+1, MinSize), MaxSize)
}

func newGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
		for c := range cells[r] {
			cells[r][c] = Cell{Black: true}
		}
	}
	return &Grid{Size: size, Cells: cells, index: make(map[string]int)}
}

// place validates the whole word before touching any cell.
func (g *Grid) place(c Clue, seen map[string]struct{}) error {
	if c.ID == "" {
		return layoutErr(ErrMalformed, c.ID, "missing id")
	}
	if _, dup := seen[c.ID]; dup {
		return layoutErr(ErrDuplicate, c.ID, "already defined")
	}
	seen[c.ID] = struct{}{}

	if !c.Direction.Valid() {
		return layoutErr(ErrMalformed, c.ID, "unknown direction %q", c.Direction)
	}
	letters := c.Letters()
	if len(letters) == 0 {
		return layoutErr(ErrMalformed, c.ID, "empty answer")
	}
	for i, r := range letters {
		if !unicode.IsLetter(r) {
			return layoutErr(ErrMalformed, c.ID, "non-letter %q at index %d", r, i)
		}
	}
	if c.Row < 0 || c.Col < 0 {
		return layoutErr(ErrMalformed, c.ID, "negative start (%d,%d)", c.Row, c.Col)
	}

	path := walk(c.Row, c.Col, c.Direction, len(letters))
	for i, p := range path {
		if !g.InBounds(p) {
			return layoutErr(ErrOutOfBounds, c.ID, "letter %d at (%d,%d) outside %dx%d", i, p.Row, p.Col, g.Size, g.Size)
		}
		cell := g.Cells[p.Row][p.Col]
		if !cell.Black && cell.Solution != letters[i] {
			return layoutErr(ErrConflict, c.ID, "(%d,%d) is %q for %v, %q here",
				p.Row, p.Col, cell.Solution, cell.Clues, letters[i])
		}
	}

	for i, p := range path {
		cell := &g.Cells[p.Row][p.Col]
		cell.Black = false
		cell.Solution = letters[i]
		cell.Clues = append(cell.Clues, c.ID)
		if i == 0 && cell.Number == 0 {
			cell.Number = c.Number
		}
	}
	g.index[c.ID] = len(g.clues)
	g.clues = append(g.clues, c)
	return nil
}

func walk(row, col int, d Direction, n int) []Pos {
	dr, dc := d.step()
	out := make([]Pos, n)
	for i := range out {
		out[i] = Pos{Row: row + dr*i, Col: col + dc*i}
	}
	return out
}
