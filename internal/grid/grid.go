package grid

import "strings"

// InBounds reports whether p lies inside the matrix.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < g.Size && p.Col < g.Size
}

// At returns the cell at p. The second result is false outside the grid.
func (g *Grid) At(p Pos) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{Black: true}, false
	}
	return g.Cells[p.Row][p.Col], true
}

// Open reports whether p is inside the grid and not black.
func (g *Grid) Open(p Pos) bool {
	c, ok := g.At(p)
	return ok && !c.Black
}

// Clues returns the placed clues in build order.
func (g *Grid) Clues() []Clue {
	out := make([]Clue, len(g.clues))
	copy(out, g.clues)
	return out
}

// Clue looks up a placed clue by id.
func (g *Grid) Clue(id string) (Clue, bool) {
	i, ok := g.index[id]
	if !ok {
		return Clue{}, false
	}
	return g.clues[i], true
}

// Path returns the cells of a placed clue, first letter first.
func (g *Grid) Path(id string) []Pos {
	c, ok := g.Clue(id)
	if !ok {
		return nil
	}
	return walk(c.Row, c.Col, c.Direction, len([]rune(c.Answer)))
}

// SetEntry writes a player letter (0 clears). Black or out-of-range cells are refused.
func (g *Grid) SetEntry(p Pos, r rune) bool {
	if !g.Open(p) {
		return false
	}
	cell := &g.Cells[p.Row][p.Col]
	if cell.Entry == r {
		return true
	}
	cell.Entry = r
	g.Revision++
	return true
}

// ActiveCells returns the positions of every non-black cell in row-major order.
func (g *Grid) ActiveCells() []Pos {
	var out []Pos
	for r, row := range g.Cells {
		for c, cell := range row {
			if !cell.Black {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// Counts returns the number of open cells and how many of them are filled correctly.
func (g *Grid) Counts() (open, correct int) {
	for _, p := range g.ActiveCells() {
		open++
		if g.Cells[p.Row][p.Col].Correct() {
			correct++
		}
	}
	return open, correct
}

// Render draws the grid as text, one row per line. Black cells are '#',
// empty cells '.', and reveal shows solutions instead of entries.
func (g *Grid) Render(reveal bool) string {
	var b strings.Builder
	for r, row := range g.Cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			switch {
			case c.Black:
				b.WriteByte('#')
			case reveal:
				b.WriteRune(c.Solution)
			case c.Entry != 0:
				b.WriteRune(c.Entry)
			default:
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
