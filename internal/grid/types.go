// internal/grid/types.go
//
// Core type definitions for the crossword grid.
// Defines:
//   - Direction: orientation of a word (across/down).
//   - Clue: an immutable word definition supplied by the content layer.
//   - Cell: one square of the matrix, black or part of one or more words.
//   - Grid: the square matrix built from a clue list.

package grid

import "unicode"

// Direction is the orientation of a word in the grid.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool { return d == Across || d == Down }

// Label is the Spanish word used when a clue is read aloud.
func (d Direction) Label() string {
	if d == Down {
		return "vertical"
	}
	return "horizontal"
}

// step returns the row/col delta of one letter along d.
func (d Direction) step() (dr, dc int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

// Clue is a single word entry. Answers are case-insensitive.
type Clue struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Direction Direction `json:"direction"`
	Text      string    `json:"clue"`
	Answer    string    `json:"answer,omitempty"`
	Row       int       `json:"startRow"`
	Col       int       `json:"startCol"`
	AudioURL  string    `json:"audioUrl,omitempty"`
}

// Letters returns the upper-cased answer as runes.
func (c Clue) Letters() []rune {
	rs := []rune(c.Answer)
	for i, r := range rs {
		rs[i] = unicode.ToUpper(r)
	}
	return rs
}

// Pos addresses a cell.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one square of the grid.
// A black cell has no solution, no clues and never accepts an entry.
type Cell struct {
	Solution rune     // upper-case solution letter, 0 when black
	Black    bool     // not part of any word
	Number   int      // clue number shown in the corner, 0 if none
	Entry    rune     // player letter, 0 when empty
	Clues    []string // ids of the clues crossing this cell, in build order
}

// Correct reports whether the player entry matches the solution.
func (c Cell) Correct() bool {
	return !c.Black && c.Entry != 0 && unicode.ToUpper(c.Entry) == c.Solution
}

// Grid is a square matrix of cells. It is replaced wholesale on rebuild;
// only entries are mutated during play.
type Grid struct {
	Size     int
	Cells    [][]Cell
	Revision uint64 // bumped on every entry change

	clues []Clue // placed clues, input order
	index map[string]int
}
