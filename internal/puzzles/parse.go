// internal/puzzles/parse.go
//
// Lenient decoding of puzzle documents.
//
// Puzzle files come from different authoring tools, so the decoder accepts:
//   - a single puzzle object or an array of puzzles
//   - camelCase or snake_case keys (startRow / start_row, timeLimit / time_limit)
//   - "clue", "text" or "question" for the clue text
//   - "across"/"horizontal"/"h" and "down"/"vertical"/"v" for the direction
//
// Missing puzzle ids get a random uuid; missing clue ids are derived from the
// number and direction; missing numbers are assigned in reading order.
// Layout problems are left to grid.Build.

package puzzles

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/robalobadob/crossword/internal/grid"
)

var ErrInvalidDocument = errors.New("puzzles: invalid document")

// Puzzle is a titled clue list ready to be built into a grid.
type Puzzle struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	TimeLimit int         `json:"timeLimit,omitempty"` // seconds, 0 = server default
	Clues     []grid.Clue `json:"clues"`
}

// Build lays the clues out on a grid.
func (p Puzzle) Build() (*grid.Grid, error) { return grid.Build(p.Clues) }

// Parse decodes one puzzle or an array of puzzles.
func Parse(data []byte) ([]Puzzle, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidDocument)
	}
	root := gjson.ParseBytes(data)

	var docs []gjson.Result
	switch {
	case root.IsArray():
		docs = root.Array()
	case root.IsObject():
		docs = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("%w: expected object or array", ErrInvalidDocument)
	}

	out := make([]Puzzle, 0, len(docs))
	for i, d := range docs {
		p, err := parsePuzzle(d)
		if err != nil {
			return nil, fmt.Errorf("puzzle %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePuzzle(d gjson.Result) (Puzzle, error) {
	if !d.IsObject() {
		return Puzzle{}, fmt.Errorf("%w: puzzle is not an object", ErrInvalidDocument)
	}
	clues := first(d, "clues", "words")
	if !clues.IsArray() {
		return Puzzle{}, fmt.Errorf("%w: missing clues array", ErrInvalidDocument)
	}

	p := Puzzle{
		ID:        strings.TrimSpace(first(d, "id", "slug").String()),
		Title:     strings.TrimSpace(first(d, "title", "name").String()),
		TimeLimit: int(first(d, "timeLimit", "time_limit").Int()),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Title == "" {
		p.Title = p.ID
	}

	for _, c := range clues.Array() {
		p.Clues = append(p.Clues, parseClue(c))
	}
	assignNumbers(p.Clues)
	for i := range p.Clues {
		if p.Clues[i].ID == "" {
			p.Clues[i].ID = fmt.Sprintf("%d-%s", p.Clues[i].Number, p.Clues[i].Direction)
		}
	}
	return p, nil
}

func parseClue(c gjson.Result) grid.Clue {
	return grid.Clue{
		ID:        strings.TrimSpace(c.Get("id").String()),
		Number:    int(c.Get("number").Int()),
		Direction: direction(first(c, "direction", "dir").String()),
		Text:      strings.TrimSpace(first(c, "clue", "text", "question").String()),
		Answer:    strings.TrimSpace(c.Get("answer").String()),
		Row:       intOr(first(c, "startRow", "start_row", "row"), -1),
		Col:       intOr(first(c, "startCol", "start_col", "col"), -1),
		AudioURL:  first(c, "audioUrl", "audio_url").String(),
	}
}

// direction maps the accepted spellings to grid directions.
// Unknown values pass through so grid.Build can report them.
func direction(s string) grid.Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "across", "horizontal", "h", "a":
		return grid.Across
	case "down", "vertical", "v", "d":
		return grid.Down
	}
	return grid.Direction(s)
}

// assignNumbers gives unnumbered clues a number in reading order.
// Clues sharing a start cell share a number; explicit numbers are kept.
func assignNumbers(clues []grid.Clue) {
	taken := map[grid.Pos]int{}
	next := 0
	for _, c := range clues {
		if c.Number > 0 {
			taken[grid.Pos{Row: c.Row, Col: c.Col}] = c.Number
			next = max(next, c.Number)
		}
	}

	idx := make([]int, 0, len(clues))
	for i, c := range clues {
		if c.Number <= 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := clues[idx[a]], clues[idx[b]]
		if ca.Row != cb.Row {
			return ca.Row < cb.Row
		}
		return ca.Col < cb.Col
	})

	for _, i := range idx {
		at := grid.Pos{Row: clues[i].Row, Col: clues[i].Col}
		if n, ok := taken[at]; ok {
			clues[i].Number = n
			continue
		}
		next++
		taken[at] = next
		clues[i].Number = next
	}
}

// first returns the first of keys present on r.
func first(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// intOr returns def when r is absent, so a missing coordinate is reported
// as out of bounds instead of landing on row 0.
func intOr(r gjson.Result, def int) int {
	if !r.Exists() {
		return def
	}
	return int(r.Int())
}
