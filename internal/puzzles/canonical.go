package puzzles

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Canonical re-encodes p with the camelCase keys, explicit numbers and ids
// that Parse produces, so loosely written files can be normalised.
func Canonical(p Puzzle) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("id", p.ID)
	set("title", p.Title)
	if p.TimeLimit > 0 {
		set("timeLimit", p.TimeLimit)
	}
	set("clues", []any{})
	for _, c := range p.Clues {
		clue := map[string]any{
			"id":        c.ID,
			"number":    c.Number,
			"direction": string(c.Direction),
			"clue":      c.Text,
			"answer":    c.Answer,
			"startRow":  c.Row,
			"startCol":  c.Col,
		}
		if c.AudioURL != "" {
			clue["audioUrl"] = c.AudioURL
		}
		set("clues.-1", clue)
	}
	if err != nil {
		return nil, fmt.Errorf("encode puzzle %s: %w", p.ID, err)
	}
	return doc, nil
}
