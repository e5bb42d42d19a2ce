// internal/puzzles/catalog.go
//
// Puzzle catalog served by the HTTP layer.
//
// Loading (Load):
//  1. Embedded defaults from assets/puzzles/*.json are always loaded.
//  2. If dir is set (PUZZLES_DIR), every *.json file in it is parsed and
//     added; a puzzle whose id is already known replaces the earlier one.
//
// A file that fails to parse is skipped with a warning; an empty catalog is
// an error. Puzzles are validated lazily by grid.Build when a session starts.

package puzzles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crossword/assets"
	"github.com/robalobadob/crossword/internal/daily"
)

var (
	ErrEmptyCatalog = errors.New("puzzles: catalog is empty")
	ErrNotFound     = errors.New("puzzles: not found")
)

// Summary is the public listing entry of a puzzle (no answers).
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Clues     int    `json:"clues"`
	TimeLimit int    `json:"timeLimit,omitempty"`
}

// Catalog holds puzzles by id, in load order.
type Catalog struct {
	mu    sync.RWMutex
	byID  map[string]Puzzle
	order []string
}

// NewCatalog builds a catalog from already-parsed puzzles.
func NewCatalog(ps ...Puzzle) *Catalog {
	c := &Catalog{byID: make(map[string]Puzzle)}
	for _, p := range ps {
		c.Add(p)
	}
	return c
}

// Load reads the embedded defaults plus every *.json file in dir.
func Load(dir string) (*Catalog, error) {
	c := NewCatalog()

	names, files, err := assets.PuzzleFiles()
	if err != nil {
		return nil, fmt.Errorf("read embedded puzzles: %w", err)
	}
	for _, n := range names {
		c.addFile("embedded:"+n, files[n])
	}

	if dir != "" {
		paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(paths)
		for _, p := range paths {
			b, err := os.ReadFile(p)
			if err != nil {
				log.Warn().Err(err).Str("file", p).Msg("puzzle file unreadable")
				continue
			}
			c.addFile(p, b)
		}
	}

	if c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	log.Info().Int("puzzles", c.Len()).Str("dir", dir).Msg("puzzle catalog loaded")
	return c, nil
}

func (c *Catalog) addFile(src string, b []byte) {
	ps, err := Parse(b)
	if err != nil {
		log.Warn().Err(err).Str("file", src).Msg("puzzle file skipped")
		return
	}
	for _, p := range ps {
		if c.Add(p) {
			log.Info().Str("id", p.ID).Str("file", src).Msg("puzzle replaced")
		}
	}
}

// Add stores p and reports whether it replaced an existing puzzle.
func (c *Catalog) Add(p Puzzle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, replaced := c.byID[p.ID]
	if !replaced {
		c.order = append(c.order, p.ID)
	}
	c.byID[p.ID] = p
	return replaced
}

// Get returns the puzzle with id.
func (c *Catalog) Get(id string) (Puzzle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	if !ok {
		return Puzzle{}, ErrNotFound
	}
	return p, nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// List returns summaries in load order.
func (c *Catalog) List() []Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		p := c.byID[id]
		out = append(out, Summary{ID: p.ID, Title: p.Title, Clues: len(p.Clues), TimeLimit: p.TimeLimit})
	}
	return out
}

// Daily returns the puzzle of the day for t, stable for a given salt and catalog.
func (c *Catalog) Daily(t time.Time, salt string) (Puzzle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		return Puzzle{}, ErrEmptyCatalog
	}
	return c.byID[c.order[daily.Index(t, salt, len(c.order))]], nil
}
