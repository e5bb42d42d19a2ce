// internal/httpserver/routes_puzzles.go
//
// Catalog and results endpoints.
//   - GET /puzzles                → summaries in catalog order
//   - GET /puzzles/daily          → today's puzzle (HMAC(date, DAILY_SALT) pick)
//   - GET /puzzles/{id}           → layout and clues, answers replaced by lengths
//   - GET /results/leaderboard    → top results for ?puzzleId= (default: today's puzzle)
//   - GET /results/mine           → the caller's recent results

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/crossword/internal/daily"
	"github.com/robalobadob/crossword/internal/game"
	"github.com/robalobadob/crossword/internal/grid"
	"github.com/robalobadob/crossword/internal/puzzles"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (s *Server) mountPuzzles(r chi.Router) {
	r.Route("/puzzles", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"puzzles": s.catalog.List()})
		})
		r.Get("/daily", s.handleDailyPuzzle)
		r.Get("/{id}", s.handlePuzzle)
	})
}

func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/mine", s.handleMine)
	})
}

// puzzleView is a playable layout without solutions.
type puzzleView struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Date      string            `json:"date,omitempty"`
	TimeLimit int               `json:"timeLimit,omitempty"`
	Size      int               `json:"size"`
	Cells     [][]game.CellView `json:"cells"`
	Clues     []game.ClueView   `json:"clues"`
	Issues    []issueView       `json:"issues,omitempty"`
}

func newPuzzleView(p puzzles.Puzzle) puzzleView {
	g, err := p.Build()
	v := puzzleView{ID: p.ID, Title: p.Title, TimeLimit: p.TimeLimit, Size: g.Size, Issues: views(grid.Issues(err))}

	v.Cells = lo.Map(g.Cells, func(row []grid.Cell, _ int) []game.CellView {
		return lo.Map(row, func(c grid.Cell, _ int) game.CellView {
			return game.CellView{Black: c.Black, Number: c.Number, Clues: c.Clues}
		})
	})
	v.Clues = lo.Map(g.Clues(), func(c grid.Clue, _ int) game.ClueView {
		return game.ClueView{
			ID:        c.ID,
			Number:    c.Number,
			Direction: c.Direction,
			Text:      c.Text,
			Row:       c.Row,
			Col:       c.Col,
			Length:    len(c.Letters()),
			AudioURL:  c.AudioURL,
		}
	})
	return v
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "puzzle_not_found")
		return
	}
	writeJSON(w, http.StatusOK, newPuzzleView(p))
}

func (s *Server) handleDailyPuzzle(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	p, err := s.catalog.Daily(now, s.cfg.DailySalt)
	if err != nil {
		writeErr(w, http.StatusNotFound, "puzzle_not_found")
		return
	}
	v := newPuzzleView(p)
	v.Date = daily.DateKey(now)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeErr(w, http.StatusServiceUnavailable, "results_disabled")
		return
	}
	puzzleID := r.URL.Query().Get("puzzleId")
	if puzzleID == "" {
		p, err := s.catalog.Daily(s.now(), s.cfg.DailySalt)
		if err != nil {
			writeErr(w, http.StatusNotFound, "puzzle_not_found")
			return
		}
		puzzleID = p.ID
	}
	recs, err := s.results.Leaderboard(r.Context(), puzzleID, limit(r))
	if err != nil {
		log.Error().Err(err).Msg("leaderboard query")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"puzzleId": puzzleID, "results": recs})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeErr(w, http.StatusServiceUnavailable, "results_disabled")
		return
	}
	recs, err := s.results.ByPlayer(r.Context(), s.playerID(w, r), limit(r))
	if err != nil {
		log.Error().Err(err).Msg("results query")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": recs})
}

// limit reads ?limit=, clamped to [1, maxLimit].
func limit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return min(n, maxLimit)
}
