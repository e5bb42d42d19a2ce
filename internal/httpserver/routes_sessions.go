// internal/httpserver/routes_sessions.go
//
// Session endpoints. One session is one playthrough of one puzzle.
//   - POST   /sessions              → build the puzzle grid and register a session
//   - GET    /sessions/{id}         → snapshot
//   - POST   /sessions/{id}/start   → leave the instructions screen, start the clock
//   - POST   /sessions/{id}/select  → {row,col} | {clueId} | {arrow}
//   - POST   /sessions/{id}/key     → {key} as a keyboard event
//   - POST   /sessions/{id}/hint    → reveal one letter of the active clue
//   - POST   /sessions/{id}/read    → narrate a clue
//   - GET    /sessions/{id}/speech  → drain queued narration
//   - DELETE /sessions/{id}         → exit
//
// Actions that the session refuses still answer 200 with ok=false and the
// unchanged snapshot; only unknown sessions and bad payloads are errors.
// A second daily request from the same player on the same day answers 200
// with the live session, or 409 once that day's daily has ended.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crossword/internal/daily"
	"github.com/robalobadob/crossword/internal/game"
	"github.com/robalobadob/crossword/internal/grid"
	"github.com/robalobadob/crossword/internal/puzzles"
	"github.com/robalobadob/crossword/internal/results"
	"github.com/robalobadob/crossword/internal/store"
)

func (s *Server) mountSessions(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleSnapshot))
			r.Delete("/", s.withSession(s.handleExit))
			r.Post("/start", s.withSession(s.handleStart))
			r.Post("/select", s.withSession(s.handleSelect))
			r.Post("/key", s.withSession(s.handleKey))
			r.Post("/hint", s.withSession(s.handleHint))
			r.Post("/read", s.withSession(s.handleRead))
			r.Get("/speech", s.withSession(s.handleSpeech))
		})
	})
}

type newSessionReq struct {
	PuzzleID  string `json:"puzzleId"`
	Daily     bool   `json:"daily"`     // play today's puzzle, once per player; resumes a live one
	TimeLimit int    `json:"timeLimit"` // seconds; overrides puzzle and server defaults
	Hints     *bool  `json:"hints"`
	Audio     *bool  `json:"audio"`
	Language  string `json:"language"` // narration language
}

type issueView struct {
	Kind    string `json:"kind"`
	Clue    string `json:"clue"`
	Message string `json:"message"`
}

type newSessionRes struct {
	Session game.Snapshot `json:"session"`
	Issues  []issueView   `json:"issues,omitempty"`
}

type actionRes struct {
	OK      bool          `json:"ok"`
	Session game.Snapshot `json:"session"`
}

// handleNewSession picks the puzzle, builds its grid and registers a session
// in the instructions state.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if !decode(r, &req) {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	player := s.playerID(w, r)
	now := s.now()

	var (
		p    puzzles.Puzzle
		date string
		err  error
	)
	switch {
	case req.Daily:
		date = daily.DateKey(now)
		p, err = s.catalog.Daily(now, s.cfg.DailySalt)
	case req.PuzzleID != "":
		p, err = s.catalog.Get(req.PuzzleID)
	default:
		writeErr(w, http.StatusBadRequest, "puzzleId or daily required")
		return
	}
	if err != nil {
		writeErr(w, http.StatusNotFound, "puzzle_not_found")
		return
	}

	if req.Daily {
		// One daily session per player and day: creation and lookup share the lock.
		s.dailyMu.Lock()
		defer s.dailyMu.Unlock()

		if sess := s.dailySession(r.Context(), player, date); sess != nil {
			if sess.State() == game.StateEnded {
				writeErr(w, http.StatusConflict, "already_played")
				return
			}
			log.Debug().Str("session", sess.ID).Str("player", player).Msg("daily session resumed")
			writeJSON(w, http.StatusOK, newSessionRes{Session: sess.Snapshot()})
			return
		}
		if s.results != nil {
			played, err := s.results.PlayedDaily(r.Context(), player, date)
			if err != nil {
				log.Error().Err(err).Msg("daily lookup")
				writeErr(w, http.StatusInternalServerError, "db_error")
				return
			}
			if played {
				writeErr(w, http.StatusConflict, "already_played")
				return
			}
		}
	}

	g, err := p.Build()
	issues := grid.Issues(err)
	if len(issues) > 0 && s.cfg.StrictLayout {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "invalid_layout",
			"issues": views(issues),
		})
		return
	}

	sess := s.newSession(p, g, req, player, date)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if req.Daily {
		s.rememberDaily(player, date, sess.ID)
	}
	log.Info().Str("session", sess.ID).Str("puzzle", p.ID).Str("player", player).
		Int("issues", len(issues)).Msg("session created")

	writeJSON(w, http.StatusCreated, newSessionRes{Session: sess.Snapshot(), Issues: views(issues)})
}

// dailySession returns the player's daily session for date while it is still
// registered and the player has not left it. Callers hold dailyMu.
func (s *Server) dailySession(ctx context.Context, player, date string) *game.Session {
	key := player + "|" + date
	id, ok := s.dailies[key]
	if !ok {
		return nil
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil || !sess.Live() {
		delete(s.dailies, key)
		return nil
	}
	return sess
}

// rememberDaily maps player|date to a session and forgets earlier days.
// Callers hold dailyMu.
func (s *Server) rememberDaily(player, date, id string) {
	for k := range s.dailies {
		if !strings.HasSuffix(k, "|"+date) {
			delete(s.dailies, k)
		}
	}
	s.dailies[player+"|"+date] = id
}

func (s *Server) newSession(p puzzles.Puzzle, g *grid.Grid, req newSessionReq, player, dailyDate string) *game.Session {
	opts := s.cfg.Game
	if p.TimeLimit > 0 {
		opts.TimeLimit = p.TimeLimit
	}
	if req.TimeLimit > 0 {
		opts.TimeLimit = req.TimeLimit
	}
	if req.Hints != nil {
		opts.EnableHints = *req.Hints
	}
	if req.Audio != nil {
		opts.EnableAudio = *req.Audio
	}
	if req.Language != "" {
		opts.Language = req.Language
	}

	q := &speechQueue{}
	opts.Narrator = q

	var sess *game.Session
	opts.OnComplete = func(res game.Result) { s.recordResult(sess, player, dailyDate, res) }
	opts.OnExit = func() { s.setVoice(sess.ID, nil) }
	sess = game.New(p.ID, g, opts)
	s.setVoice(sess.ID, q)
	return sess
}

// recordResult persists a finished session. Failures are logged only; the
// player already has the result in the snapshot.
func (s *Server) recordResult(sess *game.Session, player, dailyDate string, res game.Result) {
	log.Info().Str("session", sess.ID).Int("score", res.Score).Bool("completed", res.Completed).
		Msg("session finished")
	if s.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec := results.FromResult(sess.ID, sess.PuzzleID, player, res)
	rec.DailyDate = dailyDate
	stored, err := s.results.Insert(ctx, rec)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("session", sess.ID).Msg("insert result")
	case !stored && dailyDate != "":
		log.Warn().Str("session", sess.ID).Str("player", player).Str("date", dailyDate).
			Msg("daily result already recorded, ignored")
	}
}

func views(issues []*grid.LayoutError) []issueView {
	out := make([]issueView, 0, len(issues))
	for _, e := range issues {
		out = append(out, issueView{Kind: e.Kind.Error(), Clue: e.ClueID, Message: e.Msg})
	}
	return out
}

// ------------------------------ per session --------------------------------

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *game.Session)

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "session_not_found")
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "store_error")
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	ok := sess.Start()
	writeJSON(w, http.StatusOK, actionRes{OK: ok, Session: sess.Snapshot()})
}

type selectReq struct {
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
	ClueID string `json:"clueId"`
	Arrow  string `json:"arrow"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req selectReq
	if !decode(r, &req) {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	var ok bool
	switch {
	case req.Row != nil && req.Col != nil:
		ok = sess.SelectCell(*req.Row, *req.Col)
	case req.ClueID != "":
		ok = sess.SelectClue(req.ClueID)
	case req.Arrow != "":
		ok = sess.MoveArrow(game.Arrow(req.Arrow))
	default:
		writeErr(w, http.StatusBadRequest, "row/col, clueId or arrow required")
		return
	}
	writeJSON(w, http.StatusOK, actionRes{OK: ok, Session: sess.Snapshot()})
}

type keyReq struct {
	Key string `json:"key"`
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req keyReq
	if !decode(r, &req) || req.Key == "" {
		writeErr(w, http.StatusBadRequest, "key required")
		return
	}
	ok := sess.HandleKey(req.Key)
	writeJSON(w, http.StatusOK, actionRes{OK: ok, Session: sess.Snapshot()})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	ok := sess.UseHint()
	writeJSON(w, http.StatusOK, actionRes{OK: ok, Session: sess.Snapshot()})
}

type readReq struct {
	ClueID string `json:"clueId"`
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req readReq
	if !decode(r, &req) {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.ClueID == "" {
		req.ClueID = sess.ActiveClue()
	}
	ok := sess.ReadClue(req.ClueID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	lines := []string{}
	if q := s.voice(sess.ID); q != nil {
		lines = q.Drain()
	}
	writeJSON(w, http.StatusOK, map[string][]string{"lines": lines})
}

// handleExit abandons the session and forgets it.
func (s *Server) handleExit(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	sess.Exit()
	s.setVoice(sess.ID, nil)
	if err := s.store.Delete(r.Context(), sess.ID); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("delete session")
	}
	w.WriteHeader(http.StatusNoContent)
}
