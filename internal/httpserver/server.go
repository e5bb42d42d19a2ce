// internal/httpserver/server.go
//
// HTTP server wiring for the crossword backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle catalog: /puzzles, /puzzles/daily, /puzzles/{id} (answers never sent).
//   - Session endpoints (optional auth): create, snapshot, start, select, key,
//     hint, read, speech, exit.
//   - Results: /results/leaderboard, /results/mine.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Players are identified by the id claim of a valid bearer token, or by an
//     anonymous cookie. Tokens are issued elsewhere; this server only verifies them.
//   - Finished sessions are written to the results store from the session's
//     OnComplete hook, and dropped from the registry by a periodic sweep.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/crossword/internal/config"
	"github.com/robalobadob/crossword/internal/game"
	"github.com/robalobadob/crossword/internal/locale"
	"github.com/robalobadob/crossword/internal/puzzles"
	"github.com/robalobadob/crossword/internal/results"
	"github.com/robalobadob/crossword/internal/store"
)

// Server bundles router, session registry, puzzle catalog and results store.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	store   store.Store
	catalog *puzzles.Catalog
	results *results.Store // nil disables persistence
	now     func() time.Time

	mu     sync.Mutex
	voices map[string]*speechQueue // narration per session id

	dailyMu sync.Mutex
	dailies map[string]string // player|date → daily session id
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, cat *puzzles.Catalog, res *results.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg,
		store:   st,
		catalog: cat,
		results: res,
		now:     time.Now,
		voices:  make(map[string]*speechQueue),
		dailies: make(map[string]string),
	}
	if s.cfg.EndedTTL <= 0 {
		s.cfg.EndedTTL = 10 * time.Minute
	}
	if s.cfg.IdleTTL <= 0 {
		s.cfg.IdleTTL = 2 * time.Hour
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"crossword-go","endpoints":["/health","/puzzles","POST /sessions","/results/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":        true,
			"sessions":  s.store.Len(),
			"languages": locale.Languages(),
		})
	})

	opt := s.r.With(s.withOptionalAuth())
	s.mountPuzzles(opt)
	s.mountSessions(opt)
	s.mountResults(opt)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr and sweeps expired sessions every minute.
func (s *Server) Start(addr string) error {
	stop := make(chan struct{})
	defer close(stop)
	go s.janitor(time.Minute, stop)
	return http.ListenAndServe(addr, s.r)
}

func (s *Server) janitor(every time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			s.sweep(now)
		}
	}
}

// sweep drops sessions that ended or were abandoned more than EndedTTL ago,
// and sessions left on the instructions screen for longer than IdleTTL.
// Sessions being played are kept; their clock ends them.
func (s *Server) sweep(now time.Time) int {
	gone := s.store.Sweep(context.Background(), now, func(sess *game.Session, idle time.Duration) bool {
		switch {
		case !sess.Live() || sess.State() == game.StateEnded:
			return idle > s.cfg.EndedTTL
		case sess.State() == game.StateInstructions:
			return idle > s.cfg.IdleTTL
		}
		return false
	})
	for _, id := range gone {
		s.setVoice(id, nil)
	}
	if len(gone) > 0 {
		log.Debug().Int("sessions", len(gone)).Msg("expired sessions swept")
	}
	return len(gone)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decode reads an optional JSON body; an empty body leaves v untouched.
func decode(r *http.Request, v any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(v)
	return err == nil || errors.Is(err, io.EOF)
}
