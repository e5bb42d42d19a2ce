// internal/game/session.go
//
// Crossword play session.
// Responsibilities:
//   - Own the grid, cursor, hint counter and completion set of one puzzle instance.
//   - Drive the lifecycle instructions → playing → ended with a looplab/fsm machine.
//   - Run the one-second clock and the completion grace timer, and release both
//     on every exit path (completion, timeout, Exit).
//   - Hand the final Result to OnComplete exactly once.
//   - Feed narration lines, in order, to one worker goroutine per session.
//
// Every public handler serialises on the session mutex and runs to completion,
// which stands in for a single UI event loop. Collaborator hooks queued by a
// handler run after the mutex is released.

package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/crossword/internal/grid"
	"github.com/robalobadob/crossword/internal/locale"
)

// Session is a single crossword playthrough.
type Session struct {
	ID       string
	PuzzleID string

	mu        sync.Mutex
	grid      *grid.Grid
	opts      Options
	tr        locale.Translator
	machine   *fsm.FSM
	live      bool // false once the player exited
	cursor    *grid.Pos
	active    string // active clue id
	elapsed   int
	hintsUsed int
	completed mapset.Set[string]
	result    *Result
	pending   []func()

	voice       chan string // narration worker input, created on first line
	voiceClosed bool

	cancelClock context.CancelFunc
	grace       stopper

	// clock seams, replaced in tests
	newTicker func(d time.Duration) ticker
	afterFunc func(d time.Duration, f func()) stopper
}

// New creates a session in the instructions state for an already built grid.
func New(puzzleID string, g *grid.Grid, opts Options) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		PuzzleID:  puzzleID,
		grid:      g,
		opts:      opts.normalized(),
		tr:        locale.For(opts.Language),
		live:      true,
		completed: mapset.New[string](),
		newTicker: newRealTicker,
		afterFunc: realAfterFunc,
	}
	s.machine = fsm.NewFSM(
		string(StateInstructions),
		fsm.Events{
			{Name: evStart, Src: []string{string(StateInstructions)}, Dst: string(StatePlaying)},
			{Name: evComplete, Src: []string{string(StatePlaying)}, Dst: string(StateEnded)},
			{Name: evTimeout, Src: []string{string(StatePlaying)}, Dst: string(StateEnded)},
		},
		fsm.Callbacks{
			"enter_" + string(StatePlaying): func(_ context.Context, _ *fsm.Event) { s.enterPlaying() },
			"enter_" + string(StateEnded): func(_ context.Context, e *fsm.Event) {
				s.enterEnded(e.Event == evComplete)
			},
		},
	)
	return s
}

// do runs fn under the session lock, then delivers queued hooks.
func (s *Session) do(fn func()) {
	s.mu.Lock()
	fn()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

func (s *Session) queue(f func()) { s.pending = append(s.pending, f) }

func (s *Session) state() State { return State(s.machine.Current()) }

func (s *Session) playing() bool { return s.live && s.state() == StatePlaying }

func (s *Session) fire(event string) bool {
	if err := s.machine.Event(context.Background(), event); err != nil {
		log.Debug().Err(err).Str("session", s.ID).Str("event", event).Msg("transition refused")
		return false
	}
	return true
}

// Start leaves the instructions screen and starts the clock.
// Valid only from the instructions state.
func (s *Session) Start() bool {
	var ok bool
	s.do(func() {
		if !s.live || s.state() != StateInstructions {
			return
		}
		ok = s.fire(evStart)
	})
	return ok
}

// Exit abandons the session from any state. Timers are released, OnExit is
// called once and no result is reported for an unfinished session.
func (s *Session) Exit() {
	s.do(func() {
		if !s.live {
			return
		}
		s.live = false
		s.stopTimers()
		s.closeVoice()
		log.Info().Str("session", s.ID).Str("state", string(s.state())).Msg("session exited")
		if s.opts.OnExit != nil {
			s.queue(s.opts.OnExit)
		}
	})
}

func (s *Session) enterPlaying() {
	if clues := s.grid.Clues(); len(clues) > 0 {
		first := clues[0]
		s.cursor = &grid.Pos{Row: first.Row, Col: first.Col}
		s.active = first.ID
	}
	s.startClock()
	s.speak(s.tr.Get(phraseStart))
	log.Info().Str("session", s.ID).Str("puzzle", s.PuzzleID).Int("timeLimit", s.opts.TimeLimit).Msg("session started")
}

func (s *Session) enterEnded(solved bool) {
	s.stopTimers()
	s.refreshCompleted()

	r := s.computeResult(solved)
	s.result = &r
	if solved {
		s.speak(s.tr.Get(phraseSolved))
	} else {
		s.speak(s.tr.Get(phraseTimeout))
	}
	s.closeVoice()
	log.Info().
		Str("session", s.ID).
		Bool("completed", r.Completed).
		Int("score", r.Score).
		Float64("accuracy", r.Accuracy).
		Int("hints", r.HintsUsed).
		Int("elapsed", r.TimeSpentSeconds).
		Msg("session ended")

	if s.opts.OnComplete != nil {
		onComplete := s.opts.OnComplete
		s.queue(func() { onComplete(r) })
	}
}

func (s *Session) stopTimers() {
	if s.cancelClock != nil {
		s.cancelClock()
		s.cancelClock = nil
	}
	if s.grace != nil {
		s.grace.Stop()
		s.grace = nil
	}
}

// State reports the lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Live reports whether the player is still attached to the session.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Result returns the final result once the session has ended.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Elapsed returns the seconds counted by the clock.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// HintsUsed returns the number of hints consumed.
func (s *Session) HintsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsUsed
}

// Cursor returns the selected cell, if any.
func (s *Session) Cursor() (grid.Pos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor == nil {
		return grid.Pos{}, false
	}
	return *s.cursor, true
}

// ActiveClue returns the id of the highlighted clue ("" if none).
func (s *Session) ActiveClue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Cell returns a copy of the cell at (row, col).
func (s *Session) Cell(row, col int) (grid.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.grid.At(grid.Pos{Row: row, Col: col})
	c.Clues = append([]string(nil), c.Clues...)
	return c, ok
}

// CompletedClues returns the ids of the solved clues in build order.
func (s *Session) CompletedClues() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedIDs()
}
