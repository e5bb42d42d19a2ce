// internal/game/types.go
//
// Core type definitions for the crossword session engine.
// Defines:
//   - State: lifecycle of a session (instructions → playing → ended).
//   - Arrow: cursor movement keys.
//   - Result: final score handed to the result consumer.
//   - Options: per-session configuration and collaborator hooks.

package game

import "time"

// State is the lifecycle stage of a session.
type State string

const (
	StateInstructions State = "instructions"
	StatePlaying      State = "playing"
	StateEnded        State = "ended"
)

// fsm event names.
const (
	evStart    = "start"
	evComplete = "complete"
	evTimeout  = "timeout"
)

// Arrow is a cursor movement.
type Arrow string

const (
	ArrowUp    Arrow = "up"
	ArrowDown  Arrow = "down"
	ArrowLeft  Arrow = "left"
	ArrowRight Arrow = "right"
)

// Scoring and session defaults.
const (
	DefaultTimeLimit       = 2400 // seconds (40 minutes)
	DefaultHintLimit       = 3
	DefaultCompletionDelay = time.Second
	PenaltyPerHint         = 50
)

// Result is the final outcome of a session. It is computed once, when the
// session ends, and never changes afterwards.
type Result struct {
	Score            int     `json:"score"`
	TimeSpentSeconds int     `json:"timeSpent"`
	Accuracy         float64 `json:"accuracy"`
	HintsUsed        int     `json:"hintsUsed"`
	Completed        bool    `json:"completed"` // false when the clock ran out
	CluesCompleted   int     `json:"cluesCompleted"`
	CluesTotal       int     `json:"cluesTotal"`
}

// Narrator reads text aloud. Calls are fire-and-forget.
type Narrator interface {
	Speak(text string)
}

// NarratorFunc adapts a function to Narrator.
type NarratorFunc func(text string)

func (f NarratorFunc) Speak(text string) { f(text) }

// Options configures a session.
type Options struct {
	TimeLimit       int           // seconds; <= 0 means DefaultTimeLimit
	HintLimit       int           // <= 0 means DefaultHintLimit
	EnableAudio     bool          // false suppresses every narration
	EnableHints     bool          // false turns UseHint into a no-op
	Language        string        // narration language, "" or unknown means Spanish
	CompletionDelay time.Duration // grace period before ending a solved puzzle; 0 ends at once

	Narrator   Narrator
	OnComplete func(Result) // called exactly once when the session ends
	OnExit     func()       // called when the player abandons the session
}

// DefaultOptions returns the standard session configuration.
func DefaultOptions() Options {
	return Options{
		TimeLimit:       DefaultTimeLimit,
		HintLimit:       DefaultHintLimit,
		EnableAudio:     true,
		EnableHints:     true,
		CompletionDelay: DefaultCompletionDelay,
	}
}

func (o Options) normalized() Options {
	if o.TimeLimit <= 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.HintLimit <= 0 {
		o.HintLimit = DefaultHintLimit
	}
	if o.CompletionDelay < 0 {
		o.CompletionDelay = 0
	}
	return o
}
