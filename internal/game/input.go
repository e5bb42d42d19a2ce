// internal/game/input.go
//
// Letter entry, deletion and keyboard dispatch.
// Every edit is followed by a completion pass; a fully solved puzzle schedules
// the transition to ended after the configured grace delay.

package game

import (
	"unicode"
)

// Keyboard keys understood by HandleKey besides single letters.
const (
	KeyBackspace  = "Backspace"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

var arrowKeys = map[string]Arrow{
	KeyArrowUp:    ArrowUp,
	KeyArrowDown:  ArrowDown,
	KeyArrowLeft:  ArrowLeft,
	KeyArrowRight: ArrowRight,
}

// IsLetter reports whether r may be typed into a cell: Latin letters,
// accented vowels and Ñ included.
func IsLetter(r rune) bool {
	return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r)
}

// TypeLetter writes r (upper-cased) into the selected cell and advances along
// the active word.
func (s *Session) TypeLetter(r rune) bool {
	var ok bool
	s.do(func() {
		ok = s.typeLetter(r)
	})
	return ok
}

func (s *Session) typeLetter(r rune) bool {
	if !s.playing() || s.cursor == nil || !IsLetter(r) {
		return false
	}
	if !s.grid.SetEntry(*s.cursor, unicode.ToUpper(r)) {
		return false
	}
	s.advance()
	s.afterEdit()
	return true
}

// Backspace clears the selected cell and steps back along the active word.
func (s *Session) Backspace() bool {
	var ok bool
	s.do(func() {
		ok = s.backspace()
	})
	return ok
}

func (s *Session) backspace() bool {
	if !s.playing() || s.cursor == nil {
		return false
	}
	if !s.grid.SetEntry(*s.cursor, 0) {
		return false
	}
	s.retreat()
	s.afterEdit()
	return true
}

// HandleKey dispatches a keyboard key name (as sent by a browser keydown).
func (s *Session) HandleKey(key string) bool {
	var ok bool
	s.do(func() {
		if key == KeyBackspace {
			ok = s.backspace()
			return
		}
		if a, isArrow := arrowKeys[key]; isArrow {
			ok = s.moveArrow(a)
			return
		}
		if rs := []rune(key); len(rs) == 1 {
			ok = s.typeLetter(rs[0])
		}
	})
	return ok
}
