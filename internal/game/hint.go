package game

// UseHint reveals the first empty letter of the active word. It consumes a hint
// only when a letter is actually revealed and never overwrites an entry.
func (s *Session) UseHint() bool {
	var ok bool
	s.do(func() {
		ok = s.useHint()
	})
	return ok
}

func (s *Session) useHint() bool {
	if !s.playing() || !s.opts.EnableHints || s.active == "" || s.hintsUsed >= s.opts.HintLimit {
		return false
	}
	for i, p := range s.grid.Path(s.active) {
		cell, ok := s.grid.At(p)
		if !ok || cell.Entry != 0 {
			continue
		}
		s.grid.SetEntry(p, cell.Solution)
		s.hintsUsed++
		s.speak(hintLine(s.tr, i, cell.Solution))
		s.afterEdit()
		return true
	}
	return false
}

// HintsLeft returns how many hints may still be used.
func (s *Session) HintsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsLeft()
}

func (s *Session) hintsLeft() int {
	if !s.opts.EnableHints {
		return 0
	}
	return max(0, s.opts.HintLimit-s.hintsUsed)
}
