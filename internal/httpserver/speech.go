package httpserver

import "sync"

// maxQueuedLines bounds a session's undelivered narration; the oldest lines
// are dropped first.
const maxQueuedLines = 32

// speechQueue collects narration until the browser polls for it and speaks
// it with its own synthesizer.
type speechQueue struct {
	mu    sync.Mutex
	lines []string
}

func (q *speechQueue) Speak(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lines = append(q.lines, text)
	if n := len(q.lines) - maxQueuedLines; n > 0 {
		q.lines = q.lines[n:]
	}
}

// Drain returns and clears the queued lines.
func (q *speechQueue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.lines
	q.lines = nil
	if out == nil {
		out = []string{}
	}
	return out
}

func (s *Server) voice(id string) *speechQueue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voices[id]
}

func (s *Server) setVoice(id string, q *speechQueue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q == nil {
		delete(s.voices, id)
		return
	}
	s.voices[id] = q
}
