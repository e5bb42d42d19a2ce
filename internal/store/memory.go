// internal/store/memory.go
//
// In-memory registry of live crossword sessions.
// Sessions only live for the duration of a playthrough, so durability is not
// required: results are persisted separately by the results package.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via a Mutex (Get also updates the touched time).
//   - Get returns ErrNotFound for unknown or deleted sessions.
//   - Every Save/Get marks the session as touched; Sweep drops the sessions a
//     caller-supplied policy reports as expired, given how long they sat idle.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/crossword/internal/game"
)

// ErrNotFound is returned for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for sessions.
type Store interface {
	// Save registers or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete drops a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports the number of registered sessions.
	Len() int

	// Sweep removes every session for which expired returns true and returns
	// the removed ids. idle is measured from the last Save or Get to now.
	Sweep(ctx context.Context, now time.Time, expired func(s *game.Session, idle time.Duration) bool) []string
}

type entry struct {
	session *game.Session
	touched time.Time
}

type memory struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{session: s, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.touched = m.now()
		return e.session, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *memory) Sweep(ctx context.Context, now time.Time, expired func(s *game.Session, idle time.Duration) bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var gone []string
	for id, e := range m.sessions {
		if expired(e.session, now.Sub(e.touched)) {
			delete(m.sessions, id)
			gone = append(gone, id)
		}
	}
	return gone
}
