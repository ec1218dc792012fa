// Package session holds the change detector's per-session memory: the
// previous frame and the previously accepted hole set for each live-capture
// session.
package session

import (
	"errors"
	"image"
	"sync"

	"github.com/google/uuid"

	"target-scorer/pkg/geometry"
)

// ErrUnknownSession indicates a session handle that was never begun or has
// already ended.
var ErrUnknownSession = errors.New("unknown session")

// state is one session's change-detection memory. The mutex serializes
// classification passes for the session; different sessions are independent.
type state struct {
	mu        sync.Mutex
	prevFrame *image.Gray
	prevHoles []geometry.Point2D
}

// Store owns all session states, keyed by an opaque session handle.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*state
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*state)}
}

// Begin creates a new session and returns its handle.
func (s *Store) Begin() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &state{}
	s.mu.Unlock()
	return id
}

// End destroys a session and its stored state.
func (s *Store) End(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Reset clears a session's baseline so the next frame starts fresh.
func (s *Store) Reset(id uuid.UUID) error {
	st, ok := s.get(id)
	if !ok {
		return ErrUnknownSession
	}
	st.mu.Lock()
	st.prevFrame = nil
	st.prevHoles = nil
	st.mu.Unlock()
	return nil
}

func (s *Store) get(id uuid.UUID) (*state, bool) {
	s.mu.Lock()
	st, ok := s.sessions[id]
	s.mu.Unlock()
	return st, ok
}
