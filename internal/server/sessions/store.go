package sessions

import (
	"context"
	"sync"
	"time"

	"ecoscan/internal/common"
)

// Store is the in-memory registry of live chat sessions keyed by session ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a Store whose sessions expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session bound to the stored image.
func (st *Store) Create(imagePath, mimeType, description string) *Session {
	s := newSession(imagePath, mimeType, description)

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get returns the live session for id. Expired sessions are dropped and
// reported as common.ErrorSessionExpired; unknown ids as ErrorNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	if s.expired(st.ttl, time.Now()) {
		st.Delete(id)
		return nil, common.ErrorSessionExpired
	}
	return s, nil
}

// Delete removes a session. Unknown ids are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep drops all expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	now := time.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.expired(st.ttl, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper periodically sweeps expired sessions until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
