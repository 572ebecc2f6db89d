package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the live editing sessions in process memory. Sessions are
// transient: they end on submit, discard, or idle expiry, and a restart
// loses them.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore creates a session store. Sessions idle longer than ttl are
// eligible for sweeping.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Open creates a fresh session for a course version.
func (st *Store) Open(versionID string) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.New().String(),
		VersionID: versionID,
		CreatedAt: now,
		touchedAt: now,
	}

	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get returns the session with the given id, if it exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

// Close removes a session (discard or successful submit).
func (st *Store) Close(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Sweep drops sessions idle past the store TTL and returns how many were
// removed.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, session := range st.sessions {
		if now.Sub(session.IdleSince()) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
