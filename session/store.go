package session

import (
	"sync"
	"time"

	"github.com/f3rmion/tbls/tbls"
)

// Key addresses one participant's share within one session.
// Group is the session descriptor, the hex encoding of the generator the
// pair was derived under.
type Key struct {
	Group string
	ID    tbls.ParticipantID
}

// Session describes a derived pair. Shares are owned by the store: they
// are zeroed when the session is reset or deleted, so use them only
// inside [Store.View].
type Session struct {
	Group     string
	Generator []byte
	IDs       [2]tbls.ParticipantID
	Shares    [2]*tbls.Share
	CreatedAt time.Time
}

// Store is a thread-safe map from (descriptor, participant) to derived
// shares. Signers read concurrently; a derivation replaces both shares of
// a session at once and excludes all readers while doing so.
type Store struct {
	mu       sync.RWMutex
	shares   map[Key]*tbls.Share
	sessions map[string]*Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		shares:   make(map[Key]*tbls.Share),
		sessions: make(map[string]*Session),
	}
}

// Reset installs sess, replacing any session with the same descriptor.
// It reports whether an existing session was replaced. Secrets of the
// replaced shares are zeroed.
func (s *Store) Reset(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, replaced := s.sessions[sess.Group]
	if replaced {
		s.dropLocked(old)
	}
	for _, share := range sess.Shares {
		s.shares[Key{Group: sess.Group, ID: share.ID}] = share
	}
	s.sessions[sess.Group] = sess
	return replaced
}

// Share returns the share stored under key.
func (s *Store) Share(key Key) (*tbls.Share, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	share, ok := s.shares[key]
	return share, ok
}

// Session returns the session stored under the descriptor group.
func (s *Store) Session(group string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[group]
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// View calls fn with the session stored under group while holding the
// read lock. Views run concurrently with each other but never with a
// reset or delete of any session.
func (s *Store) View(group string, fn func(*Session) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[group]
	if !ok {
		return ErrUnknownSession
	}
	return fn(sess)
}

// Delete removes a session and zeroes its secrets.
func (s *Store) Delete(group string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[group]
	if ok {
		s.dropLocked(sess)
	}
	return ok
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) dropLocked(sess *Session) {
	for _, share := range sess.Shares {
		delete(s.shares, Key{Group: sess.Group, ID: share.ID})
		share.Zero()
	}
	delete(s.sessions, sess.Group)
}
