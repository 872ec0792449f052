package hrstub

import (
	"sync"
	"time"
)

// stubSession is the server-side state for one issued bearer token.
type stubSession struct {
	UserID    string
	CreatedAt time.Time
}

// sessionStore maps bearer tokens to sessions.
type sessionStore struct {
	mu   sync.RWMutex
	data map[string]stubSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{data: make(map[string]stubSession)}
}

func (s *sessionStore) Get(token string) (stubSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.data[token]
	return sess, ok
}

func (s *sessionStore) Put(token string, sess stubSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = sess
}

func (s *sessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
}

// Revoke removes every session belonging to the given user.
func (s *sessionStore) Revoke(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.data {
		if sess.UserID == userID {
			delete(s.data, token)
		}
	}
}
