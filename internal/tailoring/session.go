package tailoring

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one visitor's page: its upload slots and its panel.
type Session struct {
	ID          string
	Coordinator *Coordinator
	Panel       *Panel

	lastSeen time.Time
}

// newSession wires the coordinator and panel together: the panel learns of
// every pair change and resets through the coordinator.
func newSession(id string, client AnalysisClient, now time.Time) *Session {
	s := &Session{ID: id, lastSeen: now}
	s.Panel = NewPanel(client, func() { s.Coordinator.Clear() })
	s.Coordinator = NewCoordinator(s.Panel.SetPair)
	return s
}

// View renders the session's current page.
func (s *Session) View() PageView {
	return BuildView(s.Coordinator.Pair(), s.Panel.Snapshot())
}

const defaultMaxSessions = 1000

// SessionStore keeps sessions in memory until they go idle for ttl. At most
// maxSessions are held; creating one more evicts the least recently seen.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	client      AnalysisClient
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// StoreOption customizes a SessionStore.
type StoreOption func(*SessionStore)

// WithMaxSessions bounds the number of live sessions. Values below 1 keep the default.
func WithMaxSessions(n int) StoreOption {
	return func(s *SessionStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// NewSessionStore returns an empty store.
func NewSessionStore(client AnalysisClient, ttl time.Duration, opts ...StoreOption) *SessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &SessionStore{
		sessions:    make(map[string]*Session),
		client:      client,
		ttl:         ttl,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a live session and marks it as seen.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Create starts a new session with a random id.
func (s *SessionStore) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	for len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	sess := newSession(uuid.NewString(), s.client, now)
	s.sessions[sess.ID] = sess
	return sess
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	return len(s.sessions)
}

func (s *SessionStore) evictOldestLocked() {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
	}
}

func (s *SessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
