package service

import (
	"sync"
	"time"

	"remindbot/internal/domain/constant"
	"remindbot/internal/domain/entity"
)

// Session holds the conversation state of one user plus the fields the
// active flow has collected so far. The snapshot is the ordered reminder
// list captured when a selection flow started; numbered input always
// resolves against it, never against the live store.
type Session struct {
	State    constant.ConversationState
	Title    string
	TimeUTC  time.Time
	Message  string
	Target   *entity.Reminder   // copy of the reminder selected for edit/delete
	Snapshot []*entity.Reminder // immutable, ordered by remind_time ascending
	touched  time.Time
}

// SessionStore owns all in-memory sessions, keyed by chat ID. At most one
// session exists per user. Sessions untouched for longer than the TTL read
// back as idle, so an abandoned mid-flow conversation cannot block a fresh
// start of the same flow forever.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*chatLock
	ttl      time.Duration
	now      func() time.Time
}

// chatLock is a reference-counted per-chat mutex. The count covers holders
// and waiters, so the map entry is dropped only when nobody needs it.
type chatLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionStore creates a session store with the given expiry TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*chatLock),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Acquire serializes handler execution per user: the returned release func
// must be called when the handler finishes. Handlers for different users
// never contend; the dispatcher takes no lock here at all. Releasing the
// last reference removes the lock entry, so the map only holds chats with
// a handler in flight.
func (s *SessionStore) Acquire(chatID int64) (release func()) {
	s.mu.Lock()
	l, ok := s.locks[chatID]
	if !ok {
		l = &chatLock{}
		s.locks[chatID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, chatID)
		}
		s.mu.Unlock()
	}
}

// Get returns the user's session, or a fresh idle session if none exists or
// the existing one has expired.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || s.now().Sub(sess.touched) > s.ttl {
		delete(s.sessions, chatID)
		return &Session{State: constant.StateIdle}
	}
	return sess
}

// Put stores the session and refreshes its expiry clock. A flow trigger
// always calls Put with a brand-new session, so two flows can never merge.
func (s *SessionStore) Put(chatID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.touched = s.now()
	s.sessions[chatID] = sess
}

// Clear discards the user's session.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
