// Package session tracks in-progress mini-games awaiting the next reply in a
// chat. At most one session per chat; expiry is inactivity-timer based only.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mau.fi/whatsmeow/types"

	"wabot/internal/bot"
)

// Session is one in-progress game. OnReply grades or appends the reply and
// reports whether the session is finished. OnTimeout announces expiry; the
// store has already removed the session when it runs.
type Session interface {
	OnReply(ctx context.Context, msg *bot.Incoming) (done bool, err error)
	OnTimeout()
}

type entry struct {
	session Session
	timer   *time.Timer
}

// Store maps chat JIDs to their active session. Safe for concurrent use.
// Exclusivity is enforced by the command starting a game (Start reports
// whether a session was already active), not by replies.
type Store struct {
	mu      sync.Mutex
	active  map[string]*entry
	timeout time.Duration
}

func NewStore(timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Store{
		active:  make(map[string]*entry),
		timeout: timeout,
	}
}

// Start installs a session for chat and arms its inactivity timer. Returns
// false if a session is already active for that chat.
func (s *Store) Start(chat types.JID, sess Session) bool {
	key := chat.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.active[key]; exists {
		return false
	}

	e := &entry{session: sess}
	e.timer = time.AfterFunc(s.timeout, func() { s.expire(key, e) })
	s.active[key] = e
	return true
}

// Get returns the active session for chat, if any.
func (s *Store) Get(chat types.JID) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.active[chat.String()]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// Close cancels the timer and removes the session for chat. Used when the
// owning command finishes the game itself.
func (s *Store) Close(chat types.JID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(chat.String())
}

// HandleReply hands a non-command message to the chat's session, if one is
// active. The inactivity timer is cancelled before the session runs and
// rearmed afterwards unless the session finished. Reports whether a session
// consumed the message.
func (s *Store) HandleReply(ctx context.Context, msg *bot.Incoming) bool {
	key := msg.Chat.String()

	s.mu.Lock()
	e, ok := s.active[key]
	if !ok {
		s.mu.Unlock()
		return false
	}
	e.timer.Stop()
	s.mu.Unlock()

	done, err := e.session.OnReply(ctx, msg)
	if err != nil {
		log.Printf("[ERR] Session reply in %s: %v", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have been closed concurrently; only touch our entry.
	if cur, ok := s.active[key]; !ok || cur != e {
		return true
	}
	if done {
		s.remove(key)
		return true
	}

	// Rearm with a fresh entry. If the old timer fired while OnReply ran
	// (Stop raced the callback, which is now blocked on the mutex), its
	// expire sees a different entry and stays silent.
	fresh := &entry{session: e.session}
	fresh.timer = time.AfterFunc(s.timeout, func() { s.expire(key, fresh) })
	s.active[key] = fresh
	return true
}

// expire fires on the inactivity timer. The identity check guards against a
// timer racing a newer session in the same chat.
func (s *Store) expire(key string, e *entry) {
	s.mu.Lock()
	cur, ok := s.active[key]
	if !ok || cur != e {
		s.mu.Unlock()
		return
	}
	delete(s.active, key)
	s.mu.Unlock()

	e.session.OnTimeout()
}

func (s *Store) remove(key string) {
	if e, ok := s.active[key]; ok {
		e.timer.Stop()
		delete(s.active, key)
	}
}
