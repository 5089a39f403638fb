package service

import (
	"sync"

	"github.com/rutushah/To-do-application/internal/model"
)

// Session tracks the authenticated user for one front-end connection. The
// console owns a single Session for its lifetime; the bot keeps one per chat.
// Keeping the slot here instead of in AuthService means concurrent
// connections never share login state. A Session is safe for concurrent use:
// the bot's update loop and the summary job touch the same Session from
// different goroutines.
type Session struct {
	mu   sync.RWMutex
	user *model.User
}

func NewSession() *Session { return &Session{} }

func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Session) bind(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}
