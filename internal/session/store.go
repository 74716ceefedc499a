// Package session holds the signed-in staff user for this process. Nothing
// is persisted: a fresh process starts signed out.
package session

import (
	"errors"
	"sync"

	"shopdesk/internal/models"
)

var ErrNoSession = errors.New("not signed in")

type Store struct {
	mu   sync.RWMutex
	user *models.User
}

func NewStore() *Store {
	return &Store{}
}

// Begin starts a session for user, replacing any current one.
func (s *Store) Begin(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

func (s *Store) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Require returns the current user or ErrNoSession.
func (s *Store) Require() (models.User, error) {
	user, ok := s.Current()
	if !ok {
		return models.User{}, ErrNoSession
	}
	return user, nil
}

// Rename updates the names of the current user. It does nothing when the
// session ended or now belongs to someone else.
func (s *Store) Rename(id, firstName, lastName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != id {
		return
	}
	s.user.FirstName = firstName
	s.user.LastName = lastName
}
