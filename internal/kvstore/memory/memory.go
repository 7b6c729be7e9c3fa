// Package memory implements the kvstore port in process memory, for tests
// and local development.
package memory

import (
	"context"
	"sync"

	"hourly/internal/core"
	"hourly/internal/kvstore"
)

type Store struct {
	mu      sync.Mutex
	users   map[string]core.User
	session string
}

var _ kvstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{users: map[string]core.User{}}
}

// LoadAll returns a deep copy so callers can mutate freely before SaveAll,
// matching the read-entire / mutate / write-entire discipline of the
// durable backends.
func (s *Store) LoadAll(ctx context.Context) (map[string]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUsers(s.users), nil
}

func (s *Store) SaveAll(ctx context.Context, users map[string]core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = copyUsers(users)
	return nil
}

func (s *Store) CurrentSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *Store) SetCurrentSession(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = username
	return nil
}

func (s *Store) ClearCurrentSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	return nil
}

func copyUsers(in map[string]core.User) map[string]core.User {
	out := make(map[string]core.User, len(in))
	for name, u := range in {
		u.Expenses = append([]core.Expense(nil), u.Expenses...)
		out[name] = u
	}
	return out
}
