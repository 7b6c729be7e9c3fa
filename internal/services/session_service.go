// Package services holds the application services: account/session
// lifecycle and the expense ledger with its balance reconciliation rule.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hourly/internal/core"
	"hourly/internal/kvstore"
	"hourly/internal/log"
)

// SessionService wraps the store with register/login/logout semantics and
// the single current-session pointer.
type SessionService struct {
	store kvstore.Store
}

func NewSessionService(store kvstore.Store) *SessionService {
	return &SessionService{store: store}
}

// Register creates a new account with an empty ledger and zero balance,
// persists it and establishes it as the current session. An existing
// username always fails with ErrDuplicateUsername and leaves the existing
// record untouched.
func (s *SessionService) Register(ctx context.Context, username, password string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &core.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if strings.TrimSpace(password) == "" {
		return nil, &core.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if _, exists := users[username]; exists {
		return nil, core.ErrDuplicateUsername
	}

	user := core.User{
		Username: username,
		Password: password,
		Expenses: []core.Expense{},
	}
	users[username] = user
	if err := s.store.SaveAll(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	if err := s.store.SetCurrentSession(ctx, username); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	fields := log.NewFields().
		WithComponent(log.ComponentSession).
		WithOperation(log.OpRegister).
		WithUsername(username)

	slog.InfoContext(ctx, "User registered", fields.ToSlice()...)
	return &user, nil
}

// Login checks the stored password with plain equality and establishes the
// session on success. Unknown user and wrong password are indistinguishable
// to the caller.
func (s *SessionService) Login(ctx context.Context, username, password string) (*core.User, error) {
	username = strings.TrimSpace(username)

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	user, ok := users[username]
	if !ok || user.Password != password {
		return nil, core.ErrInvalidCredentials
	}

	if err := s.store.SetCurrentSession(ctx, username); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	fields := log.NewFields().
		WithComponent(log.ComponentSession).
		WithOperation(log.OpLogin).
		WithUsername(username)

	slog.InfoContext(ctx, "User logged in", fields.ToSlice()...)
	return &user, nil
}

// Logout clears the session pointer only; user records are untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearCurrentSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fields := log.NewFields().
		WithComponent(log.ComponentSession).
		WithOperation(log.OpLogout)

	slog.InfoContext(ctx, "Session cleared", fields.ToSlice()...)
	return nil
}

// Resume resolves the current-session pointer to its user record. No
// pointer, or a pointer naming a user that no longer exists, yields
// (nil, nil): unauthenticated, not an error.
func (s *SessionService) Resume(ctx context.Context) (*core.User, error) {
	username, err := s.store.CurrentSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if username == "" {
		return nil, nil
	}

	users, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	user, ok := users[username]
	if !ok {
		// Dangling pointer, e.g. the users slot was lost to corruption.
		return nil, nil
	}
	return &user, nil
}
