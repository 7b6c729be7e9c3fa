// Package jsonfile persists the two kvstore slots as files in a data
// directory: users.json for the user collection and session for the
// current-session pointer. Writes are atomic (temp file + rename).
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hourly/internal/core"
	"hourly/internal/kvstore"
	"hourly/internal/log"
)

const (
	usersFile   = kvstore.UsersSlot + ".json"
	sessionFile = kvstore.SessionSlot
)

type Store struct {
	dir string
}

var _ kvstore.Store = (*Store)(nil)

// New creates the data directory if needed and returns a file-backed store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadAll reads the whole users slot. A missing file is an empty
// collection; an unparseable file is treated the same, after logging,
// so a corrupted store degrades to empty instead of wedging every caller.
func (s *Store) LoadAll(ctx context.Context) (map[string]core.User, error) {
	path := filepath.Join(s.dir, usersFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]core.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read users slot: %w", err)
	}

	var users map[string]core.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.WarnContext(ctx, "Users slot is corrupt, recovering as empty store",
			log.FieldComponent, log.ComponentStore,
			log.FieldSlot, kvstore.UsersSlot,
			"path", path,
			log.FieldError, err)
		return map[string]core.User{}, nil
	}
	if users == nil {
		users = map[string]core.User{}
	}
	return users, nil
}

// SaveAll overwrites the users slot in a single atomic write.
func (s *Store) SaveAll(ctx context.Context, users map[string]core.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users slot: %w", err)
	}
	return s.writeSlot(usersFile, data)
}

func (s *Store) CurrentSession(ctx context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session slot: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) SetCurrentSession(ctx context.Context, username string) error {
	return s.writeSlot(sessionFile, []byte(username+"\n"))
}

func (s *Store) ClearCurrentSession(ctx context.Context) error {
	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}

// writeSlot writes a slot file atomically: temp file in the same directory,
// then rename over the destination.
func (s *Store) writeSlot(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s slot: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s slot: %w", name, err)
	}
	return nil
}
