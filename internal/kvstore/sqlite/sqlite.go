// Package sqlite implements the kvstore port on a SQLite database. The two
// slots live as rows of a single slots table; values are still whole-blob
// JSON, so the contract stays identical to the file backend while gaining a
// durable, transactional substrate.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hourly/internal/core"
	"hourly/internal/kvstore"
	"hourly/internal/log"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ kvstore.Store = (*Store)(nil)

// New opens (creating if needed) the database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) (map[string]core.User, error) {
	value, err := s.readSlot(ctx, kvstore.UsersSlot)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return map[string]core.User{}, nil
	}

	var users map[string]core.User
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		slog.WarnContext(ctx, "Users slot is corrupt, recovering as empty store",
			log.FieldComponent, log.ComponentStore,
			log.FieldSlot, kvstore.UsersSlot,
			log.FieldError, err)
		return map[string]core.User{}, nil
	}
	if users == nil {
		users = map[string]core.User{}
	}
	return users, nil
}

func (s *Store) SaveAll(ctx context.Context, users map[string]core.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users slot: %w", err)
	}
	return s.writeSlot(ctx, kvstore.UsersSlot, string(data))
}

func (s *Store) CurrentSession(ctx context.Context) (string, error) {
	return s.readSlot(ctx, kvstore.SessionSlot)
}

func (s *Store) SetCurrentSession(ctx context.Context, username string) error {
	return s.writeSlot(ctx, kvstore.SessionSlot, username)
}

func (s *Store) ClearCurrentSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE slot = ?`, kvstore.SessionSlot)
	if err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}

// readSlot returns the slot's value, or "" when the slot has never been
// written. Absence and emptiness are equivalent for both slots.
func (s *Store) readSlot(ctx context.Context, slot string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE slot = ?`, slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s slot: %w", slot, err)
	}
	return value, nil
}

func (s *Store) writeSlot(ctx context.Context, slot, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (slot, value) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		slot, value)
	if err != nil {
		return fmt.Errorf("write %s slot: %w", slot, err)
	}
	return nil
}
