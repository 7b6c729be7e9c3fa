// Package kvstore defines the persistence port for the tracker: a flat
// two-slot key-value substrate holding the full user collection and the
// current-session pointer.
package kvstore

import (
	"context"

	"hourly/internal/core"
)

// Slot names under which the two persisted records live. Every backend,
// whatever its substrate, exposes exactly these two slots.
const (
	UsersSlot   = "users"
	SessionSlot = "current_session"
)

// Store is the repository port over the two-slot substrate. Reads and
// writes are whole-blob: LoadAll returns every registered user, SaveAll
// overwrites the entire collection in a single write. There is no
// record-level access and no locking across processes; the model assumes a
// single active writer and is last-write-wins otherwise.
//
// A corrupt or unparseable users blob loads as an empty collection rather
// than an error. Callers cannot distinguish "no users yet" from "data
// lost"; that is an accepted property of the substrate, not a failure mode
// to surface.
type Store interface {
	// LoadAll returns all registered users keyed by username. Missing or
	// corrupt data yields an empty map, never an error caused by content.
	LoadAll(ctx context.Context) (map[string]core.User, error)

	// SaveAll overwrites the full user collection.
	SaveAll(ctx context.Context, users map[string]core.User) error

	// CurrentSession returns the username the session pointer names, or
	// "" when no session is established.
	CurrentSession(ctx context.Context) (string, error)

	// SetCurrentSession points the session slot at the given username.
	SetCurrentSession(ctx context.Context, username string) error

	// ClearCurrentSession removes the session pointer. Clearing an
	// already-clear pointer is not an error.
	ClearCurrentSession(ctx context.Context) error
}
