package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rentkit/rentkit/internal/localstore"
	"github.com/rentkit/rentkit/internal/remote"
	"github.com/rentkit/rentkit/internal/session"
)

// RemoteBackend performs scoped table operations against the hosted
// backend for one entity kind. Every call is constrained to rows owned by
// the signed-in user.
type RemoteBackend[T Entity] struct {
	client  *remote.Client
	table   string
	session *session.Manager
}

// Load fetches all records owned by the signed-in user.
func (r *RemoteBackend[T]) Load(ctx context.Context) ([]T, error) {
	u := r.session.Current()
	if u == nil {
		return nil, &remote.StoreError{Op: "select", Table: r.table, Err: remote.ErrNoSession}
	}
	return remote.SelectAll[T](ctx, r.client, r.session.Token(), r.table, u.ID)
}

// Insert stores a new record and returns the backend's copy, which may
// normalize fields the client did not set.
func (r *RemoteBackend[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	if r.session.Current() == nil {
		return zero, &remote.StoreError{Op: "insert", Table: r.table, Err: remote.ErrNoSession}
	}
	return remote.Insert(ctx, r.client, r.session.Token(), r.table, rec)
}

// Update patches the record matching id and the signed-in user, returning
// the stored record. A guessed id belonging to another account matches
// zero rows and surfaces as remote.ErrNoRecord.
func (r *RemoteBackend[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T
	u := r.session.Current()
	if u == nil {
		return zero, &remote.StoreError{Op: "update", Table: r.table, Err: remote.ErrNoSession}
	}
	return remote.Update[T](ctx, r.client, r.session.Token(), r.table, id, u.ID, patch)
}

// Delete removes the record matching id and the signed-in user.
func (r *RemoteBackend[T]) Delete(ctx context.Context, id string) error {
	u := r.session.Current()
	if u == nil {
		return &remote.StoreError{Op: "delete", Table: r.table, Err: remote.ErrNoSession}
	}
	return remote.Delete(ctx, r.client, r.session.Token(), r.table, id, u.ID)
}

// LocalBackend persists one collection's snapshot in the local store as a
// single JSON array under a fixed key. The snapshot is rewritten in full
// on every local mutation so it always mirrors the in-memory state.
type LocalBackend[T Entity] struct {
	kv  *localstore.Store
	key string
}

// Load reads the snapshot. An absent key yields an empty collection; a
// malformed snapshot yields CorruptLocalStateError so the caller can log
// it and degrade to empty rather than crash.
func (l *LocalBackend[T]) Load() ([]T, error) {
	data, ok, err := l.kv.Get(l.key)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", l.key, err)
	}
	if !ok {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &CorruptLocalStateError{Key: l.key, Err: err}
	}
	return items, nil
}

// Save rewrites the full snapshot.
func (l *LocalBackend[T]) Save(items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling snapshot %s: %w", l.key, err)
	}
	if err := l.kv.Put(l.key, data); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", l.key, err)
	}
	return nil
}
