package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rentkit/rentkit/internal/localstore"
	"github.com/rentkit/rentkit/internal/remote"
	"github.com/rentkit/rentkit/internal/session"
)

// State is a collection's load lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

// Config describes one entity collection.
type Config[T Entity] struct {
	// Table is the hosted backend's table name.
	Table string
	// LocalKey is the local snapshot key.
	LocalKey string
	// New returns an empty record for decoding into.
	New func() T
}

// Collection mediates all access to one entity kind. Reads serve the
// in-memory snapshot; mutations go remote-first with local fallback, so
// from the caller's perspective they effectively never fail on
// persistence. Reads before the first load complete return an empty
// snapshot.
type Collection[T Entity] struct {
	cfg     Config[T]
	session *session.Manager
	remote  *RemoteBackend[T]
	local   *LocalBackend[T]
	queue   *keyedLocks

	mu      sync.RWMutex
	state   State
	items   []T
	subs    map[int]func()
	nextSub int
}

// NewCollection wires a collection to its remote table and local
// snapshot key.
func NewCollection[T Entity](cfg Config[T], client *remote.Client, sess *session.Manager, kv *localstore.Store) *Collection[T] {
	return &Collection[T]{
		cfg:     cfg,
		session: sess,
		remote:  &RemoteBackend[T]{client: client, table: cfg.Table, session: sess},
		local:   &LocalBackend[T]{kv: kv, key: cfg.LocalKey},
		queue:   newKeyedLocks(),
		subs:    make(map[int]func()),
	}
}

// State returns the collection's load state.
func (c *Collection[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Items returns a copy of the current snapshot in insertion order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(id)
}

// find looks up a record by id. Caller holds the lock.
func (c *Collection[T]) find(id string) (T, bool) {
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers an observer invoked after every applied mutation or
// load. The returned func unregisters it.
func (c *Collection[T]) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// notify runs every subscriber. Must not be called with the lock held.
func (c *Collection[T]) notify() {
	c.mu.RLock()
	subs := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// markLoading transitions Uninitialized→Loading.
func (c *Collection[T]) markLoading() {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()
}

// adopt replaces the snapshot wholesale and marks the collection Ready.
func (c *Collection[T]) adopt(items []T) {
	c.mu.Lock()
	c.items = items
	c.state = Ready
	c.mu.Unlock()
	c.notify()
}

// loadRemote fetches the scoped snapshot without adopting it, so the
// store can discard it if a sibling collection's fetch fails.
func (c *Collection[T]) loadRemote(ctx context.Context) ([]T, error) {
	return c.remote.Load(ctx)
}

// loadLocal adopts the local snapshot. Corrupt snapshots are logged and
// degrade to an empty collection.
func (c *Collection[T]) loadLocal() {
	items, err := c.local.Load()
	if err != nil {
		var corrupt *CorruptLocalStateError
		if errors.As(err, &corrupt) {
			slog.Warn("discarding corrupt local snapshot", "key", c.cfg.LocalKey, "error", err)
		} else {
			slog.Warn("loading local snapshot", "key", c.cfg.LocalKey, "error", err)
		}
		items = nil
	}
	c.adopt(items)
}

// clear drops every record from memory. The store removes the local
// snapshots in one sweep on sign-out.
func (c *Collection[T]) clear() {
	c.mu.Lock()
	c.items = nil
	c.state = Ready
	c.mu.Unlock()
	c.notify()
}

// Add assigns the record's identity and persists it: remote insert when a
// session exists, adopting the server's copy; otherwise the locally
// constructed record is kept and the local snapshot rewritten. The only
// caller-visible failure is an invalid record.
func (c *Collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := rec.Validate(); err != nil {
		return zero, err
	}

	owner := ""
	if u := c.session.Current(); u != nil {
		owner = u.ID
	}
	rec.SetIdentity(newID(), owner, time.Now().UTC())

	if c.session.Current() != nil {
		stored, err := c.remote.Insert(ctx, rec)
		if err == nil {
			c.mu.Lock()
			c.items = append(c.items, stored)
			c.mu.Unlock()
			c.notify()
			return stored, nil
		}
		slog.Warn("remote insert failed, keeping record locally",
			"table", c.cfg.Table, "error", err)
	}

	c.mu.Lock()
	c.items = append(c.items, rec)
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()

	c.saveSnapshot(snapshot)
	c.notify()
	return rec, nil
}

// Update applies a partial-field merge to the record with the given id:
// fields named in patch are overwritten, all others preserved. Returns
// ErrNotFound when no record matches.
func (c *Collection[T]) Update(ctx context.Context, id string, patch map[string]any) (T, error) {
	c.queue.Lock(id)
	defer c.queue.Unlock(id)
	return c.update(ctx, id, patch)
}

// UpdateWith computes the patch from the current record while holding the
// per-id lock, so read-modify-write updates (like a checklist task
// toggle) cannot clobber each other under rapid interaction.
func (c *Collection[T]) UpdateWith(ctx context.Context, id string, compute func(T) (map[string]any, error)) (T, error) {
	c.queue.Lock(id)
	defer c.queue.Unlock(id)

	var zero T
	c.mu.RLock()
	cur, ok := c.find(id)
	c.mu.RUnlock()
	if !ok {
		return zero, ErrNotFound
	}

	patch, err := compute(cur)
	if err != nil {
		return zero, err
	}
	return c.update(ctx, id, patch)
}

// update performs the dual-destination update. Caller holds the per-id lock.
func (c *Collection[T]) update(ctx context.Context, id string, patch map[string]any) (T, error) {
	var zero T

	c.mu.RLock()
	cur, ok := c.find(id)
	c.mu.RUnlock()
	if !ok {
		return zero, ErrNotFound
	}

	patch = sanitizePatch(patch)

	if c.session.Current() != nil {
		stored, err := c.remote.Update(ctx, id, patch)
		if err == nil {
			c.replace(id, stored)
			c.notify()
			return stored, nil
		}
		slog.Warn("remote update failed, merging locally",
			"table", c.cfg.Table, "id", id, "error", err)
	}

	merged, err := mergeRecord(cur, patch, c.cfg.New)
	if err != nil {
		return zero, err
	}

	snapshot := c.replace(id, merged)
	c.saveSnapshot(snapshot)
	c.notify()
	return merged, nil
}

// replace swaps the record with the given id and returns a snapshot copy.
func (c *Collection[T]) replace(id string, rec T) []T {
	c.mu.Lock()
	for i, item := range c.items {
		if item.EntityID() == id {
			c.items[i] = rec
			break
		}
	}
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()
	return snapshot
}

// Delete removes the record with the given id. Deleting an id that does
// not exist is a no-op; deleting twice has the same end state as once.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.queue.Lock(id)
	defer c.queue.Unlock(id)

	c.mu.RLock()
	_, ok := c.find(id)
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	if c.session.Current() != nil {
		err := c.remote.Delete(ctx, id)
		if err == nil {
			c.remove(id)
			c.notify()
			return nil
		}
		slog.Warn("remote delete failed, removing locally",
			"table", c.cfg.Table, "id", id, "error", err)
	}

	snapshot := c.remove(id)
	c.saveSnapshot(snapshot)
	c.notify()
	return nil
}

// remove drops the record with the given id and returns a snapshot copy.
func (c *Collection[T]) remove(id string) []T {
	c.mu.Lock()
	items := c.items[:0:0]
	for _, item := range c.items {
		if item.EntityID() != id {
			items = append(items, item)
		}
	}
	c.items = items
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()
	return snapshot
}

// saveSnapshot rewrites the local snapshot, logging failures. Local
// persistence errors are absorbed: the in-memory state is already
// updated and remains the source of truth for this process.
func (c *Collection[T]) saveSnapshot(items []T) {
	if err := c.local.Save(items); err != nil {
		slog.Warn("saving local snapshot", "key", c.cfg.LocalKey, "error", err)
	}
}
