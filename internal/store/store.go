package store

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rentkit/rentkit/internal/checklist"
	"github.com/rentkit/rentkit/internal/comment"
	"github.com/rentkit/rentkit/internal/localstore"
	"github.com/rentkit/rentkit/internal/payment"
	"github.com/rentkit/rentkit/internal/property"
	"github.com/rentkit/rentkit/internal/remote"
	"github.com/rentkit/rentkit/internal/session"
	"github.com/rentkit/rentkit/internal/tenant"
)

// Hosted backend table names, one per entity kind.
const (
	TableProperties = "properties_rm2024"
	TableTenants    = "tenants_rm2024"
	TablePayments   = "payments_rm2024"
	TableChecklists = "checklists_rm2024"
	TableComments   = "comments_rm2024"
)

// Store aggregates the five entity collections and reacts to
// authentication transitions: a sign-in reloads everything from the
// hosted backend, a sign-out clears memory and the local snapshots.
type Store struct {
	session *session.Manager
	kv      *localstore.Store

	Properties *Collection[*property.Property]
	Tenants    *Collection[*tenant.Tenant]
	Payments   *Collection[*payment.Payment]
	Checklists *Collection[*checklist.Checklist]
	Comments   *Collection[*comment.Comment]

	unsubscribe func()
}

// New wires the five collections and subscribes to session changes.
// Callers must Close the store to release the subscription.
func New(client *remote.Client, sess *session.Manager, kv *localstore.Store) *Store {
	s := &Store{
		session: sess,
		kv:      kv,
		Properties: NewCollection(Config[*property.Property]{
			Table:    TableProperties,
			LocalKey: localstore.KeyProperties,
			New:      func() *property.Property { return &property.Property{} },
		}, client, sess, kv),
		Tenants: NewCollection(Config[*tenant.Tenant]{
			Table:    TableTenants,
			LocalKey: localstore.KeyTenants,
			New:      func() *tenant.Tenant { return &tenant.Tenant{} },
		}, client, sess, kv),
		Payments: NewCollection(Config[*payment.Payment]{
			Table:    TablePayments,
			LocalKey: localstore.KeyPayments,
			New:      func() *payment.Payment { return &payment.Payment{} },
		}, client, sess, kv),
		Checklists: NewCollection(Config[*checklist.Checklist]{
			Table:    TableChecklists,
			LocalKey: localstore.KeyChecklists,
			New:      func() *checklist.Checklist { return &checklist.Checklist{} },
		}, client, sess, kv),
		Comments: NewCollection(Config[*comment.Comment]{
			Table:    TableComments,
			LocalKey: localstore.KeyComments,
			New:      func() *comment.Comment { return &comment.Comment{} },
		}, client, sess, kv),
	}

	s.unsubscribe = sess.OnChange(func(u *remote.User) {
		if u == nil {
			s.Clear()
			return
		}
		s.Load(context.Background())
	})

	return s
}

// Close releases the session subscription.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Load populates all five collections. With a session, the five scoped
// fetches run in parallel; if any one fails, all five in-flight results
// are discarded and every collection falls back to its local snapshot.
// Without a session, the local snapshots are loaded directly. Load never
// fails: the worst outcome is five empty collections.
func (s *Store) Load(ctx context.Context) {
	s.Properties.markLoading()
	s.Tenants.markLoading()
	s.Payments.markLoading()
	s.Checklists.markLoading()
	s.Comments.markLoading()

	if s.session.Current() == nil {
		s.loadLocal()
		return
	}

	var (
		props      []*property.Property
		tenants    []*tenant.Tenant
		payments   []*payment.Payment
		checklists []*checklist.Checklist
		comments   []*comment.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { props, err = s.Properties.loadRemote(gctx); return })
	g.Go(func() (err error) { tenants, err = s.Tenants.loadRemote(gctx); return })
	g.Go(func() (err error) { payments, err = s.Payments.loadRemote(gctx); return })
	g.Go(func() (err error) { checklists, err = s.Checklists.loadRemote(gctx); return })
	g.Go(func() (err error) { comments, err = s.Comments.loadRemote(gctx); return })

	if err := g.Wait(); err != nil {
		slog.Warn("remote load failed, falling back to local snapshots", "error", err)
		s.loadLocal()
		return
	}

	s.Properties.adopt(props)
	s.Tenants.adopt(tenants)
	s.Payments.adopt(payments)
	s.Checklists.adopt(checklists)
	s.Comments.adopt(comments)
}

// loadLocal loads every collection from its local snapshot.
func (s *Store) loadLocal() {
	s.Properties.loadLocal()
	s.Tenants.loadLocal()
	s.Payments.loadLocal()
	s.Checklists.loadLocal()
	s.Comments.loadLocal()
}

// Clear empties every collection and removes the local snapshots, so no
// record owned by the previous account survives on this device. The
// session key is untouched.
func (s *Store) Clear() {
	s.Properties.clear()
	s.Tenants.clear()
	s.Payments.clear()
	s.Checklists.clear()
	s.Comments.clear()

	if err := s.kv.ClearCollections(); err != nil {
		slog.Warn("clearing local snapshots", "error", err)
	}
}

// ToggleTask inverts one task's completed flag by updating the parent
// checklist. The current task list is read under the per-id lock, so two
// rapid toggles on different tasks of the same checklist both land.
func (s *Store) ToggleTask(ctx context.Context, checklistID, taskID string) (*checklist.Checklist, error) {
	return s.Checklists.UpdateWith(ctx, checklistID, func(cur *checklist.Checklist) (map[string]any, error) {
		tasks, ok := cur.ToggledTasks(taskID)
		if !ok {
			return nil, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
		}
		return map[string]any{"tasks": tasks}, nil
	})
}

// DuplicateChecklist adds a copy of the named checklist: suffixed name,
// fresh task ids, completion flags reset, property and template
// association copied verbatim.
func (s *Store) DuplicateChecklist(ctx context.Context, id string) (*checklist.Checklist, error) {
	src, ok := s.Checklists.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.Checklists.Add(ctx, checklist.Duplicate(src))
}
