// Package session tracks the caller's authentication state: sign-up,
// sign-in, sign-out, and observer notification on every transition. The
// active session is persisted in the local store so the CLI stays signed
// in between invocations.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentkit/rentkit/internal/localstore"
	"github.com/rentkit/rentkit/internal/remote"
)

// Handler observes authentication transitions. It receives the new user
// on sign-in and nil on sign-out.
type Handler func(*remote.User)

// Manager establishes and tracks the authentication state.
type Manager struct {
	client *remote.Client
	kv     *localstore.Store

	mu       sync.Mutex
	sess     *remote.Session
	handlers map[int]Handler
	nextID   int
}

// NewManager creates a manager and restores any persisted session. A
// persisted session whose access token has expired is discarded, leaving
// the caller signed out.
func NewManager(client *remote.Client, kv *localstore.Store) *Manager {
	m := &Manager{
		client:   client,
		kv:       kv,
		handlers: make(map[int]Handler),
	}
	m.restore()
	return m
}

// restore loads the saved session from the local store.
func (m *Manager) restore() {
	data, ok, err := m.kv.Get(localstore.KeySession)
	if err != nil {
		slog.Warn("reading saved session", "error", err)
		return
	}
	if !ok {
		return
	}

	var sess remote.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		slog.Warn("discarding corrupt saved session", "error", err)
		if delErr := m.kv.Delete(localstore.KeySession); delErr != nil {
			slog.Warn("deleting corrupt saved session", "error", delErr)
		}
		return
	}

	if exp, ok := tokenExpiry(sess.AccessToken); ok && time.Now().After(exp) {
		slog.Info("saved session expired", "user", sess.User.Email)
		if delErr := m.kv.Delete(localstore.KeySession); delErr != nil {
			slog.Warn("deleting expired session", "error", delErr)
		}
		return
	}

	if sess.User.ID == "" {
		// Older saved sessions may predate the embedded user record.
		if sub, ok := tokenSubject(sess.AccessToken); ok {
			sess.User.ID = sub
		}
	}

	m.sess = &sess
}

// Current returns the signed-in user, or nil when signed out.
func (m *Manager) Current() *remote.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil
	}
	u := m.sess.User
	return &u
}

// Token returns the access token of the active session, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return ""
	}
	return m.sess.AccessToken
}

// OnChange registers a handler invoked on every authentication
// transition. The returned func unregisters it; callers must run it on
// teardown to avoid leaking observers.
func (m *Manager) OnChange(fn Handler) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.handlers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.handlers, id)
		m.mu.Unlock()
	}
}

// notify runs every handler with the new user. Handlers run synchronously
// so state transitions complete before the triggering call returns.
func (m *Manager) notify(u *remote.User) {
	m.mu.Lock()
	handlers := make([]Handler, 0, len(m.handlers))
	for _, fn := range m.handlers {
		handlers = append(handlers, fn)
	}
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(u)
	}
}

// SignUp registers a new account. When confirmationRequired is true the
// account exists but needs email confirmation before first sign-in.
func (m *Manager) SignUp(ctx context.Context, email, password, redirectTo string) (confirmationRequired bool, err error) {
	sess, confirm, err := m.client.SignUp(ctx, email, password, redirectTo)
	if err != nil {
		return false, err
	}
	if confirm {
		return true, nil
	}

	if err := m.establish(sess); err != nil {
		return false, err
	}
	return false, nil
}

// SignIn exchanges credentials for a session and notifies observers.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	sess, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(sess)
}

// establish persists and adopts a new session.
func (m *Manager) establish(sess *remote.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := m.kv.Put(localstore.KeySession, data); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()

	u := sess.User
	m.notify(&u)
	return nil
}

// SignOut invalidates the session. Observers are notified before
// returning, so collection state owned by the previous account is cleared
// by the time the caller sees success. Signing out while signed out is a
// no-op.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	sess := m.sess
	m.mu.Unlock()

	if sess == nil {
		return nil
	}

	if err := m.client.SignOut(ctx, sess.AccessToken); err != nil {
		return err
	}

	if err := m.kv.Delete(localstore.KeySession); err != nil {
		slog.Warn("deleting saved session", "error", err)
	}

	m.mu.Lock()
	m.sess = nil
	m.mu.Unlock()

	m.notify(nil)
	return nil
}

// tokenExpiry extracts the exp claim from an access token without
// verifying the signature. Verification belongs to the backend; the
// client only needs to know when to stop presenting a stale token.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenSubject extracts the sub claim (the user id) from an access token.
func tokenSubject(token string) (string, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
