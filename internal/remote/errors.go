// Package remote provides an HTTP client for the hosted rentkit backend:
// session auth plus table-scoped, row-owned CRUD.
package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling.
var (
	// ErrNoSession means a scoped call was attempted without a signed-in user.
	ErrNoSession = errors.New("no session")
	// ErrNoRecord means the call succeeded but returned no record, e.g. an
	// update that matched zero rows. Zero matches is not a server error.
	ErrNoRecord = errors.New("no record returned")
	// ErrNetwork marks transport failures.
	ErrNetwork = errors.New("network failure")
	// ErrServer marks 5xx responses.
	ErrServer = errors.New("server error")
)

// AuthError is a failure of sign-up, sign-in, or sign-out. Its message is
// human-readable and shown to the user as-is.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

// StoreError wraps a failed table operation with its context. These are
// logged and absorbed by the local fallback, never shown to the user.
type StoreError struct {
	Op    string // "select", "insert", "update", "delete"
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Retryable returns true if the error should trigger a retry. Transport
// and server failures are retryable; auth and policy errors are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrServer)
}
