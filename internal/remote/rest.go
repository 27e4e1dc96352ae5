package remote

import (
	"context"
	"fmt"
	"net/url"
)

// Table operations against /rest/v1/{table}. Every call is scoped to the
// owning user: reads filter on user_id, writes match both id and user_id,
// so a guessed identifier can never touch another account's rows.

// returnRepresentation asks the backend to echo the stored record, which
// may normalize fields the client did not set.
var returnRepresentation = map[string]string{"Prefer": "return=representation"}

// SelectAll fetches every record in table owned by userID.
func SelectAll[T any](ctx context.Context, c *Client, token, table, userID string) ([]T, error) {
	if token == "" || userID == "" {
		return nil, &StoreError{Op: "select", Table: table, Err: ErrNoSession}
	}

	path := fmt.Sprintf("/rest/v1/%s?select=*&user_id=eq.%s", table, url.QueryEscape(userID))

	records, err := withRetry(ctx, c.retry, func() ([]T, error) {
		var out []T
		if err := c.do(ctx, "GET", path, token, nil, nil, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, &StoreError{Op: "select", Table: table, Err: err}
	}
	return records, nil
}

// Insert stores a new record and returns the backend's copy of it.
func Insert[T any](ctx context.Context, c *Client, token, table string, record T) (T, error) {
	var zero T
	if token == "" {
		return zero, &StoreError{Op: "insert", Table: table, Err: ErrNoSession}
	}

	path := "/rest/v1/" + table

	stored, err := withRetry(ctx, c.retry, func() (T, error) {
		var out []T
		if err := c.do(ctx, "POST", path, token, returnRepresentation, record, &out); err != nil {
			return zero, err
		}
		if len(out) == 0 {
			return zero, ErrNoRecord
		}
		return out[0], nil
	})
	if err != nil {
		return zero, &StoreError{Op: "insert", Table: table, Err: err}
	}
	return stored, nil
}

// Update patches the record matching id and userID and returns the stored
// record. Zero matched rows is reported as ErrNoRecord, not a server error.
func Update[T any](ctx context.Context, c *Client, token, table, id, userID string, patch any) (T, error) {
	var zero T
	if token == "" || userID == "" {
		return zero, &StoreError{Op: "update", Table: table, Err: ErrNoSession}
	}

	path := fmt.Sprintf("/rest/v1/%s?id=eq.%s&user_id=eq.%s",
		table, url.QueryEscape(id), url.QueryEscape(userID))

	stored, err := withRetry(ctx, c.retry, func() (T, error) {
		var out []T
		if err := c.do(ctx, "PATCH", path, token, returnRepresentation, patch, &out); err != nil {
			return zero, err
		}
		if len(out) == 0 {
			return zero, ErrNoRecord
		}
		return out[0], nil
	})
	if err != nil {
		return zero, &StoreError{Op: "update", Table: table, Err: err}
	}
	return stored, nil
}

// Delete removes the record matching id and userID.
func Delete(ctx context.Context, c *Client, token, table, id, userID string) error {
	if token == "" || userID == "" {
		return &StoreError{Op: "delete", Table: table, Err: ErrNoSession}
	}

	path := fmt.Sprintf("/rest/v1/%s?id=eq.%s&user_id=eq.%s",
		table, url.QueryEscape(id), url.QueryEscape(userID))

	_, err := withRetry(ctx, c.retry, func() (struct{}, error) {
		return struct{}{}, c.do(ctx, "DELETE", path, token, nil, nil, nil)
	})
	if err != nil {
		return &StoreError{Op: "delete", Table: table, Err: err}
	}
	return nil
}
