// Package store is the synchronization layer: five structurally identical
// collection facades (one per entity kind) with dual-destination
// persistence. Every mutation attempts the hosted backend first when a
// session exists and falls back to the local snapshot store on failure,
// keeping an in-memory reactive copy that the presentation layer observes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entity is implemented by every record kind the store manages.
type Entity interface {
	// EntityID returns the record's identifier, "" before it is added.
	EntityID() string
	// SetIdentity stamps the identifier, owning user, and creation time.
	// The store calls this exactly once, at add time; identifiers are
	// immutable afterwards.
	SetIdentity(id, owner string, createdAt time.Time)
	// Validate checks the record against its model constraints.
	Validate() error
}

// ErrNotFound is returned by Update when no record matches the id.
var ErrNotFound = errors.New("record not found")

// CorruptLocalStateError means a persisted snapshot could not be parsed.
// The collection degrades to empty instead of failing the load.
type CorruptLocalStateError struct {
	Key string
	Err error
}

func (e *CorruptLocalStateError) Error() string {
	return fmt.Sprintf("corrupt local snapshot %s: %v", e.Key, e.Err)
}

func (e *CorruptLocalStateError) Unwrap() error {
	return e.Err
}

// newID returns a fresh record identifier. ULIDs are time-ordered with
// 80 bits of entropy, so intra-session collisions are not a concern.
func newID() string {
	return ulid.Make().String()
}

// identityFields are stamped by the store and may never be patched.
var identityFields = []string{"id", "user_id", "created_at"}

// sanitizePatch strips immutable fields from a partial update.
func sanitizePatch(patch map[string]any) map[string]any {
	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		clean[k] = v
	}
	for _, f := range identityFields {
		delete(clean, f)
	}
	return clean
}

// mergeRecord overlays patch onto cur through a JSON round-trip: fields
// named in the patch are overwritten, everything else is preserved. The
// merge is shallow, matching the update contract.
func mergeRecord[T Entity](cur T, patch map[string]any, newFn func() T) (T, error) {
	var zero T

	data, err := json.Marshal(cur)
	if err != nil {
		return zero, fmt.Errorf("marshaling record: %w", err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(data, &fields); err != nil {
		return zero, fmt.Errorf("decoding record: %w", err)
	}

	for k, v := range patch {
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, fmt.Errorf("marshaling merged record: %w", err)
	}

	out := newFn()
	if err := json.Unmarshal(merged, out); err != nil {
		return zero, fmt.Errorf("decoding merged record: %w", err)
	}

	return out, nil
}
