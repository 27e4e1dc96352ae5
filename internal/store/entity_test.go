package store

import (
	"testing"
	"time"

	"github.com/rentkit/rentkit/internal/property"
)

func TestSanitizePatch(t *testing.T) {
	patch := map[string]any{
		"name":       "New Name",
		"id":         "forged",
		"user_id":    "forged",
		"created_at": "forged",
	}

	clean := sanitizePatch(patch)

	if _, ok := clean["id"]; ok {
		t.Error("id survived sanitizing")
	}
	if _, ok := clean["user_id"]; ok {
		t.Error("user_id survived sanitizing")
	}
	if _, ok := clean["created_at"]; ok {
		t.Error("created_at survived sanitizing")
	}
	if clean["name"] != "New Name" {
		t.Errorf("name = %v, want New Name", clean["name"])
	}
	if len(patch) != 4 {
		t.Error("sanitizing mutated the caller's patch")
	}
}

func TestMergeRecord(t *testing.T) {
	cur := testProperty("Sunset Flat")
	cur.SetIdentity("p1", "user-1", time.Now().UTC())

	merged, err := mergeRecord(cur, map[string]any{"name": "Sunrise Flat", "rent": 999.0},
		func() *property.Property { return &property.Property{} })
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	if merged.Name != "Sunrise Flat" {
		t.Errorf("Name = %q, want Sunrise Flat", merged.Name)
	}
	if merged.Rent != 999 {
		t.Errorf("Rent = %v, want 999", merged.Rent)
	}
	if merged.City != cur.City || merged.Bedrooms != cur.Bedrooms || merged.Currency != cur.Currency {
		t.Error("unnamed fields not preserved")
	}
	if merged.ID != "p1" {
		t.Errorf("ID = %q, want p1", merged.ID)
	}
	if cur.Name != "Sunset Flat" {
		t.Error("merge mutated the source record")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
