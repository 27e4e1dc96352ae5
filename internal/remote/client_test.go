package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func noRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 1}
}

func TestRequestHeaders(t *testing.T) {
	var gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/v1/signup" {
			_, _ = w.Write([]byte(`{"access_token":"t","expires_in":3600,"user":{"id":"u1","email":"a@b.c"}}`))
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")
	c.SetRetry(noRetry())

	if _, err := SelectAll[map[string]any](context.Background(), c, "user-token", "things", "u1"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if gotAPIKey != "anon-key" {
		t.Errorf("apikey header = %q", gotAPIKey)
	}
	if gotAuth != "Bearer user-token" {
		t.Errorf("Authorization = %q, want the user token", gotAuth)
	}

	// Without a user token the anon key doubles as the bearer token.
	if _, _, err := c.SignUp(context.Background(), "a@b.c", "pw", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if gotAuth != "Bearer anon-key" {
		t.Errorf("Authorization = %q, want the anon key", gotAuth)
	}
}

func TestServerErrorsAreMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	c.SetRetry(noRetry())

	_, err := SelectAll[map[string]any](context.Background(), c, "tok", "things", "u1")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("err = %v, want ErrServer", err)
	}

	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *StoreError", err)
	}
	if se.Op != "select" || se.Table != "things" {
		t.Errorf("StoreError = %+v", se)
	}
}

func TestNetworkErrorsAreMarked(t *testing.T) {
	c := New("http://127.0.0.1:1", "anon") // nothing listens here
	c.SetRetry(noRetry())

	_, err := SelectAll[map[string]any](context.Background(), c, "tok", "things", "u1")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestErrorMessageEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"auth shape", `{"error_description":"bad creds"}`, "bad creds"},
		{"msg shape", `{"msg":"invalid email"}`, "invalid email"},
		{"table shape", `{"message":"row not found"}`, "row not found"},
		{"bare error", `{"error":"nope"}`, "nope"},
		{"not json", `<html>`, ""},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("errorMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestNoSessionShortCircuits(t *testing.T) {
	c := New("http://unused", "anon")
	c.SetRetry(noRetry())
	ctx := context.Background()

	if _, err := SelectAll[map[string]any](ctx, c, "", "things", "u1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("select err = %v, want ErrNoSession", err)
	}
	if _, err := Insert(ctx, c, "", "things", map[string]any{}); !errors.Is(err, ErrNoSession) {
		t.Errorf("insert err = %v, want ErrNoSession", err)
	}
	if _, err := Update[map[string]any](ctx, c, "", "things", "id", "u1", nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("update err = %v, want ErrNoSession", err)
	}
	if err := Delete(ctx, c, "", "things", "id", "u1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("delete err = %v, want ErrNoSession", err)
	}
}

func TestUpdateZeroRowsIsErrNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	c.SetRetry(noRetry())

	_, err := Update[map[string]any](context.Background(), c, "tok", "things", "other-users-id", "u1", map[string]any{"x": 1})
	if !errors.Is(err, ErrNoRecord) {
		t.Fatalf("err = %v, want ErrNoRecord", err)
	}
}

func TestInsertReturnsStoredRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("Prefer = %q", got)
		}
		var rec map[string]any
		_ = json.NewDecoder(r.Body).Decode(&rec)
		rec["normalized"] = true
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{rec})
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	c.SetRetry(noRetry())

	stored, err := Insert(context.Background(), c, "tok", "things", map[string]any{"name": "x"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if stored["normalized"] != true {
		t.Error("did not adopt the backend's copy of the record")
	}
}
