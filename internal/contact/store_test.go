package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.json")
	return Open(slog.New(slog.DiscardHandler), path), path
}

func TestAppend_RejectsMissingFields(t *testing.T) {
	s, _ := testStore(t)

	tests := []struct {
		name    string
		n, e, m string
	}{
		{"all empty", "", "", ""},
		{"missing name", "", "a@b.com", "hi"},
		{"missing email", "Al", "", "hi"},
		{"missing message", "Al", "a@b.com", ""},
		{"whitespace only", " ", "a@b.com", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Append(tt.n, tt.e, tt.m); !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}

	if got := len(s.List()); got != 0 {
		t.Errorf("rejected submissions must not be stored, have %d", got)
	}
}

func TestAppend_NewestFirstRoundTrip(t *testing.T) {
	s, path := testStore(t)

	names := []string{"first", "second", "third"}
	for _, n := range names {
		if _, err := s.Append(n, n+"@example.com", "msg from "+n); err != nil {
			t.Fatalf("append %s: %v", n, err)
		}
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(list))
	}
	for i, want := range []string{"third", "second", "first"} {
		if list[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, list[i].Name)
		}
		if _, err := time.Parse(time.RFC3339, list[i].Date); err != nil {
			t.Errorf("position %d: invalid date %q: %v", i, list[i].Date, err)
		}
	}

	// the durable copy must match what a fresh store loads
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read durable copy: %v", err)
	}
	var persisted []Message
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("durable copy is not a json array: %v", err)
	}
	if len(persisted) != 3 || persisted[0].Name != "third" {
		t.Errorf("unexpected durable copy: %+v", persisted)
	}

	reloaded := Open(slog.New(slog.DiscardHandler), path)
	if got := reloaded.List(); len(got) != 3 || got[0].Name != "third" {
		t.Errorf("reload mismatch: %+v", got)
	}
}

func TestAppend_TruncatesLongFields(t *testing.T) {
	s, _ := testStore(t)

	msg, err := s.Append(
		strings.Repeat("n", 500),
		strings.Repeat("e", 500),
		strings.Repeat("m", 5000),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(msg.Name) != 200 || len(msg.Email) != 200 || len(msg.Message) != 2000 {
		t.Errorf("unexpected lengths: name=%d email=%d message=%d",
			len(msg.Name), len(msg.Email), len(msg.Message))
	}
}

func TestOpen_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(slog.New(slog.DiscardHandler), path)
	if got := len(s.List()); got != 0 {
		t.Errorf("expected empty store, got %d messages", got)
	}

	// the store must still accept writes afterwards
	if _, err := s.Append("Al", "a@b.com", "hi"); err != nil {
		t.Errorf("append after corrupt load: %v", err)
	}
}

func TestAppend_WriteFailureDoesNotFailCaller(t *testing.T) {
	// point the store at a path whose directory does not exist
	s := Open(slog.New(slog.DiscardHandler), filepath.Join(t.TempDir(), "missing", "messages.json"))

	if _, err := s.Append("Al", "a@b.com", "hi"); err != nil {
		t.Fatalf("append must succeed despite the write failure: %v", err)
	}
	if got := len(s.List()); got != 1 {
		t.Errorf("in-memory insert must survive the write failure, have %d", got)
	}
}
