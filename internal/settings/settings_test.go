package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"audiosum/internal/logging"
	"audiosum/internal/settings"
)

func newStore(t *testing.T) *settings.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	return settings.New(path, logging.NewNop())
}

func TestSessionRoundTrip(t *testing.T) {
	store := newStore(t)
	if err := store.SelectSession("M", "main"); err != nil {
		t.Fatalf("SelectSession: %v", err)
	}
	if err := store.Write("M", "K", "", "V", false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	value, err := store.Read("M", "K", "", false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if value != "V" {
		t.Fatalf("got %v, want V", value)
	}
}

func TestNestedKeyRoundTrip(t *testing.T) {
	store := newStore(t)
	if err := store.SelectSession("tagger", "work"); err != nil {
		t.Fatalf("SelectSession: %v", err)
	}
	if err := store.Write("tagger", "cache", "etag", "abc123", false); err != nil {
		t.Fatalf("Write nested: %v", err)
	}

	value, err := store.Read("tagger", "cache", "etag", false)
	if err != nil {
		t.Fatalf("Read nested: %v", err)
	}
	if value != "abc123" {
		t.Fatalf("got %v, want abc123", value)
	}
}

func TestGlobalScopeNeedsNoSession(t *testing.T) {
	store := newStore(t)
	if err := store.Write("M", "flag", "", true, true); err != nil {
		t.Fatalf("Write global: %v", err)
	}

	value, err := store.Read("M", "flag", "", true)
	if err != nil {
		t.Fatalf("Read global: %v", err)
	}
	if value != true {
		t.Fatalf("got %v, want true", value)
	}
}

func TestSessionReadWithoutStateFails(t *testing.T) {
	store := newStore(t)
	if _, err := store.Read("M", "K", "", false); !errors.Is(err, settings.ErrNoSessionState) {
		t.Fatalf("expected ErrNoSessionState, got %v", err)
	}
	if err := store.Write("M", "K", "", "V", false); !errors.Is(err, settings.ErrNoSessionState) {
		t.Fatalf("expected ErrNoSessionState on write, got %v", err)
	}
}

func TestMissingKeysReadAsNil(t *testing.T) {
	store := newStore(t)
	if err := store.SelectSession("M", "main"); err != nil {
		t.Fatalf("SelectSession: %v", err)
	}

	value, err := store.Read("M", "absent", "", false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if value != nil {
		t.Fatalf("got %v, want nil", value)
	}
}

func TestValuesSurviveReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	first := settings.New(path, logging.NewNop())
	if err := first.SelectSession("M", "main"); err != nil {
		t.Fatalf("SelectSession: %v", err)
	}
	if err := first.Write("M", "K", "", "V", false); err != nil {
		t.Fatalf("Write: %v", err)
	}

	second := settings.New(path, logging.NewNop())
	value, err := second.Read("M", "K", "", false)
	if err != nil {
		t.Fatalf("Read after reload: %v", err)
	}
	if value != "V" {
		t.Fatalf("got %v, want V", value)
	}
}

func TestCorruptBlobSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}
	store := settings.New(path, logging.NewNop())
	if _, err := store.Read("M", "K", "", true); err == nil {
		t.Fatal("expected decode error")
	}
}
