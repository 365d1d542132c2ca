package session

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session"), nil)
}

func TestStoreSaveGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	const passphrase = "correct horse battery staple"
	if err := store.Save(passphrase); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok := store.Get()
	if !ok {
		t.Fatal("Get reported absence after Save")
	}
	if got != passphrase {
		t.Errorf("Get = %q, want %q", got, passphrase)
	}
}

func TestStoreGetEmpty(t *testing.T) {
	store := newTestStore(t)

	if got, ok := store.Get(); ok || got != "" {
		t.Errorf("Get on empty store = (%q, %v), want absence", got, ok)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	if got, _ := store.Get(); got != "second" {
		t.Errorf("Get = %q, want %q", got, "second")
	}
}

func TestStoreClearIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("pw"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("Get found a credential after Clear")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestStoreDisabledPath(t *testing.T) {
	store := NewStore("", nil)

	if err := store.Save("pw"); err != nil {
		t.Fatalf("Save on disabled store failed: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("disabled store returned a credential")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on disabled store failed: %v", err)
	}
}
