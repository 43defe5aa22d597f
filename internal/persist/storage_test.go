package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorageMissing(t *testing.T) {
	store, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	_, ok, err := store.GetItem(DefaultKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected missing slot")
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if err := store.SetItem("tabs/main", `{"a":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := store.GetItem("tabs/main")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected value %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "tabs_main.json")); err != nil {
		t.Fatalf("expected sanitized slot file: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "tabs_main.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 slot file, got %v", info.Mode().Perm())
	}
	if err := store.RemoveItem("tabs/main"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.RemoveItem("tabs/main"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if _, ok, _ := store.GetItem("tabs/main"); ok {
		t.Fatalf("expected slot to be removed")
	}
}

func TestFileStorageRequiresDir(t *testing.T) {
	if _, err := NewFileStorage("  "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestMemoryStorageErrors(t *testing.T) {
	store := NewMemoryStorage()
	store.SetErr = errors.New("quota exceeded")
	if err := store.SetItem("k", "v"); err == nil {
		t.Fatalf("expected injected set error")
	}
	if store.Writes() != 0 {
		t.Fatalf("expected no recorded writes")
	}
	store.SetErr = nil
	if err := store.SetItem("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	store.GetErr = errors.New("unavailable")
	if _, _, err := store.GetItem("k"); err == nil {
		t.Fatalf("expected injected get error")
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []Backend{BackendFile, BackendSQLite, BackendMemory, ""} {
		store, closer, err := Open(backend, dir, "", nil)
		if err != nil {
			t.Fatalf("open %q: %v", backend, err)
		}
		if err := store.SetItem(DefaultKey, "x"); err != nil {
			t.Fatalf("%q set: %v", backend, err)
		}
		if got, ok, err := store.GetItem(DefaultKey); err != nil || !ok || got != "x" {
			t.Fatalf("%q get: %q ok=%v err=%v", backend, got, ok, err)
		}
		if err := closer.Close(); err != nil {
			t.Fatalf("%q close: %v", backend, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "tabs.db")); err != nil {
		t.Fatalf("expected default sqlite database in state dir: %v", err)
	}
	if _, _, err := Open("bogus", dir, "", nil); err == nil {
		t.Fatalf("expected unsupported backend error")
	}
}
