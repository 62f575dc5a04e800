package attachment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eln-go/internal/eln"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "attachments"), &eln.UUIDGenerator{})
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return store
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestFileStore_Store(t *testing.T) {
	t.Run("copies file under a generated name", func(t *testing.T) {
		store := newTestStore(t)
		src := writeTempFile(t, "gel.png", "image bytes")

		storedName, err := store.Store(src)
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if storedName == "" {
			t.Fatal("stored name is empty")
		}
		if filepath.Ext(storedName) != ".png" {
			t.Errorf("extension = %q, want .png", filepath.Ext(storedName))
		}

		data, err := os.ReadFile(filepath.Join(store.Dir(), storedName))
		if err != nil {
			t.Fatalf("reading stored file: %v", err)
		}
		if string(data) != "image bytes" {
			t.Errorf("content = %q, want %q", data, "image bytes")
		}
	})

	t.Run("same original name never collides", func(t *testing.T) {
		store := newTestStore(t)
		src1 := writeTempFile(t, "data.csv", "first")
		src2 := writeTempFile(t, "data.csv", "second")

		name1, err := store.Store(src1)
		if err != nil {
			t.Fatalf("Store(first) error = %v", err)
		}
		name2, err := store.Store(src2)
		if err != nil {
			t.Fatalf("Store(second) error = %v", err)
		}
		if name1 == name2 {
			t.Errorf("stored names collide: %q", name1)
		}
	})

	t.Run("returns ErrNotFound for missing source", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Store("/nonexistent/file.txt")
		if !errors.Is(err, eln.ErrNotFound) {
			t.Errorf("Store() error = %v, want ErrNotFound", err)
		}
	})
}

func TestFileStore_SourceExists(t *testing.T) {
	store := newTestStore(t)

	if store.SourceExists("/nonexistent/file.txt") {
		t.Error("SourceExists() = true for missing file")
	}

	src := writeTempFile(t, "readme.txt", "hello")
	if !store.SourceExists(src) {
		t.Error("SourceExists() = false for existing file")
	}

	if store.SourceExists(filepath.Dir(src)) {
		t.Error("SourceExists() = true for a directory")
	}
}

func TestFileStore_RemoveAndExists(t *testing.T) {
	store := newTestStore(t)
	src := writeTempFile(t, "gel.png", "image bytes")

	storedName, err := store.Store(src)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !store.Exists(storedName) {
		t.Fatal("Exists() = false after Store()")
	}

	if err := store.Remove(storedName); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if store.Exists(storedName) {
		t.Error("Exists() = true after Remove()")
	}

	// Removing twice is fine
	if err := store.Remove(storedName); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}
