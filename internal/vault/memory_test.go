package vault

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"eln-go/internal/eln"
)

func TestMemoryVault(t *testing.T) {
	t.Run("round trips an archive", func(t *testing.T) {
		v := NewMemoryVault()

		data := []byte("zip bytes")
		if err := v.Put("backup.zip", bytes.NewReader(data), int64(len(data))); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		var buf bytes.Buffer
		if err := v.Get("backup.zip", &buf); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if buf.String() != "zip bytes" {
			t.Errorf("content = %q, want %q", buf.String(), "zip bytes")
		}
	})

	t.Run("rejects size mismatch", func(t *testing.T) {
		v := NewMemoryVault()

		if err := v.Put("backup.zip", strings.NewReader("short"), 100); err == nil {
			t.Error("Put() expected error for size mismatch")
		}
	})

	t.Run("Get of missing archive returns ErrNotFound", func(t *testing.T) {
		v := NewMemoryVault()

		var buf bytes.Buffer
		err := v.Get("missing.zip", &buf)
		if !errors.Is(err, eln.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("lists newest first", func(t *testing.T) {
		v := NewMemoryVault()
		v.Put("backup_20240101_120000.zip", strings.NewReader("x"), 1)
		v.Put("backup_20240201_120000.zip", strings.NewReader("x"), 1)

		names, err := v.List()
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(names) != 2 || names[0] != "backup_20240201_120000.zip" {
			t.Errorf("List() = %v, want newest first", names)
		}
	})
}
