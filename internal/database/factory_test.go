package database

import (
	"path/filepath"
	"testing"

	"eln-go/internal/config"
)

func TestNewDatabaseFromConfig(t *testing.T) {
	t.Run("memory database", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Database.File = "memory"

		got, err := NewDatabaseFromConfig(cfg)
		if err != nil {
			t.Errorf("NewDatabaseFromConfig() unexpected error: %v", err)
			return
		}
		if got == nil {
			t.Error("NewDatabaseFromConfig() returned nil")
		}
		if got != nil {
			got.Close()
		}
	})

	t.Run("file database", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Database.File = filepath.Join(t.TempDir(), "eln.db")

		got, err := NewDatabaseFromConfig(cfg)
		if err != nil {
			t.Errorf("NewDatabaseFromConfig() unexpected error: %v", err)
			return
		}
		if got == nil {
			t.Error("NewDatabaseFromConfig() returned nil")
		}
		if got != nil {
			if got.Path() != cfg.Database.File {
				t.Errorf("Path() = %q, want %q", got.Path(), cfg.Database.File)
			}
			got.Close()
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		cfg := &config.Config{}

		got, err := NewDatabaseFromConfig(cfg)
		if err == nil {
			t.Error("NewDatabaseFromConfig() expected error for missing file, got nil")
		}
		if got != nil {
			t.Error("NewDatabaseFromConfig() should return nil on error")
			got.Close()
		}
	})
}
