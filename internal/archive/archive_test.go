package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildFixture writes a db file and two attachment files, archives them, and
// returns the archive path along with the db base name.
func buildFixture(t *testing.T) (archivePath, dbName string) {
	t.Helper()

	srcDir := t.TempDir()
	dbPath := filepath.Join(srcDir, "eln.db")
	if err := os.WriteFile(dbPath, []byte("sqlite bytes"), 0644); err != nil {
		t.Fatalf("writing db fixture: %v", err)
	}

	attDir := filepath.Join(srcDir, "attachments")
	os.MkdirAll(attDir, 0755)
	os.WriteFile(filepath.Join(attDir, "a.png"), []byte("image a"), 0644)
	os.WriteFile(filepath.Join(attDir, "b.csv"), []byte("1,2,3"), 0644)

	archivePath = filepath.Join(t.TempDir(), "backup.zip")
	if err := Write(archivePath, dbPath, attDir); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return archivePath, "eln.db"
}

func TestWriteValidateExtract(t *testing.T) {
	archivePath, dbName := buildFixture(t)

	if err := Validate(archivePath, dbName); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	outDir := t.TempDir()
	dbDest := filepath.Join(outDir, dbName)
	attDest := filepath.Join(outDir, "attachments")
	if err := Extract(archivePath, dbDest, attDest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	data, err := os.ReadFile(dbDest)
	if err != nil {
		t.Fatalf("reading extracted db: %v", err)
	}
	if string(data) != "sqlite bytes" {
		t.Errorf("db content = %q, want %q", data, "sqlite bytes")
	}

	for name, want := range map[string]string{"a.png": "image a", "b.csv": "1,2,3"} {
		data, err := os.ReadFile(filepath.Join(attDest, name))
		if err != nil {
			t.Fatalf("reading extracted %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", name, data, want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("missing archive", func(t *testing.T) {
		err := Validate("/nonexistent/backup.zip", "eln.db")
		if err == nil || !strings.Contains(err.Error(), "backup file not found") {
			t.Errorf("Validate() error = %v, want backup file not found", err)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.zip")
		os.WriteFile(path, []byte("definitely not a zip"), 0644)

		err := Validate(path, "eln.db")
		if err == nil || !strings.Contains(err.Error(), "not a valid backup archive") {
			t.Errorf("Validate() error = %v, want not a valid backup archive", err)
		}
	})

	t.Run("missing database member", func(t *testing.T) {
		archivePath, _ := buildFixture(t)

		err := Validate(archivePath, "other.db")
		if err == nil || !strings.Contains(err.Error(), "does not contain database file") {
			t.Errorf("Validate() error = %v, want missing database member", err)
		}
	})
}

func TestSafeMemberName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"eln.db", true},
		{"attachments/a.png", true},
		{"attachments/sub/a.png", true},
		{"", false},
		{"/etc/passwd", false},
		{"../escape", false},
		{"attachments/../../escape", false},
		{"a\\b", false},
	}

	for _, tt := range tests {
		if got := safeMemberName(tt.name); got != tt.want {
			t.Errorf("safeMemberName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
