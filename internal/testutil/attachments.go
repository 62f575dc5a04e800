package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"eln-go/internal/attachment"
)

// NewTestAttachmentStore creates a file store in a temp directory with a
// deterministic ID generator, so stored names are id-1.ext, id-2.ext, etc.
func NewTestAttachmentStore(t *testing.T) *attachment.FileStore {
	t.Helper()

	store, err := attachment.NewFileStore(filepath.Join(t.TempDir(), "attachments"), NewStubIDGenerator())
	if err != nil {
		t.Fatalf("failed to create attachment store: %v", err)
	}
	return store
}

// WriteSourceFile creates a file with the given name and content in a fresh
// temp directory and returns its path, for use as an attachment source.
func WriteSourceFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	return path
}
