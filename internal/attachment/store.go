package attachment

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eln-go/internal/eln"
)

// FileStore is a filesystem-based implementation of the AttachmentStore
// interface. Files are stored flat under a single directory:
//
//	<dir>/
//	  <uuid><ext>    (one file per attachment, extension preserved)
type FileStore struct {
	dir   string
	idgen eln.IDGenerator
}

// NewFileStore creates an attachment store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, idgen eln.IDGenerator) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}
	return &FileStore{dir: dir, idgen: idgen}, nil
}

// SourceExists reports whether srcPath exists and is a regular file.
func (s *FileStore) SourceExists(srcPath string) bool {
	info, err := os.Stat(srcPath)
	return err == nil && info.Mode().IsRegular()
}

// Store copies srcPath into the managed directory under a generated name.
// The original extension is kept so stored files stay openable by type.
func (s *FileStore) Store(srcPath string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("attachment %s: %w", srcPath, eln.ErrNotFound)
		}
		return "", fmt.Errorf("failed to open attachment: %w", err)
	}
	defer src.Close()

	storedName := s.idgen.New() + filepath.Ext(srcPath)
	destPath := filepath.Join(s.dir, storedName)

	if err := writeFile(destPath, src); err != nil {
		return "", err
	}
	return storedName, nil
}

// Remove deletes a stored file. Removing an absent file is not an error.
func (s *FileStore) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}
	return nil
}

// Exists reports whether a stored file is present in the managed directory.
func (s *FileStore) Exists(storedName string) bool {
	info, err := os.Stat(filepath.Join(s.dir, storedName))
	return err == nil && info.Mode().IsRegular()
}

// Dir returns the managed directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func writeFile(destPath string, r io.Reader) error {
	// Create temp file in the same directory to ensure atomic rename works
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileStore implements eln.AttachmentStore interface
var _ eln.AttachmentStore = (*FileStore)(nil)
