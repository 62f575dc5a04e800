package vault

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"eln-go/internal/eln"
)

// FileSystemVault is a filesystem-based implementation of the Vault
// interface. Archives are stored as flat files under a single directory,
// named by the caller (timestamped names keep List ordering meaningful).
type FileSystemVault struct {
	root string
}

// NewFileSystemVault creates a new filesystem vault rooted at the given path.
func NewFileSystemVault(root string) (*FileSystemVault, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}
	return &FileSystemVault{root: root}, nil
}

// Put stores an archive under the given name.
func (v *FileSystemVault) Put(name string, r io.Reader, size int64) error {
	return v.writeFile(filepath.Join(v.root, name), r, size)
}

// Get retrieves an archive by name and writes it to w.
func (v *FileSystemVault) Get(name string, w io.Writer) error {
	f, err := os.Open(filepath.Join(v.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %s: %w", name, eln.ErrNotFound)
		}
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	return nil
}

// List returns the stored archive names, newest first. Timestamped archive
// names sort chronologically, so reverse-lexical order is newest first.
func (v *FileSystemVault) List() ([]string, error) {
	entries, err := os.ReadDir(v.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ValidateSetup verifies that the vault directory exists and is writable.
func (v *FileSystemVault) ValidateSetup() error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}

	// Probe writability with a throwaway file
	probe, err := os.CreateTemp(v.root, ".probe-*")
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("vault root %s: %w", v.root, eln.ErrNotWritable)
		}
		return fmt.Errorf("vault root not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (v *FileSystemVault) writeFile(destPath string, r io.Reader, expectedSize int64) error {
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

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Verify size
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemVault implements eln.Vault interface
var _ eln.Vault = (*FileSystemVault)(nil)
