package vault

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"eln-go/internal/eln"
)

// MemoryVault is an in-memory implementation of the Vault interface.
// It stores archives in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	archives map[string][]byte // name -> archive bytes
	mu       sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{archives: make(map[string][]byte)}
}

// Put stores an archive under the given name.
func (m *MemoryVault) Put(name string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.archives[name] = data
	return nil
}

// Get retrieves an archive by name.
func (m *MemoryVault) Get(name string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.archives[name]
	if !ok {
		return fmt.Errorf("backup %s: %w", name, eln.ErrNotFound)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// List returns the stored archive names, newest first.
func (m *MemoryVault) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.archives))
	for name := range m.archives {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryVault implements eln.Vault interface
var _ eln.Vault = (*MemoryVault)(nil)
