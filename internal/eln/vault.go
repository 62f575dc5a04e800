package eln

import "io"

// Vault stores finished backup archives. Implementations stream archives
// through io.Reader/io.Writer so large attachment trees never have to fit
// in memory.
type Vault interface {
	// Put stores an archive under the given name. size is the number of
	// bytes that will be read from r; implementations must reject writes
	// whose byte count differs.
	Put(name string, r io.Reader, size int64) error

	// Get retrieves an archive by name and writes it to w.
	// Returns ErrNotFound if no archive with that name exists.
	Get(name string, w io.Writer) error

	// List returns the stored archive names, newest first.
	List() ([]string, error)

	// ValidateSetup verifies the vault is accessible and writable.
	// A read-only destination is reported as ErrNotWritable.
	ValidateSetup() error
}
