package eln

import "errors"

// Sentinel errors surfaced by the service layer. The command boundary checks
// these with errors.Is and converts them into failure messages; nothing here
// is fatal to the process.
var (
	// ErrDuplicate reports a uniqueness constraint violation
	// (notebook name, entry title within a notebook, tag name).
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound reports a missing parent entity or file.
	ErrNotFound = errors.New("not found")

	// ErrNotebookArchived reports an attempt to create an entry
	// in an archived notebook.
	ErrNotebookArchived = errors.New("notebook is archived")

	// ErrNotWritable reports a failed pre-flight writability probe on the
	// backup or export directory, distinct from generic I/O errors.
	ErrNotWritable = errors.New("directory is not writable")
)
