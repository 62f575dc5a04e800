package eln

// AttachmentStore manages the directory of attachment files. Files are
// stored under generated names so originals with the same base name never
// collide.
type AttachmentStore interface {
	// SourceExists reports whether the given source path exists and is a
	// regular file. Used as a pre-flight check before any row is inserted.
	SourceExists(srcPath string) bool

	// Store copies srcPath into the managed directory and returns the
	// generated stored name. Returns ErrNotFound if the source is missing.
	Store(srcPath string) (string, error)

	// Remove deletes a stored file. Used to compensate when the owning
	// record fails to insert.
	Remove(storedName string) error

	// Exists reports whether a stored file is present in the managed
	// directory. Used on import to skip attachment rows whose files were
	// not carried over.
	Exists(storedName string) bool

	// Dir returns the managed directory path.
	Dir() string
}
