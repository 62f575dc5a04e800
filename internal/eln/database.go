package eln

// Database provides an interface for notebook metadata storage.
// Multi-step operations (entry creation, tag merge, import) must be
// implemented atomically: either every row lands or none do.
type Database interface {
	// Notebook operations

	// CreateNotebook creates a notebook. Returns ErrDuplicate if the name
	// is already taken.
	CreateNotebook(name, description string) (*Notebook, error)

	// FindNotebookByID returns a notebook by id, or nil if absent.
	FindNotebookByID(id int64) (*Notebook, error)

	// FindNotebookByName returns a notebook by its unique name, or nil if absent.
	FindNotebookByName(name string) (*Notebook, error)

	// ListNotebooks returns all notebooks ordered by creation time descending.
	ListNotebooks() ([]*Notebook, error)

	// UpdateNotebookStatus sets a notebook active or archived.
	// Returns ErrNotFound if the notebook does not exist.
	UpdateNotebookStatus(id int64, status NotebookStatus) error

	// Entry operations

	// CreateEntry inserts the entry, its tag links, and its attachment rows
	// in one transaction. Returns ErrDuplicate when the (notebook, title)
	// pair is already taken.
	CreateEntry(draft *EntryDraft) (*Entry, error)

	// FindEntryByID returns an entry by id, or nil if absent.
	FindEntryByID(id int64) (*Entry, error)

	// FindEntryByTitle returns an entry by title within a notebook, or nil if absent.
	FindEntryByTitle(notebookID int64, title string) (*Entry, error)

	// ListEntries returns all entries ordered by creation time descending.
	ListEntries() ([]*Entry, error)

	// Note operations

	// CreateNote inserts the note, its tag links, and its attachment rows
	// in one transaction.
	CreateNote(draft *NoteDraft) (*Note, error)

	// ListNotesByEntry returns the notes of an entry ordered by creation
	// time descending.
	ListNotesByEntry(entryID int64) ([]*Note, error)

	// ListNotes returns all notes ordered by creation time descending.
	ListNotes() ([]*Note, error)

	// Tag operations

	// CreateOrGetTag returns the tag with the given name, creating it first
	// if needed. Idempotent by name; the description is only applied on create.
	CreateOrGetTag(name, description string) (*Tag, error)

	// FindTagByName returns a tag by its unique name, or nil if absent.
	FindTagByName(name string) (*Tag, error)

	// ListTags returns all tags ordered by name.
	ListTags() ([]*Tag, error)

	// TagRecord links a tag to an entry or note. Duplicate links are ignored.
	TagRecord(kind RecordKind, recordID, tagID int64) error

	// TagsForRecord returns the tags linked to an entry or note, ordered by name.
	TagsForRecord(kind RecordKind, recordID int64) ([]*Tag, error)

	// ListTagLinks returns every link-table row for the given record kind.
	ListTagLinks(kind RecordKind) ([]*TagLink, error)

	// MergeTags consolidates the old tags into a single tag named newName,
	// in one transaction: the target tag is created (or reused), every
	// entry and note holding any old tag is re-linked to it without
	// duplication, and the old tags and their links are deleted. The target
	// tag survives even if its id appears in oldIDs.
	MergeTags(oldIDs []int64, newName string) (*Tag, error)

	// DeleteTag removes a tag and all of its link rows.
	DeleteTag(id int64) error

	// Attachment operations

	// ListAttachmentsByOwner returns the attachments of an entry or note.
	ListAttachmentsByOwner(kind RecordKind, recordID int64) ([]*Attachment, error)

	// ListAttachments returns every attachment row.
	ListAttachments() ([]*Attachment, error)

	// Search

	// SearchEntries returns entries whose title or content contains the
	// query, case-insensitively and matching LIKE metacharacters literally,
	// ordered by creation time descending. tagID > 0 additionally requires
	// the entry to carry that tag. An empty query matches nothing.
	SearchEntries(query string, tagID int64) ([]*Entry, error)

	// Audit log

	// AppendLog appends one audit row.
	AppendLog(rec *LogRecord) error

	// Import

	// ImportDocument re-inserts every record of the document as new rows in
	// one transaction, remapping foreign keys through old-to-new id maps.
	ImportDocument(doc *Document) (*ImportStats, error)

	// Path returns the database file path ("" or ":memory:" when not file-backed).
	Path() string

	// BackupTo writes a consistent copy of the database to destPath.
	BackupTo(destPath string) error

	// Close closes the database connection.
	Close() error
}
