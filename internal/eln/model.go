package eln

import "time"

// NotebookStatus is the lifecycle state of a notebook.
type NotebookStatus string

const (
	NotebookActive   NotebookStatus = "active"
	NotebookArchived NotebookStatus = "archived"
)

// Notebook is a named container for entries. Notebooks are never hard-deleted;
// archiving blocks new entry creation while keeping existing records readable.
type Notebook struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      NotebookStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Entry is a titled record belonging to exactly one notebook.
// Titles are unique within a notebook, not globally.
type Entry struct {
	ID         int64     `json:"id"`
	NotebookID int64     `json:"notebook_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Note is a sub-record attached to an entry.
type Note struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is a named label attachable to entries and notes via link tables.
type Tag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecordKind selects which owning table (and therefore which statically-known
// link table) a tag association or attachment belongs to.
type RecordKind int

const (
	KindEntry RecordKind = iota
	KindNote
)

func (k RecordKind) String() string {
	switch k {
	case KindEntry:
		return "entry"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Attachment records a file copied into managed storage. OriginalName is the
// user-facing file name; StoredName is the collision-free name on disk.
type Attachment struct {
	ID           int64      `json:"id"`
	OriginalName string     `json:"original_name"`
	StoredName   string     `json:"stored_name"`
	Owner        RecordKind `json:"owner"`
	OwnerID      int64      `json:"owner_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TagLink is one row of a tag link table.
type TagLink struct {
	RecordID int64 `json:"record_id"`
	TagID    int64 `json:"tag_id"`
}

// LogRecord is one row of the append-only audit log, written once per
// command by the application layer.
type LogRecord struct {
	ID        int64
	Operation string
	Table     string
	RowID     int64
	Detail    string
	CreatedAt time.Time
}

// EntryDraft carries everything needed to create an entry atomically:
// the entry row, its tag names, and pre-stored attachment name pairs.
type EntryDraft struct {
	NotebookID  int64
	Title       string
	Content     string
	TagNames    []string
	Attachments []AttachmentDraft
}

// NoteDraft is the note counterpart of EntryDraft.
type NoteDraft struct {
	EntryID     int64
	Content     string
	TagNames    []string
	Attachments []AttachmentDraft
}

// AttachmentDraft names a file that has already been copied into the
// attachment store and awaits its database row.
type AttachmentDraft struct {
	OriginalName string
	StoredName   string
}
