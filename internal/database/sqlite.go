package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"eln-go/internal/database/migrations"
	"eln-go/internal/eln"
)

// SQLiteDatabase implements the eln.Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase opens (creating and migrating if necessary) a SQLite
// database at path. path can be a file path or ":memory:".
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. Exported for tools and tests that need a properly
// configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Notebook operations

func (s *SQLiteDatabase) CreateNotebook(name, description string) (*eln.Notebook, error) {
	now := time.Now()
	res, err := s.db.Exec(
		`INSERT INTO notebooks (name, description, status, created_at) VALUES (?, ?, ?, ?)`,
		name, description, eln.NotebookActive, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("notebook %q: %w", name, eln.ErrDuplicate)
		}
		return nil, fmt.Errorf("inserting notebook: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading notebook id: %w", err)
	}

	return &eln.Notebook{
		ID:          id,
		Name:        name,
		Description: description,
		Status:      eln.NotebookActive,
		CreatedAt:   now,
	}, nil
}

func (s *SQLiteDatabase) FindNotebookByID(id int64) (*eln.Notebook, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, status, created_at FROM notebooks WHERE id = ?`, id)
	return scanNotebook(row)
}

func (s *SQLiteDatabase) FindNotebookByName(name string) (*eln.Notebook, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, status, created_at FROM notebooks WHERE name = ?`, name)
	return scanNotebook(row)
}

func (s *SQLiteDatabase) ListNotebooks() ([]*eln.Notebook, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, status, created_at FROM notebooks ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}
	defer rows.Close()

	var notebooks []*eln.Notebook
	for rows.Next() {
		var nb eln.Notebook
		if err := rows.Scan(&nb.ID, &nb.Name, &nb.Description, &nb.Status, &nb.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notebook: %w", err)
		}
		notebooks = append(notebooks, &nb)
	}
	return notebooks, rows.Err()
}

func (s *SQLiteDatabase) UpdateNotebookStatus(id int64, status eln.NotebookStatus) error {
	res, err := s.db.Exec(`UPDATE notebooks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating notebook status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notebook %d: %w", id, eln.ErrNotFound)
	}
	return nil
}

// Entry operations

func (s *SQLiteDatabase) CreateEntry(draft *eln.EntryDraft) (*eln.Entry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(
		`INSERT INTO entries (notebook_id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		draft.NotebookID, draft.Title, draft.Content, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("entry %q: %w", draft.Title, eln.ErrDuplicate)
		}
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	entryID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading entry id: %w", err)
	}

	for _, name := range draft.TagNames {
		tag, err := createOrGetTag(tx, name, "")
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`, entryID, tag.ID); err != nil {
			return nil, fmt.Errorf("linking tag %q: %w", name, err)
		}
	}

	for _, a := range draft.Attachments {
		if _, err := tx.Exec(
			`INSERT INTO attachments (original_name, stored_name, entry_id, created_at) VALUES (?, ?, ?, ?)`,
			a.OriginalName, a.StoredName, entryID, now); err != nil {
			return nil, fmt.Errorf("inserting attachment %q: %w", a.OriginalName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &eln.Entry{
		ID:         entryID,
		NotebookID: draft.NotebookID,
		Title:      draft.Title,
		Content:    draft.Content,
		CreatedAt:  now,
	}, nil
}

func (s *SQLiteDatabase) FindEntryByID(id int64) (*eln.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, notebook_id, title, content, created_at FROM entries WHERE id = ?`, id)
	return scanEntry(row)
}

func (s *SQLiteDatabase) FindEntryByTitle(notebookID int64, title string) (*eln.Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, notebook_id, title, content, created_at FROM entries WHERE notebook_id = ? AND title = ?`,
		notebookID, title)
	return scanEntry(row)
}

func (s *SQLiteDatabase) ListEntries() ([]*eln.Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, notebook_id, title, content, created_at FROM entries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Note operations

func (s *SQLiteDatabase) CreateNote(draft *eln.NoteDraft) (*eln.Note, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(
		`INSERT INTO notes (entry_id, content, created_at) VALUES (?, ?, ?)`,
		draft.EntryID, draft.Content, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}

	noteID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading note id: %w", err)
	}

	for _, name := range draft.TagNames {
		tag, err := createOrGetTag(tx, name, "")
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tag.ID); err != nil {
			return nil, fmt.Errorf("linking tag %q: %w", name, err)
		}
	}

	for _, a := range draft.Attachments {
		if _, err := tx.Exec(
			`INSERT INTO attachments (original_name, stored_name, note_id, created_at) VALUES (?, ?, ?, ?)`,
			a.OriginalName, a.StoredName, noteID, now); err != nil {
			return nil, fmt.Errorf("inserting attachment %q: %w", a.OriginalName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &eln.Note{
		ID:        noteID,
		EntryID:   draft.EntryID,
		Content:   draft.Content,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteDatabase) ListNotesByEntry(entryID int64) ([]*eln.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, entry_id, content, created_at FROM notes WHERE entry_id = ? ORDER BY created_at DESC, id DESC`,
		entryID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

func (s *SQLiteDatabase) ListNotes() ([]*eln.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, entry_id, content, created_at FROM notes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()
	return collectNotes(rows)
}

// Tag operations

func (s *SQLiteDatabase) CreateOrGetTag(name, description string) (*eln.Tag, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	tag, err := createOrGetTag(tx, name, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return tag, nil
}

func (s *SQLiteDatabase) FindTagByName(name string) (*eln.Tag, error) {
	row := s.db.QueryRow(`SELECT id, name, description FROM tags WHERE name = ?`, name)
	var tag eln.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding tag by name: %w", err)
	}
	return &tag, nil
}

func (s *SQLiteDatabase) ListTags() ([]*eln.Tag, error) {
	rows, err := s.db.Query(`SELECT id, name, description FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func (s *SQLiteDatabase) TagRecord(kind eln.RecordKind, recordID, tagID int64) error {
	// Static statements per kind; link tables are never named from input.
	var stmt string
	switch kind {
	case eln.KindEntry:
		stmt = `INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`
	case eln.KindNote:
		stmt = `INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`
	default:
		return fmt.Errorf("unknown record kind %v", kind)
	}

	if _, err := s.db.Exec(stmt, recordID, tagID); err != nil {
		return fmt.Errorf("tagging %s %d: %w", kind, recordID, err)
	}
	return nil
}

func (s *SQLiteDatabase) TagsForRecord(kind eln.RecordKind, recordID int64) ([]*eln.Tag, error) {
	var stmt string
	switch kind {
	case eln.KindEntry:
		stmt = `SELECT t.id, t.name, t.description FROM tags t
			JOIN entry_tags et ON et.tag_id = t.id WHERE et.entry_id = ? ORDER BY t.name`
	case eln.KindNote:
		stmt = `SELECT t.id, t.name, t.description FROM tags t
			JOIN note_tags nt ON nt.tag_id = t.id WHERE nt.note_id = ? ORDER BY t.name`
	default:
		return nil, fmt.Errorf("unknown record kind %v", kind)
	}

	rows, err := s.db.Query(stmt, recordID)
	if err != nil {
		return nil, fmt.Errorf("listing tags for %s %d: %w", kind, recordID, err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func (s *SQLiteDatabase) ListTagLinks(kind eln.RecordKind) ([]*eln.TagLink, error) {
	var stmt string
	switch kind {
	case eln.KindEntry:
		stmt = `SELECT entry_id, tag_id FROM entry_tags ORDER BY entry_id, tag_id`
	case eln.KindNote:
		stmt = `SELECT note_id, tag_id FROM note_tags ORDER BY note_id, tag_id`
	default:
		return nil, fmt.Errorf("unknown record kind %v", kind)
	}

	rows, err := s.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("listing tag links: %w", err)
	}
	defer rows.Close()

	var links []*eln.TagLink
	for rows.Next() {
		var l eln.TagLink
		if err := rows.Scan(&l.RecordID, &l.TagID); err != nil {
			return nil, fmt.Errorf("scanning tag link: %w", err)
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}

func (s *SQLiteDatabase) MergeTags(oldIDs []int64, newName string) (*eln.Tag, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	target, err := createOrGetTag(tx, newName, "")
	if err != nil {
		return nil, err
	}

	// The target must survive even when its id was listed for merging.
	ids := make([]int64, 0, len(oldIDs))
	for _, id := range oldIDs {
		if id != target.ID {
			ids = append(ids, id)
		}
	}

	if len(ids) > 0 {
		in, args := inClause(ids)

		// Re-link every entry and note holding any old tag, deduplicated by
		// the link tables' primary keys.
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id)
			 SELECT DISTINCT entry_id, ? FROM entry_tags WHERE tag_id IN `+in,
			append([]any{target.ID}, args...)...); err != nil {
			return nil, fmt.Errorf("reassigning entry tags: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id)
			 SELECT DISTINCT note_id, ? FROM note_tags WHERE tag_id IN `+in,
			append([]any{target.ID}, args...)...); err != nil {
			return nil, fmt.Errorf("reassigning note tags: %w", err)
		}

		if _, err := tx.Exec(`DELETE FROM entry_tags WHERE tag_id IN `+in, args...); err != nil {
			return nil, fmt.Errorf("deleting old entry links: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM note_tags WHERE tag_id IN `+in, args...); err != nil {
			return nil, fmt.Errorf("deleting old note links: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM tags WHERE id IN `+in, args...); err != nil {
			return nil, fmt.Errorf("deleting old tags: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return target, nil
}

func (s *SQLiteDatabase) DeleteTag(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entry_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("deleting entry links: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM note_tags WHERE tag_id = ?`, id); err != nil {
		return fmt.Errorf("deleting note links: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Attachment operations

func (s *SQLiteDatabase) ListAttachmentsByOwner(kind eln.RecordKind, recordID int64) ([]*eln.Attachment, error) {
	var stmt string
	switch kind {
	case eln.KindEntry:
		stmt = `SELECT id, original_name, stored_name, entry_id, note_id, created_at
			FROM attachments WHERE entry_id = ? ORDER BY id`
	case eln.KindNote:
		stmt = `SELECT id, original_name, stored_name, entry_id, note_id, created_at
			FROM attachments WHERE note_id = ? ORDER BY id`
	default:
		return nil, fmt.Errorf("unknown record kind %v", kind)
	}

	rows, err := s.db.Query(stmt, recordID)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()
	return collectAttachments(rows)
}

func (s *SQLiteDatabase) ListAttachments() ([]*eln.Attachment, error) {
	rows, err := s.db.Query(
		`SELECT id, original_name, stored_name, entry_id, note_id, created_at FROM attachments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	defer rows.Close()
	return collectAttachments(rows)
}

// Search

func (s *SQLiteDatabase) SearchEntries(query string, tagID int64) ([]*eln.Entry, error) {
	pattern := "%" + escapeLike(query) + "%"

	stmt := `SELECT e.id, e.notebook_id, e.title, e.content, e.created_at
		FROM entries e
		WHERE (e.title LIKE ? ESCAPE '\' OR e.content LIKE ? ESCAPE '\')`
	args := []any{pattern, pattern}

	if tagID > 0 {
		stmt += ` AND e.id IN (SELECT entry_id FROM entry_tags WHERE tag_id = ?)`
		args = append(args, tagID)
	}
	stmt += ` ORDER BY e.created_at DESC, e.id DESC`

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Audit log

func (s *SQLiteDatabase) AppendLog(rec *eln.LogRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO logs (operation, table_name, row_id, detail, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Operation, rec.Table, rec.RowID, rec.Detail, time.Now())
	if err != nil {
		return fmt.Errorf("appending log: %w", err)
	}
	return nil
}

// CountLogs returns the number of audit rows. The logs table is append-only
// and has no read path in the Database interface; this is for inspection and
// tests.
func (s *SQLiteDatabase) CountLogs() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting logs: %w", err)
	}
	return count, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.Check(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// helpers

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// createOrGetTag resolves a tag by name inside the given transaction,
// inserting it first when absent. The description only applies on create.
func createOrGetTag(q execer, name, description string) (*eln.Tag, error) {
	if _, err := q.Exec(
		`INSERT INTO tags (name, description) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		name, description); err != nil {
		return nil, fmt.Errorf("inserting tag %q: %w", name, err)
	}

	var tag eln.Tag
	row := q.QueryRow(`SELECT id, name, description FROM tags WHERE name = ?`, name)
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Description); err != nil {
		return nil, fmt.Errorf("reading tag %q: %w", name, err)
	}
	return &tag, nil
}

func scanNotebook(row *sql.Row) (*eln.Notebook, error) {
	var nb eln.Notebook
	if err := row.Scan(&nb.ID, &nb.Name, &nb.Description, &nb.Status, &nb.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("scanning notebook: %w", err)
	}
	return &nb, nil
}

func scanEntry(row *sql.Row) (*eln.Entry, error) {
	var e eln.Entry
	if err := row.Scan(&e.ID, &e.NotebookID, &e.Title, &e.Content, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return &e, nil
}

func collectEntries(rows *sql.Rows) ([]*eln.Entry, error) {
	var entries []*eln.Entry
	for rows.Next() {
		var e eln.Entry
		if err := rows.Scan(&e.ID, &e.NotebookID, &e.Title, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func collectNotes(rows *sql.Rows) ([]*eln.Note, error) {
	var notes []*eln.Note
	for rows.Next() {
		var n eln.Note
		if err := rows.Scan(&n.ID, &n.EntryID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

func collectTags(rows *sql.Rows) ([]*eln.Tag, error) {
	var tags []*eln.Tag
	for rows.Next() {
		var t eln.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

func collectAttachments(rows *sql.Rows) ([]*eln.Attachment, error) {
	var attachments []*eln.Attachment
	for rows.Next() {
		var (
			a       eln.Attachment
			entryID sql.NullInt64
			noteID  sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.OriginalName, &a.StoredName, &entryID, &noteID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}
		if noteID.Valid {
			a.Owner = eln.KindNote
			a.OwnerID = noteID.Int64
		} else {
			a.Owner = eln.KindEntry
			a.OwnerID = entryID.Int64
		}
		attachments = append(attachments, &a)
	}
	return attachments, rows.Err()
}

// inClause builds a parameterized IN clause for the given ids.
func inClause(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return "(" + strings.Join(placeholders, ", ") + ")", args
}

// escapeLike escapes LIKE metacharacters so queries match them literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// isUniqueViolation reports whether err is a SQLite unique or primary key
// constraint failure.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// Compile-time check that SQLiteDatabase implements eln.Database interface
var _ eln.Database = (*SQLiteDatabase)(nil)
