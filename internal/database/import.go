package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eln-go/internal/eln"
)

// ImportDocument inserts every record of doc in one transaction. Notebooks
// and tags are matched by their unique names and reused when already present;
// entries and notes are always inserted as new rows, so an entry title that
// collides inside its (possibly reused) notebook aborts the whole import.
func (s *SQLiteDatabase) ImportDocument(doc *eln.Document) (*eln.ImportStats, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &eln.ImportStats{}
	now := time.Now()

	notebookIDs := make(map[int64]int64, len(doc.Notebooks))
	for _, nb := range doc.Notebooks {
		var existing int64
		err := tx.QueryRow(`SELECT id FROM notebooks WHERE name = ?`, nb.Name).Scan(&existing)
		switch {
		case err == nil:
			notebookIDs[nb.ID] = existing
		case errors.Is(err, sql.ErrNoRows):
			createdAt := nb.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			status := nb.Status
			if status == "" {
				status = eln.NotebookActive
			}
			res, err := tx.Exec(
				`INSERT INTO notebooks (name, description, status, created_at) VALUES (?, ?, ?, ?)`,
				nb.Name, nb.Description, status, createdAt)
			if err != nil {
				return nil, fmt.Errorf("importing notebook %q: %w", nb.Name, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("reading notebook id: %w", err)
			}
			notebookIDs[nb.ID] = id
			stats.Notebooks++
		default:
			return nil, fmt.Errorf("looking up notebook %q: %w", nb.Name, err)
		}
	}

	tagIDs := make(map[int64]int64, len(doc.Tags))
	for _, t := range doc.Tags {
		var existing int64
		err := tx.QueryRow(`SELECT id FROM tags WHERE name = ?`, t.Name).Scan(&existing)
		switch {
		case err == nil:
			tagIDs[t.ID] = existing
		case errors.Is(err, sql.ErrNoRows):
			tag, err := createOrGetTag(tx, t.Name, t.Description)
			if err != nil {
				return nil, err
			}
			tagIDs[t.ID] = tag.ID
			stats.Tags++
		default:
			return nil, fmt.Errorf("looking up tag %q: %w", t.Name, err)
		}
	}

	entryIDs := make(map[int64]int64, len(doc.Entries))
	for _, e := range doc.Entries {
		notebookID, ok := notebookIDs[e.NotebookID]
		if !ok {
			return nil, fmt.Errorf("entry %q references unknown notebook %d", e.Title, e.NotebookID)
		}
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		res, err := tx.Exec(
			`INSERT INTO entries (notebook_id, title, content, created_at) VALUES (?, ?, ?, ?)`,
			notebookID, e.Title, e.Content, createdAt)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("entry %q: %w", e.Title, eln.ErrDuplicate)
			}
			return nil, fmt.Errorf("importing entry %q: %w", e.Title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading entry id: %w", err)
		}
		entryIDs[e.ID] = id
		stats.Entries++
	}

	noteIDs := make(map[int64]int64, len(doc.Notes))
	for _, n := range doc.Notes {
		entryID, ok := entryIDs[n.EntryID]
		if !ok {
			return nil, fmt.Errorf("note %d references unknown entry %d", n.ID, n.EntryID)
		}
		createdAt := n.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		res, err := tx.Exec(
			`INSERT INTO notes (entry_id, content, created_at) VALUES (?, ?, ?)`,
			entryID, n.Content, createdAt)
		if err != nil {
			return nil, fmt.Errorf("importing note: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading note id: %w", err)
		}
		noteIDs[n.ID] = id
		stats.Notes++
	}

	for _, a := range doc.Attachments {
		var entryID, noteID any
		switch a.Owner {
		case eln.KindEntry:
			id, ok := entryIDs[a.OwnerID]
			if !ok {
				return nil, fmt.Errorf("attachment %q references unknown entry %d", a.OriginalName, a.OwnerID)
			}
			entryID = id
		case eln.KindNote:
			id, ok := noteIDs[a.OwnerID]
			if !ok {
				return nil, fmt.Errorf("attachment %q references unknown note %d", a.OriginalName, a.OwnerID)
			}
			noteID = id
		default:
			return nil, fmt.Errorf("attachment %q has unknown owner kind %v", a.OriginalName, a.Owner)
		}

		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		res, err := tx.Exec(
			`INSERT INTO attachments (original_name, stored_name, entry_id, note_id, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(stored_name) DO NOTHING`,
			a.OriginalName, a.StoredName, entryID, noteID, createdAt)
		if err != nil {
			return nil, fmt.Errorf("importing attachment %q: %w", a.OriginalName, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking attachment insert: %w", err)
		}
		stats.Attachments += int(affected)
	}

	for _, l := range doc.EntryTags {
		entryID, ok := entryIDs[l.RecordID]
		if !ok {
			continue
		}
		tagID, ok := tagIDs[l.TagID]
		if !ok {
			continue
		}
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO entry_tags (entry_id, tag_id) VALUES (?, ?)`, entryID, tagID)
		if err != nil {
			return nil, fmt.Errorf("importing entry tag link: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking link insert: %w", err)
		}
		stats.TagLinks += int(affected)
	}

	for _, l := range doc.NoteTags {
		noteID, ok := noteIDs[l.RecordID]
		if !ok {
			continue
		}
		tagID, ok := tagIDs[l.TagID]
		if !ok {
			continue
		}
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`, noteID, tagID)
		if err != nil {
			return nil, fmt.Errorf("importing note tag link: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("checking link insert: %w", err)
		}
		stats.TagLinks += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return stats, nil
}
