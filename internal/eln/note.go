package eln

import "fmt"

// CreateNote creates a note under an existing entry, with the same
// attachment pre-flight and single-transaction guarantees as CreateEntry.
func (s *Service) CreateNote(entryID int64, content string, attachmentPaths, tagNames []string) (*Note, error) {
	if content == "" {
		return nil, fmt.Errorf("note content must not be empty")
	}

	entry, err := s.database.FindEntryByID(entryID)
	if err != nil {
		return nil, fmt.Errorf("finding entry %d: %w", entryID, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %d: %w", entryID, ErrNotFound)
	}

	drafts, cleanup, err := s.storeAttachments(attachmentPaths)
	if err != nil {
		return nil, err
	}

	note, err := s.database.CreateNote(&NoteDraft{
		EntryID:     entry.ID,
		Content:     content,
		TagNames:    tagNames,
		Attachments: drafts,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created", "id", note.ID, "entry", entry.ID)
	return note, nil
}

// ListNotes returns the notes of an entry, newest first.
func (s *Service) ListNotes(entryID int64) ([]*Note, error) {
	return s.database.ListNotesByEntry(entryID)
}
