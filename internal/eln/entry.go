package eln

import (
	"fmt"
	"path/filepath"
)

// CreateEntry creates an entry in a notebook, identified by id or name.
// All attachment sources are verified before anything is written; the entry
// row, its tag links, and its attachment rows land in one transaction, so a
// failure leaves no partial insert behind.
func (s *Service) CreateEntry(notebookID int64, notebookName, title, content string, attachmentPaths, tagNames []string) (*Entry, error) {
	if title == "" {
		return nil, fmt.Errorf("entry title must not be empty")
	}

	nb, err := s.resolveNotebook(notebookID, notebookName)
	if err != nil {
		return nil, err
	}
	if nb.Status == NotebookArchived {
		return nil, fmt.Errorf("notebook %q: %w", nb.Name, ErrNotebookArchived)
	}

	drafts, cleanup, err := s.storeAttachments(attachmentPaths)
	if err != nil {
		return nil, err
	}

	entry, err := s.database.CreateEntry(&EntryDraft{
		NotebookID:  nb.ID,
		Title:       title,
		Content:     content,
		TagNames:    tagNames,
		Attachments: drafts,
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("creating entry %q: %w", title, err)
	}

	s.logger.Info("entry created", "id", entry.ID, "notebook", nb.Name, "title", title)
	return entry, nil
}

// GetEntryByTitle returns the entry with the given title in a notebook,
// or ErrNotFound.
func (s *Service) GetEntryByTitle(notebookID int64, title string) (*Entry, error) {
	entry, err := s.database.FindEntryByTitle(notebookID, title)
	if err != nil {
		return nil, fmt.Errorf("finding entry %q: %w", title, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("entry %q: %w", title, ErrNotFound)
	}
	return entry, nil
}

// ListEntries returns all entries, newest first.
func (s *Service) ListEntries() ([]*Entry, error) {
	return s.database.ListEntries()
}

// storeAttachments verifies every source path, then copies each file into
// the attachment store. The returned cleanup removes all copied files and is
// called by the owner when the surrounding database write fails.
func (s *Service) storeAttachments(paths []string) ([]AttachmentDraft, func(), error) {
	// Pre-flight: reject the whole operation before any file is copied
	// or any row inserted.
	for _, p := range paths {
		if !s.attachments.SourceExists(p) {
			return nil, nil, fmt.Errorf("attachment %s: %w", p, ErrNotFound)
		}
	}

	var drafts []AttachmentDraft
	cleanup := func() {
		for _, d := range drafts {
			if err := s.attachments.Remove(d.StoredName); err != nil {
				s.logger.Warn("removing orphaned attachment", "stored_name", d.StoredName, "error", err)
			}
		}
	}

	for _, p := range paths {
		stored, err := s.attachments.Store(p)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("storing attachment %s: %w", p, err)
		}
		drafts = append(drafts, AttachmentDraft{
			OriginalName: filepath.Base(p),
			StoredName:   stored,
		})
	}

	return drafts, cleanup, nil
}
