package eln

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Document is the JSON export format. Every entity and relationship present
// in an export is reproduced by import; foreign keys are renumbered through
// old-to-new id maps on the way back in.
type Document struct {
	ExportedAt  string        `json:"exported_at"`
	Notebooks   []*Notebook   `json:"notebooks"`
	Entries     []*Entry      `json:"entries"`
	Notes       []*Note       `json:"notes"`
	Tags        []*Tag        `json:"tags"`
	Attachments []*Attachment `json:"attachments"`
	EntryTags   []*TagLink    `json:"entry_tags"`
	NoteTags    []*TagLink    `json:"note_tags"`
}

// ImportStats counts the rows an import created.
type ImportStats struct {
	Notebooks   int `json:"notebooks"`
	Entries     int `json:"entries"`
	Notes       int `json:"notes"`
	Tags        int `json:"tags"`
	Attachments int `json:"attachments"`
	TagLinks    int `json:"tag_links"`
}

// Export writes every table to a timestamped JSON document in dir and
// returns the file path. The directory is probed for writability before any
// rows are read.
func (s *Service) Export(dir string) (string, error) {
	if err := probeWritable(dir); err != nil {
		return "", fmt.Errorf("export directory: %w", err)
	}

	doc, err := s.snapshot()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export document: %w", err)
	}

	name := fmt.Sprintf("export_%s.json", s.clock.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	s.logger.Info("data exported", "path", path,
		"notebooks", len(doc.Notebooks), "entries", len(doc.Entries), "notes", len(doc.Notes))
	return path, nil
}

// Import reads an export document and re-inserts its records as new rows in
// one transaction. The file is fully parsed before anything is written, so a
// malformed document leaves the database untouched. Attachment rows are only
// re-created when their stored file is present in the attachment directory.
func (s *Service) Import(file string) (*ImportStats, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("import file %s: %w", file, ErrNotFound)
		}
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed import file %s: %w", file, err)
	}

	// Drop attachment rows whose stored files did not travel with the
	// document. The rows reference files, not contain them.
	kept := doc.Attachments[:0]
	for _, a := range doc.Attachments {
		if s.attachments.Exists(a.StoredName) {
			kept = append(kept, a)
		} else {
			s.logger.Warn("skipping attachment with missing file", "stored_name", a.StoredName)
		}
	}
	doc.Attachments = kept

	stats, err := s.database.ImportDocument(&doc)
	if err != nil {
		return nil, fmt.Errorf("importing document: %w", err)
	}

	s.logger.Info("data imported", "path", file,
		"notebooks", stats.Notebooks, "entries", stats.Entries, "notes", stats.Notes)
	return stats, nil
}

// snapshot reads all tables into a Document.
func (s *Service) snapshot() (*Document, error) {
	doc := &Document{ExportedAt: s.clock.Now().Format("2006-01-02 15:04:05")}

	var err error
	if doc.Notebooks, err = s.database.ListNotebooks(); err != nil {
		return nil, fmt.Errorf("reading notebooks: %w", err)
	}
	if doc.Entries, err = s.database.ListEntries(); err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	if doc.Notes, err = s.database.ListNotes(); err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	if doc.Tags, err = s.database.ListTags(); err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	if doc.Attachments, err = s.database.ListAttachments(); err != nil {
		return nil, fmt.Errorf("reading attachments: %w", err)
	}
	if doc.EntryTags, err = s.database.ListTagLinks(KindEntry); err != nil {
		return nil, fmt.Errorf("reading entry tag links: %w", err)
	}
	if doc.NoteTags, err = s.database.ListTagLinks(KindNote); err != nil {
		return nil, fmt.Errorf("reading note tag links: %w", err)
	}

	return doc, nil
}

// probeWritable verifies a directory accepts new files by creating and
// removing a probe file. Permission failures map to ErrNotWritable so the
// command boundary can report them distinctly from other I/O errors.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".eln-probe-*")
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%s: %w", dir, ErrNotWritable)
		}
		return fmt.Errorf("probing %s: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
