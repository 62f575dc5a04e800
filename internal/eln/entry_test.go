package eln_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eln-go/internal/eln"
	"eln-go/internal/testutil"
)

func TestService_CreateEntry(t *testing.T) {
	t.Run("creates entry with tags and attachments", func(t *testing.T) {
		svc, parts := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")

		src := testutil.WriteSourceFile(t, "gel.png", "image bytes")

		entry, err := svc.CreateEntry(nb.ID, "", "Run 1", "baseline", []string{src}, []string{"pcr"})
		if err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}

		tags, _ := svc.TagsFor(eln.KindEntry, entry.ID)
		if len(tags) != 1 || tags[0].Name != "pcr" {
			t.Errorf("tags = %v, want [pcr]", tags)
		}

		attachments, _ := parts.db.ListAttachmentsByOwner(eln.KindEntry, entry.ID)
		if len(attachments) != 1 {
			t.Fatalf("got %d attachments, want 1", len(attachments))
		}
		if attachments[0].OriginalName != "gel.png" {
			t.Errorf("OriginalName = %q, want gel.png", attachments[0].OriginalName)
		}
		if !parts.store.Exists(attachments[0].StoredName) {
			t.Error("stored attachment file is missing")
		}
	})

	t.Run("resolves notebook by name", func(t *testing.T) {
		svc, _ := newTestService(t)
		svc.CreateNotebook("Lab A", "")

		entry, err := svc.CreateEntry(0, "Lab A", "Run 1", "", nil, nil)
		if err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}
		if entry.ID == 0 {
			t.Error("entry was not created")
		}
	})

	t.Run("reports missing notebook", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.CreateEntry(0, "nope", "Run 1", "", nil, nil)
		if !errors.Is(err, eln.ErrNotFound) {
			t.Errorf("CreateEntry() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects archived notebook", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")
		svc.SetNotebookStatus(nb.ID, eln.NotebookArchived)

		_, err := svc.CreateEntry(nb.ID, "", "Run 1", "", nil, nil)
		if !errors.Is(err, eln.ErrNotebookArchived) {
			t.Errorf("CreateEntry() error = %v, want ErrNotebookArchived", err)
		}
	})

	t.Run("missing attachment source creates nothing", func(t *testing.T) {
		svc, parts := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")

		_, err := svc.CreateEntry(nb.ID, "", "Run 1", "",
			[]string{"/nonexistent/file.txt"}, []string{"pcr"})
		if !errors.Is(err, eln.ErrNotFound) {
			t.Fatalf("CreateEntry() error = %v, want ErrNotFound", err)
		}

		entry, _ := parts.db.FindEntryByTitle(nb.ID, "Run 1")
		if entry != nil {
			t.Error("entry must not exist after attachment pre-flight failure")
		}
		tag, _ := parts.db.FindTagByName("pcr")
		if tag != nil {
			t.Error("tag must not exist after attachment pre-flight failure")
		}
	})

	t.Run("failed insert removes copied attachment files", func(t *testing.T) {
		svc, parts := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")
		svc.CreateEntry(nb.ID, "", "Run 1", "", nil, nil)

		src := testutil.WriteSourceFile(t, "gel.png", "image bytes")

		// Duplicate title: the database insert fails after the file was copied.
		_, err := svc.CreateEntry(nb.ID, "", "Run 1", "", []string{src}, nil)
		if !errors.Is(err, eln.ErrDuplicate) {
			t.Fatalf("CreateEntry() error = %v, want ErrDuplicate", err)
		}

		files, readErr := os.ReadDir(parts.store.Dir())
		if readErr != nil {
			t.Fatalf("reading attachment dir: %v", readErr)
		}
		if len(files) != 0 {
			names := make([]string, len(files))
			for i, f := range files {
				names[i] = filepath.Join(parts.store.Dir(), f.Name())
			}
			t.Errorf("orphaned attachment files left behind: %v", names)
		}
	})
}

func TestService_GetEntryByTitle(t *testing.T) {
	svc, _ := newTestService(t)
	nb, _ := svc.CreateNotebook("Lab A", "")
	svc.CreateEntry(nb.ID, "", "Run 1", "", nil, nil)

	entry, err := svc.GetEntryByTitle(nb.ID, "Run 1")
	if err != nil {
		t.Fatalf("GetEntryByTitle() error = %v", err)
	}
	if entry.Title != "Run 1" {
		t.Errorf("Title = %q, want Run 1", entry.Title)
	}

	_, err = svc.GetEntryByTitle(nb.ID, "Run 2")
	if !errors.Is(err, eln.ErrNotFound) {
		t.Errorf("GetEntryByTitle() error = %v, want ErrNotFound", err)
	}
}
