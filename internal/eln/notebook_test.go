package eln_test

import (
	"errors"
	"testing"

	"eln-go/internal/eln"
)

func TestService_CreateNotebook(t *testing.T) {
	t.Run("creates notebook", func(t *testing.T) {
		svc, _ := newTestService(t)

		nb, err := svc.CreateNotebook("Lab A", "bench experiments")
		if err != nil {
			t.Fatalf("CreateNotebook() error = %v", err)
		}
		if nb.Name != "Lab A" || nb.Status != eln.NotebookActive {
			t.Errorf("notebook = %+v, want active Lab A", nb)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newTestService(t)

		if _, err := svc.CreateNotebook("", ""); err == nil {
			t.Error("CreateNotebook() expected error for empty name")
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		svc, _ := newTestService(t)

		svc.CreateNotebook("Lab A", "")
		_, err := svc.CreateNotebook("Lab A", "")
		if !errors.Is(err, eln.ErrDuplicate) {
			t.Errorf("CreateNotebook() error = %v, want ErrDuplicate", err)
		}
	})
}

func TestService_SetNotebookStatus(t *testing.T) {
	t.Run("archives and reactivates", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")

		if err := svc.SetNotebookStatus(nb.ID, eln.NotebookArchived); err != nil {
			t.Fatalf("SetNotebookStatus(archived) error = %v", err)
		}

		notebooks, _ := svc.ListNotebooks()
		if len(notebooks) != 1 || notebooks[0].Status != eln.NotebookArchived {
			t.Errorf("notebooks = %+v, want one archived", notebooks)
		}

		if err := svc.SetNotebookStatus(nb.ID, eln.NotebookActive); err != nil {
			t.Fatalf("SetNotebookStatus(active) error = %v", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")

		if err := svc.SetNotebookStatus(nb.ID, "frozen"); err == nil {
			t.Error("SetNotebookStatus() expected error for unknown status")
		}
	})

	t.Run("reports missing notebook", func(t *testing.T) {
		svc, _ := newTestService(t)

		err := svc.SetNotebookStatus(999, eln.NotebookArchived)
		if !errors.Is(err, eln.ErrNotFound) {
			t.Errorf("SetNotebookStatus() error = %v, want ErrNotFound", err)
		}
	})
}
