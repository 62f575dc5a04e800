package eln_test

import "testing"

func TestService_Search(t *testing.T) {
	t.Run("empty query matches nothing", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")
		svc.CreateEntry(nb.ID, "", "Run 1", "anything", nil, nil)

		entries, err := svc.Search("", 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})

	t.Run("matches title and content", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")
		svc.CreateEntry(nb.ID, "", "Calibration", "laser at 532nm", nil, nil)
		svc.CreateEntry(nb.ID, "", "Run 1", "calibration drift observed", nil, nil)
		svc.CreateEntry(nb.ID, "", "Run 2", "unrelated", nil, nil)

		entries, err := svc.Search("calibration", 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("got %d entries, want 2", len(entries))
		}
	})

	t.Run("restricts by tag", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")
		svc.CreateEntry(nb.ID, "", "Run 1", "sample X123", nil, []string{"pcr"})
		svc.CreateEntry(nb.ID, "", "Run 2", "sample X123", nil, []string{"hplc"})

		tag, _ := svc.CreateOrGetTag("pcr", "")
		entries, err := svc.Search("X123", tag.ID)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Title != "Run 1" {
			t.Errorf("entries = %v, want only Run 1", entries)
		}
	})
}
