package eln_test

import (
	"testing"

	"eln-go/internal/eln"
)

func TestService_MergeTags(t *testing.T) {
	names := func(tags []*eln.Tag) []string {
		out := make([]string, len(tags))
		for i, tag := range tags {
			out[i] = tag.Name
		}
		return out
	}

	t.Run("merges overlapping tags across entries", func(t *testing.T) {
		svc, _ := newTestService(t)
		nb, _ := svc.CreateNotebook("Lab A", "")

		e1, _ := svc.CreateEntry(nb.ID, "", "Run 1", "", nil, []string{"a", "b"})
		e2, _ := svc.CreateEntry(nb.ID, "", "Run 2", "", nil, []string{"b", "c"})

		tagA, _ := svc.CreateOrGetTag("a", "")
		tagB, _ := svc.CreateOrGetTag("b", "")

		merged, err := svc.MergeTags([]int64{tagA.ID, tagB.ID}, "m")
		if err != nil {
			t.Fatalf("MergeTags() error = %v", err)
		}
		if merged.Name != "m" {
			t.Errorf("merged tag = %q, want m", merged.Name)
		}

		got1, _ := svc.TagsFor(eln.KindEntry, e1.ID)
		if n := names(got1); len(n) != 1 || n[0] != "m" {
			t.Errorf("entry 1 tags = %v, want [m]", n)
		}

		got2, _ := svc.TagsFor(eln.KindEntry, e2.ID)
		if n := names(got2); len(n) != 2 || n[0] != "c" || n[1] != "m" {
			t.Errorf("entry 2 tags = %v, want [c m]", n)
		}

		all, _ := svc.ListTags()
		if n := names(all); len(n) != 2 || n[0] != "c" || n[1] != "m" {
			t.Errorf("remaining tags = %v, want [c m]", n)
		}
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		svc, _ := newTestService(t)

		if _, err := svc.MergeTags(nil, "m"); err == nil {
			t.Error("MergeTags() expected error for empty tag list")
		}
		if _, err := svc.MergeTags([]int64{1}, ""); err == nil {
			t.Error("MergeTags() expected error for empty target name")
		}
	})
}

func TestService_CreateOrGetTag(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateOrGetTag("pcr", "")
	if err != nil {
		t.Fatalf("CreateOrGetTag() error = %v", err)
	}
	second, err := svc.CreateOrGetTag("pcr", "")
	if err != nil {
		t.Fatalf("CreateOrGetTag() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("tag ids differ: %d vs %d", first.ID, second.ID)
	}

	if _, err := svc.CreateOrGetTag("", ""); err == nil {
		t.Error("CreateOrGetTag() expected error for empty name")
	}
}

func TestService_DeleteTag(t *testing.T) {
	svc, _ := newTestService(t)
	nb, _ := svc.CreateNotebook("Lab A", "")
	entry, _ := svc.CreateEntry(nb.ID, "", "Run 1", "", nil, []string{"gone"})

	tag, _ := svc.CreateOrGetTag("gone", "")
	if err := svc.DeleteTag(tag.ID); err != nil {
		t.Fatalf("DeleteTag() error = %v", err)
	}

	tags, _ := svc.TagsFor(eln.KindEntry, entry.ID)
	if len(tags) != 0 {
		t.Errorf("entry still tagged: %v", tags)
	}
}
