package eln

import "fmt"

// CreateOrGetTag returns the tag with the given name, creating it if needed.
func (s *Service) CreateOrGetTag(name, description string) (*Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("tag name must not be empty")
	}
	return s.database.CreateOrGetTag(name, description)
}

// ListTags returns all tags ordered by name.
func (s *Service) ListTags() ([]*Tag, error) {
	return s.database.ListTags()
}

// TagsFor returns the tags of an entry or note.
func (s *Service) TagsFor(kind RecordKind, recordID int64) ([]*Tag, error) {
	return s.database.TagsForRecord(kind, recordID)
}

// MergeTags consolidates the given tags into one named newName. The merge is
// atomic: every entry and note holding any of the old tags ends up with
// exactly one link to the merged tag, and the old tags cease to exist.
func (s *Service) MergeTags(oldIDs []int64, newName string) (*Tag, error) {
	if len(oldIDs) == 0 {
		return nil, fmt.Errorf("no tags given to merge")
	}
	if newName == "" {
		return nil, fmt.Errorf("merged tag name must not be empty")
	}

	tag, err := s.database.MergeTags(oldIDs, newName)
	if err != nil {
		return nil, fmt.Errorf("merging tags into %q: %w", newName, err)
	}

	s.logger.Info("tags merged", "old_ids", oldIDs, "new_tag", tag.Name)
	return tag, nil
}

// DeleteTag removes a tag and every association it holds.
func (s *Service) DeleteTag(id int64) error {
	if err := s.database.DeleteTag(id); err != nil {
		return fmt.Errorf("deleting tag %d: %w", id, err)
	}
	s.logger.Info("tag deleted", "id", id)
	return nil
}
