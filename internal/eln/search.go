package eln

// Search returns entries whose title or content contains the query,
// case-insensitively, newest first. tagID > 0 restricts the result to
// entries carrying that tag. An empty query matches nothing.
func (s *Service) Search(query string, tagID int64) ([]*Entry, error) {
	if query == "" {
		return nil, nil
	}
	return s.database.SearchEntries(query, tagID)
}
