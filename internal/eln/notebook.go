package eln

import "fmt"

// CreateNotebook creates a new notebook with the given unique name.
func (s *Service) CreateNotebook(name, description string) (*Notebook, error) {
	if name == "" {
		return nil, fmt.Errorf("notebook name must not be empty")
	}

	nb, err := s.database.CreateNotebook(name, description)
	if err != nil {
		return nil, fmt.Errorf("creating notebook %q: %w", name, err)
	}

	s.logger.Info("notebook created", "id", nb.ID, "name", nb.Name)
	return nb, nil
}

// ListNotebooks returns all notebooks, newest first.
func (s *Service) ListNotebooks() ([]*Notebook, error) {
	return s.database.ListNotebooks()
}

// SetNotebookStatus archives or re-activates a notebook.
func (s *Service) SetNotebookStatus(id int64, status NotebookStatus) error {
	if status != NotebookActive && status != NotebookArchived {
		return fmt.Errorf("invalid notebook status %q", status)
	}

	if err := s.database.UpdateNotebookStatus(id, status); err != nil {
		return fmt.Errorf("updating notebook %d: %w", id, err)
	}

	s.logger.Info("notebook status updated", "id", id, "status", status)
	return nil
}

// resolveNotebook looks a notebook up by id when id > 0, otherwise by name.
func (s *Service) resolveNotebook(id int64, name string) (*Notebook, error) {
	if id > 0 {
		nb, err := s.database.FindNotebookByID(id)
		if err != nil {
			return nil, fmt.Errorf("finding notebook %d: %w", id, err)
		}
		if nb == nil {
			return nil, fmt.Errorf("notebook %d: %w", id, ErrNotFound)
		}
		return nb, nil
	}

	nb, err := s.database.FindNotebookByName(name)
	if err != nil {
		return nil, fmt.Errorf("finding notebook %q: %w", name, err)
	}
	if nb == nil {
		return nil, fmt.Errorf("notebook %q: %w", name, ErrNotFound)
	}
	return nb, nil
}
