package database

import (
	"fmt"

	"eln-go/internal/config"
	"eln-go/internal/eln"
)

// NewDatabaseFromConfig creates a Database based on the configured file path.
// A path of "memory" selects a throwaway in-memory database, useful for tests
// and dry runs.
func NewDatabaseFromConfig(cfg *config.Config) (eln.Database, error) {
	switch cfg.Database.File {
	case "":
		return nil, fmt.Errorf("database.file is not configured")
	case "memory":
		return NewSQLiteDatabase(":memory:")
	default:
		return NewSQLiteDatabase(cfg.Database.File)
	}
}
