package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eln-go/internal/database"
	"eln-go/internal/database/migrations"
)

const header = `// Code generated by internal/database/tools/generate_schema.go. DO NOT EDIT.
//
// Regenerate with: go generate ./internal/database

package database

// Schema is the full current schema, extracted from an in-memory database
// after applying all migrations. Tests use it to build databases without
// running the migration machinery.
const Schema = `

func main() {
	db, err := database.OpenConnection(":memory:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	schema, err := extractSchema(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to extract schema: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join("internal", "database", "schema.go")
	content := header + "`" + schema + "`\n"
	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write schema file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s from migrations\n", outPath)
}

// extractSchema queries sqlite_master for all CREATE statements, excluding
// SQLite internal tables and the migration tracking table.
func extractSchema(db *sql.DB) (string, error) {
	query := `
		SELECT sql || ';'
		FROM sqlite_master
		WHERE type IN ('table', 'index')
		  AND name NOT LIKE 'sqlite_%'
		  AND name != 'schema_migrations'
		  AND tbl_name != 'schema_migrations'
		ORDER BY
		  CASE type
		    WHEN 'table' THEN 1
		    WHEN 'index' THEN 2
		  END,
		  rootpage`

	rows, err := db.Query(query)
	if err != nil {
		return "", fmt.Errorf("querying sqlite_master: %w", err)
	}
	defer rows.Close()

	var statements []string
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return "", fmt.Errorf("scanning statement: %w", err)
		}
		statements = append(statements, stmt)
	}

	return strings.Join(statements, "\n"), rows.Err()
}
