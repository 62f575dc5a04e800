// Package archive implements the backup archive format: a zip file holding
// the database file at its base name and the attachment tree under an
// "attachments/" prefix.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AttachmentsPrefix is the directory prefix attachment files carry inside
// the archive.
const AttachmentsPrefix = "attachments/"

// Write creates a zip archive at zipPath containing dbPath stored under its
// base name, and every regular file below attachmentsDir stored under
// AttachmentsPrefix with its path relative to attachmentsDir.
func Write(zipPath, dbPath, attachmentsDir string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	if err := addFile(zw, dbPath, filepath.Base(dbPath)); err != nil {
		zw.Close()
		return fmt.Errorf("archiving database: %w", err)
	}

	err = filepath.WalkDir(attachmentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(attachmentsDir, path)
		if err != nil {
			return err
		}
		return addFile(zw, path, AttachmentsPrefix+filepath.ToSlash(rel))
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("archiving attachments: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}

// Validate fully reads the archive before any extraction happens: the file
// must exist, be a readable zip whose every member decompresses cleanly,
// contain the database member dbName, and contain no member path that would
// escape its extraction root.
func Validate(archivePath, dbName string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup file not found: %s", archivePath)
		}
		return fmt.Errorf("not a valid backup archive: %w", err)
	}
	defer r.Close()

	foundDB := false
	for _, f := range r.File {
		if !safeMemberName(f.Name) {
			return fmt.Errorf("archive member escapes extraction root: %s", f.Name)
		}
		if f.Name == dbName {
			foundDB = true
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("archive member %s unreadable: %w", f.Name, err)
		}
		if _, err := io.Copy(io.Discard, rc); err != nil {
			rc.Close()
			return fmt.Errorf("archive member %s corrupt: %w", f.Name, err)
		}
		rc.Close()
	}

	if !foundDB {
		return fmt.Errorf("archive does not contain database file %s", dbName)
	}
	return nil
}

// Extract writes the database member named filepath.Base(dbDest) to dbDest
// and every AttachmentsPrefix member into attachmentsDir. Callers must run
// Validate first; Extract still refuses unsafe member names.
func Extract(archivePath, dbDest, attachmentsDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	dbName := filepath.Base(dbDest)

	for _, f := range r.File {
		if !safeMemberName(f.Name) {
			return fmt.Errorf("archive member escapes extraction root: %s", f.Name)
		}
		if strings.HasSuffix(f.Name, "/") {
			continue
		}

		var dest string
		switch {
		case f.Name == dbName:
			dest = dbDest
		case strings.HasPrefix(f.Name, AttachmentsPrefix):
			rel := strings.TrimPrefix(f.Name, AttachmentsPrefix)
			dest = filepath.Join(attachmentsDir, filepath.FromSlash(rel))
		default:
			// Unknown members are skipped rather than extracted somewhere
			// surprising.
			continue
		}

		if err := extractFile(f, dest); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeMemberName rejects absolute paths and any path that climbs out of the
// extraction root.
func safeMemberName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	cleaned := filepath.ToSlash(filepath.Clean(name))
	return cleaned != ".." && !strings.HasPrefix(cleaned, "../")
}
