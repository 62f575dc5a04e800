package eln

import (
	"fmt"
	"os"
	"path/filepath"

	"eln-go/internal/archive"
)

// Backup snapshots the database and the attachment tree into a timestamped
// zip archive and stores it in the vault. When encrypt is true the archive
// is age-encrypted and stored under a ".age" suffix. Returns the stored
// archive name.
//
// The database is snapshotted with BackupTo rather than copying the live
// file, so the archived copy is consistent even though the handle is open.
func (s *Service) Backup(encrypt bool) (string, error) {
	dbPath := s.database.Path()
	if dbPath == "" || dbPath == ":memory:" {
		return "", fmt.Errorf("database is not file-backed, nothing to back up")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("database file %s: %w", dbPath, ErrNotFound)
	}

	if err := s.vault.ValidateSetup(); err != nil {
		return "", fmt.Errorf("backup destination: %w", err)
	}

	if encrypt && (s.encryptor == nil || !s.encryptor.IsConfigured()) {
		return "", fmt.Errorf("encryption requested but no keys are configured")
	}

	workDir, err := os.MkdirTemp("", "eln-backup-*")
	if err != nil {
		return "", fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Consistent snapshot of the live database.
	snapPath := filepath.Join(workDir, filepath.Base(dbPath))
	if err := s.database.BackupTo(snapPath); err != nil {
		return "", fmt.Errorf("snapshotting database: %w", err)
	}

	zipPath := filepath.Join(workDir, "backup.zip")
	if err := archive.Write(zipPath, snapPath, s.attachments.Dir()); err != nil {
		return "", fmt.Errorf("writing archive: %w", err)
	}

	name := fmt.Sprintf("backup_%s.zip", s.clock.Now().Format("20060102_150405"))
	outPath := zipPath

	if encrypt {
		encPath := zipPath + ".age"
		if err := s.encryptArchive(zipPath, encPath); err != nil {
			return "", err
		}
		name += ".age"
		outPath = encPath
	}

	f, err := os.Open(outPath)
	if err != nil {
		return "", fmt.Errorf("opening archive for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat archive: %w", err)
	}

	if err := s.vault.Put(name, f, info.Size()); err != nil {
		return "", fmt.Errorf("storing archive: %w", err)
	}

	s.logger.Info("backup created", "name", name, "size", info.Size(), "encrypted", encrypt)
	return name, nil
}

// ListBackups returns the archive names held by the vault, newest first.
func (s *Service) ListBackups() ([]string, error) {
	return s.vault.List()
}

func (s *Service) encryptArchive(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening archive for encryption: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating encrypted archive: %w", err)
	}
	defer dest.Close()

	if err := s.encryptor.Encrypt(src, dest); err != nil {
		return fmt.Errorf("encrypting archive: %w", err)
	}
	return dest.Close()
}
