package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eln-go/internal/archive"
	"eln-go/internal/database"
	"eln-go/internal/eln"
)

// Restore replaces the live database and attachment tree with the contents
// of a stored backup archive. The archive is fetched from the vault, decrypted
// when it carries the ".age" suffix, and fully validated before the current
// database is touched. passphrase is only consulted for encrypted archives.
func (a *App) Restore(name, passphrase string) error {
	workDir, err := os.MkdirTemp("", "eln-restore-*")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	fetched := filepath.Join(workDir, name)
	if err := a.fetchArchive(name, fetched); err != nil {
		return err
	}

	zipPath := fetched
	if strings.HasSuffix(name, ".age") {
		plainPath := strings.TrimSuffix(fetched, ".age")
		if err := a.decryptArchive(fetched, plainPath, passphrase); err != nil {
			return err
		}
		zipPath = plainPath
	}

	dbName := filepath.Base(a.cfg.Database.File)
	if err := archive.Validate(zipPath, dbName); err != nil {
		return err
	}

	// The archive is sound. Release the live database before overwriting it.
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("closing database before restore: %w", err)
	}

	if err := archive.Extract(zipPath, a.cfg.Database.File, a.cfg.Attachments.Dir); err != nil {
		return fmt.Errorf("extracting backup: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(a.cfg)
	if err != nil {
		return fmt.Errorf("reopening restored database: %w", err)
	}
	a.db = db
	a.service = eln.NewService(db, a.store, a.vault, a.encryptor, a.logger, eln.RealClock{}, eln.UUIDGenerator{})

	a.audit("", 0, name)
	a.logger.Info("backup restored", "name", name)
	return nil
}

// fetchArchive streams the named archive from the vault into destPath.
func (a *App) fetchArchive(name, destPath string) error {
	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	defer f.Close()

	if err := a.vault.Get(name, f); err != nil {
		return err
	}
	return f.Close()
}

// decryptArchive unlocks the private key and decrypts srcPath into destPath.
func (a *App) decryptArchive(srcPath, destPath, passphrase string) error {
	ctx, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening encrypted archive: %w", err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating decrypted archive: %w", err)
	}
	defer dest.Close()

	if err := ctx.Decrypt(src, dest); err != nil {
		return fmt.Errorf("decrypting archive: %w", err)
	}
	return dest.Close()
}
