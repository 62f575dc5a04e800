package app

import (
	"fmt"
	"os"
	"time"

	"eln-go/internal/attachment"
	"eln-go/internal/config"
	"eln-go/internal/database"
	"eln-go/internal/eln"
	"eln-go/internal/encryption"
	"eln-go/internal/vault"
)

// App is the application layer between the CLI and the Service. It constructs
// all dependencies from config, exposes the command-level operations, writes
// one audit row per mutating command, and manages the DB lifecycle on Close.
type App struct {
	cfg       *config.Config
	db        eln.Database
	store     eln.AttachmentStore
	vault     eln.Vault
	encryptor eln.Encryptor
	service   *eln.Service
	logger    eln.Logger
	operation string
	logFile   *os.File
}

// NewApp creates a fully wired App from the given config. operation
// identifies the CLI command being run (e.g. "create-entry", "backup").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := attachment.NewFileStore(cfg.Attachments.Dir, eln.UUIDGenerator{})
	if err != nil {
		return nil, fmt.Errorf("creating attachment store: %w", err)
	}

	v, err := vault.NewVaultFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating vault: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.Log.Dir, opID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	svc := eln.NewService(db, store, v, enc, adapter, eln.RealClock{}, eln.UUIDGenerator{})

	return &App{
		cfg:       cfg,
		db:        db,
		store:     store,
		vault:     v,
		encryptor: enc,
		service:   svc,
		logger:    adapter,
		operation: operation,
		logFile:   logFile,
	}, nil
}

// audit appends one row to the logs table. Mutating commands record what
// they touched; read-only commands record nothing.
func (a *App) audit(table string, rowID int64, detail string) {
	_ = a.db.AppendLog(&eln.LogRecord{
		Operation: a.operation,
		Table:     table,
		RowID:     rowID,
		Detail:    detail,
	})
}

// CreateNotebook creates a notebook with a unique name.
func (a *App) CreateNotebook(name, description string) (*eln.Notebook, error) {
	nb, err := a.service.CreateNotebook(name, description)
	if err != nil {
		return nil, err
	}
	a.audit("notebooks", nb.ID, nb.Name)
	return nb, nil
}

// ListNotebooks returns all notebooks, newest first.
func (a *App) ListNotebooks() ([]*eln.Notebook, error) {
	return a.service.ListNotebooks()
}

// ArchiveNotebook blocks further entry creation in a notebook.
func (a *App) ArchiveNotebook(id int64) error {
	if err := a.service.SetNotebookStatus(id, eln.NotebookArchived); err != nil {
		return err
	}
	a.audit("notebooks", id, string(eln.NotebookArchived))
	return nil
}

// ActivateNotebook re-opens an archived notebook.
func (a *App) ActivateNotebook(id int64) error {
	if err := a.service.SetNotebookStatus(id, eln.NotebookActive); err != nil {
		return err
	}
	a.audit("notebooks", id, string(eln.NotebookActive))
	return nil
}

// CreateEntry creates an entry in the notebook named by id or name.
func (a *App) CreateEntry(notebookID int64, notebookName, title, content string, attachments, tags []string) (*eln.Entry, error) {
	entry, err := a.service.CreateEntry(notebookID, notebookName, title, content, attachments, tags)
	if err != nil {
		return nil, err
	}
	a.audit("entries", entry.ID, entry.Title)
	return entry, nil
}

// ListEntries returns all entries, newest first.
func (a *App) ListEntries() ([]*eln.Entry, error) {
	return a.service.ListEntries()
}

// CreateNote adds a note under an existing entry.
func (a *App) CreateNote(entryID int64, content string, attachments, tags []string) (*eln.Note, error) {
	note, err := a.service.CreateNote(entryID, content, attachments, tags)
	if err != nil {
		return nil, err
	}
	a.audit("notes", note.ID, "")
	return note, nil
}

// ListNotes returns the notes of an entry, newest first.
func (a *App) ListNotes(entryID int64) ([]*eln.Note, error) {
	return a.service.ListNotes(entryID)
}

// ListTags returns all tags ordered by name.
func (a *App) ListTags() ([]*eln.Tag, error) {
	return a.service.ListTags()
}

// MergeTags resolves tag names and consolidates them into one tag named
// newName. Every named tag must exist.
func (a *App) MergeTags(oldNames []string, newName string) (*eln.Tag, error) {
	ids := make([]int64, 0, len(oldNames))
	for _, name := range oldNames {
		tag, err := a.db.FindTagByName(name)
		if err != nil {
			return nil, fmt.Errorf("finding tag %q: %w", name, err)
		}
		if tag == nil {
			return nil, fmt.Errorf("tag %q: %w", name, eln.ErrNotFound)
		}
		ids = append(ids, tag.ID)
	}

	tag, err := a.service.MergeTags(ids, newName)
	if err != nil {
		return nil, err
	}
	a.audit("tags", tag.ID, tag.Name)
	return tag, nil
}

// Search returns entries matching the query, optionally restricted to a tag.
func (a *App) Search(query, tagName string) ([]*eln.Entry, error) {
	var tagID int64
	if tagName != "" {
		tag, err := a.db.FindTagByName(tagName)
		if err != nil {
			return nil, fmt.Errorf("finding tag %q: %w", tagName, err)
		}
		if tag == nil {
			return nil, fmt.Errorf("tag %q: %w", tagName, eln.ErrNotFound)
		}
		tagID = tag.ID
	}
	return a.service.Search(query, tagID)
}

// Export writes all data to a timestamped JSON document in the configured
// export directory and returns its path.
func (a *App) Export() (string, error) {
	path, err := a.service.Export(a.cfg.Export.Dir)
	if err != nil {
		return "", err
	}
	a.audit("", 0, path)
	return path, nil
}

// Import re-inserts the records of an export document as new rows.
func (a *App) Import(file string) (*eln.ImportStats, error) {
	stats, err := a.service.Import(file)
	if err != nil {
		return nil, err
	}
	a.audit("", 0, file)
	return stats, nil
}

// Backup archives the database and attachments into the vault. Returns the
// stored archive name.
func (a *App) Backup(encrypt bool) (string, error) {
	name, err := a.service.Backup(encrypt)
	if err != nil {
		return "", err
	}
	a.audit("", 0, name)
	return name, nil
}

// ListBackups returns the vault's archive names, newest first.
func (a *App) ListBackups() ([]string, error) {
	return a.service.ListBackups()
}

// SetupEncryption generates the age key pair protected by the passphrase.
func (a *App) SetupEncryption(passphrase string) error {
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	return a.encryptor.Setup(passphrase)
}

// EncryptionConfigured reports whether key files are in place.
func (a *App) EncryptionConfigured() bool {
	return a.encryptor.IsConfigured()
}

// Close closes the database and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
