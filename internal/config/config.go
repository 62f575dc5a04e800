package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for eln. Sections map onto the concerns
// of the store: the database file, the managed attachment directory, and the
// backup and export destinations.
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Attachments AttachmentsConfig `toml:"attachments"`
	Backup      BackupConfig      `toml:"backup"`
	Export      ExportConfig      `toml:"export"`
	Log         LogConfig         `toml:"log"`
	Encryption  EncryptionConfig  `toml:"encryption"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	File string `toml:"file"`
}

// AttachmentsConfig locates the managed attachment directory.
type AttachmentsConfig struct {
	Dir string `toml:"dir"`
}

// BackupConfig configures where backup archives go.
// This uses a tagged union pattern - the Vault field determines which other fields are relevant.
type BackupConfig struct {
	Dir   string `toml:"dir"`
	Vault string `toml:"vault,omitempty"` // "filesystem" (default) or "memory"
}

// ExportConfig locates the directory for JSON exports.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// LogConfig locates the log directory. Optional; defaults to the directory
// holding the database file.
type LogConfig struct {
	Dir string `toml:"dir,omitempty"`
}

// EncryptionConfig holds paths to the age key pair used for encrypted backups.
type EncryptionConfig struct {
	Type           string `toml:"type,omitempty"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path,omitempty"`
	PrivateKeyPath string `toml:"private_key_path,omitempty"`
}

// NewConfig creates a Config with all paths rooted under baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		Database:    DatabaseConfig{File: filepath.Join(baseDir, "eln.db")},
		Attachments: AttachmentsConfig{Dir: filepath.Join(baseDir, "attachments")},
		Backup:      BackupConfig{Dir: filepath.Join(baseDir, "backups")},
		Export:      ExportConfig{Dir: filepath.Join(baseDir, "exports")},
		Log:         LogConfig{Dir: filepath.Join(baseDir, "log")},
		Encryption: EncryptionConfig{
			PublicKeyPath:  filepath.Join(baseDir, "keys", "eln.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "eln.key"),
		},
	}
}

// Validate checks that every required section is filled in and applies
// defaults for the optional ones. Missing required keys are fatal at startup.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.File == "" {
		missing = append(missing, "database.file")
	}
	if c.Attachments.Dir == "" {
		missing = append(missing, "attachments.dir")
	}
	if c.Backup.Dir == "" {
		missing = append(missing, "backup.dir")
	}
	if c.Export.Dir == "" {
		missing = append(missing, "export.dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config is missing required keys: %s", strings.Join(missing, ", "))
	}

	if c.Log.Dir == "" {
		c.Log.Dir = filepath.Dir(c.Database.File)
	}
	if c.Backup.Vault == "" {
		c.Backup.Vault = "filesystem"
	}
	if c.Encryption.Type == "" {
		c.Encryption.Type = "age"
	}

	return nil
}

// EnsureDirectories creates the attachment, backup, export and log
// directories if they do not exist yet.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Attachments.Dir, c.Backup.Dir, c.Export.Dir, c.Log.Dir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
