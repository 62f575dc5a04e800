package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - ELN_CONFIG: config file location (default: ~/.config/eln/config.toml)
//   - ELN_HOME: base directory for eln data (default: ~/.local/share/eln)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
	}, nil
}

// getConfigPath returns the config file path, checking the ELN_CONFIG env var
// first, then falling back to the default ~/.config/eln/config.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("ELN_CONFIG"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "eln", "config.toml"), nil
}

// getBaseDir returns the base directory for eln data, checking the ELN_HOME
// env var first, then falling back to the XDG default ~/.local/share/eln.
func getBaseDir() (string, error) {
	if path := os.Getenv("ELN_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "eln"), nil
}
