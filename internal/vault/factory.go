package vault

import (
	"fmt"

	"eln-go/internal/config"
	"eln-go/internal/eln"
)

// NewVaultFromConfig creates a Vault implementation based on the backup config.
func NewVaultFromConfig(cfg *config.Config) (eln.Vault, error) {
	switch cfg.Backup.Vault {
	case "memory":
		return NewMemoryVault(), nil
	case "filesystem":
		if cfg.Backup.Dir == "" {
			return nil, fmt.Errorf("filesystem vault requires backup.dir to be set")
		}
		return NewFileSystemVault(cfg.Backup.Dir)
	case "s3":
		return nil, fmt.Errorf("s3 vault not yet implemented")
	default:
		return nil, fmt.Errorf("unknown vault type: %s", cfg.Backup.Vault)
	}
}
