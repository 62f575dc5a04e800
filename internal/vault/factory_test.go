package vault

import (
	"testing"

	"eln-go/internal/config"
)

func TestNewVaultFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		backup  config.BackupConfig
		wantErr bool
	}{
		{
			name:   "memory vault",
			backup: config.BackupConfig{Vault: "memory"},
		},
		{
			name:   "filesystem vault",
			backup: config.BackupConfig{Vault: "filesystem", Dir: t.TempDir()},
		},
		{
			name:    "filesystem vault without dir",
			backup:  config.BackupConfig{Vault: "filesystem"},
			wantErr: true,
		},
		{
			name:    "s3 vault - not yet implemented",
			backup:  config.BackupConfig{Vault: "s3", Dir: "my-bucket"},
			wantErr: true,
		},
		{
			name:    "unknown vault type",
			backup:  config.BackupConfig{Vault: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Backup: tt.backup}

			v, err := NewVaultFromConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewVaultFromConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && v == nil {
				t.Error("NewVaultFromConfig() returned nil vault")
			}
		})
	}
}
