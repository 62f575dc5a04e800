package testutil

import (
	"eln-go/internal/eln"
	"eln-go/internal/vault"
)

// NewTestVault creates a new in-memory vault for testing.
func NewTestVault() eln.Vault {
	return vault.NewMemoryVault()
}
