package testutil

import (
	"eln-go/internal/eln"
	"eln-go/internal/encryption"
)

// NewTestEncryptor creates a deterministic encryptor for testing.
func NewTestEncryptor() eln.Encryptor {
	return encryption.NewTestEncryptor()
}
