package eln

import "io"

// Encryptor handles optional encryption of backup archives. Encryption uses
// the public key only; decryption requires a passphrase to unlock the private
// key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation: a key pair is created, the
	// public key stored in plaintext, and the private key encrypted with
	// the provided passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with the passphrase and returns a
	// DecryptionContext valid for the duration of the command.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether both key files exist.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory for one restore.
type DecryptionContext interface {
	// Decrypt decrypts data read from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
