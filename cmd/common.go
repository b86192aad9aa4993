package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/bvault/internal/crypto"
	"github.com/illarion/bvault/internal/keyring"
	"github.com/illarion/bvault/internal/vault"
)

// OpenVault opens the .bvault database in the current directory and checks
// that it has been initialized
func OpenVault() (*vault.Vault, error) {
	v, err := vault.Open(vault.VaultFile)
	if err != nil {
		return nil, err
	}

	initialized, err := v.IsInitialized()
	if err != nil {
		v.Close()
		return nil, err
	}
	if !initialized {
		v.Close()
		return nil, vault.ErrNotInitialized
	}

	return v, nil
}

// GetPassword retrieves password from environment or prompts user.
// The caller is responsible for calling crypto.ClearBytes on the returned password
func GetPassword(prompt string) ([]byte, error) {
	// Try environment variable first
	password := vault.GetPasswordFromEnv()
	if password != nil {
		return password, nil
	}

	// Prompt user
	password, err := vault.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// GetVaultPassword retrieves password for vault entries: environment
// variable first, then the OS keyring (scoped by vault ID), then a prompt.
// The caller is responsible for calling crypto.ClearBytes on the returned password
func GetVaultPassword(v *vault.Vault, prompt string) ([]byte, error) {
	if password := vault.GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	if vaultID, err := v.GetVaultID(); err == nil {
		if stored, err := keyring.GetPassword(vaultID); err == nil {
			return []byte(stored), nil
		}
	}

	password, err := vault.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// GetPasswordOrExit is like GetPassword but exits on error
func GetPasswordOrExit(prompt string) []byte {
	password, err := GetPassword(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: bvault not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'bvault init' first\n")
	case errors.Is(err, vault.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: .bvault already exists in this directory\n")
	case errors.Is(err, vault.ErrEntryNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'bvault ls' to see stored entries\n")
	case errors.Is(err, crypto.ErrDecryption):
		// Without an authentication tag a padding failure cannot tell a
		// wrong password from corrupted or tampered ciphertext.
		fmt.Fprintf(os.Stderr, "Error: decryption failed (wrong password, or corrupted/tampered data)\n")
	case errors.Is(err, crypto.ErrInvalidEncoding),
		errors.Is(err, crypto.ErrInvalidIVLength),
		errors.Is(err, crypto.ErrInvalidKeyLength),
		errors.Is(err, crypto.ErrInvalidUTF8):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}
