package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/bvault/internal/crypto"
	"github.com/illarion/bvault/internal/keyring"
	"github.com/illarion/bvault/internal/vault"
)

// KeyringSave saves the password to the OS keyring. The blob format has no
// authentication tag, so the password cannot be verified against the vault;
// it is stored as given.
func KeyringSave() {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	// Prompt for password
	password, err := vault.ReadPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	// Get vault ID (create if not exists)
	vaultID, err := v.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	// Save to keyring
	if err := keyring.SavePassword(vaultID, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the password from the OS keyring
func KeyringDelete() {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	// Get vault ID
	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	// Delete from keyring
	if err := keyring.DeletePassword(vaultID); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a password is stored in the keyring
func KeyringStatus() {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	// Get vault ID
	vaultID, err := v.GetVaultID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
