package cmd

import (
	"fmt"

	"github.com/illarion/bvault/internal/vault"
)

// List shows all stored entries. Works without a password — the vault
// holds only opaque ciphertext.
func List() {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	entries, err := v.List()
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Println("No entries in vault")
		return
	}

	fmt.Printf("Entries in %s:\n", vault.VaultFile)
	for _, entry := range entries {
		fmt.Printf("  %s (updated %s)\n", entry.Name, entry.Updated.Format("2006-01-02 15:04:05"))
	}
}
