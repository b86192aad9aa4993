package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/bvault/internal/vault"
)

// Init creates a new .bvault database in the current directory
func Init() {
	if _, err := os.Stat(vault.VaultFile); err == nil {
		HandleError(vault.ErrAlreadyExists)
	}

	v, err := vault.Open(vault.VaultFile)
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	if err := v.Initialize(); err != nil {
		HandleError(err)
	}

	fmt.Printf("Initialized empty bvault in %s\n", vault.VaultFile)
}
