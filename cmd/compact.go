package cmd

import (
	"fmt"
)

// Compact reclaims disk space after entries have been removed
func Compact() {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	if err := v.Compact(); err != nil {
		HandleError(err)
	}

	fmt.Println("Vault compacted")
}
