package cmd

import (
	"fmt"
)

// Remove deletes entries from the vault
func Remove(names []string) {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	for _, name := range names {
		if err := v.Remove(name); err != nil {
			HandleError(err)
		}
		fmt.Printf("Removed %s\n", name)
	}
}
