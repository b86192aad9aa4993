package cmd

import (
	"fmt"

	"github.com/illarion/bvault/internal/crypto"
)

// Get decrypts a stored entry and prints the plaintext to stdout
func Get(name string) {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	entry, err := v.Get(name)
	if err != nil {
		HandleError(err)
	}

	password, err := GetVaultPassword(v, "Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	plaintext, err := crypto.Decrypt(entry.Ciphertext, string(password), entry.IV, entry.Salt)
	if err != nil {
		HandleError(err)
	}

	fmt.Println(plaintext)
}
