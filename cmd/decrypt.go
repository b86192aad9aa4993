package cmd

import (
	"fmt"

	"github.com/illarion/bvault/internal/crypto"
)

// Decrypt decrypts a raw blob given as base64 ciphertext, IV and salt,
// and prints the recovered plaintext to stdout
func Decrypt(b64Ciphertext, b64IV, b64Salt string) {
	password := GetPasswordOrExit("Enter password: ")
	defer crypto.ClearBytes(password)

	plaintext, err := crypto.Decrypt(b64Ciphertext, string(password), b64IV, b64Salt)
	if err != nil {
		HandleError(err)
	}

	fmt.Println(plaintext)
}
