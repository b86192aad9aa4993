package cmd

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"
	"os"
)

// Add stores a ciphertext triple under a name. The blob is kept opaque —
// no password is needed and no decryption is attempted — but the inputs
// are validated up front so broken blobs are rejected at add time rather
// than at first decrypt.
func Add(name, b64Ciphertext, b64IV, b64Salt string) {
	ciphertext, err := base64.StdEncoding.DecodeString(b64Ciphertext)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: ciphertext is not valid base64\n")
		os.Exit(1)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		fmt.Fprintf(os.Stderr, "Error: ciphertext length %d is not a nonzero multiple of %d bytes\n", len(ciphertext), aes.BlockSize)
		os.Exit(1)
	}

	iv, err := base64.StdEncoding.DecodeString(b64IV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: IV is not valid base64\n")
		os.Exit(1)
	}
	if len(iv) != aes.BlockSize {
		fmt.Fprintf(os.Stderr, "Error: IV must be %d bytes, got %d\n", aes.BlockSize, len(iv))
		os.Exit(1)
	}

	if _, err := base64.StdEncoding.DecodeString(b64Salt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: salt is not valid base64\n")
		os.Exit(1)
	}

	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	if err := v.Put(name, b64Ciphertext, b64IV, b64Salt); err != nil {
		HandleError(err)
	}

	fmt.Printf("Stored %s\n", name)
}
