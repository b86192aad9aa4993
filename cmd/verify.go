package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/illarion/bvault/internal/crypto"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Verify decrypts a stored entry and compares it against a local file,
// printing a diff when they differ. Exits 1 on mismatch so it can be used
// in scripts.
func Verify(name, path string) {
	v, err := OpenVault()
	if err != nil {
		HandleError(err)
	}
	defer v.Close()

	entry, err := v.Get(name)
	if err != nil {
		HandleError(err)
	}

	localData, err := os.ReadFile(path)
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

	if plaintext == string(localData) {
		fmt.Printf("%s matches %s\n", name, path)
		return
	}

	fmt.Print(generateUnifiedDiff(name, path, plaintext, string(localData)))
	os.Exit(1)
}

// generateUnifiedDiff generates a unified diff using go-diff library
func generateUnifiedDiff(name, path, vaultText, localText string) string {
	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(vaultText, localText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(vaultText, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- vault/%s\n", name))
	result.WriteString(fmt.Sprintf("+++ local/%s\n", path))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}
