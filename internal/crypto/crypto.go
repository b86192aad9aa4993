package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	KeySize    = 32     // AES-256 key size
	Iterations = 100000 // PBKDF2 iterations, fixed by the bvault blob format
)

var (
	ErrInvalidEncoding  = errors.New("invalid base64 encoding")
	ErrInvalidIVLength  = errors.New("IV must be 16 bytes")
	ErrInvalidKeyLength = errors.New("key must be 32 bytes")
	ErrDecryption       = errors.New("decryption failed")
	ErrInvalidUTF8      = errors.New("plaintext is not valid UTF-8")
)

// Decrypt recovers the plaintext of a bvault blob. The ciphertext, IV and
// salt are standard base64 (with padding); the password is used as raw
// bytes. The pipeline runs strictly forward: decode, derive key,
// AES-256-CBC decrypt, PKCS#7 unpad, UTF-8 validate. Any stage failure
// aborts with one of the package sentinel errors, matchable via errors.Is.
func Decrypt(b64Ciphertext, password, b64IV, b64Salt string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(b64Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext", ErrInvalidEncoding)
	}
	iv, err := base64.StdEncoding.DecodeString(b64IV)
	if err != nil {
		return "", fmt.Errorf("%w: iv", ErrInvalidEncoding)
	}
	salt, err := base64.StdEncoding.DecodeString(b64Salt)
	if err != nil {
		return "", fmt.Errorf("%w: salt", ErrInvalidEncoding)
	}

	key := DeriveKey([]byte(password), salt)
	defer ClearBytes(key)

	plaintext, err := decryptCBC(key, iv, ciphertext)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", ErrInvalidUTF8
	}

	return string(plaintext), nil
}

// DeriveKey derives a 32-byte AES-256 key from a password and salt using
// PBKDF2-HMAC-SHA256 with 100,000 iterations. The parameters are fixed by
// the blob format; changing them makes existing ciphertext undecryptable.
// Deterministic: identical inputs always yield the identical key.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
}

// decryptCBC decrypts ciphertext with AES-256-CBC and strips PKCS#7
// padding. Decrypts in place over the ciphertext buffer.
func decryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIVLength, len(iv))
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeyLength, len(key))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a nonzero multiple of the block size", ErrDecryption, len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	cipher.NewCBCDecrypter(block, iv).CryptBlocks(ciphertext, ciphertext)

	return pkcs7Unpad(ciphertext)
}

// pkcs7Unpad strips PKCS#7 padding: the last byte n (1..16) indicates n
// trailing bytes all equal to n. A padding violation is the primary signal
// of a wrong password, so the error carries no recovered byte values.
func pkcs7Unpad(data []byte) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > aes.BlockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
	}
	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecryption)
		}
	}
	return data[:len(data)-n], nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
