package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
)

// encryptBlob is the test-side counterpart of Decrypt: PKCS#7-pad and
// AES-256-CBC encrypt plaintext under the key derived from (password, salt).
// The library itself is decrypt-only, so this lives here.
func encryptBlob(t *testing.T, plaintext []byte, password string, iv, salt []byte) string {
	t.Helper()

	key := DeriveKey([]byte(password), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	pad := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := append(append([]byte(nil), plaintext...), bytes.Repeat([]byte{byte(pad)}, pad)...)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return base64.StdEncoding.EncodeToString(ciphertext)
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("Failed to generate random bytes: %v", err)
	}
	return b
}

// Golden vectors produced by a reference implementation of the encrypt side
// (PBKDF2-HMAC-SHA256/100k + openssl AES-256-CBC). These pin the blob
// format; if any of them stops decrypting, compatibility is broken.
var goldenVectors = []struct {
	name       string
	ciphertext string
	password   string
	iv         string
	salt       string
	plaintext  string
}{
	{
		name:       "hello world",
		ciphertext: "xi9Xk/rdBdoh3kMn0CmYBQ==",
		password:   "correct horse battery staple",
		iv:         "EA8ODQwLCgkIBwYFBAMCAQ==",
		salt:       "AQIDBAUGBwgJCgsMDQ4PEA==",
		plaintext:  "hello world",
	},
	{
		name:       "unicode plaintext",
		ciphertext: "Ht+OoHtriHGKUaQrUc06AgdY1/pldF2PjX9MOVfZW1Y=",
		password:   "s3cret-passphrase",
		iv:         "AAECAwQFBgcICQoLDA0ODw==",
		salt:       "qrvM3e7/ABEiM0RVZneImQ==",
		plaintext:  "naïve café — 世界 🌍",
	},
}

func TestDecryptGoldenVectors(t *testing.T) {
	for _, v := range goldenVectors {
		t.Run(v.name, func(t *testing.T) {
			got, err := Decrypt(v.ciphertext, v.password, v.iv, v.salt)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if got != v.plaintext {
				t.Errorf("Plaintext mismatch: got %q, want %q", got, v.plaintext)
			}
		})
	}
}

func TestDecryptRoundTrip(t *testing.T) {
	plaintexts := []string{
		"hello world",
		"",
		"exactly sixteen!",
		"a longer plaintext spanning multiple AES blocks, with some UTF-8: привет мир",
	}

	for _, plaintext := range plaintexts {
		iv := randomBytes(t, aes.BlockSize)
		salt := randomBytes(t, 16)
		password := "round-trip-password"

		blob := encryptBlob(t, []byte(plaintext), password, iv, salt)

		got, err := Decrypt(blob, password,
			base64.StdEncoding.EncodeToString(iv),
			base64.StdEncoding.EncodeToString(salt))
		if err != nil {
			t.Fatalf("Decrypt failed for %q: %v", plaintext, err)
		}
		if got != plaintext {
			t.Errorf("Round-trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	password := []byte("determinism")
	salt := randomBytes(t, 16)

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if len(key1) != KeySize {
		t.Fatalf("Expected %d-byte key, got %d", KeySize, len(key1))
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Identical inputs produced different keys")
	}

	key3 := DeriveKey(password, randomBytes(t, 16))
	if bytes.Equal(key1, key3) {
		t.Error("Different salts produced the same key")
	}
}

func TestDeriveKeyKnownAnswer(t *testing.T) {
	salt, _ := base64.StdEncoding.DecodeString("AQIDBAUGBwgJCgsMDQ4PEA==")
	key := DeriveKey([]byte("correct horse battery staple"), salt)

	want := "7ed385456f6b11fe381b82d34e9384476dfbc84764f4d306ff62dc74846615a4"
	if got := hex.EncodeToString(key); got != want {
		t.Errorf("Derived key mismatch: got %s, want %s", got, want)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	iv := randomBytes(t, aes.BlockSize)
	salt := randomBytes(t, 16)
	blob := encryptBlob(t, []byte("the real secret"), "right password", iv, salt)

	got, err := Decrypt(blob, "wrong password",
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(salt))

	// A wrong key almost always breaks the padding check; in the rare case
	// the padding happens to parse, the output must still be garbage.
	if err == nil {
		if got == "the real secret" {
			t.Fatal("Wrong password recovered the plaintext")
		}
		return
	}
	if !errors.Is(err, ErrDecryption) && !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrDecryption or ErrInvalidUTF8, got %v", err)
	}
}

func TestDecryptMalformedBase64(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(randomBytes(t, aes.BlockSize))

	tests := []struct {
		name                 string
		ciphertext, iv, salt string
	}{
		{"ciphertext", "not base64!!", valid, valid},
		{"iv", valid, "###", valid},
		{"salt", valid, valid, "a=b=c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.ciphertext, "pw", tt.iv, tt.salt)
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("Expected ErrInvalidEncoding, got %v", err)
			}
		})
	}
}

func TestDecryptWrongIVLength(t *testing.T) {
	salt := base64.StdEncoding.EncodeToString(randomBytes(t, 16))
	ciphertext := base64.StdEncoding.EncodeToString(randomBytes(t, aes.BlockSize))

	for _, n := range []int{0, 15, 17, 32} {
		iv := base64.StdEncoding.EncodeToString(randomBytes(t, n))
		_, err := Decrypt(ciphertext, "pw", iv, salt)
		if !errors.Is(err, ErrInvalidIVLength) {
			t.Errorf("IV length %d: expected ErrInvalidIVLength, got %v", n, err)
		}
	}
}

func TestDecryptBadCiphertextLength(t *testing.T) {
	iv := base64.StdEncoding.EncodeToString(randomBytes(t, aes.BlockSize))
	salt := base64.StdEncoding.EncodeToString(randomBytes(t, 16))

	// Empty and misaligned ciphertexts must be rejected before the cipher
	// ever runs.
	for _, n := range []int{0, 1, 15, 17, 33} {
		ciphertext := base64.StdEncoding.EncodeToString(randomBytes(t, n))
		_, err := Decrypt(ciphertext, "pw", iv, salt)
		if !errors.Is(err, ErrDecryption) {
			t.Errorf("Ciphertext length %d: expected ErrDecryption, got %v", n, err)
		}
	}
}

func TestDecryptInvalidUTF8Plaintext(t *testing.T) {
	iv := randomBytes(t, aes.BlockSize)
	salt := randomBytes(t, 16)

	// 0xff is never valid in UTF-8.
	blob := encryptBlob(t, []byte{0xff, 0xfe, 0x01, 0x02}, "pw", iv, salt)

	_, err := Decrypt(blob, "pw",
		base64.StdEncoding.EncodeToString(iv),
		base64.StdEncoding.EncodeToString(salt))
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("Expected ErrInvalidUTF8, got %v", err)
	}
}

func TestPkcs7Unpad(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    []byte
		wantErr bool
	}{
		{"single pad byte", []byte("123456789012345\x01"), []byte("123456789012345"), false},
		{"full pad block", bytes.Repeat([]byte{16}, 16), []byte{}, false},
		{"zero pad value", []byte("123456789012345\x00"), nil, true},
		{"pad value too large", []byte("123456789012345\x11"), nil, true},
		{"inconsistent padding", []byte("12345678901234\x02\x03"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pkcs7Unpad(tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrDecryption) {
					t.Errorf("Expected ErrDecryption, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Unpadded mismatch: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClearBytes(t *testing.T) {
	b := []byte("sensitive")
	ClearBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("Byte %d not cleared", i)
		}
	}
}
