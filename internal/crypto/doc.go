// Package crypto implements the bvault blob decryption pipeline.
//
// A blob is a (ciphertext, IV, salt) triple, each standard base64.
// Decryption uses:
//   - 32-byte key derived from password via PBKDF2-HMAC-SHA256,
//     100,000 iterations (fixed by the blob format)
//   - AES-256-CBC with a 16-byte IV
//   - PKCS#7 padding, removed after decryption
//   - UTF-8 validation of the recovered plaintext
//
// The format carries no authentication tag (no HMAC/AEAD), so a padding
// failure cannot distinguish a wrong password from corrupted or tampered
// ciphertext; callers get ErrDecryption either way. This is a weakness of
// the format itself, kept for compatibility with existing blobs — do not
// add a tag check here.
//
// Memory safety:
//   - Use ClearBytes() to zero password and key material after use
package crypto
