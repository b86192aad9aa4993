// Package vault provides the BBolt database interface for bvault.
//
// Database structure uses two buckets:
//   - config: version, timestamps, vault ID (unencrypted)
//   - entries: named ciphertext triples (ciphertext, IV, salt), each
//     field base64 as produced by the external encryptor
//
// Entries are opaque: the vault stores already-encrypted blobs and never
// sees plaintext or passwords. Decryption happens in memory via
// internal/crypto, so bvault ls works without a password.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package vault
