package vault

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
)

const VaultFile = ".bvault"

// Bucket names
var (
	ConfigBucket  = []byte("config")  // version, timestamps, vault ID
	EntriesBucket = []byte("entries") // named ciphertext triples
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigVaultID  = []byte("vault_id")
)

var (
	ErrNotInitialized = errors.New("bvault not initialized")
	ErrAlreadyExists  = errors.New("bvault already exists")
	ErrEntryNotFound  = errors.New("entry not found")
)

// Entry is a stored ciphertext triple. All three blob fields are standard
// base64; the vault never holds plaintext or passwords.
type Entry struct {
	Name       string    `json:"name"`
	Ciphertext string    `json:"ciphertext"`
	IV         string    `json:"iv"`
	Salt       string    `json:"salt"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// Vault provides BBolt-based storage for named bvault blobs
type Vault struct {
	db *bolt.DB
}

// Open opens or creates a bvault database
func Open(path string) (*Vault, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Vault{db: db}, nil
}

// Close closes the database
func (v *Vault) Close() error {
	return v.db.Close()
}

// Initialize creates the bucket structure for a new vault
func (v *Vault) Initialize() error {
	return v.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, EntriesBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (v *Vault) IsInitialized() (bool, error) {
	var initialized bool
	err := v.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// Put stores or replaces an entry. The Created timestamp of an existing
// entry is preserved.
func (v *Vault) Put(name, ciphertext, iv, salt string) error {
	return v.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return ErrNotInitialized
		}

		now := time.Now()
		entry := Entry{
			Name:       name,
			Ciphertext: ciphertext,
			IV:         iv,
			Salt:       salt,
			Created:    now,
			Updated:    now,
		}

		if existing := entries.Get([]byte(name)); existing != nil {
			var prev Entry
			if err := json.Unmarshal(existing, &prev); err == nil {
				entry.Created = prev.Created
			}
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := entries.Put([]byte(name), data); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// Get retrieves a single entry by name
func (v *Vault) Get(name string) (*Entry, error) {
	var entry *Entry
	err := v.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return ErrNotInitialized
		}
		data := entries.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// List returns all entries sorted by key order
func (v *Vault) List() ([]Entry, error) {
	var list []Entry
	err := v.db.View(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return ErrNotInitialized
		}
		return entries.ForEach(func(k, data []byte) error {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err != nil {
				return err
			}
			list = append(list, entry)
			return nil
		})
	})
	return list, err
}

// Remove deletes an entry by name
func (v *Vault) Remove(name string) error {
	return v.db.Update(func(tx *bolt.Tx) error {
		entries := tx.Bucket(EntriesBucket)
		if entries == nil {
			return ErrNotInitialized
		}
		if entries.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
		}
		if err := entries.Delete([]byte(name)); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// GetModified retrieves the last modified timestamp
func (v *Vault) GetModified() (time.Time, error) {
	var modified time.Time
	err := v.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from config bucket
func (v *Vault) GetVaultID() (string, error) {
	var vaultID string
	err := v.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one.
// The ID scopes keyring records to this vault file.
func (v *Vault) GetOrCreateVaultID() (string, error) {
	vaultID, err := v.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = v.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting entries to reclaim disk space.
func (v *Vault) Compact() error {
	srcPath := v.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = v.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, val []byte) error {
					return dstBucket.Put(k, val)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := v.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	v.db, err = bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}

func touchModified(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return ErrNotInitialized
	}
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}
