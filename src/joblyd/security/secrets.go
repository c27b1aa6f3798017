// Package security encrypts values kept in the settings table, such as the
// generated token signing secret.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/bitswalk/jobly/src/common/paths"
)

const (
	// encryptedPrefix marks encrypted values in the database
	encryptedPrefix = "enc:v1:"
	masterKeySize   = 32
)

// SecretManager encrypts and decrypts values with an AES-256-GCM master key
type SecretManager struct {
	masterKey []byte
}

// NewSecretManager loads the master key from keyPath, generating and saving
// a new one when the file is missing or has the wrong size
func NewSecretManager(keyPath string) (*SecretManager, error) {
	keyPath = paths.Expand(keyPath)

	key, err := os.ReadFile(keyPath)
	if err == nil && len(key) == masterKeySize {
		return &SecretManager{masterKey: key}, nil
	}

	key = make([]byte, masterKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}

	if err := paths.EnsureParent(keyPath); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to write master key: %w", err)
	}

	return &SecretManager{masterKey: key}, nil
}

func (sm *SecretManager) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(sm.masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Encrypt returns "enc:v1:" followed by the base64 nonce and ciphertext.
// The empty string encrypts to itself.
func (sm *SecretManager) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := sm.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return encryptedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Values without the prefix are returned as-is so
// that settings written before encryption was enabled keep working.
func (sm *SecretManager) Decrypt(value string) (string, error) {
	if !IsEncrypted(value) {
		return value, nil
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	gcm, err := sm.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plaintext), nil
}

// IsEncrypted reports whether value carries the encryption prefix
func IsEncrypted(value string) bool {
	return strings.HasPrefix(value, encryptedPrefix)
}

// SettingsStore is a key/value settings table
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// EncryptedSettings encrypts values on their way into store and decrypts
// them on the way out
type EncryptedSettings struct {
	store   SettingsStore
	secrets *SecretManager
}

// NewEncryptedSettings wraps store
func NewEncryptedSettings(store SettingsStore, secrets *SecretManager) *EncryptedSettings {
	return &EncryptedSettings{store: store, secrets: secrets}
}

// GetSetting returns the decrypted value of key
func (s *EncryptedSettings) GetSetting(key string) (string, error) {
	value, err := s.store.GetSetting(key)
	if err != nil {
		return "", err
	}
	return s.secrets.Decrypt(value)
}

// SetSetting encrypts value and stores it under key
func (s *EncryptedSettings) SetSetting(key, value string) error {
	encrypted, err := s.secrets.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt setting %s: %w", key, err)
	}
	return s.store.SetSetting(key, encrypted)
}
