package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
)

// ErrDecryptionFailed is returned when a ciphertext cannot be authenticated,
// typically because it was tampered with or the master secret changed.
var ErrDecryptionFailed = errors.New("decryption failed")

var randReader io.Reader = rand.Reader

// Vault performs authenticated symmetric encryption of small credential
// strings. The key is derived deterministically from the application master
// secret so that data encrypted before a restart remains readable.
type Vault struct {
	key []byte // 32 bytes for AES-256
}

// New derives the encryption key from the master secret (SHA-256) and
// returns a ready-to-use vault.
func New(masterSecret string) *Vault {
	key := sha256.Sum256([]byte(masterSecret))
	return &Vault{key: key[:]}
}

// Encrypt seals plaintext with AES-256-GCM. A fresh nonce is generated per
// call and prefixed to the ciphertext, so encrypting the same plaintext twice
// yields different bytes. An empty plaintext produces a nil ciphertext.
func (v *Vault) Encrypt(plaintext string) ([]byte, error) {
	if plaintext == "" {
		return nil, nil
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

// Decrypt opens a nonce-prefixed AES-256-GCM ciphertext. Any corruption,
// truncation or key mismatch yields ErrDecryptionFailed; callers are expected
// to treat that as "no credential stored", not as a fatal condition.
func (v *Vault) Decrypt(ciphertext []byte) (string, error) {
	if len(ciphertext) == 0 {
		return "", nil
	}

	block, err := aes.NewCipher(v.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrDecryptionFailed
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}
