// Package cryptox implements the primitives used to seal credential values
// at rest: argon2id key derivation from the device secret and AES-GCM
// authenticated encryption.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"golang.org/x/crypto/argon2"
)

// ErrCipherTooShort is returned by OpenValue when the stored blob is shorter
// than a nonce, i.e. corrupted or truncated.
var ErrCipherTooShort = errors.New("ciphertext too short")

// DeriveStorageKey derives a 32-byte AES key from the device secret and salt.
func DeriveStorageKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// SealValue encrypts plaintext with AES-GCM under key. A fresh random nonce
// is generated per call and prepended to the returned blob, so the result is
// self-contained and safe to store in a single column.
//
// The key must be 16, 24, or 32 bytes (AES-128/192/256).
func SealValue(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenValue reverses SealValue: it splits off the nonce prefix and decrypts
// the remainder. Authentication failure (wrong key, tampered data) is
// returned unchanged from the cipher.
func OpenValue(blob, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(blob) < aesgcm.NonceSize() {
		return nil, ErrCipherTooShort
	}
	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
