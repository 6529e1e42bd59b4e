// Package cryptox encrypts small secrets (the GitHub token) for storage
// at rest using AES-GCM under an argon2id-derived key.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dsavelev/gitnotes/internal/common"
)

const nonceSize = 12

// DeriveKey derives a 32-byte AES key from a passphrase and salt with
// argon2id. The same passphrase and salt always produce the same key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Seal encrypts plaintext with AES-GCM. The random nonce is prepended to
// the returned ciphertext so the result is a single self-contained blob.
func Seal(plaintext, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := common.GenerateRandByteArray(nonceSize)
	if err != nil {
		return nil, err
	}

	return append(nonce, aesgcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// Open decrypts a blob produced by Seal.
func Open(blob, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short: %d bytes", len(blob))
	}

	plaintext, err := aesgcm.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
