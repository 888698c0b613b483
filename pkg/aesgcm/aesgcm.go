// Package aesgcm is a standalone AES-GCM helper for a caller that needs to
// decrypt a HAN meter's encryption envelope before frames reach pkg/hdlc.
// The core pipeline never calls this package: the reference deployment is
// plaintext, and decrypting the envelope is a concern of whatever collects
// bytes off the wire, not of the frame decoder itself.
package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// ErrKeyRequired is returned when Decrypt is called without a key.
var ErrKeyRequired = errors.New("aesgcm: key required")

// Decrypt authenticates and decrypts ciphertext using key and nonce,
// returning the plaintext HAN frame bytes.
func Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrKeyRequired
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: invalid key: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: build GCM: %w", err)
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("aesgcm: nonce must be %d bytes, got %d", gcm.NonceSize(), len(nonce))
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: authentication failed: %w", err)
	}
	return plaintext, nil
}
