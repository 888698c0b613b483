package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecryptRoundTrip(t *testing.T) {
	key := make([]byte, 16)
	_, err := rand.Read(key)
	require.NoError(t, err)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)

	nonce := make([]byte, gcm.NonceSize())
	_, err = rand.Read(nonce)
	require.NoError(t, err)

	plaintext := []byte("hdlc frame bytes go here")
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	got, err := Decrypt(ciphertext, key, nonce)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptRequiresKey(t *testing.T) {
	_, err := Decrypt([]byte("x"), nil, nil)
	assert.ErrorIs(t, err, ErrKeyRequired)
}
