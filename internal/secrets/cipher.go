// Package secrets provides authenticated encryption for stored
// third-party credentials. Values are sealed with AES-256-GCM under a
// server-held key and persisted as a versioned envelope, so the key
// can be rotated without rewriting the storage layer.
package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const envelopePrefix = "vigia.secret.v1:"

// Cipher errors.
var (
	ErrKeyRequired       = errors.New("secrets: key material is required")
	ErrInvalidCiphertext = errors.New("secrets: invalid ciphertext")
)

// envelope is the serialized form of an encrypted value.
type envelope struct {
	KeyID      string `json:"kid"`
	Version    int    `json:"ver"`
	Algorithm  string `json:"alg"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Cipher seals and opens credential values with a derived AES-256 key.
type Cipher struct {
	key   []byte
	keyID string
}

// NewCipher creates a Cipher from arbitrary key material.
// The material is normalized to 32 bytes via SHA-256.
func NewCipher(keyMaterial string, keyID string) (*Cipher, error) {
	trimmed := strings.TrimSpace(keyMaterial)
	if trimmed == "" {
		return nil, ErrKeyRequired
	}
	derived := sha256.Sum256([]byte(trimmed))
	if keyID == "" {
		keyID = "app-key"
	}
	return &Cipher{key: derived[:], keyID: keyID}, nil
}

// Encrypt seals plaintext and returns a prefixed envelope string.
func (c *Cipher) Encrypt(_ context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("secrets: plaintext is required")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("secrets: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secrets: create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("secrets: nonce generation failed: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	data, err := json.Marshal(envelope{
		KeyID:      c.keyID,
		Version:    1,
		Algorithm:  "aes-256-gcm",
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
	})
	if err != nil {
		return "", fmt.Errorf("secrets: encode envelope: %w", err)
	}

	return envelopePrefix + string(data), nil
}

// Decrypt opens a prefixed envelope string produced by Encrypt.
func (c *Cipher) Decrypt(_ context.Context, sealed string) (string, error) {
	payload, ok := strings.CutPrefix(sealed, envelopePrefix)
	if !ok {
		return "", ErrInvalidCiphertext
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return "", ErrInvalidCiphertext
	}
	if env.Algorithm != "aes-256-gcm" {
		return "", ErrInvalidCiphertext
	}

	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("secrets: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secrets: create gcm: %w", err)
	}
	if len(nonce) != gcm.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
