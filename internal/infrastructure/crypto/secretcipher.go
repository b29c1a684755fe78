package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const secretVersion byte = 0x01

var hkdfInfoSecret = []byte("assistit.secret.v1")

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// SecretCipher encrypts small secrets (the SMTP password) at rest with a
// key derived from the application secret key. Output is base64 of
// version || nonce || ciphertext+tag.
type SecretCipher struct {
	key []byte
}

func NewSecretCipher(secretKey string) (*SecretCipher, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, []byte(secretKey), nil, hkdfInfoSecret)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return &SecretCipher{key: key}, nil
}

func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, 1+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, secretVersion)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(plaintext), []byte{secretVersion})
	return base64.RawStdEncoding.EncodeToString(out), nil
}

func (c *SecretCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(raw) < 1+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead || raw[0] != secretVersion {
		return "", ErrInvalidCiphertext
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := raw[1 : 1+chacha20poly1305.NonceSizeX]
	plain, err := aead.Open(nil, nonce, raw[1+chacha20poly1305.NonceSizeX:], raw[:1])
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plain), nil
}
