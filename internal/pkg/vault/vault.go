// Package vault seals short secrets with NaCl secretbox.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24
	prefix    = "sb1:"
)

var (
	ErrInvalidKey    = errors.New("vault key must be 32 bytes, hex or base64 encoded")
	ErrMalformed     = errors.New("sealed value is malformed")
	ErrDecryptFailed = errors.New("sealed value could not be opened")
)

type Box struct {
	key [keySize]byte
}

// ParseKey accepts a 64 character hex string or standard base64 of 32 bytes.
func ParseKey(encoded string) ([keySize]byte, error) {
	var key [keySize]byte
	encoded = strings.TrimSpace(encoded)

	raw, err := hex.DecodeString(encoded)
	if err != nil || len(raw) != keySize {
		raw, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil || len(raw) != keySize {
			return key, ErrInvalidKey
		}
	}
	copy(key[:], raw)
	return key, nil
}

func New(encodedKey string) (*Box, error) {
	key, err := ParseKey(encodedKey)
	if err != nil {
		return nil, err
	}
	return &Box{key: key}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (b *Box) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &b.key)
	return prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

func (b *Box) Open(sealed string) (string, error) {
	if !strings.HasPrefix(sealed, prefix) {
		return "", ErrMalformed
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(sealed, prefix))
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &b.key)
	if !ok {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
