// Package cryptox implements the cryptographic primitives of the protection
// layer: SHA-256 digests, random material, per-record key derivation, and
// authenticated encryption.
//
// Records are protected with AES-256-GCM under a key derived from the
// device key and a per-record salt via HKDF-SHA256. The GCM authentication
// tag is returned separately so callers can persist it as its own field.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the device and derived key length in bytes (AES-256).
	KeySize = 32

	// SaltSize is the per-record salt length in bytes.
	SaltSize = 16

	gcmTagSize = 16
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Hash returns the hex-encoded SHA-256 digest of input. It is deterministic
// and unsalted; callers that need a salt supply it themselves.
func Hash(input string) string {
	digest := sha256.Sum256([]byte(input))
	return hex.EncodeToString(digest[:])
}

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system random source fails, which is not recoverable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("random source failed: %v", err))
	}
	return b
}

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter is the number of random bytes, so the final string
// length is twice that (each byte expands to two hex characters).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for removing keys and PINs from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DeriveRecordKey derives a 32-byte record key from the device key and a
// per-record salt using HKDF-SHA256. The same (deviceKey, salt) pair always
// yields the same key; a different device key yields an unrelated one.
func DeriveRecordKey(deviceKey, salt []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, deviceKey, salt, []byte("quitvault record key"))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return key, nil
}

// Encrypt seals plaintext with AES-GCM under key. A fresh random nonce is
// generated per call. The ciphertext and the 16-byte authentication tag are
// returned as separate slices.
func Encrypt(key, plaintext []byte) (ciphertext, tag, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, nil, err
	}

	nonce = GenerateRandByteArray(aesgcm.NonceSize())

	sealed := aesgcm.Seal(nil, nonce, plaintext, nil)

	// Seal appends the tag to the ciphertext; split it off.
	n := len(sealed) - gcmTagSize
	return sealed[:n], sealed[n:], nonce, nil
}

// Decrypt opens an AES-GCM ciphertext produced by Encrypt. It fails if the
// key, nonce, tag, or ciphertext do not match.
func Decrypt(key, ciphertext, tag, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(nonce) != aesgcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	return aesgcm.Open(nil, nonce, sealed, nil)
}
