// Package common defines shared constants and sentinel errors used across
// the protection and durability layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Protection-layer errors.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrCredentialNotSet = errors.New("credential not set")
	ErrPinTooShort      = errors.New("pin too short")

	// Biometric challenge errors.
	ErrBiometricUnavailable = errors.New("biometric unavailable")
	ErrBiometricFailed      = errors.New("biometric failed")

	// Durability-layer errors (retryable).
	ErrSyncFailed = errors.New("sync failed")
)
