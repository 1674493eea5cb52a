// Package secret implements the local data-protection layer: it owns the
// device encryption key, protects JSON records at rest, and gates access
// behind PIN/biometric re-authentication with a sliding auto-lock timeout.
//
// # Overview
//
// A single symmetric device key is created lazily on first use and lives in
// the secure keystore. Every record is sealed with AES-256-GCM under a key
// derived from the device key and a fresh per-record salt (HKDF-SHA256),
// so records are independent but all hang off the one device key. There is
// no key rotation: deleting the device key (ClearSecurityData) makes every
// previously protected record permanently unreadable.
//
// # Failure semantics
//
// Read-path crypto failures (Decrypt, LoadProtected) surface as
// common.ErrDecryptionFailed; returning garbage that looks like plaintext
// is never acceptable. Availability checks and settings reads degrade to
// safe defaults and log instead of failing, so a corrupted protection
// subsystem does not block unprotected app paths.
//
// Key Types
//
//   - type Service          — the protection service over Store + Keystore
//   - type EncryptedRecord  — persisted ciphertext format
//   - type SecuritySettings — the persisted settings singleton
//   - type Challenger       — platform biometric challenge boundary
package secret
