// Package keystore abstracts the secure credential store holding the device
// key and the PIN digest. On a phone this is the hardware-backed keychain;
// here the file implementation approximates it with restrictive permissions,
// and the memory implementation serves tests.
package keystore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no credential is stored under a name.
var ErrNotFound = errors.New("credential not found")

// Keystore stores small named secrets.
type Keystore interface {
	// Get returns the secret stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Set stores the secret under name, overwriting any previous value.
	Set(ctx context.Context, name string, value []byte) error

	// Delete removes the secret. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error
}
