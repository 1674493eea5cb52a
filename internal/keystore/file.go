package keystore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPermissions  = 0o700
	filePermissions = 0o600
)

// FileKeystore keeps each credential in its own file under dir. Files are
// created with 0600 permissions and the directory with 0700.
type FileKeystore struct {
	dir string
}

// NewFileKeystore creates dir if needed and returns a keystore over it.
func NewFileKeystore(dir string) (*FileKeystore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve keystore dir: %w", err)
	}
	if err := os.MkdirAll(abs, dirPermissions); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return &FileKeystore{dir: abs}, nil
}

func (k *FileKeystore) path(name string) (string, error) {
	// Credential names are fixed identifiers, not paths.
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid credential name %q", name)
	}
	return filepath.Join(k.dir, name), nil
}

func (k *FileKeystore) Get(_ context.Context, name string) ([]byte, error) {
	p, err := k.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read credential %s: %w", name, err)
	}
	return data, nil
}

func (k *FileKeystore) Set(_ context.Context, name string, value []byte) error {
	p, err := k.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, value, filePermissions); err != nil {
		return fmt.Errorf("write credential %s: %w", name, err)
	}
	return nil
}

func (k *FileKeystore) Delete(_ context.Context, name string) error {
	p, err := k.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete credential %s: %w", name, err)
	}
	return nil
}
