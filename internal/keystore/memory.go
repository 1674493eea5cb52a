package keystore

import (
	"context"
	"sync"
)

// MemoryKeystore is an in-memory Keystore for tests. Safe for concurrent use.
type MemoryKeystore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{data: make(map[string][]byte)}
}

func (k *MemoryKeystore) Get(_ context.Context, name string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (k *MemoryKeystore) Set(_ context.Context, name string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	k.data[name] = cp
	return nil
}

func (k *MemoryKeystore) Delete(_ context.Context, name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, name)
	return nil
}
