package storage

import (
	"bytes"
	"context"
	"sync"

	pkgstorage "github.com/goliatone/go-sitecms/pkg/storage"
)

// MemoryBackend keeps records in process memory. Values are copied on the way
// in and out so callers cannot alias stored bytes.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ pkgstorage.Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: map[string][]byte{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.records[key]
	if !ok {
		return nil, pkgstorage.ErrNotFound
	}
	return bytes.Clone(value), nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = bytes.Clone(value)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Keys reports the stored keys; handy for assertions.
func (m *MemoryBackend) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for key := range m.records {
		keys = append(keys, key)
	}
	return keys
}

func (m *MemoryBackend) Capabilities() pkgstorage.Capabilities {
	return pkgstorage.Capabilities{}
}

// UnavailableBackend fails every call with ErrUnavailable. It stands in for a
// store that cannot be reached.
type UnavailableBackend struct{}

var _ pkgstorage.Backend = UnavailableBackend{}

func (UnavailableBackend) Get(context.Context, string) ([]byte, error) {
	return nil, pkgstorage.ErrUnavailable
}

func (UnavailableBackend) Set(context.Context, string, []byte) error {
	return pkgstorage.ErrUnavailable
}

func (UnavailableBackend) Delete(context.Context, string) error {
	return pkgstorage.ErrUnavailable
}

type readOnlyBackend struct {
	pkgstorage.Backend
}

// ReadOnly wraps backend so reads pass through and writes fail with ErrReadOnly.
func ReadOnly(backend pkgstorage.Backend) pkgstorage.Backend {
	if backend == nil {
		return nil
	}
	return readOnlyBackend{Backend: backend}
}

func (readOnlyBackend) Set(context.Context, string, []byte) error {
	return pkgstorage.ErrReadOnly
}

func (readOnlyBackend) Delete(context.Context, string) error {
	return pkgstorage.ErrReadOnly
}
