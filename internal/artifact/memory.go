package artifact

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"sitecheck/internal/inspect"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of the ArtifactStore
// interface, useful for testing. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte // ref -> content
}

// NewMemoryStore creates a new in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Write stores the bytes under a freshly generated reference.
func (m *MemoryStore) Write(category inspect.Category, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading artifact data: %w", err)
	}

	ref := string(category) + "/" + uuid.New().String() + "_" + name

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[ref] = data
	return ref, nil
}

// Put stores content under an explicit reference. Test helper for
// simulating pre-existing artifacts with known references.
func (m *MemoryStore) Put(ref string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[ref] = append([]byte(nil), data...)
}

// Open returns the artifact contents for reading.
func (m *MemoryStore) Open(ref string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Exists reports whether the reference resolves.
func (m *MemoryStore) Exists(ref string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.blobs[ref]
	return ok, nil
}

// Size returns the artifact size in bytes.
func (m *MemoryStore) Size(ref string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[ref]
	if !ok {
		return 0, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
	}
	return int64(len(data)), nil
}

// Delete removes the artifact. Deleting an absent reference is a no-op.
func (m *MemoryStore) Delete(ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, ref)
	return nil
}

// Compile-time check that MemoryStore implements inspect.ArtifactStore.
var _ inspect.ArtifactStore = (*MemoryStore)(nil)
