package storage

import (
	"context"
	"sync"

	"github.com/roomly/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory blob store. State is lost on
// restart; it exists for tests and for running without persistence.
type MemoryStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

// NewMemoryStore creates a new in-memory blob store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// Load retrieves a blob by key
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, exists := s.data[key]
	if !exists {
		return nil, domain.ErrBlobNotFound
	}

	// Copy so callers cannot mutate the stored blob
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores a blob under a key, replacing any previous value
func (s *MemoryStore) Save(ctx context.Context, key string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[key] = stored
	return nil
}

// Delete removes a blob
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Exists checks if a key is present
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, exists := s.data[key]
	return exists, nil
}

// Size returns the current number of blobs (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
