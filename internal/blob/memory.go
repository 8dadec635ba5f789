package blob

import (
	"context"
	"fmt"
	"sync"
)

// ErrNotFound is returned when an object key is not present in the store.
var ErrNotFound = fmt.Errorf("blob: object not found")

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore implements Store in process memory. Objects live only for the
// lifetime of the server. Used when no object storage is configured so photo
// download still works.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) PutObject(ctx context.Context, key string, data []byte, contentType string) (int64, error) {
	_ = ctx

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = memoryObject{data: buf, contentType: contentType}
	s.mu.Unlock()

	return int64(len(data)), nil
}

func (s *MemoryStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	_ = ctx

	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	return buf, nil
}

// PresignGet is not meaningful for in-memory objects; callers should serve
// bytes directly via GetObject.
func (s *MemoryStore) PresignGet(ctx context.Context, key string, ttlSeconds int) (string, error) {
	return "", fmt.Errorf("presign not supported by memory store")
}

func (s *MemoryStore) DeleteObject(ctx context.Context, key string) error {
	_ = ctx

	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// ContentType returns the stored content type for a key, or "" when absent.
func (s *MemoryStore) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[key].contentType
}
