package blob

import (
	"context"
	"sync"

	"memearena/contexts/meme-arena/meme-feed/ports"
)

// MemoryStore keeps blobs in a map. Test double for DiskStore.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "http://blob.test"
	}
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		buf := make([]byte, len(data))
		copy(buf, data)
		s.objects[key] = buf
	}
	return s.baseURL + "/media/" + key, nil
}

// Get returns a stored blob. Test helper.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len reports the number of stored blobs. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ ports.BlobStore = (*MemoryStore)(nil)
