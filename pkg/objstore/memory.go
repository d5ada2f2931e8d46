package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

// MemoryStore keeps objects in process memory. Presigned URLs point at
// BaseURL and are not servable; it exists for tests and local runs.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: buf.Bytes(), contentType: contentType}
	return nil
}

// Get returns a stored object.
func (m *MemoryStore) Get(key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, "", ErrNotFound
	}
	return obj.data, obj.contentType, nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	expires := time.Now().Add(ttl).Unix()
	return fmt.Sprintf("%s/%s?expires=%d", m.BaseURL, url.PathEscape(key), expires), nil
}
