package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps markers in process memory, encoded the same way the
// Redis store encodes them.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (*Marker, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()

	if !ok {
		return nil, nil
	}
	return decode(raw)
}

func (m *MemoryStore) Save(_ context.Context, key string, marker Marker) error {
	if key == "" {
		return fmt.Errorf("session: missing client key")
	}

	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Put stores raw bytes under key. Tests use it to plant damaged markers.
func (m *MemoryStore) Put(key string, raw []byte) {
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
}

func decode(raw []byte) (*Marker, error) {
	var m Marker
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMarker, err)
	}
	if m.Identity.ID == "" || !m.Identity.Role.Valid() {
		return nil, fmt.Errorf("%w: incomplete identity", ErrCorruptMarker)
	}
	return &m, nil
}
