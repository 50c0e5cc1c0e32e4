package session

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store for tests and throwaway sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string]map[string][]byte{}}
}

func (m *MemoryStore) Put(_ context.Context, sessionID, slot string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slots[sessionID] == nil {
		m.slots[sessionID] = map[string][]byte{}
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	m.slots[sessionID][slot] = cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.slots[sessionID][slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (m *MemoryStore) List(_ context.Context, sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	for slot := range m.slots[sessionID] {
		names = append(names, slot)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryStore) Close() error { return nil }
