package repository

import "sync"

// MemoryState is a process-local KeyValue. Values do not survive a restart.
type MemoryState struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ KeyValue = (*MemoryState)(nil)

func NewMemoryState() *MemoryState {
	return &MemoryState{values: make(map[string]string)}
}

func (m *MemoryState) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryState) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryState) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
