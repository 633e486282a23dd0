package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It backs tests and ephemeral runs
// where durability across restarts is not needed.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[name]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *Memory) Set(_ context.Context, name string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	m.mu.Lock()
	m.data[name] = cp
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.data, name)
	m.mu.Unlock()
	return nil
}
