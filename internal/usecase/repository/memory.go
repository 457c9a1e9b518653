package repository

import (
	"context"
	"sync"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend keeps records in process memory. Values are copied in and out.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[int64][]byte
}

func NewMemoryBackend(seed map[int64][]byte) *MemoryBackend {
	m := &MemoryBackend{records: make(map[int64][]byte, len(seed))}
	for id, data := range seed {
		m.records[id] = clone(data)
	}
	return m
}

func (m *MemoryBackend) Read(_ context.Context, id int64) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return clone(data), nil
}

func (m *MemoryBackend) ReadAll(_ context.Context) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([][]byte, 0, len(m.records))
	for _, data := range m.records {
		result = append(result, clone(data))
	}
	return result, nil
}

func (m *MemoryBackend) Write(_ context.Context, id int64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = clone(data)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.records[id]
	delete(m.records, id)
	return ok, nil
}

func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

func clone(data []byte) []byte {
	result := make([]byte, len(data))
	copy(result, data)
	return result
}
