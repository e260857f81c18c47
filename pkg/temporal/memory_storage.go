package temporal

import (
	"context"
	"sync"
)

// MemoryStorageService implements StorageService with an in-memory map,
// used by the demo server and tests.
type MemoryStorageService struct {
	mu       sync.RWMutex
	readings map[string][][]byte // stationID -> raw readings
}

// NewMemoryStorageService creates a new in-memory storage service
func NewMemoryStorageService() *MemoryStorageService {
	return &MemoryStorageService{
		readings: make(map[string][][]byte),
	}
}

// AppendReadings appends readings for a station
func (m *MemoryStorageService) AppendReadings(ctx context.Context, stationID string, readings [][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readings[stationID] = append(m.readings[stationID], readings...)
	return nil
}

// LoadReadings returns all readings stored for a station
func (m *MemoryStorageService) LoadReadings(ctx context.Context, stationID string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, exists := m.readings[stationID]
	if !exists {
		return [][]byte{}, nil
	}

	// Callers must not see later appends through the returned slice
	out := make([][]byte, len(stored))
	copy(out, stored)
	return out, nil
}

// ReadingCount returns the number of readings for a station (for testing)
func (m *MemoryStorageService) ReadingCount(stationID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.readings[stationID])
}
