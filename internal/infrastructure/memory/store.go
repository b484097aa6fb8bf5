// Package memory is a process-local storage adapter used with STORAGE_DRIVER=memory
// and in tests. It enforces the same constraints as the PostgreSQL schema:
// case-insensitive unique device names, unique tracking numbers and
// quotes.device_id ON DELETE RESTRICT.
package memory

import (
	"sync"

	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// Store holds every table behind one lock. Repositories built from the same
// Store see each other's writes.
type Store struct {
	mu sync.RWMutex
	// txMu serializes RunShipments callbacks; it stands in for row locks.
	txMu sync.Mutex

	devices   map[int]entity.Device
	quotes    map[int]entity.Quote
	shipments map[int]entity.Shipment

	nextDeviceID   int
	nextQuoteID    int
	nextShipmentID int

	// calls counts repository calls; tests use it to prove a code path never hit storage.
	calls int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		devices:        make(map[int]entity.Device),
		quotes:         make(map[int]entity.Quote),
		shipments:      make(map[int]entity.Shipment),
		nextDeviceID:   1,
		nextQuoteID:    1,
		nextShipmentID: 1,
	}
}

// Calls reports how many repository operations touched the store.
func (s *Store) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// touch must be called with mu held for writing.
func (s *Store) touch() { s.calls++ }

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
