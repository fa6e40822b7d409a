package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/furnifind/backend/internal/domain"
)

// storedState is a serialized session with expiration
type storedState struct {
	Data       []byte
	Expiration time.Time
}

// MemoryStore is a thread-safe in-memory session store with TTL support
type MemoryStore struct {
	data  map[string]storedState
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a new in-memory store and starts its expiry sweeper
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = 10 * time.Minute
	}

	store := &MemoryStore{
		data: make(map[string]storedState),
		done: make(chan struct{}),
	}

	go store.cleanupExpired(sweepInterval)

	return store
}

// Get retrieves a session; expired or unknown ids are a cache miss
func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	m.mutex.RLock()
	item, exists := m.data[id]
	m.mutex.RUnlock()

	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	// Decode a fresh copy so callers can mutate it freely, as with Redis
	var state domain.SessionState
	if err := json.Unmarshal(item.Data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save stores a session with TTL
func (m *MemoryStore) Save(ctx context.Context, state *domain.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[state.ID] = storedState{
		Data:       data,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.data, id)
	return nil
}

// Exists checks if a session exists and is not expired
func (m *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	item, exists := m.data[id]
	if !exists {
		return false, nil
	}

	return time.Now().Before(item.Expiration), nil
}

// Size returns the number of stored sessions, expired ones included until swept
func (m *MemoryStore) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.data)
}

// Close stops the sweeper
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

// cleanupExpired removes expired sessions periodically
func (m *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := time.Now()
	for id, item := range m.data {
		if now.After(item.Expiration) {
			delete(m.data, id)
		}
	}
}
