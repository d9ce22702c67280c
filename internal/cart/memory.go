package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/el-receso/cafeteria-service/internal/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-process cart store. Suitable for single-node
// deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates a memory-backed cart store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cart for a session, or an empty cart if none exists
// or the stored one has expired.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return &models.Cart{}, nil
	}

	var c models.Cart
	if err := json.Unmarshal(entry.data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes the cart for a session and refreshes its TTL.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, c *models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes a session's cart. Idempotent.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}
