package draft

import (
	"context"
	"sync"
	"time"

	"wheelhub-backend/internal/domain"
)

type memoryEntry struct {
	draft     domain.RentalDraft
	expiresAt time.Time
}

// MemoryStore keeps drafts in process. Drafts do not survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, key string, d *domain.RentalDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{draft: *d}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.slots[key] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, key string) (*domain.RentalDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.slots, key)
		return nil, nil
	}
	d := entry.draft
	return &d, nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
