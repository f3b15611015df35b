package store

import (
	"context"
	"sync"
	"time"

	"sentinel-bot/model"
)

// Memory is a single-process Pending implementation, used when no Redis
// address is configured. It keeps the same consume-once and TTL contract but
// cannot coordinate across instances or survive a restart.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	pending   model.PendingSanction
	expiresAt time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (s *Memory) Create(_ context.Context, key string, pending model.PendingSanction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.entries[key]; ok && now.Before(entry.expiresAt) {
		return ErrAlreadyExists
	}
	s.entries[key] = memoryEntry{
		pending:   pending,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *Memory) Consume(_ context.Context, key string) (model.PendingSanction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return model.PendingSanction{}, ErrNotFound
	}
	delete(s.entries, key)
	if !time.Now().Before(entry.expiresAt) {
		return model.PendingSanction{}, ErrNotFound
	}
	return entry.pending, nil
}

// Sweep drops expired entries. The bot scheduler calls it periodically;
// Consume also rejects expired entries lazily, so Sweep only bounds memory.
func (s *Memory) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
