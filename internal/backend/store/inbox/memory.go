// Package inbox stores encrypted holder notifications, newest first.
package inbox

import (
	"context"
	"sync"

	"dcert/internal/backend/models"
)

// MemoryStore keeps per-holder notification lists in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]models.Notification
}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]models.Notification)}
}

// Append adds a notification to the front of the holder's inbox.
func (s *MemoryStore) Append(ctx context.Context, notification models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.entries[notification.HolderDID]
	s.entries[notification.HolderDID] = append([]models.Notification{notification}, existing...)
	return nil
}

// ListByHolder returns the holder's notifications, newest first.
func (s *MemoryStore) ListByHolder(ctx context.Context, holderDID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := s.entries[holderDID]
	out := make([]models.Notification, len(existing))
	copy(out, existing)
	return out, nil
}

// Clear removes all notifications. Test helper.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]models.Notification)
}
