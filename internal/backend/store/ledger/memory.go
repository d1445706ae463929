// Package ledger stores issuer-side ledger records keyed by lineage id.
package ledger

import (
	"context"
	"sync"
	"time"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/sentinel"
)

// MemoryStore is an in-memory ledger store for tests and single-node runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.LedgerRecord
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.LedgerRecord)}
}

// Create inserts a new record. A duplicate lineage id is a conflict.
func (s *MemoryStore) Create(ctx context.Context, record models.LedgerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.LineageID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.LineageID] = record
	return nil
}

// Update replaces the envelope and content hash of an existing record.
// Last writer wins.
func (s *MemoryStore) Update(ctx context.Context, lineageID string, envelope walletapi.EncryptedEnvelope, contentHash string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.records[lineageID]
	if !ok {
		return sentinel.ErrNotFound
	}
	existing.Envelope = envelope
	existing.ContentHash = contentHash
	existing.UpdatedAt = updatedAt
	s.records[lineageID] = existing
	return nil
}

// Find returns the record for a lineage id.
func (s *MemoryStore) Find(ctx context.Context, lineageID string) (*models.LedgerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[lineageID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := record
	return &out, nil
}

// Clear removes all records. Test helper.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]models.LedgerRecord)
}
