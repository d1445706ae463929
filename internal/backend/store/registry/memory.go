// Package registry stores published DID documents.
package registry

import (
	"context"
	"sync"

	"dcert/contracts/walletapi"
	"dcert/pkg/platform/sentinel"
)

// MemoryStore keeps DID documents in memory keyed by DID.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]walletapi.DIDDocument
}

func NewMemory() *MemoryStore {
	return &MemoryStore{documents: make(map[string]walletapi.DIDDocument)}
}

// Put publishes or replaces the document for a DID.
func (s *MemoryStore) Put(ctx context.Context, did string, document walletapi.DIDDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[did] = document
	return nil
}

// Get returns the published document for a DID.
func (s *MemoryStore) Get(ctx context.Context, did string) (*walletapi.DIDDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	document, ok := s.documents[did]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := document
	return &out, nil
}
