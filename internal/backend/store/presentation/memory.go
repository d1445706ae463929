// Package presentation stores verifier presentation requests and their outcomes.
package presentation

import (
	"context"
	"sort"
	"sync"
	"time"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/sentinel"
)

// MemoryStore keeps presentation requests in memory keyed by request id.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string]models.PresentationRequest
}

func NewMemory() *MemoryStore {
	return &MemoryStore{requests: make(map[string]models.PresentationRequest)}
}

// Create records a new pending request.
func (s *MemoryStore) Create(ctx context.Context, request models.PresentationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[request.ID]; exists {
		return sentinel.ErrConflict
	}
	s.requests[request.ID] = request
	return nil
}

// Find returns the request by id.
func (s *MemoryStore) Find(ctx context.Context, requestID string) (*models.PresentationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := request
	return &out, nil
}

// ListPendingByHolder returns the holder's pending requests, newest first.
func (s *MemoryStore) ListPendingByHolder(ctx context.Context, holderDID string) ([]models.PresentationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.PresentationRequest
	for _, request := range s.requests {
		if request.HolderDID == holderDID && request.Status == walletapi.PresentationRequestPending {
			out = append(out, request)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Resolve moves a pending request to accepted or declined. Accepting stores
// the submitted presentation. Resolving a non-pending request is an invalid
// state transition.
func (s *MemoryStore) Resolve(ctx context.Context, requestID string, status string, presentation []byte, resolvedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if request.Status != walletapi.PresentationRequestPending {
		return sentinel.ErrInvalidState
	}
	request.Status = status
	request.Presentation = presentation
	request.UpdatedAt = resolvedAt
	s.requests[requestID] = request
	return nil
}
