// Package memory is the in-process credential index: one record per lineage
// plus the transition intent journal. Suitable for tests and single-process
// wallets; the redis sibling covers shared deployments.
package memory

import (
	"context"
	"sync"

	"dcert/internal/lifecycle/models"
	"dcert/internal/vc"
	id "dcert/pkg/domain"
	"dcert/pkg/platform/sentinel"
)

type Store struct {
	mu      sync.RWMutex
	records map[id.LineageID]*models.IndexRecord
	intents map[string]*models.TransitionIntent
}

func New() *Store {
	return &Store{
		records: make(map[id.LineageID]*models.IndexRecord),
		intents: make(map[string]*models.TransitionIntent),
	}
}

func (s *Store) Save(_ context.Context, rec *models.IndexRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.LineageID] = cloneRecord(rec)
	return nil
}

func (s *Store) FindByLineage(_ context.Context, lineageID id.LineageID) (*models.IndexRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[lineageID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *Store) ListByHolder(_ context.Context, holder id.DID) ([]*models.IndexRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.IndexRecord
	for _, rec := range s.records {
		if rec.HolderDID == holder {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (s *Store) SaveIntent(_ context.Context, intent *models.TransitionIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *intent
	s.intents[intent.ID] = &cp
	return nil
}

func (s *Store) ClearIntent(_ context.Context, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.intents, intentID)
	return nil
}

func (s *Store) PendingIntents(_ context.Context) ([]*models.TransitionIntent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TransitionIntent
	for _, intent := range s.intents {
		cp := *intent
		out = append(out, &cp)
	}
	return out, nil
}

// cloneRecord copies the record and its history slice so callers can't
// mutate stored state through returned pointers.
func cloneRecord(rec *models.IndexRecord) *models.IndexRecord {
	cp := *rec
	cp.History = append([]vc.Credential(nil), rec.History...)
	return &cp
}
