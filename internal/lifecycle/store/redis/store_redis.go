// Package redis is the Redis-backed credential index for wallets whose local
// state must survive process restarts or be shared across instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"dcert/internal/lifecycle/models"
	id "dcert/pkg/domain"
	"dcert/pkg/platform/sentinel"
)

const (
	lineageKeyPrefix = "dcert:lineage:"
	holderKeyPrefix  = "dcert:holder:"
	intentsKey       = "dcert:intents"
)

// Store is a Redis-backed CredentialIndex. Records are stored as JSON under
// a per-lineage key, with a per-holder set for listing. The client lifecycle
// is managed externally.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Save(ctx context.Context, rec *models.IndexRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, lineageKeyPrefix+string(rec.LineageID), raw, 0)
	pipe.SAdd(ctx, holderKeyPrefix+rec.HolderDID.String(), string(rec.LineageID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) FindByLineage(ctx context.Context, lineageID id.LineageID) (*models.IndexRecord, error) {
	raw, err := s.client.Get(ctx, lineageKeyPrefix+string(lineageID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec models.IndexRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ListByHolder(ctx context.Context, holder id.DID) ([]*models.IndexRecord, error) {
	lineages, err := s.client.SMembers(ctx, holderKeyPrefix+holder.String()).Result()
	if err != nil {
		return nil, err
	}
	var out []*models.IndexRecord
	for _, lineage := range lineages {
		rec, err := s.FindByLineage(ctx, id.LineageID(lineage))
		if errors.Is(err, sentinel.ErrNotFound) {
			// Set member without a record: skip rather than fail the listing.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) SaveIntent(ctx context.Context, intent *models.TransitionIntent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, intentsKey, intent.ID, raw).Err()
}

func (s *Store) ClearIntent(ctx context.Context, intentID string) error {
	return s.client.HDel(ctx, intentsKey, intentID).Err()
}

func (s *Store) PendingIntents(ctx context.Context) ([]*models.TransitionIntent, error) {
	entries, err := s.client.HGetAll(ctx, intentsKey).Result()
	if err != nil {
		return nil, err
	}
	var out []*models.TransitionIntent
	for _, raw := range entries {
		var intent models.TransitionIntent
		if err := json.Unmarshal([]byte(raw), &intent); err != nil {
			return nil, err
		}
		out = append(out, &intent)
	}
	return out, nil
}
