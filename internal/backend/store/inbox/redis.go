package inbox

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"dcert/internal/backend/models"
)

const inboxKeyPrefix = "dcert:inbox:"

// RedisStore keeps per-holder notification lists in Redis so inboxes survive
// backend restarts. Each inbox is a list with the newest notification at the
// head. The client lifecycle is managed externally.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Append adds a notification to the front of the holder's inbox.
func (s *RedisStore) Append(ctx context.Context, notification models.Notification) error {
	raw, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return s.client.LPush(ctx, inboxKeyPrefix+notification.HolderDID, raw).Err()
}

// ListByHolder returns the holder's notifications, newest first.
func (s *RedisStore) ListByHolder(ctx context.Context, holderDID string) ([]models.Notification, error) {
	entries, err := s.client.LRange(ctx, inboxKeyPrefix+holderDID, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(entries))
	for _, raw := range entries {
		var notification models.Notification
		if err := json.Unmarshal([]byte(raw), &notification); err != nil {
			return nil, err
		}
		out = append(out, notification)
	}
	return out, nil
}
