//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "dcert/pkg/domain"
	audit "dcert/pkg/platform/audit"
	"dcert/pkg/testutil/containers"
)

func TestKafkaPublisherDeliversEvents(t *testing.T) {
	rp := containers.GetManager().GetRedpanda(t)
	ctx := context.Background()

	const topic = "dcert.audit.test"
	require.NoError(t, rp.CreateTopic(ctx, topic, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher, err := New(Config{
		Brokers:         rp.Broker,
		Topic:           topic,
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, logger)
	require.NoError(t, err)
	defer publisher.Close()

	require.True(t, publisher.Healthy(ctx))

	event := audit.Event{
		Timestamp:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ActorDID:     "did:dcert:iissuer",
		HolderDID:    "did:dcert:palex",
		Action:       audit.ActionCredentialIssued,
		LineageID:    "lineage-1",
		CredentialID: "cred-1",
		Schema:       id.SchemaRef{ID: "diploma", Version: "1.0"},
		RequestID:    "req-1",
	}
	require.NoError(t, publisher.Append(ctx, event))

	consumer, err := rp.NewConsumer("audit-verifier", topic)
	require.NoError(t, err)
	defer consumer.Close()

	record := rp.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == event.ActorDID.String()
	})
	require.NotNil(t, record, "expected the audit event on the topic")

	var got audit.Event
	require.NoError(t, json.Unmarshal(record.Value, &got))
	require.Equal(t, event.Action, got.Action)
	require.Equal(t, event.LineageID, got.LineageID)
	require.Equal(t, event.HolderDID, got.HolderDID)

	require.Len(t, record.Headers, 1)
	require.Equal(t, "action", record.Headers[0].Key)
	require.Equal(t, string(audit.ActionCredentialIssued), string(record.Headers[0].Value))
}

func TestKafkaPublisherClosedAppendFails(t *testing.T) {
	rp := containers.GetManager().GetRedpanda(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher, err := New(Config{Brokers: rp.Broker, Topic: "dcert.audit.test"}, logger)
	require.NoError(t, err)
	require.NoError(t, publisher.Close())

	err = publisher.Append(context.Background(), audit.Event{ActorDID: "did:dcert:iissuer"})
	require.Error(t, err)
}
