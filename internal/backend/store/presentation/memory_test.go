package presentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/sentinel"
)

func TestPendingListIsNewestFirstPerHolder(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, sampleRequest("req-old", "did:dcert:palex", base)))
	require.NoError(t, store.Create(ctx, sampleRequest("req-new", "did:dcert:palex", base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, sampleRequest("req-other", "did:dcert:pmira", base)))

	pending, err := store.ListPendingByHolder(ctx, "did:dcert:palex")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "req-new", pending[0].ID)
	assert.Equal(t, "req-old", pending[1].ID)
}

func TestResolveIsSingleShot(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, sampleRequest("req-1", "did:dcert:palex", now)))

	vp := []byte(`{"type":["VerifiablePresentation"]}`)
	require.NoError(t, store.Resolve(ctx, "req-1", walletapi.PresentationRequestAccepted, vp, now.Add(time.Minute)))

	found, err := store.Find(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, walletapi.PresentationRequestAccepted, found.Status)
	assert.Equal(t, vp, found.Presentation)

	err = store.Resolve(ctx, "req-1", walletapi.PresentationRequestDeclined, nil, now.Add(2*time.Minute))
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)

	err = store.Resolve(ctx, "req-missing", walletapi.PresentationRequestDeclined, nil, now)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	pending, err := store.ListPendingByHolder(ctx, "did:dcert:palex")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func sampleRequest(requestID, holderDID string, createdAt time.Time) models.PresentationRequest {
	return models.PresentationRequest{
		ID:           requestID,
		VerifierDID:  "did:dcert:iverifier",
		HolderDID:    holderDID,
		Requirements: []walletapi.SchemaRequirement{{SchemaID: "diploma", SchemaVersion: "1.0"}},
		Status:       walletapi.PresentationRequestPending,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}
