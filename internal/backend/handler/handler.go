// Package handler exposes the backend collaborator's HTTP surface: ledger
// records, holder inboxes, the DID document registry, and presentation
// requests. The backend stores opaque envelopes; it never holds key material.
package handler

import (
	"context"
	"log/slog"
	"time"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/audit"
)

// LedgerStore persists issuer-side ledger records.
type LedgerStore interface {
	Create(ctx context.Context, record models.LedgerRecord) error
	Update(ctx context.Context, lineageID string, envelope walletapi.EncryptedEnvelope, contentHash string, updatedAt time.Time) error
	Find(ctx context.Context, lineageID string) (*models.LedgerRecord, error)
}

// InboxStore persists holder notifications.
type InboxStore interface {
	Append(ctx context.Context, notification models.Notification) error
	ListByHolder(ctx context.Context, holderDID string) ([]models.Notification, error)
}

// RegistryStore persists published DID documents.
type RegistryStore interface {
	Put(ctx context.Context, did string, document walletapi.DIDDocument) error
	Get(ctx context.Context, did string) (*walletapi.DIDDocument, error)
}

// PresentationStore persists verifier presentation requests.
type PresentationStore interface {
	Create(ctx context.Context, request models.PresentationRequest) error
	Find(ctx context.Context, requestID string) (*models.PresentationRequest, error)
	ListPendingByHolder(ctx context.Context, holderDID string) ([]models.PresentationRequest, error)
	Resolve(ctx context.Context, requestID string, status string, presentation []byte, resolvedAt time.Time) error
}

// Handler carries the stores and logger shared by all endpoints.
type Handler struct {
	ledger        LedgerStore
	inbox         InboxStore
	registry      RegistryStore
	presentations PresentationStore
	logger        *slog.Logger
	auditor       *audit.Publisher
}

// Option configures optional handler collaborators.
type Option func(*Handler)

// WithAudit attaches an audit trail for backend write operations.
func WithAudit(auditor *audit.Publisher) Option {
	return func(h *Handler) { h.auditor = auditor }
}

func New(ledger LedgerStore, inbox InboxStore, registry RegistryStore, presentations PresentationStore, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		ledger:        ledger,
		inbox:         inbox,
		registry:      registry,
		presentations: presentations,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// audit records a backend event. The trail is best effort: a failing sink is
// logged but never fails the request that already committed.
func (h *Handler) audit(ctx context.Context, event audit.Event) {
	if h.auditor == nil {
		return
	}
	if err := h.auditor.Emit(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
