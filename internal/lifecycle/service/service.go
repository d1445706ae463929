// Package service orchestrates credential lifecycle transitions: issue,
// update, renew, and revoke. Every transition signs and encrypts locally,
// notifies the holder, writes the issuer ledger record, and only then mirrors
// the result into the local index.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"

	"dcert/contracts/walletapi"
	lifecyclemetrics "dcert/internal/lifecycle/metrics"
	"dcert/internal/lifecycle/models"
	"dcert/internal/lifecycle/tracer"
	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	"dcert/pkg/platform/audit"
)

// LedgerAPI is the issuer-side record store exposed by the backend.
type LedgerAPI interface {
	CreateRecord(ctx context.Context, req walletapi.CreateLedgerRecordRequest) error
	UpdateRecord(ctx context.Context, lineageID id.LineageID, req walletapi.UpdateLedgerRecordRequest) error
	GetRecord(ctx context.Context, lineageID id.LineageID) (*walletapi.LedgerRecordResponse, error)
}

// NotificationAPI delivers encrypted notices to holder inboxes.
type NotificationAPI interface {
	Notify(ctx context.Context, req walletapi.NotifyRequest) error
}

// CredentialIndex is the wallet's local mirror of issued lineages plus the
// transition intent journal.
type CredentialIndex interface {
	Save(ctx context.Context, rec *models.IndexRecord) error
	FindByLineage(ctx context.Context, lineageID id.LineageID) (*models.IndexRecord, error)
	ListByHolder(ctx context.Context, holder id.DID) ([]*models.IndexRecord, error)

	SaveIntent(ctx context.Context, intent *models.TransitionIntent) error
	ClearIntent(ctx context.Context, intentID string) error
	PendingIntents(ctx context.Context) ([]*models.TransitionIntent, error)
}

// AuditPublisher records lifecycle transitions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates credential lifecycle management.
type Service struct {
	identities identity.Provider
	resolver   identity.Resolver
	ledger     LedgerAPI
	notifier   NotificationAPI
	index      CredentialIndex

	logger  *slog.Logger
	audit   AuditPublisher
	metrics *lifecyclemetrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for transition reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditPublisher sets the audit sink.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *lifecyclemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(identities identity.Provider, resolver identity.Resolver, ledger LedgerAPI, notifier NotificationAPI, index CredentialIndex, opts ...Option) *Service {
	s := &Service{
		identities: identities,
		resolver:   resolver,
		ledger:     ledger,
		notifier:   notifier,
		index:      index,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"lineage_id", event.LineageID,
			"error", err,
		)
	}
}

func (s *Service) incrementTransition(kind models.TransitionKind) {
	if s.metrics != nil {
		s.metrics.IncrementTransition(string(kind))
	}
}

func (s *Service) incrementTransitionFailure(kind models.TransitionKind) {
	if s.metrics != nil {
		s.metrics.IncrementTransitionFailure(string(kind))
	}
}
