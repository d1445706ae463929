// Package presentation assembles signed verifiable presentations from the
// holder's local credential index in response to verifier requirements.
package presentation

import (
	"context"
	"log/slog"

	"dcert/internal/lifecycle/models"
	"dcert/internal/vc"
	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/audit"
	"dcert/pkg/requestcontext"
)

// CredentialSource lists the lineages a holder owns. Satisfied by the
// lifecycle credential index.
type CredentialSource interface {
	ListByHolder(ctx context.Context, holder id.DID) ([]*models.IndexRecord, error)
}

// AuditPublisher records presentation events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Assembler builds and signs presentations for the current session identity.
type Assembler struct {
	identities identity.Provider
	source     CredentialSource

	logger *slog.Logger
	audit  AuditPublisher
}

// Option configures the Assembler.
type Option func(*Assembler)

// WithLogger sets a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithAuditPublisher sets the audit sink.
func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(a *Assembler) {
		a.audit = publisher
	}
}

// New constructs an Assembler.
func New(identities identity.Provider, source CredentialSource, opts ...Option) *Assembler {
	a := &Assembler{identities: identities, source: source}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble selects, for each requirement, the newest live credential matching
// that schema, bundles the selection into a presentation, and signs it with
// the holder's signing key. A requirement with no live match fails the whole
// assembly; a lineage never contributes more than its newest version.
func (a *Assembler) Assemble(ctx context.Context, requirements []id.SchemaRef) (*vc.Presentation, error) {
	if len(requirements) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "at least one requirement is needed")
	}

	ident, err := a.identities.Current(ctx)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	records, err := a.source.ListByHolder(ctx, ident.DID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to list credentials")
	}

	selected := make([]vc.Credential, 0, len(requirements))
	for _, req := range requirements {
		var best *vc.Credential
		for _, rec := range records {
			if !rec.Schema.Equal(req) || rec.Revoked() {
				continue
			}
			cand := rec.Newest()
			if cand == nil {
				continue
			}
			// A credential subject that is not the holder must never be
			// presented, whatever the index claims.
			if cand.CredentialSubject.HolderDID() != ident.DID {
				continue
			}
			if cand.ExpiredAt != nil && cand.ExpiredAt.Before(now) {
				continue
			}
			if best == nil || cand.ValidFrom.After(best.ValidFrom) {
				best = cand
			}
		}
		if best == nil {
			return nil, dErrors.New(dErrors.CodeNoMatchingCredential, "no credential matches "+req.String())
		}
		selected = append(selected, *best)
	}

	vp := &vc.Presentation{
		Context:              []string{vc.CredentialContext},
		Type:                 []string{vc.BasePresentationType},
		Holder:               ident.DID,
		VerifiableCredential: selected,
	}
	if err := vc.SignPresentation(vp, ident.DID, ident.Keys.Signing.Private, now); err != nil {
		return nil, err
	}

	if a.audit != nil {
		if err := a.audit.Emit(ctx, audit.Event{
			ActorDID: ident.DID,
			Action:   audit.ActionPresentationCreated,
		}); err != nil && a.logger != nil {
			a.logger.ErrorContext(ctx, "audit emit failed", "action", audit.ActionPresentationCreated, "error", err)
		}
	}
	if a.logger != nil {
		a.logger.InfoContext(ctx, "presentation assembled",
			"holder", ident.DID,
			"credentials", len(selected),
		)
	}
	return vp, nil
}
