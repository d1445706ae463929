package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"dcert/contracts/walletapi"
	"dcert/internal/lifecycle/models"
	"dcert/internal/lifecycle/tracer"
	"dcert/internal/vc"
	"dcert/internal/wallet/crypt"
	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/audit"
	"dcert/pkg/platform/sentinel"
	"dcert/pkg/requestcontext"
)

// IssueParams describe the first version of a new lineage.
type IssueParams struct {
	Schema         id.SchemaRef
	CredentialType string
	HolderDID      id.DID
	Attributes     map[string]any
	ExpiredAt      *time.Time
	ImageLink      string
}

// Issue creates a new lineage: builds and signs version 1, encrypts the
// holder notice and the issuer ledger record, notifies the holder, creates
// the ledger record, and mirrors the lineage into the local index. All
// cryptographic material is resolved before the first network write.
func (s *Service) Issue(ctx context.Context, p IssueParams) (*models.IndexRecord, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanIssue, tracer.String(tracer.AttrSchemaID, p.Schema.ID))
	var err error
	defer func() { span.End(err) }()

	ident, err := s.identities.Current(ctx)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	cred, err := vc.New(vc.BuildParams{
		Schema:         p.Schema,
		CredentialType: p.CredentialType,
		Issuer:         vc.Issuer{ID: ident.DID, Name: ident.Name},
		HolderDID:      p.HolderDID,
		Attributes:     p.Attributes,
		ValidFrom:      now,
		ExpiredAt:      p.ExpiredAt,
		ImageLink:      p.ImageLink,
	})
	if err != nil {
		return nil, err
	}
	if err = vc.SignCredential(cred, ident.DID, ident.Keys.Signing.Private, now); err != nil {
		return nil, err
	}
	contentHash, err := vc.HashCredential(cred)
	if err != nil {
		return nil, err
	}

	lineageID := id.LineageID(cred.ID)
	span.SetAttributes(tracer.String(tracer.AttrLineageID, string(lineageID)))

	record := models.LedgerRecord{VCStatus: true, VerifiableCredentials: []vc.Credential{*cred}}
	noticeEnv, recordEnv, err := s.encryptTransition(ctx, p.HolderDID, ident, models.NewHolderIssueNotice(*cred), record)
	if err != nil {
		return nil, err
	}

	intent := s.newIntent(models.TransitionIssue, lineageID, now)
	if err = s.index.SaveIntent(ctx, intent); err != nil {
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to journal issue intent")
		return nil, err
	}

	if err = s.notifier.Notify(ctx, walletapi.NotifyRequest{
		HolderDID: p.HolderDID.String(),
		Kind:      walletapi.NoticeKindIssue,
		Envelope:  models.WireEnvelope(*noticeEnv),
	}); err != nil {
		s.incrementTransitionFailure(models.TransitionIssue)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to notify holder")
		return nil, err
	}
	span.AddEvent(tracer.EventHolderNotified)

	if err = s.ledger.CreateRecord(ctx, walletapi.CreateLedgerRecordRequest{
		LineageID:   string(lineageID),
		HolderDID:   p.HolderDID.String(),
		Envelope:    models.WireEnvelope(*recordEnv),
		ContentHash: contentHash,
	}); err != nil {
		s.incrementTransitionFailure(models.TransitionIssue)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to create ledger record")
		return nil, err
	}
	span.AddEvent(tracer.EventLedgerWritten)

	rec := &models.IndexRecord{
		LineageID: lineageID,
		Schema:    p.Schema,
		HolderDID: p.HolderDID,
		VCStatus:  true,
		History:   []vc.Credential{*cred},
		UpdatedAt: now,
	}
	if err = s.mirror(ctx, rec, intent); err != nil {
		return nil, err
	}
	span.AddEvent(tracer.EventIndexMirrored)

	s.emitAudit(ctx, audit.Event{
		ActorDID:     ident.DID,
		HolderDID:    p.HolderDID,
		Action:       audit.ActionCredentialIssued,
		LineageID:    lineageID,
		CredentialID: cred.ID,
		Schema:       p.Schema,
	})
	s.incrementTransition(models.TransitionIssue)
	if s.metrics != nil {
		s.metrics.ObserveIssue(start)
	}
	s.logTransition(ctx, models.TransitionIssue, lineageID, cred.ID)
	return rec, nil
}

// Update issues the next version of a lineage with modified attributes. The
// full history, newest first, is re-encrypted and replaces the ledger record;
// the local index is only touched after the ledger write succeeds.
func (s *Service) Update(ctx context.Context, lineageID id.LineageID, attributes map[string]any) (*models.IndexRecord, error) {
	return s.supersede(ctx, models.TransitionUpdate, lineageID, func(old *vc.Credential) (map[string]any, *time.Time) {
		return attributes, old.ExpiredAt
	})
}

// Renew issues the next version of a lineage with unchanged attributes and a
// new expiry. newExpiry nil makes the renewed version non-expiring.
func (s *Service) Renew(ctx context.Context, lineageID id.LineageID, newExpiry *time.Time) (*models.IndexRecord, error) {
	return s.supersede(ctx, models.TransitionRenew, lineageID, func(old *vc.Credential) (map[string]any, *time.Time) {
		return old.CredentialSubject.Attributes(), newExpiry
	})
}

// supersede implements Update and Renew: both prepend a freshly signed
// version to the history, differing only in what changes between versions.
func (s *Service) supersede(ctx context.Context, kind models.TransitionKind, lineageID id.LineageID, next func(old *vc.Credential) (map[string]any, *time.Time)) (*models.IndexRecord, error) {
	start := time.Now()
	spanName := tracer.SpanUpdate
	if kind == models.TransitionRenew {
		spanName = tracer.SpanRenew
	}
	ctx, span := s.tracer.Start(ctx, spanName, tracer.String(tracer.AttrLineageID, string(lineageID)))
	var err error
	defer func() { span.End(err) }()

	ident, err := s.identities.Current(ctx)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	current, err := s.loadLiveLineage(ctx, lineageID)
	if err != nil {
		return nil, err
	}
	old := current.Newest()
	if old == nil {
		err = dErrors.New(dErrors.CodeInvariantViolation, "lineage has an empty history")
		return nil, err
	}

	attributes, expiry := next(old)
	cred, err := vc.New(vc.BuildParams{
		Schema:         current.Schema,
		CredentialType: specificType(old),
		Issuer:         vc.Issuer{ID: ident.DID, Name: ident.Name},
		HolderDID:      current.HolderDID,
		Attributes:     attributes,
		ValidFrom:      now,
		ExpiredAt:      expiry,
		ImageLink:      old.ImageLink,
	})
	if err != nil {
		return nil, err
	}
	if err = vc.SignCredential(cred, ident.DID, ident.Keys.Signing.Private, now); err != nil {
		return nil, err
	}
	contentHash, err := vc.HashCredential(cred)
	if err != nil {
		return nil, err
	}

	record := models.LedgerRecord{VCStatus: true, VerifiableCredentials: current.History}
	record.Prepend(*cred)
	notice := models.NewHolderUpdateNotice(old.CredentialID(), *cred)
	noticeEnv, recordEnv, err := s.encryptTransition(ctx, current.HolderDID, ident, notice, record)
	if err != nil {
		return nil, err
	}

	intent := s.newIntent(kind, lineageID, now)
	if err = s.index.SaveIntent(ctx, intent); err != nil {
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to journal transition intent")
		return nil, err
	}

	if err = s.notifier.Notify(ctx, walletapi.NotifyRequest{
		HolderDID: current.HolderDID.String(),
		Kind:      walletapi.NoticeKindUpdate,
		Envelope:  models.WireEnvelope(*noticeEnv),
	}); err != nil {
		s.incrementTransitionFailure(kind)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to notify holder")
		return nil, err
	}
	span.AddEvent(tracer.EventHolderNotified)

	if err = s.ledger.UpdateRecord(ctx, lineageID, walletapi.UpdateLedgerRecordRequest{
		Envelope:    models.WireEnvelope(*recordEnv),
		ContentHash: contentHash,
	}); err != nil {
		s.incrementTransitionFailure(kind)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to update ledger record")
		return nil, err
	}
	span.AddEvent(tracer.EventLedgerWritten)
	span.SetAttributes(tracer.Int64(tracer.AttrHistoryLength, int64(len(record.VerifiableCredentials))))

	rec := &models.IndexRecord{
		LineageID: lineageID,
		Schema:    current.Schema,
		HolderDID: current.HolderDID,
		VCStatus:  true,
		History:   record.VerifiableCredentials,
		UpdatedAt: now,
	}
	if err = s.mirror(ctx, rec, intent); err != nil {
		return nil, err
	}
	span.AddEvent(tracer.EventIndexMirrored)

	action := audit.ActionCredentialUpdated
	if kind == models.TransitionRenew {
		action = audit.ActionCredentialRenewed
	}
	s.emitAudit(ctx, audit.Event{
		ActorDID:     ident.DID,
		HolderDID:    current.HolderDID,
		Action:       action,
		LineageID:    lineageID,
		CredentialID: cred.ID,
		Schema:       current.Schema,
	})
	s.incrementTransition(kind)
	if s.metrics != nil {
		s.metrics.ObserveUpdate(start)
	}
	s.logTransition(ctx, kind, lineageID, cred.ID)
	return rec, nil
}

// Revoke terminally kills a lineage. No new version is created: the existing
// history is re-encrypted with vc_status=false and the holder is told which
// credential died. A revoked lineage accepts no further transitions.
func (s *Service) Revoke(ctx context.Context, lineageID id.LineageID) (*models.IndexRecord, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanRevoke, tracer.String(tracer.AttrLineageID, string(lineageID)))
	var err error
	defer func() { span.End(err) }()

	ident, err := s.identities.Current(ctx)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	current, err := s.loadLiveLineage(ctx, lineageID)
	if err != nil {
		return nil, err
	}
	newest := current.Newest()
	if newest == nil {
		err = dErrors.New(dErrors.CodeInvariantViolation, "lineage has an empty history")
		return nil, err
	}

	record := models.LedgerRecord{VCStatus: false, VerifiableCredentials: current.History}
	contentHash, err := vc.HashCredential(newest)
	if err != nil {
		return nil, err
	}
	notice := models.NewHolderRevokeNotice(newest.CredentialID())
	noticeEnv, recordEnv, err := s.encryptTransition(ctx, current.HolderDID, ident, notice, record)
	if err != nil {
		return nil, err
	}

	intent := s.newIntent(models.TransitionRevoke, lineageID, now)
	if err = s.index.SaveIntent(ctx, intent); err != nil {
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to journal revoke intent")
		return nil, err
	}

	if err = s.notifier.Notify(ctx, walletapi.NotifyRequest{
		HolderDID: current.HolderDID.String(),
		Kind:      walletapi.NoticeKindRevoke,
		Envelope:  models.WireEnvelope(*noticeEnv),
	}); err != nil {
		s.incrementTransitionFailure(models.TransitionRevoke)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to notify holder")
		return nil, err
	}
	span.AddEvent(tracer.EventHolderNotified)

	if err = s.ledger.UpdateRecord(ctx, lineageID, walletapi.UpdateLedgerRecordRequest{
		Envelope:    models.WireEnvelope(*recordEnv),
		ContentHash: contentHash,
	}); err != nil {
		s.incrementTransitionFailure(models.TransitionRevoke)
		err = dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to update ledger record")
		return nil, err
	}
	span.AddEvent(tracer.EventLedgerWritten)

	rec := &models.IndexRecord{
		LineageID: lineageID,
		Schema:    current.Schema,
		HolderDID: current.HolderDID,
		VCStatus:  false,
		History:   current.History,
		UpdatedAt: now,
	}
	if err = s.mirror(ctx, rec, intent); err != nil {
		return nil, err
	}
	span.AddEvent(tracer.EventIndexMirrored)

	s.emitAudit(ctx, audit.Event{
		ActorDID:     ident.DID,
		HolderDID:    current.HolderDID,
		Action:       audit.ActionCredentialRevoked,
		LineageID:    lineageID,
		CredentialID: newest.ID,
		Schema:       current.Schema,
	})
	s.incrementTransition(models.TransitionRevoke)
	if s.metrics != nil {
		s.metrics.ObserveRevoke(start)
	}
	s.logTransition(ctx, models.TransitionRevoke, lineageID, newest.ID)
	return rec, nil
}

// LineageStatus fetches the authoritative ledger record, decrypts it with the
// issuer's own key, and returns its vc_status and history.
func (s *Service) LineageStatus(ctx context.Context, lineageID id.LineageID) (*models.LedgerRecord, error) {
	ident, err := s.identities.Current(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := s.ledger.GetRecord(ctx, lineageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "lineage not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to fetch ledger record")
	}

	env := models.EnvelopeFromWire(resp.Envelope)
	var record models.LedgerRecord
	if err := crypt.Decrypt(&env, ident.Keys.Identifier.Private, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PendingIntents lists transitions that were journaled but never completed.
// Callers decide how to reconcile them; the service performs no automatic
// retry or rollback.
func (s *Service) PendingIntents(ctx context.Context) ([]*models.TransitionIntent, error) {
	return s.index.PendingIntents(ctx)
}

// loadLiveLineage fetches a lineage from the local index and enforces the
// revocation guard: revoked lineages reject every further transition.
func (s *Service) loadLiveLineage(ctx context.Context, lineageID id.LineageID) (*models.IndexRecord, error) {
	rec, err := s.index.FindByLineage(ctx, lineageID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "lineage not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to load lineage")
	}
	if rec.Revoked() {
		return nil, dErrors.New(dErrors.CodeLineageRevoked, "lineage is revoked")
	}
	return rec, nil
}

// encryptTransition seals the holder notice under the holder's agreement key
// (resolved from their DID document) and the ledger record under the issuer's
// own identifier key.
func (s *Service) encryptTransition(ctx context.Context, holder id.DID, ident *identity.Identity, notice any, record models.LedgerRecord) (*crypt.Envelope, *crypt.Envelope, error) {
	doc, err := s.resolver.Resolve(ctx, holder)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeEncryptionFailed, "failed to resolve holder DID document")
	}
	holderKeyHex, err := doc.AgreementKeyHex()
	if err != nil {
		return nil, nil, err
	}

	noticeEnv, err := crypt.Encrypt(notice, holderKeyHex)
	if err != nil {
		return nil, nil, err
	}
	recordEnv, err := crypt.Encrypt(record, ident.Keys.Identifier.PublicKeyHex())
	if err != nil {
		return nil, nil, err
	}
	return noticeEnv, recordEnv, nil
}

// mirror writes the local index record and clears the transition intent.
func (s *Service) mirror(ctx context.Context, rec *models.IndexRecord, intent *models.TransitionIntent) error {
	if err := s.index.Save(ctx, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to mirror lineage into local index")
	}
	if err := s.index.ClearIntent(ctx, intent.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodePersistenceFailed, "failed to clear transition intent")
	}
	return nil
}

func (s *Service) newIntent(kind models.TransitionKind, lineageID id.LineageID, now time.Time) *models.TransitionIntent {
	return &models.TransitionIntent{
		ID:        uuid.NewString(),
		Kind:      kind,
		LineageID: lineageID,
		StartedAt: now,
	}
}

func (s *Service) logTransition(ctx context.Context, kind models.TransitionKind, lineageID id.LineageID, credentialID string) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, "lifecycle transition completed",
		"kind", kind,
		"lineage_id", lineageID,
		"credential_id", credentialID,
	)
}

// specificType returns the concrete type tag of a credential, skipping the
// base VerifiableCredential entry.
func specificType(c *vc.Credential) string {
	for i := len(c.Type) - 1; i >= 0; i-- {
		if c.Type[i] != vc.BaseCredentialType {
			return c.Type[i]
		}
	}
	return ""
}
