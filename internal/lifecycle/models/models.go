// Package models defines the encrypted payloads and local index records the
// lifecycle manager moves between the wallet, the backend, and the holder.
package models

import (
	"encoding/json"
	"time"

	"dcert/contracts/walletapi"
	"dcert/internal/vc"
	"dcert/internal/wallet/crypt"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

// HolderIssueNotice carries a freshly issued credential, encrypted under the
// holder's identifier key.
type HolderIssueNotice struct {
	Kind       walletapi.NoticeKind `json:"kind"`
	Credential vc.Credential        `json:"credential"`
}

func NewHolderIssueNotice(cred vc.Credential) HolderIssueNotice {
	return HolderIssueNotice{Kind: walletapi.NoticeKindIssue, Credential: cred}
}

// HolderUpdateNotice carries the replacement version plus the id it replaces,
// so the holder can retire the superseded copy.
type HolderUpdateNotice struct {
	Kind            walletapi.NoticeKind `json:"kind"`
	OldCredentialID id.CredentialID      `json:"old_credential_id"`
	Credential      vc.Credential        `json:"credential"`
}

func NewHolderUpdateNotice(oldID id.CredentialID, cred vc.Credential) HolderUpdateNotice {
	return HolderUpdateNotice{Kind: walletapi.NoticeKindUpdate, OldCredentialID: oldID, Credential: cred}
}

// HolderRevokeNotice tells the holder the lineage is dead. It names the
// newest version; no credential material travels with it.
type HolderRevokeNotice struct {
	Kind         walletapi.NoticeKind `json:"kind"`
	CredentialID id.CredentialID      `json:"credential_id"`
}

func NewHolderRevokeNotice(credID id.CredentialID) HolderRevokeNotice {
	return HolderRevokeNotice{Kind: walletapi.NoticeKindRevoke, CredentialID: credID}
}

// DecodeHolderNotice turns a decrypted notice payload into its concrete type
// by looking at the kind tag.
func DecodeHolderNotice(plain []byte) (any, error) {
	var probe struct {
		Kind walletapi.NoticeKind `json:"kind"`
	}
	if err := json.Unmarshal(plain, &probe); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "notice payload is not valid JSON")
	}

	switch probe.Kind {
	case walletapi.NoticeKindIssue:
		var n HolderIssueNotice
		if err := json.Unmarshal(plain, &n); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed issue notice")
		}
		return n, nil
	case walletapi.NoticeKindUpdate:
		var n HolderUpdateNotice
		if err := json.Unmarshal(plain, &n); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed update notice")
		}
		return n, nil
	case walletapi.NoticeKindRevoke:
		var n HolderRevokeNotice
		if err := json.Unmarshal(plain, &n); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed revoke notice")
		}
		return n, nil
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "unknown notice kind: "+string(probe.Kind))
	}
}

// LedgerRecord is the issuer-side plaintext, encrypted under the issuer's own
// identifier key before it leaves the wallet. VerifiableCredentials is the
// full version history, newest first; VCStatus false is terminal.
type LedgerRecord struct {
	VCStatus              bool            `json:"vc_status"`
	VerifiableCredentials []vc.Credential `json:"verifiable_credentials"`
}

// Newest returns the current version, nil when the history is empty.
func (r *LedgerRecord) Newest() *vc.Credential {
	if len(r.VerifiableCredentials) == 0 {
		return nil
	}
	return &r.VerifiableCredentials[0]
}

// Prepend puts a new version at the head of the history.
func (r *LedgerRecord) Prepend(cred vc.Credential) {
	r.VerifiableCredentials = append([]vc.Credential{cred}, r.VerifiableCredentials...)
}

// IndexRecord is the wallet's local mirror of one lineage, keyed by the
// lineage id (the id of the first version issued).
type IndexRecord struct {
	LineageID id.LineageID    `json:"lineage_id"`
	Schema    id.SchemaRef    `json:"schema"`
	HolderDID id.DID          `json:"holder_did"`
	VCStatus  bool            `json:"vc_status"`
	History   []vc.Credential `json:"history"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Newest returns the current version, nil when the history is empty.
func (r *IndexRecord) Newest() *vc.Credential {
	if len(r.History) == 0 {
		return nil
	}
	return &r.History[0]
}

// Revoked reports whether the lineage is terminally dead.
func (r *IndexRecord) Revoked() bool {
	return !r.VCStatus
}

// TransitionKind names a lifecycle transition for the intent journal.
type TransitionKind string

const (
	TransitionIssue  TransitionKind = "issue"
	TransitionUpdate TransitionKind = "update"
	TransitionRenew  TransitionKind = "renew"
	TransitionRevoke TransitionKind = "revoke"
)

// TransitionIntent is journaled before the first network write of a
// transition and cleared after the local mirror succeeds. A pending intent
// after a crash marks a transition whose outcome must be reconciled by the
// caller.
type TransitionIntent struct {
	ID        string         `json:"id"`
	Kind      TransitionKind `json:"kind"`
	LineageID id.LineageID   `json:"lineage_id"`
	StartedAt time.Time      `json:"started_at"`
}

// WireEnvelope converts a local envelope to the shared wire DTO.
func WireEnvelope(env crypt.Envelope) walletapi.EncryptedEnvelope {
	return walletapi.EncryptedEnvelope{
		EphemeralPublicKey: env.EphemeralPublicKey,
		Nonce:              env.Nonce,
		Ciphertext:         env.Ciphertext,
	}
}

// EnvelopeFromWire converts a wire DTO back to the local envelope.
func EnvelopeFromWire(env walletapi.EncryptedEnvelope) crypt.Envelope {
	return crypt.Envelope{
		EphemeralPublicKey: env.EphemeralPublicKey,
		Nonce:              env.Nonce,
		Ciphertext:         env.Ciphertext,
	}
}
