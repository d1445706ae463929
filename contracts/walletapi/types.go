// Package walletapi defines the wire contract between the wallet engine and
// the backend collaborator. It is a standalone module so both sides can share
// DTOs without importing each other's internals.
package walletapi

import (
	"encoding/json"
	"time"
)

// EncryptedEnvelope is an opaque hybrid-encrypted blob. The backend stores and
// forwards envelopes without being able to read them.
type EncryptedEnvelope struct {
	EphemeralPublicKey string `json:"ephemeral_public_key"`
	Nonce              string `json:"nonce"`
	Ciphertext         string `json:"ciphertext"`
}

// NoticeKind tags holder notifications so receivers can decode the payload
// without guessing at its shape.
type NoticeKind string

const (
	NoticeKindIssue  NoticeKind = "holder_issue_notice"
	NoticeKindUpdate NoticeKind = "holder_update_notice"
	NoticeKindRevoke NoticeKind = "holder_revoke_notice"
)

// CreateLedgerRecordRequest creates the issuer-side record for a new lineage.
type CreateLedgerRecordRequest struct {
	LineageID   string            `json:"lineage_id"`
	HolderDID   string            `json:"holder_did"`
	Envelope    EncryptedEnvelope `json:"envelope"`
	ContentHash string            `json:"content_hash"`
}

// UpdateLedgerRecordRequest replaces the envelope for an existing lineage.
// Last writer wins; the backend performs no concurrency control.
type UpdateLedgerRecordRequest struct {
	Envelope    EncryptedEnvelope `json:"envelope"`
	ContentHash string            `json:"content_hash"`
}

// LedgerRecordResponse is the stored issuer-side record.
type LedgerRecordResponse struct {
	LineageID   string            `json:"lineage_id"`
	HolderDID   string            `json:"holder_did"`
	Envelope    EncryptedEnvelope `json:"envelope"`
	ContentHash string            `json:"content_hash"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NotifyRequest delivers an encrypted notice to a holder's inbox.
type NotifyRequest struct {
	HolderDID string            `json:"holder_did"`
	Kind      NoticeKind        `json:"kind"`
	Envelope  EncryptedEnvelope `json:"envelope"`
}

// NotificationResponse is one entry of a holder's inbox, newest first.
type NotificationResponse struct {
	ID        string            `json:"id"`
	HolderDID string            `json:"holder_did"`
	Kind      NoticeKind        `json:"kind"`
	Envelope  EncryptedEnvelope `json:"envelope"`
	CreatedAt time.Time         `json:"created_at"`
}

// DIDDocument is the published document for a DID. PublicKeyHex carries
// compressed secp256k1 points.
type DIDDocument struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
	KeyAgreement       []string             `json:"keyAgreement"`
}

// VerificationMethod is a single key entry in a DID document.
type VerificationMethod struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   string `json:"controller"`
	PublicKeyHex string `json:"publicKeyHex"`
}

// SchemaRequirement names one credential a verifier asks for.
type SchemaRequirement struct {
	SchemaID      string `json:"schema_id"`
	SchemaVersion string `json:"schema_version"`
}

// PresentationRequestStatus values for a verifier's request.
const (
	PresentationRequestPending  = "pending"
	PresentationRequestAccepted = "accepted"
	PresentationRequestDeclined = "declined"
)

// PresentationRequestResponse is a verifier's request towards a holder.
// Presentation is populated once the holder accepts.
type PresentationRequestResponse struct {
	ID           string              `json:"id"`
	VerifierDID  string              `json:"verifier_did"`
	HolderDID    string              `json:"holder_did"`
	Requirements []SchemaRequirement `json:"requirements"`
	Status       string              `json:"status"`
	Presentation json.RawMessage     `json:"presentation,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// AcceptPresentationRequest submits the signed presentation for a request.
// The presentation is carried as raw JSON; the backend does not interpret it.
type AcceptPresentationRequest struct {
	Presentation json.RawMessage `json:"presentation"`
}

// ErrorResponse is the uniform error body returned by the backend.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
