// Package models holds the backend-side records. The backend never sees
// plaintext credentials: ledger records and notices are opaque envelopes.
package models

import (
	"time"

	"dcert/contracts/walletapi"
)

// LedgerRecord is the stored issuer-side record for one lineage.
type LedgerRecord struct {
	LineageID   string
	HolderDID   string
	Envelope    walletapi.EncryptedEnvelope
	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Notification is one entry of a holder's inbox.
type Notification struct {
	ID        string
	HolderDID string
	Kind      walletapi.NoticeKind
	Envelope  walletapi.EncryptedEnvelope
	CreatedAt time.Time
}

// PresentationRequest is a verifier's request towards a holder. Presentation
// is set when the holder accepts.
type PresentationRequest struct {
	ID           string
	VerifierDID  string
	HolderDID    string
	Requirements []walletapi.SchemaRequirement
	Status       string
	Presentation []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
