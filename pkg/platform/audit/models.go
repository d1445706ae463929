// Package audit captures credential lifecycle transitions as structured
// events. Events are append-only; sinks fan out from the Store interface.
package audit

import (
	"context"
	"time"

	id "dcert/pkg/domain"
)

// Action names a lifecycle transition.
type Action string

const (
	ActionCredentialIssued    Action = "credential_issued"
	ActionCredentialUpdated   Action = "credential_updated"
	ActionCredentialRenewed   Action = "credential_renewed"
	ActionCredentialRevoked   Action = "credential_revoked"
	ActionPresentationCreated Action = "presentation_created"

	// Backend-side actions, emitted by walletd for its own API surface.
	ActionLedgerRecordCreated  Action = "ledger_record_created"
	ActionLedgerRecordUpdated  Action = "ledger_record_updated"
	ActionNoticeDelivered      Action = "notice_delivered"
	ActionPresentationResolved Action = "presentation_request_resolved"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time    `json:"timestamp"`
	ActorDID     id.DID       `json:"actor_did"`
	HolderDID    id.DID       `json:"holder_did,omitempty"`
	Action       Action       `json:"action"`
	LineageID    id.LineageID `json:"lineage_id,omitempty"`
	CredentialID string       `json:"credential_id,omitempty"`
	Schema       id.SchemaRef `json:"schema"`
	RequestID    string       `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actor id.DID) ([]Event, error)
}
