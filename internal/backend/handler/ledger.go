package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/audit"
	"dcert/pkg/requestcontext"
)

// CreateLedgerRecord handles POST /v1/ledger-records.
func (h *Handler) CreateLedgerRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req walletapi.CreateLedgerRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.LineageID == "" || req.HolderDID == "" || req.ContentHash == "" {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "lineage_id, holder_did and content_hash are required"))
		return
	}

	now := requestcontext.Now(ctx)
	record := models.LedgerRecord{
		LineageID:   req.LineageID,
		HolderDID:   req.HolderDID,
		Envelope:    req.Envelope,
		ContentHash: req.ContentHash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.ledger.Create(ctx, record); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "ledger record created",
		"lineage_id", req.LineageID,
		"actor_did", requestcontext.ActorDID(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	h.audit(ctx, audit.Event{
		ActorDID:  requestcontext.ActorDID(ctx),
		HolderDID: id.DID(req.HolderDID),
		Action:    audit.ActionLedgerRecordCreated,
		LineageID: id.LineageID(req.LineageID),
	})
	writeJSON(w, http.StatusCreated, toLedgerResponse(record))
}

// UpdateLedgerRecord handles PUT /v1/ledger-records/{lineageID}.
// Last writer wins; the backend performs no concurrency control.
func (h *Handler) UpdateLedgerRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lineageID := chi.URLParam(r, "lineageID")

	var req walletapi.UpdateLedgerRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.ContentHash == "" {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "content_hash is required"))
		return
	}

	if err := h.ledger.Update(ctx, lineageID, req.Envelope, req.ContentHash, requestcontext.Now(ctx)); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "ledger record updated",
		"lineage_id", lineageID,
		"actor_did", requestcontext.ActorDID(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	h.audit(ctx, audit.Event{
		ActorDID:  requestcontext.ActorDID(ctx),
		Action:    audit.ActionLedgerRecordUpdated,
		LineageID: id.LineageID(lineageID),
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetLedgerRecord handles GET /v1/ledger-records/{lineageID}.
func (h *Handler) GetLedgerRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.ledger.Find(r.Context(), chi.URLParam(r, "lineageID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(*record))
}

func toLedgerResponse(record models.LedgerRecord) walletapi.LedgerRecordResponse {
	return walletapi.LedgerRecordResponse{
		LineageID:   record.LineageID,
		HolderDID:   record.HolderDID,
		Envelope:    record.Envelope,
		ContentHash: record.ContentHash,
		UpdatedAt:   record.UpdatedAt,
	}
}
