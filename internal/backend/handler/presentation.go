package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/audit"
	"dcert/pkg/requestcontext"
)

type createPresentationRequest struct {
	HolderDID    string                        `json:"holder_did"`
	Requirements []walletapi.SchemaRequirement `json:"requirements"`
}

// CreatePresentationRequest handles POST /v1/presentation-requests. The
// authenticated actor is recorded as the verifier.
func (h *Handler) CreatePresentationRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPresentationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.HolderDID == "" || len(req.Requirements) == 0 {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "holder_did and requirements are required"))
		return
	}

	now := requestcontext.Now(ctx)
	request := models.PresentationRequest{
		ID:           uuid.NewString(),
		VerifierDID:  requestcontext.ActorDID(ctx).String(),
		HolderDID:    req.HolderDID,
		Requirements: req.Requirements,
		Status:       walletapi.PresentationRequestPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.presentations.Create(ctx, request); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "presentation request created",
		"request_id", requestcontext.RequestID(ctx),
		"verifier_did", request.VerifierDID,
		"holder_did", request.HolderDID,
	)
	writeJSON(w, http.StatusCreated, toPresentationResponse(request))
}

// ListPresentationRequests handles GET /v1/presentation-requests: the
// authenticated holder's pending requests.
func (h *Handler) ListPresentationRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requests, err := h.presentations.ListPendingByHolder(ctx, requestcontext.ActorDID(ctx).String())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]walletapi.PresentationRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, toPresentationResponse(request))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPresentationRequest handles GET /v1/presentation-requests/{requestID}.
// Only the verifier or the holder of the request may read it; the submitted
// presentation is visible once accepted.
func (h *Handler) GetPresentationRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	request, err := h.presentations.Find(ctx, chi.URLParam(r, "requestID"))
	if err != nil {
		WriteError(w, err)
		return
	}
	actor := requestcontext.ActorDID(ctx).String()
	if actor != request.VerifierDID && actor != request.HolderDID {
		WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "request belongs to another party"))
		return
	}
	writeJSON(w, http.StatusOK, toPresentationResponse(*request))
}

// AcceptPresentationRequest handles POST /v1/presentation-requests/{requestID}/accept.
func (h *Handler) AcceptPresentationRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	var req walletapi.AcceptPresentationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if len(req.Presentation) == 0 {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "presentation is required"))
		return
	}

	if err := h.resolvePresentationRequest(w, r, requestID, walletapi.PresentationRequestAccepted, req.Presentation); err != nil {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeclinePresentationRequest handles POST /v1/presentation-requests/{requestID}/decline.
func (h *Handler) DeclinePresentationRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if err := h.resolvePresentationRequest(w, r, requestID, walletapi.PresentationRequestDeclined, nil); err != nil {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolvePresentationRequest enforces that only the holder resolves a request,
// then records the outcome. Errors are already written to the response.
func (h *Handler) resolvePresentationRequest(w http.ResponseWriter, r *http.Request, requestID, status string, presentation []byte) error {
	ctx := r.Context()

	request, err := h.presentations.Find(ctx, requestID)
	if err != nil {
		WriteError(w, err)
		return err
	}
	if requestcontext.ActorDID(ctx).String() != request.HolderDID {
		err := dErrors.New(dErrors.CodeUnauthorized, "only the holder may resolve a presentation request")
		WriteError(w, err)
		return err
	}

	if err := h.presentations.Resolve(ctx, requestID, status, presentation, requestcontext.Now(ctx)); err != nil {
		WriteError(w, err)
		return err
	}

	h.logger.InfoContext(ctx, "presentation request resolved",
		"presentation_request_id", requestID,
		"status", status,
		"request_id", requestcontext.RequestID(ctx),
	)
	h.audit(ctx, audit.Event{
		ActorDID: requestcontext.ActorDID(ctx),
		Action:   audit.ActionPresentationResolved,
	})
	return nil
}

func toPresentationResponse(request models.PresentationRequest) walletapi.PresentationRequestResponse {
	return walletapi.PresentationRequestResponse{
		ID:           request.ID,
		VerifierDID:  request.VerifierDID,
		HolderDID:    request.HolderDID,
		Requirements: request.Requirements,
		Status:       request.Status,
		Presentation: request.Presentation,
		CreatedAt:    request.CreatedAt,
	}
}
