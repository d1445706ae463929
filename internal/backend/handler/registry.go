package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dcert/contracts/walletapi"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/requestcontext"
)

// PublishDocument handles PUT /v1/dids/{did}/document. Only the DID owner may
// publish its document.
func (h *Handler) PublishDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	did := chi.URLParam(r, "did")

	if requestcontext.ActorDID(ctx).String() != did {
		WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "only the DID owner may publish its document"))
		return
	}

	var document walletapi.DIDDocument
	if err := decodeJSON(r, &document); err != nil {
		WriteError(w, err)
		return
	}
	if document.ID != did {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "document id must match path DID"))
		return
	}

	if err := h.registry.Put(ctx, did, document); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "DID document published",
		"did", did,
		"request_id", requestcontext.RequestID(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}

// GetDocument handles GET /v1/dids/{did}/document.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.registry.Get(r.Context(), chi.URLParam(r, "did"))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}
