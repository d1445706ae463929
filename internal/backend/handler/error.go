package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dcert/contracts/walletapi"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/sentinel"
)

// WriteError centralizes error translation to HTTP responses. Sentinel errors
// from stores are translated first, then domain errors by code.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		writeJSON(w, http.StatusNotFound, walletapi.ErrorResponse{Error: "not_found"})
		return
	case errors.Is(err, sentinel.ErrConflict):
		writeJSON(w, http.StatusConflict, walletapi.ErrorResponse{Error: "conflict"})
		return
	case errors.Is(err, sentinel.ErrInvalidState):
		writeJSON(w, http.StatusConflict, walletapi.ErrorResponse{Error: "invalid_state"})
		return
	}

	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		writeJSON(w, domainCodeToHTTPStatus(domainErr.Code), walletapi.ErrorResponse{
			Error:            string(domainErr.Code),
			ErrorDescription: domainErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, walletapi.ErrorResponse{Error: string(dErrors.CodeInternal)})
}

func domainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeConflict, dErrors.CodeLineageRevoked:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNoMatchingCredential:
		return http.StatusNotFound
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
