package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the backend client, and
// other infrastructure layers return these (optionally wrapped) so services
// can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in store or backend
// - ErrConflict: record already exists (duplicate lineage or notice id)
// - ErrInvalidState: record in wrong state for requested operation
// - ErrUnavailable: backend or store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
