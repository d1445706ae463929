package vc

import (
	"bytes"
	"encoding/json"

	dErrors "dcert/pkg/domain-errors"
)

// CanonicalForm serializes a document deterministically: object keys in
// lexicographic order at every depth, numbers preserved verbatim. With
// includeProof=false the top-level "proof" member is dropped, which is the
// form signatures are computed over.
//
// Determinism comes from re-marshalling through map[string]any: encoding/json
// writes map keys in sorted order, and json.Number round-trips the original
// digits.
func CanonicalForm(doc any, includeProof bool) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeSigningFailed, "document serialization failed")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeSigningFailed, "document normalization failed")
	}

	if m, ok := v.(map[string]any); ok && !includeProof {
		delete(m, "proof")
	}

	canonical, err := json.Marshal(v)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeSigningFailed, "canonical serialization failed")
	}
	return canonical, nil
}
