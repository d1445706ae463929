package vc

import (
	"fmt"
	"time"

	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

// BuildParams are the inputs for an unsigned credential. The caller supplies
// ValidFrom; everything else about the document is a pure function of the
// params.
type BuildParams struct {
	Schema         id.SchemaRef
	CredentialType string
	Issuer         Issuer
	HolderDID      id.DID
	Attributes     map[string]any
	ValidFrom      time.Time
	ExpiredAt      *time.Time
	ImageLink      string
}

// New constructs an unsigned credential with credentialStatus.revoked=false.
// The id encodes schema, holder, and issuance instant, so every issuance
// event gets a distinct id. Attributes land under credentialSubject; an "id"
// attribute is ignored because that slot belongs to the holder DID.
func New(p BuildParams) (*Credential, error) {
	switch {
	case p.Schema.IsNil():
		return nil, dErrors.New(dErrors.CodeBadRequest, "schema reference is required")
	case p.CredentialType == "":
		return nil, dErrors.New(dErrors.CodeBadRequest, "credential type is required")
	case p.Issuer.ID.IsNil():
		return nil, dErrors.New(dErrors.CodeBadRequest, "issuer DID is required")
	case p.HolderDID.IsNil():
		return nil, dErrors.New(dErrors.CodeBadRequest, "holder DID is required")
	case p.ValidFrom.IsZero():
		return nil, dErrors.New(dErrors.CodeBadRequest, "validFrom is required")
	}

	vcID := CredentialIDFor(p.Schema, p.HolderDID, p.ValidFrom)

	subject := Subject{"id": p.HolderDID.String()}
	for k, v := range p.Attributes {
		if k == "id" {
			continue
		}
		subject[k] = v
	}

	return &Credential{
		Context:           []string{CredentialContext},
		ID:                vcID,
		Type:              []string{BaseCredentialType, p.CredentialType},
		Issuer:            p.Issuer,
		CredentialSubject: subject,
		ValidFrom:         p.ValidFrom.UTC(),
		ExpiredAt:         normalizeExpiry(p.ExpiredAt),
		CredentialStatus: Status{
			ID:      "urn:dcert:status:" + vcID,
			Type:    StatusType,
			Revoked: false,
		},
		ImageLink: p.ImageLink,
	}, nil
}

// CredentialIDFor derives the id for an issuance event:
// schemaID:schemaVersion:holderDID:unixMilli.
func CredentialIDFor(schema id.SchemaRef, holder id.DID, at time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%d", schema.ID, schema.Version, holder, at.UnixMilli())
}

func normalizeExpiry(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
