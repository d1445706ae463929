// Package vc implements the verifiable-credential document model: building,
// canonicalizing, signing, verifying, and hashing VC/VP documents.
package vc

import (
	"time"

	id "dcert/pkg/domain"
)

// JSON-LD contexts and type tags.
const (
	CredentialContext    = "https://www.w3.org/ns/credentials/v2"
	BaseCredentialType   = "VerifiableCredential"
	BasePresentationType = "VerifiablePresentation"

	StatusType = "DcertRevocationRegistry"
)

// Issuer identifies the issuing party of a credential.
type Issuer struct {
	ID   id.DID `json:"id"`
	Name string `json:"name"`
}

// Subject carries the holder DID under "id" plus the credential attributes.
type Subject map[string]any

// HolderDID returns the subject's "id" entry.
func (s Subject) HolderDID() id.DID {
	if v, ok := s["id"].(string); ok {
		return id.DID(v)
	}
	return ""
}

// Attributes returns a copy of the subject without the "id" entry.
func (s Subject) Attributes() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// Status is the credentialStatus entry. Revoked marks the whole lineage.
type Status struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Revoked bool   `json:"revoked"`
}

// Proof is a data-integrity proof computed over the canonical form of the
// enclosing document with the proof itself excluded.
type Proof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue"`
}

// Credential is a W3C-style verifiable credential. ExpiredAt nil means the
// credential never expires.
type Credential struct {
	Context           []string   `json:"@context"`
	ID                string     `json:"id"`
	Type              []string   `json:"type"`
	Issuer            Issuer     `json:"issuer"`
	CredentialSubject Subject    `json:"credentialSubject"`
	ValidFrom         time.Time  `json:"validFrom"`
	ExpiredAt         *time.Time `json:"expiredAt"`
	CredentialStatus  Status     `json:"credentialStatus"`
	ImageLink         string     `json:"imageLink,omitempty"`
	Proof             *Proof     `json:"proof,omitempty"`
}

// CredentialID returns the typed credential id.
func (c *Credential) CredentialID() id.CredentialID {
	return id.CredentialID(c.ID)
}

// Signed reports whether the credential carries a proof.
func (c *Credential) Signed() bool {
	return c.Proof != nil
}

// Presentation is a signed bundle of credentials presented by a holder.
// Every embedded credential must have credentialSubject.id == Holder.
type Presentation struct {
	Context              []string     `json:"@context"`
	Type                 []string     `json:"type"`
	Holder               id.DID       `json:"holder"`
	VerifiableCredential []Credential `json:"verifiableCredential"`
	Proof                *Proof       `json:"proof,omitempty"`
}
