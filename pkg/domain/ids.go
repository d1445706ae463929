// Package domain holds shared domain primitives used across bounded contexts.
// Keeping them here avoids import cycles between the wallet core and stores.
package domain

import (
	"fmt"
	"strings"
)

// DID is a decentralized identifier string, e.g. "did:dcert:i<base64url>".
// The zero value is treated as "not set".
type DID string

// String returns the raw DID string.
func (d DID) String() string {
	return string(d)
}

// IsNil reports whether the DID is unset.
func (d DID) IsNil() bool {
	return d == ""
}

// Method returns the DID method segment, or "" for malformed values.
func (d DID) Method() string {
	parts := strings.SplitN(string(d), ":", 3)
	if len(parts) != 3 || parts[0] != "did" {
		return ""
	}
	return parts[1]
}

// CredentialID identifies one issuance event. Unique per issue/update/renew.
type CredentialID string

func (c CredentialID) String() string {
	return string(c)
}

func (c CredentialID) IsNil() bool {
	return c == ""
}

// LineageID identifies a continuously-evolving credential: the id of the
// first version issued for a schema/holder pair. All later versions of the
// lineage share it while carrying distinct CredentialIDs.
type LineageID string

func (l LineageID) String() string {
	return string(l)
}

func (l LineageID) IsNil() bool {
	return l == ""
}

// SchemaRef names a credential schema at a specific version.
type SchemaRef struct {
	ID      string
	Version string
}

// String renders the reference as "id@version".
func (s SchemaRef) String() string {
	return fmt.Sprintf("%s@%s", s.ID, s.Version)
}

// IsNil reports whether the reference is unset.
func (s SchemaRef) IsNil() bool {
	return s.ID == "" || s.Version == ""
}

// Equal compares two schema references.
func (s SchemaRef) Equal(other SchemaRef) bool {
	return s.ID == other.ID && s.Version == other.Version
}
