package identity

import (
	"context"

	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

// Verification method types and well-known key fragments.
const (
	VerificationMethodType = "EcdsaSecp256k1VerificationKey2019"

	// FragmentSigning is the fragment of the signing key referenced by
	// proof verificationMethod values.
	FragmentSigning = "#key-1"
	// FragmentAgreement is the fragment of the identifier key, used as the
	// recipient key for hybrid encryption.
	FragmentAgreement = "#key-2"
)

// Document is the published DID document for a wallet identity. Computing a
// DID needs no network call; resolving someone else's document does, via the
// Resolver collaborator.
type Document struct {
	Context            []string             `json:"@context"`
	ID                 id.DID               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
	KeyAgreement       []string             `json:"keyAgreement"`
}

// VerificationMethod is one key entry of a DID document.
type VerificationMethod struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   id.DID `json:"controller"`
	PublicKeyHex string `json:"publicKeyHex"`
}

// NewDocument renders the publishable document for an identity: the signing
// key under #key-1 (assertion and authentication) and the identifier key
// under #key-2 (key agreement).
func NewDocument(ident *Identity) Document {
	did := ident.DID
	return Document{
		Context: []string{"https://www.w3.org/ns/did/v1"},
		ID:      did,
		VerificationMethod: []VerificationMethod{
			{
				ID:           did.String() + FragmentSigning,
				Type:         VerificationMethodType,
				Controller:   did,
				PublicKeyHex: ident.Keys.Signing.PublicKeyHex(),
			},
			{
				ID:           did.String() + FragmentAgreement,
				Type:         VerificationMethodType,
				Controller:   did,
				PublicKeyHex: ident.Keys.Identifier.PublicKeyHex(),
			},
		},
		Authentication:  []string{did.String() + FragmentSigning},
		AssertionMethod: []string{did.String() + FragmentSigning},
		KeyAgreement:    []string{did.String() + FragmentAgreement},
	}
}

// SigningKeyHex returns the #key-1 public key, or an error when absent.
func (d Document) SigningKeyHex() (string, error) {
	return d.keyHex(d.ID.String() + FragmentSigning)
}

// AgreementKeyHex returns the #key-2 public key used for encryption.
func (d Document) AgreementKeyHex() (string, error) {
	return d.keyHex(d.ID.String() + FragmentAgreement)
}

func (d Document) keyHex(methodID string) (string, error) {
	for _, vm := range d.VerificationMethod {
		if vm.ID == methodID && vm.PublicKeyHex != "" {
			return vm.PublicKeyHex, nil
		}
	}
	return "", dErrors.New(dErrors.CodeEncryptionFailed, "DID document has no key "+methodID)
}

// Resolver fetches a counterparty's published DID document. Implemented by
// the backend client; tests supply in-memory fakes.
type Resolver interface {
	Resolve(ctx context.Context, did id.DID) (*Document, error)
}
