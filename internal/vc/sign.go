package vc

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

// Proof constants for the data-integrity envelope.
const (
	ProofTypeDataIntegrity = "DataIntegrityProof"
	Cryptosuite            = "ecdsa-secp256k1-2023"

	PurposeAssertion      = "assertionMethod"
	PurposeAuthentication = "authentication"
)

// Sign computes a data-integrity proof over the canonical form of doc with
// proof excluded: SHA-256 digest, ECDSA over secp256k1, compact r||s
// re-encoded to DER and base64'd into proofValue. verificationMethod
// references #key-1 of the signer's DID.
func Sign(doc any, signerDID id.DID, signingKey *secp256k1.PrivateKey, purpose string, created time.Time) (*Proof, error) {
	if signingKey == nil {
		return nil, dErrors.New(dErrors.CodeMissingKeyMaterial, "signing key is not available")
	}
	if signerDID.IsNil() {
		return nil, dErrors.New(dErrors.CodeMissingKeyMaterial, "signer DID is not available")
	}

	canonical, err := CanonicalForm(doc, false)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(canonical)

	sig := secpecdsa.Sign(signingKey, digest[:])
	r := sig.R()
	s := sig.S()
	compact := make([]byte, 64)
	rb := r.Bytes()
	sb := s.Bytes()
	copy(compact[:32], rb[:])
	copy(compact[32:], sb[:])

	der, err := compactToDER(compact)
	if err != nil {
		return nil, err
	}

	return &Proof{
		Type:               ProofTypeDataIntegrity,
		Cryptosuite:        Cryptosuite,
		Created:            created.UTC().Format(time.RFC3339),
		VerificationMethod: signerDID.String() + identity.FragmentSigning,
		ProofPurpose:       purpose,
		ProofValue:         base64.StdEncoding.EncodeToString(der),
	}, nil
}

// SignCredential signs a credential in place with assertionMethod purpose.
func SignCredential(c *Credential, signerDID id.DID, signingKey *secp256k1.PrivateKey, created time.Time) error {
	c.Proof = nil
	proof, err := Sign(c, signerDID, signingKey, PurposeAssertion, created)
	if err != nil {
		return err
	}
	c.Proof = proof
	return nil
}

// SignPresentation signs a presentation in place with authentication purpose.
func SignPresentation(p *Presentation, holderDID id.DID, signingKey *secp256k1.PrivateKey, created time.Time) error {
	p.Proof = nil
	proof, err := Sign(p, holderDID, signingKey, PurposeAuthentication, created)
	if err != nil {
		return err
	}
	p.Proof = proof
	return nil
}

// Verify checks a proof against the canonical form of doc (proof excluded)
// using the signer's public key.
func Verify(doc any, proof *Proof, pub *secp256k1.PublicKey) error {
	if proof == nil {
		return dErrors.New(dErrors.CodeValidation, "document carries no proof")
	}
	if pub == nil {
		return dErrors.New(dErrors.CodeMissingKeyMaterial, "verification key is not available")
	}

	canonical, err := CanonicalForm(doc, false)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(canonical)

	der, err := base64.StdEncoding.DecodeString(proof.ProofValue)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "proofValue is not valid base64")
	}
	compact, err := derToCompact(der)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "proofValue is not a valid DER signature")
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(compact[:32]); overflow {
		return dErrors.New(dErrors.CodeValidation, "signature r exceeds group order")
	}
	if overflow := s.SetByteSlice(compact[32:]); overflow {
		return dErrors.New(dErrors.CodeValidation, "signature s exceeds group order")
	}

	if !secpecdsa.NewSignature(&r, &s).Verify(digest[:], pub) {
		return dErrors.New(dErrors.CodeValidation, "signature does not match document")
	}
	return nil
}

// VerifyCredential checks a signed credential against the signer's key.
func VerifyCredential(c *Credential, pub *secp256k1.PublicKey) error {
	if c.Proof == nil {
		return dErrors.New(dErrors.CodeValidation, "credential is unsigned")
	}
	stripped := *c
	stripped.Proof = nil
	return Verify(&stripped, c.Proof, pub)
}

// VerifyPresentation checks a signed presentation against the holder's key.
func VerifyPresentation(p *Presentation, pub *secp256k1.PublicKey) error {
	if p.Proof == nil {
		return dErrors.New(dErrors.CodeValidation, "presentation is unsigned")
	}
	stripped := *p
	stripped.Proof = nil
	return Verify(&stripped, p.Proof, pub)
}
