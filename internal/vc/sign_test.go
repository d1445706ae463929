package vc

import (
	"encoding/base64"
	"testing"
	"time"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/suite"

	"dcert/internal/wallet/identity"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

type SignSuite struct {
	suite.Suite

	key    *secp256k1.PrivateKey
	did    id.DID
	now    time.Time
	sample *Credential
}

func TestSignSuite(t *testing.T) {
	suite.Run(t, new(SignSuite))
}

func (s *SignSuite) SetupTest() {
	key, err := secp256k1.GeneratePrivateKey()
	s.Require().NoError(err)
	s.key = key
	s.did = "did:dcert:iSIGNER"
	s.now = time.Date(2026, 5, 2, 11, 0, 0, 0, time.UTC)

	cred, err := New(BuildParams{
		Schema:         id.SchemaRef{ID: "urn:dcert:schema:diploma", Version: "1.0"},
		CredentialType: "DiplomaCredential",
		Issuer:         Issuer{ID: s.did, Name: "Metropolis University"},
		HolderDID:      "did:dcert:pHOLDER",
		Attributes:     map[string]any{"degree": "BSc"},
		ValidFrom:      s.now,
	})
	s.Require().NoError(err)
	s.sample = cred
}

func (s *SignSuite) TestSignThenVerify() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))
	s.Require().True(s.sample.Signed())

	s.Equal(ProofTypeDataIntegrity, s.sample.Proof.Type)
	s.Equal(Cryptosuite, s.sample.Proof.Cryptosuite)
	s.Equal(PurposeAssertion, s.sample.Proof.ProofPurpose)
	s.Equal(s.did.String()+identity.FragmentSigning, s.sample.Proof.VerificationMethod)
	s.Equal("2026-05-02T11:00:00Z", s.sample.Proof.Created)

	s.NoError(VerifyCredential(s.sample, s.key.PubKey()))
}

func (s *SignSuite) TestProofValueIsDERInBase64() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))

	der, err := base64.StdEncoding.DecodeString(s.sample.Proof.ProofValue)
	s.Require().NoError(err)
	s.Equal(byte(0x30), der[0])
	compact, err := derToCompact(der)
	s.Require().NoError(err)
	s.Len(compact, 64)
}

func (s *SignSuite) TestTamperedDocumentFailsVerification() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))

	s.sample.CredentialSubject["degree"] = "PhD"
	err := VerifyCredential(s.sample, s.key.PubKey())
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *SignSuite) TestTamperedProofValueFailsVerification() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))

	raw, err := base64.StdEncoding.DecodeString(s.sample.Proof.ProofValue)
	s.Require().NoError(err)
	raw[len(raw)-1] ^= 0x01
	s.sample.Proof.ProofValue = base64.StdEncoding.EncodeToString(raw)

	s.Error(VerifyCredential(s.sample, s.key.PubKey()))
}

func (s *SignSuite) TestWrongKeyFailsVerification() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))

	other, err := secp256k1.GeneratePrivateKey()
	s.Require().NoError(err)
	s.Error(VerifyCredential(s.sample, other.PubKey()))
}

func (s *SignSuite) TestMissingKeyMaterial() {
	err := SignCredential(s.sample, s.did, nil, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingKeyMaterial))

	err = SignCredential(s.sample, "", s.key, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingKeyMaterial))
}

func (s *SignSuite) TestPresentationSignedWithAuthenticationPurpose() {
	s.Require().NoError(SignCredential(s.sample, s.did, s.key, s.now))

	vp := &Presentation{
		Context:              []string{CredentialContext},
		Type:                 []string{BasePresentationType},
		Holder:               "did:dcert:pHOLDER",
		VerifiableCredential: []Credential{*s.sample},
	}
	holderKey, err := secp256k1.GeneratePrivateKey()
	s.Require().NoError(err)

	s.Require().NoError(SignPresentation(vp, vp.Holder, holderKey, s.now))
	s.Equal(PurposeAuthentication, vp.Proof.ProofPurpose)
	s.NoError(VerifyPresentation(vp, holderKey.PubKey()))

	// Embedded credential proofs survive and still verify.
	s.NoError(VerifyCredential(&vp.VerifiableCredential[0], s.key.PubKey()))
}

func (s *SignSuite) TestUnsignedDocumentRejected() {
	err := VerifyCredential(s.sample, s.key.PubKey())
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}
