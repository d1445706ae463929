package crypt

import (
	"encoding/hex"
	"testing"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/suite"

	dErrors "dcert/pkg/domain-errors"
)

type CryptSuite struct {
	suite.Suite
	recipient *secp256k1.PrivateKey
}

func TestCryptSuite(t *testing.T) {
	suite.Run(t, new(CryptSuite))
}

func (s *CryptSuite) SetupTest() {
	var err error
	s.recipient, err = secp256k1.GeneratePrivateKey()
	s.Require().NoError(err)
}

func (s *CryptSuite) recipientHex() string {
	return hex.EncodeToString(s.recipient.PubKey().SerializeCompressed())
}

type payload struct {
	Kind  string         `json:"kind"`
	Attrs map[string]any `json:"attrs"`
}

func (s *CryptSuite) TestRoundTrip() {
	in := payload{Kind: "holder_issue_notice", Attrs: map[string]any{"degree": "BSc"}}

	env, err := Encrypt(in, s.recipientHex())
	s.Require().NoError(err)
	s.NotEmpty(env.EphemeralPublicKey)
	s.NotEmpty(env.Ciphertext)

	var out payload
	s.Require().NoError(Decrypt(env, s.recipient, &out))
	s.Equal(in.Kind, out.Kind)
	s.Equal("BSc", out.Attrs["degree"])
}

func (s *CryptSuite) TestWrongKeyFails() {
	env, err := Encrypt(payload{Kind: "x"}, s.recipientHex())
	s.Require().NoError(err)

	other, err := secp256k1.GeneratePrivateKey()
	s.Require().NoError(err)

	var out payload
	err = Decrypt(env, other, &out)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))
}

func (s *CryptSuite) TestMalformedRecipientKeyIsFatal() {
	_, err := Encrypt(payload{}, "not-hex")
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))

	_, err = Encrypt(payload{}, "02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))
}

func (s *CryptSuite) TestTamperedCiphertextFails() {
	env, err := Encrypt(payload{Kind: "x"}, s.recipientHex())
	s.Require().NoError(err)

	env.Ciphertext = "AAAA" + env.Ciphertext[4:]

	var out payload
	err = Decrypt(env, s.recipient, &out)
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))
}

func (s *CryptSuite) TestDistinctEnvelopesPerCall() {
	a, err := Encrypt(payload{Kind: "x"}, s.recipientHex())
	s.Require().NoError(err)
	b, err := Encrypt(payload{Kind: "x"}, s.recipientHex())
	s.Require().NoError(err)
	s.NotEqual(a.EphemeralPublicKey, b.EphemeralPublicKey)
	s.NotEqual(a.Ciphertext, b.Ciphertext)
}
