package keys

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"dcert/internal/wallet/mnemonic"
	dErrors "dcert/pkg/domain-errors"
)

type KeysSuite struct {
	suite.Suite
	seed []byte
}

func TestKeysSuite(t *testing.T) {
	suite.Run(t, new(KeysSuite))
}

func (s *KeysSuite) SetupSuite() {
	phrase, err := mnemonic.Generate(mnemonic.DefaultEntropyBits)
	s.Require().NoError(err)
	s.seed, err = mnemonic.Seed(phrase)
	s.Require().NoError(err)
}

func (s *KeysSuite) TestDeriveIsDeterministic() {
	ring1, err := Derive(s.seed, 0, 0)
	s.Require().NoError(err)
	ring2, err := Derive(s.seed, 0, 0)
	s.Require().NoError(err)

	s.Equal(ring1.Identifier.PublicKeyHex(), ring2.Identifier.PublicKeyHex())
	s.Equal(ring1.Signing.PublicKeyHex(), ring2.Signing.PublicKeyHex())
}

func (s *KeysSuite) TestIdentifierAndSigningKeysDiffer() {
	ring, err := Derive(s.seed, 0, 0)
	s.Require().NoError(err)
	s.NotEqual(ring.Identifier.PublicKeyHex(), ring.Signing.PublicKeyHex())
}

func (s *KeysSuite) TestAccountAndEntityChangeKeys() {
	base, err := Derive(s.seed, 0, 0)
	s.Require().NoError(err)

	otherAccount, err := Derive(s.seed, 1, 0)
	s.Require().NoError(err)
	s.NotEqual(base.Identifier.PublicKeyHex(), otherAccount.Identifier.PublicKeyHex())

	otherEntity, err := Derive(s.seed, 0, 1)
	s.Require().NoError(err)
	s.NotEqual(base.Identifier.PublicKeyHex(), otherEntity.Identifier.PublicKeyHex())
}

func (s *KeysSuite) TestDeriveRejectsMalformedSeed() {
	_, err := Derive([]byte{0x01, 0x02}, 0, 0)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidSeed))

	_, err = Derive(make([]byte, 65), 0, 0)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidSeed))
}

func (s *KeysSuite) TestParsePublicKeyHex() {
	ring, err := Derive(s.seed, 0, 0)
	s.Require().NoError(err)

	pub, err := ParsePublicKeyHex(ring.Signing.PublicKeyHex())
	s.Require().NoError(err)
	s.True(pub.IsEqual(ring.Signing.Public))

	_, err = ParsePublicKeyHex("zz")
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))

	_, err = ParsePublicKeyHex("02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))
}
