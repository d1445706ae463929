package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"dcert/internal/wallet/mnemonic"
	dErrors "dcert/pkg/domain-errors"
)

type IdentitySuite struct {
	suite.Suite
	phrase string
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) SetupSuite() {
	var err error
	s.phrase, err = mnemonic.Generate(mnemonic.DefaultEntropyBits)
	s.Require().NoError(err)
}

func (s *IdentitySuite) TestDIDFormat() {
	ident, err := FromMnemonic(s.phrase, EntityInstitution, 0, "Test University")
	s.Require().NoError(err)

	did := ident.DID.String()
	s.True(strings.HasPrefix(did, "did:dcert:i"), "got %s", did)
	s.Equal("dcert", ident.DID.Method())
	s.NotContains(did, "=", "base64url must be unpadded")
}

func (s *IdentitySuite) TestDIDIsDeterministic() {
	a, err := FromMnemonic(s.phrase, EntityPerson, 0, "")
	s.Require().NoError(err)
	b, err := FromMnemonic(s.phrase, EntityPerson, 0, "")
	s.Require().NoError(err)
	s.Equal(a.DID, b.DID)
}

func (s *IdentitySuite) TestEntityTypeChangesDID() {
	p, err := FromMnemonic(s.phrase, EntityPerson, 0, "")
	s.Require().NoError(err)
	i, err := FromMnemonic(s.phrase, EntityInstitution, 0, "")
	s.Require().NoError(err)
	s.NotEqual(p.DID, i.DID)
}

func (s *IdentitySuite) TestUnknownEntityTypeRejected() {
	_, err := FromMnemonic(s.phrase, EntityType('x'), 0, "")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *IdentitySuite) TestSessionProvider() {
	ctx := context.Background()
	provider := NewSessionProvider()

	_, err := provider.Current(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingKeyMaterial))

	ident, err := FromMnemonic(s.phrase, EntityPerson, 0, "Holder")
	s.Require().NoError(err)
	provider.Set(ident)

	got, err := provider.Current(ctx)
	s.Require().NoError(err)
	s.Equal(ident.DID, got.DID)

	provider.Clear()
	_, err = provider.Current(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingKeyMaterial))
}

func (s *IdentitySuite) TestDocumentKeyLookup() {
	ident, err := FromMnemonic(s.phrase, EntityInstitution, 0, "Issuer")
	s.Require().NoError(err)

	doc := NewDocument(ident)
	s.Equal(ident.DID, doc.ID)

	signing, err := doc.SigningKeyHex()
	s.Require().NoError(err)
	s.Equal(ident.Keys.Signing.PublicKeyHex(), signing)

	agreement, err := doc.AgreementKeyHex()
	s.Require().NoError(err)
	s.Equal(ident.Keys.Identifier.PublicKeyHex(), agreement)
	s.NotEqual(signing, agreement)

	empty := Document{ID: ident.DID}
	_, err = empty.SigningKeyHex()
	s.True(dErrors.HasCode(err, dErrors.CodeEncryptionFailed))
}
