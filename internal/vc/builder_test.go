package vc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
)

type BuilderSuite struct {
	suite.Suite

	schema id.SchemaRef
	issuer Issuer
	holder id.DID
	now    time.Time
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	s.schema = id.SchemaRef{ID: "urn:dcert:schema:diploma", Version: "1.0"}
	s.issuer = Issuer{ID: "did:dcert:iAAAA", Name: "Metropolis University"}
	s.holder = "did:dcert:pBBBB"
	s.now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func (s *BuilderSuite) params() BuildParams {
	return BuildParams{
		Schema:         s.schema,
		CredentialType: "DiplomaCredential",
		Issuer:         s.issuer,
		HolderDID:      s.holder,
		Attributes:     map[string]any{"degree": "BSc", "gpa": 3.7},
		ValidFrom:      s.now,
	}
}

func (s *BuilderSuite) TestBuildsUnsignedCredential() {
	cred, err := New(s.params())
	s.Require().NoError(err)

	s.Equal([]string{CredentialContext}, cred.Context)
	s.Equal([]string{BaseCredentialType, "DiplomaCredential"}, cred.Type)
	s.Equal(s.issuer, cred.Issuer)
	s.Equal(s.holder, cred.CredentialSubject.HolderDID())
	s.Equal("BSc", cred.CredentialSubject["degree"])
	s.False(cred.Signed())
	s.False(cred.CredentialStatus.Revoked)
	s.Equal(StatusType, cred.CredentialStatus.Type)
	s.Nil(cred.ExpiredAt)
}

func (s *BuilderSuite) TestIDEncodesSchemaHolderAndInstant() {
	cred, err := New(s.params())
	s.Require().NoError(err)

	s.Equal(CredentialIDFor(s.schema, s.holder, s.now), cred.ID)
	s.Contains(cred.ID, s.schema.ID)
	s.Contains(cred.ID, s.holder.String())
}

func (s *BuilderSuite) TestDistinctInstantsYieldDistinctIDs() {
	first, err := New(s.params())
	s.Require().NoError(err)

	p := s.params()
	p.ValidFrom = s.now.Add(time.Millisecond)
	second, err := New(p)
	s.Require().NoError(err)

	s.NotEqual(first.ID, second.ID)
}

func (s *BuilderSuite) TestSubjectIDAttributeIsIgnored() {
	p := s.params()
	p.Attributes["id"] = "did:dcert:pEVIL"

	cred, err := New(p)
	s.Require().NoError(err)
	s.Equal(s.holder, cred.CredentialSubject.HolderDID())
}

func (s *BuilderSuite) TestExpiryNormalizedToUTC() {
	loc := time.FixedZone("UTC+3", 3*3600)
	exp := time.Date(2027, 1, 1, 12, 0, 0, 0, loc)

	p := s.params()
	p.ExpiredAt = &exp

	cred, err := New(p)
	s.Require().NoError(err)
	s.Require().NotNil(cred.ExpiredAt)
	s.Equal(time.UTC, cred.ExpiredAt.Location())
	s.True(cred.ExpiredAt.Equal(exp))
}

func (s *BuilderSuite) TestMissingRequiredFields() {
	cases := []struct {
		name   string
		mutate func(*BuildParams)
	}{
		{"no schema", func(p *BuildParams) { p.Schema = id.SchemaRef{} }},
		{"no type", func(p *BuildParams) { p.CredentialType = "" }},
		{"no issuer", func(p *BuildParams) { p.Issuer.ID = "" }},
		{"no holder", func(p *BuildParams) { p.HolderDID = "" }},
		{"no validFrom", func(p *BuildParams) { p.ValidFrom = time.Time{} }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p := s.params()
			tc.mutate(&p)
			_, err := New(p)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}
