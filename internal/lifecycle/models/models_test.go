package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcert/internal/vc"
	dErrors "dcert/pkg/domain-errors"
)

func TestDecodeHolderNoticeCoversEveryKind(t *testing.T) {
	cred := vc.Credential{ID: "urn:test:v2"}

	cases := []struct {
		name   string
		notice any
		check  func(t *testing.T, decoded any)
	}{
		{
			name:   "issue",
			notice: NewHolderIssueNotice(cred),
			check: func(t *testing.T, decoded any) {
				n, ok := decoded.(HolderIssueNotice)
				require.True(t, ok)
				assert.Equal(t, cred.ID, n.Credential.ID)
			},
		},
		{
			name:   "update",
			notice: NewHolderUpdateNotice("urn:test:v1", cred),
			check: func(t *testing.T, decoded any) {
				n, ok := decoded.(HolderUpdateNotice)
				require.True(t, ok)
				assert.EqualValues(t, "urn:test:v1", n.OldCredentialID)
				assert.Equal(t, cred.ID, n.Credential.ID)
			},
		},
		{
			name:   "revoke",
			notice: NewHolderRevokeNotice("urn:test:v2"),
			check: func(t *testing.T, decoded any) {
				n, ok := decoded.(HolderRevokeNotice)
				require.True(t, ok)
				assert.EqualValues(t, "urn:test:v2", n.CredentialID)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.notice)
			require.NoError(t, err)
			decoded, err := DecodeHolderNotice(raw)
			require.NoError(t, err)
			tc.check(t, decoded)
		})
	}
}

func TestDecodeHolderNoticeRejectsUnknownKind(t *testing.T) {
	_, err := DecodeHolderNotice([]byte(`{"kind":"holder_party_invite"}`))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestDecodeHolderNoticeRejectsGarbage(t *testing.T) {
	_, err := DecodeHolderNotice([]byte(`not json`))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestLedgerRecordPrependKeepsNewestFirst(t *testing.T) {
	record := LedgerRecord{VCStatus: true, VerifiableCredentials: []vc.Credential{{ID: "v1"}}}
	record.Prepend(vc.Credential{ID: "v2"})

	require.Len(t, record.VerifiableCredentials, 2)
	assert.Equal(t, "v2", record.VerifiableCredentials[0].ID)
	assert.Equal(t, "v2", record.Newest().ID)
}

func TestIndexRecordRevoked(t *testing.T) {
	rec := IndexRecord{VCStatus: true}
	assert.False(t, rec.Revoked())
	rec.VCStatus = false
	assert.True(t, rec.Revoked())
}
