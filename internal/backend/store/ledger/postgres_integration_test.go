//go:build integration

package ledger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/sentinel"
	"dcert/pkg/testutil/containers"
)

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

type PostgresStoreSuite struct {
	suite.Suite

	store *PostgresStore
	ctx   context.Context
}

func (s *PostgresStoreSuite) SetupSuite() {
	pc := containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(pc.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	pc := containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(pc.TruncateTables(s.ctx, "ledger_records"))
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	record := s.sampleRecord("lineage-1")
	s.Require().NoError(s.store.Create(s.ctx, record))

	found, err := s.store.Find(s.ctx, "lineage-1")
	s.Require().NoError(err)
	s.Equal(record.LineageID, found.LineageID)
	s.Equal(record.HolderDID, found.HolderDID)
	s.Equal(record.Envelope, found.Envelope)
	s.Equal(record.ContentHash, found.ContentHash)
	s.WithinDuration(record.CreatedAt, found.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestDuplicateLineageConflicts() {
	record := s.sampleRecord("lineage-1")
	s.Require().NoError(s.store.Create(s.ctx, record))
	s.ErrorIs(s.store.Create(s.ctx, record), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestUpdateReplacesEnvelope() {
	record := s.sampleRecord("lineage-1")
	s.Require().NoError(s.store.Create(s.ctx, record))

	next := walletapi.EncryptedEnvelope{
		EphemeralPublicKey: "03" + strings.Repeat("cd", 32),
		Nonce:              "bmV4dC1ub25jZQ==",
		Ciphertext:         "next-ciphertext",
	}
	updatedAt := record.UpdatedAt.Add(time.Hour)
	s.Require().NoError(s.store.Update(s.ctx, "lineage-1", next, strings.Repeat("b", 64), updatedAt))

	found, err := s.store.Find(s.ctx, "lineage-1")
	s.Require().NoError(err)
	s.Equal(next, found.Envelope)
	s.Equal(strings.Repeat("b", 64), found.ContentHash)
	s.WithinDuration(updatedAt, found.UpdatedAt, time.Second)
	s.WithinDuration(record.CreatedAt, found.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestUnknownLineage() {
	_, err := s.store.Find(s.ctx, "lineage-missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	err = s.store.Update(s.ctx, "lineage-missing", walletapi.EncryptedEnvelope{}, "hash", time.Now())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) sampleRecord(lineageID string) models.LedgerRecord {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.LedgerRecord{
		LineageID: lineageID,
		HolderDID: "did:dcert:palex",
		Envelope: walletapi.EncryptedEnvelope{
			EphemeralPublicKey: "02" + strings.Repeat("ab", 32),
			Nonce:              "bm9uY2Utbm9uY2U=",
			Ciphertext:         "ciphertext",
		},
		ContentHash: strings.Repeat("a", 64),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
