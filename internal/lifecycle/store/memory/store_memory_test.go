package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dcert/internal/lifecycle/models"
	"dcert/internal/vc"
	id "dcert/pkg/domain"
	"dcert/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite

	ctx   context.Context
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
}

func (s *StoreSuite) record(lineage, holder string) *models.IndexRecord {
	return &models.IndexRecord{
		LineageID: id.LineageID(lineage),
		Schema:    id.SchemaRef{ID: "urn:dcert:schema:diploma", Version: "1.0"},
		HolderDID: id.DID(holder),
		VCStatus:  true,
		History:   []vc.Credential{{ID: lineage}},
		UpdatedAt: time.Now().UTC(),
	}
}

func (s *StoreSuite) TestSaveAndFind() {
	rec := s.record("lineage-1", "did:dcert:pA")
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.FindByLineage(s.ctx, rec.LineageID)
	s.Require().NoError(err)
	s.Equal(rec.LineageID, got.LineageID)
	s.Equal(rec.HolderDID, got.HolderDID)
	s.Len(got.History, 1)
}

func (s *StoreSuite) TestFindMissingReturnsNotFound() {
	_, err := s.store.FindByLineage(s.ctx, "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestSaveOverwrites() {
	rec := s.record("lineage-1", "did:dcert:pA")
	s.Require().NoError(s.store.Save(s.ctx, rec))

	rec.VCStatus = false
	rec.History = append([]vc.Credential{{ID: "lineage-1-v2"}}, rec.History...)
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.FindByLineage(s.ctx, rec.LineageID)
	s.Require().NoError(err)
	s.False(got.VCStatus)
	s.Len(got.History, 2)
	s.Equal("lineage-1-v2", got.History[0].ID)
}

func (s *StoreSuite) TestListByHolder() {
	s.Require().NoError(s.store.Save(s.ctx, s.record("lineage-1", "did:dcert:pA")))
	s.Require().NoError(s.store.Save(s.ctx, s.record("lineage-2", "did:dcert:pA")))
	s.Require().NoError(s.store.Save(s.ctx, s.record("lineage-3", "did:dcert:pB")))

	recs, err := s.store.ListByHolder(s.ctx, "did:dcert:pA")
	s.Require().NoError(err)
	s.Len(recs, 2)
}

func (s *StoreSuite) TestReturnedRecordIsIsolated() {
	rec := s.record("lineage-1", "did:dcert:pA")
	s.Require().NoError(s.store.Save(s.ctx, rec))

	got, err := s.store.FindByLineage(s.ctx, rec.LineageID)
	s.Require().NoError(err)
	got.History[0].ID = "mutated"
	got.VCStatus = false

	again, err := s.store.FindByLineage(s.ctx, rec.LineageID)
	s.Require().NoError(err)
	s.Equal("lineage-1", again.History[0].ID)
	s.True(again.VCStatus)
}

func (s *StoreSuite) TestIntentJournal() {
	intent := &models.TransitionIntent{
		ID:        "intent-1",
		Kind:      models.TransitionUpdate,
		LineageID: "lineage-1",
		StartedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.SaveIntent(s.ctx, intent))

	pending, err := s.store.PendingIntents(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(models.TransitionUpdate, pending[0].Kind)

	s.Require().NoError(s.store.ClearIntent(s.ctx, intent.ID))
	pending, err = s.store.PendingIntents(s.ctx)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *StoreSuite) TestClearUnknownIntentIsANoop() {
	s.NoError(s.store.ClearIntent(s.ctx, "missing"))
}
