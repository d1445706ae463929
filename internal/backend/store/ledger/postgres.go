package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/models"
	"dcert/pkg/platform/sentinel"
)

// PostgresStore persists ledger records in PostgreSQL. Envelopes are stored as
// JSONB; the backend never decrypts them.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the table this store expects. Applied by migrations in production,
// and by integration tests directly.
const Schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	lineage_id   TEXT PRIMARY KEY,
	holder_did   TEXT NOT NULL,
	envelope     JSONB NOT NULL,
	content_hash TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ledger_records_holder ON ledger_records (holder_did);
`

func (s *PostgresStore) Create(ctx context.Context, record models.LedgerRecord) error {
	envelope, err := json.Marshal(record.Envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	query := `
		INSERT INTO ledger_records (lineage_id, holder_did, envelope, content_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.LineageID,
		record.HolderDID,
		envelope,
		record.ContentHash,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lineage already recorded: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create ledger record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, lineageID string, envelope walletapi.EncryptedEnvelope, contentHash string, updatedAt time.Time) error {
	raw, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	query := `
		UPDATE ledger_records
		SET envelope = $2, content_hash = $3, updated_at = $4
		WHERE lineage_id = $1
	`
	res, err := s.db.ExecContext(ctx, query, lineageID, raw, contentHash, updatedAt)
	if err != nil {
		return fmt.Errorf("update ledger record: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update ledger record rows: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, lineageID string) (*models.LedgerRecord, error) {
	query := `
		SELECT lineage_id, holder_did, envelope, content_hash, created_at, updated_at
		FROM ledger_records
		WHERE lineage_id = $1
	`
	var record models.LedgerRecord
	var raw []byte
	err := s.db.QueryRowContext(ctx, query, lineageID).Scan(
		&record.LineageID,
		&record.HolderDID,
		&raw,
		&record.ContentHash,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find ledger record: %w", err)
	}
	if err := json.Unmarshal(raw, &record.Envelope); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
