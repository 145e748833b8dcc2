package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
)

type PgxTransferRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransferRepository creates a new repository for the transfer log.
func NewPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{pool: pool}
}

// SaveTransferRecord appends one transfer record. The per-item outcomes are
// stored as a JSONB document since they are only ever read back whole.
func (r *PgxTransferRepository) SaveTransferRecord(ctx context.Context, record domain.TransferRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("failed to encode transfer items for %s: %w", record.TransferID, err)
	}

	query := `
		INSERT INTO transfers (transfer_id, from_folio_id, to_folio_id, transaction_ids, items, reason, actor, transferred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.pool.Exec(ctx, query,
		record.TransferID,
		record.FromFolioID,
		record.ToFolioID,
		record.TransactionIDs,
		items,
		record.Reason,
		record.Actor,
		record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer record %s: %w", record.TransferID, err)
	}
	return nil
}

// ListTransfersByFolio retrieves transfer records touching a folio as source or
// destination, newest first.
func (r *PgxTransferRepository) ListTransfersByFolio(ctx context.Context, folioID string) ([]domain.TransferRecord, error) {
	query := `
		SELECT transfer_id, from_folio_id, to_folio_id, transaction_ids, items, reason, actor, transferred_at
		FROM transfers
		WHERE from_folio_id = $1 OR to_folio_id = $1
		ORDER BY transferred_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers for folio %s: %w", folioID, err)
	}
	defer rows.Close()

	records := []domain.TransferRecord{}
	for rows.Next() {
		var record domain.TransferRecord
		var items []byte
		if err := rows.Scan(
			&record.TransferID,
			&record.FromFolioID,
			&record.ToFolioID,
			&record.TransactionIDs,
			&items,
			&record.Reason,
			&record.Actor,
			&record.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer row for folio %s: %w", folioID, err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &record.Items); err != nil {
				return nil, fmt.Errorf("failed to decode transfer items for %s: %w", record.TransferID, err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows for folio %s: %w", folioID, err)
	}
	return records, nil
}
