package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
)

type PgxSettlementRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSettlementRepository creates a new repository for settlement runs.
func NewPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{pool: pool}
}

const settlementColumns = `settlement_id, folio_id, reservation_id, stage, invoice_number, total_amount, paid_amount,
	balance_amount, mark_checked_out, settled_at, settled_by, created_at, created_by, last_updated_at, last_updated_by`

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(
		&s.SettlementID,
		&s.FolioID,
		&s.ReservationID,
		&s.Stage,
		&s.InvoiceNumber,
		&s.TotalAmount,
		&s.PaidAmount,
		&s.BalanceAmount,
		&s.MarkCheckedOut,
		&s.SettledAt,
		&s.SettledBy,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettlement persists a new settlement run.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, s domain.Settlement) error {
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		s.SettlementID,
		s.FolioID,
		s.ReservationID,
		s.Stage,
		s.InvoiceNumber,
		s.TotalAmount,
		s.PaidAmount,
		s.BalanceAmount,
		s.MarkCheckedOut,
		s.SettledAt,
		s.SettledBy,
		s.CreatedAt,
		s.CreatedBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement %s: %w", s.SettlementID, err)
	}
	return nil
}

// FindSettlementByID retrieves a settlement run.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	s, err := scanSettlement(r.pool.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}
	return s, nil
}

// FindActiveSettlementByFolio retrieves the latest non-complete run for a folio.
func (r *PgxSettlementRepository) FindActiveSettlementByFolio(ctx context.Context, folioID string) (*domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE folio_id = $1 AND stage != $2
		ORDER BY created_at DESC
		LIMIT 1;
	`
	s, err := scanSettlement(r.pool.QueryRow(ctx, query, folioID, domain.StageComplete))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active settlement for folio %s: %w", folioID, err)
	}
	return s, nil
}

// UpdateSettlement updates the stage, snapshot and stamps of a run.
func (r *PgxSettlementRepository) UpdateSettlement(ctx context.Context, s domain.Settlement) error {
	query := `
		UPDATE settlements
		SET stage = $2, invoice_number = $3, total_amount = $4, paid_amount = $5, balance_amount = $6,
		    mark_checked_out = $7, settled_at = $8, settled_by = $9, last_updated_at = $10, last_updated_by = $11
		WHERE settlement_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		s.SettlementID,
		s.Stage,
		s.InvoiceNumber,
		s.TotalAmount,
		s.PaidAmount,
		s.BalanceAmount,
		s.MarkCheckedOut,
		s.SettledAt,
		s.SettledBy,
		s.LastUpdatedAt,
		s.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement %s: %w", s.SettlementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
