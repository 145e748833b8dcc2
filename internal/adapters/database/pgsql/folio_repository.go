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

type PgxFolioRepository struct {
	pool *pgxpool.Pool
}

// NewPgxFolioRepository creates a new repository for folio data.
func NewPgxFolioRepository(pool *pgxpool.Pool) portsrepo.FolioRepositoryFacade {
	return &PgxFolioRepository{pool: pool}
}

const folioColumns = `folio_id, folio_number, reservation_id, folio_type, name, status, notes, opened_at, settled_at, settled_by, created_at, created_by, last_updated_at, last_updated_by`

func scanFolio(row pgx.Row) (*domain.Folio, error) {
	var f domain.Folio
	err := row.Scan(
		&f.FolioID,
		&f.FolioNumber,
		&f.ReservationID,
		&f.Type,
		&f.Name,
		&f.Status,
		&f.Notes,
		&f.OpenedAt,
		&f.SettledAt,
		&f.SettledBy,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.LastUpdatedAt,
		&f.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// SaveFolio persists a new folio.
func (r *PgxFolioRepository) SaveFolio(ctx context.Context, folio domain.Folio) error {
	query := `
		INSERT INTO folios (` + folioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		folio.FolioID,
		folio.FolioNumber,
		folio.ReservationID,
		folio.Type,
		folio.Name,
		folio.Status,
		folio.Notes,
		folio.OpenedAt,
		folio.SettledAt,
		folio.SettledBy,
		folio.CreatedAt,
		folio.CreatedBy,
		folio.LastUpdatedAt,
		folio.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert folio %s: %w", folio.FolioID, err)
	}
	return nil
}

// FindFolioByID retrieves a specific folio by its unique identifier.
func (r *PgxFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE folio_id = $1;`
	folio, err := scanFolio(r.pool.QueryRow(ctx, query, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find folio by ID %s: %w", folioID, err)
	}
	return folio, nil
}

// FindMasterFolio retrieves the master folio for a reservation.
func (r *PgxFolioRepository) FindMasterFolio(ctx context.Context, reservationID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE reservation_id = $1 AND folio_type = $2;`
	folio, err := scanFolio(r.pool.QueryRow(ctx, query, reservationID, domain.FolioMaster))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find master folio for reservation %s: %w", reservationID, err)
	}
	return folio, nil
}

// ListFoliosByReservation retrieves every folio on a reservation, master first.
func (r *PgxFolioRepository) ListFoliosByReservation(ctx context.Context, reservationID string) ([]domain.Folio, error) {
	query := `
		SELECT ` + folioColumns + `
		FROM folios
		WHERE reservation_id = $1
		ORDER BY (folio_type = 'master') DESC, opened_at;
	`
	rows, err := r.pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query folios for reservation %s: %w", reservationID, err)
	}
	defer rows.Close()

	folios := []domain.Folio{}
	for rows.Next() {
		folio, err := scanFolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folio row for reservation %s: %w", reservationID, err)
		}
		folios = append(folios, *folio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folio rows for reservation %s: %w", reservationID, err)
	}
	return folios, nil
}

// UpdateFolio updates the mutable fields of a folio.
func (r *PgxFolioRepository) UpdateFolio(ctx context.Context, folio domain.Folio) error {
	query := `
		UPDATE folios
		SET name = $2, status = $3, notes = $4, settled_at = $5, settled_by = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE folio_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		folio.FolioID,
		folio.Name,
		folio.Status,
		folio.Notes,
		folio.SettledAt,
		folio.SettledBy,
		folio.LastUpdatedAt,
		folio.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update folio %s: %w", folio.FolioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
