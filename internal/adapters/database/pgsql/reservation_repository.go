package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
)

type PgxReservationRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReservationRepository creates a new repository for reservation data.
func NewPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{pool: pool}
}

// SaveReservation persists a new reservation.
func (r *PgxReservationRepository) SaveReservation(ctx context.Context, res domain.Reservation) error {
	query := `
		INSERT INTO reservations (reservation_id, guest_name, room_number, status, check_in_date, check_out_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		res.ReservationID,
		res.GuestName,
		res.RoomNumber,
		res.Status,
		res.CheckInDate,
		res.CheckOutDate,
		res.CreatedAt,
		res.CreatedBy,
		res.LastUpdatedAt,
		res.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation %s: %w", res.ReservationID, err)
	}
	return nil
}

// FindReservationByID retrieves a reservation.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := `
		SELECT reservation_id, guest_name, room_number, status, check_in_date, check_out_date, created_at, created_by, last_updated_at, last_updated_by
		FROM reservations
		WHERE reservation_id = $1;
	`
	var res domain.Reservation
	err := r.pool.QueryRow(ctx, query, reservationID).Scan(
		&res.ReservationID,
		&res.GuestName,
		&res.RoomNumber,
		&res.Status,
		&res.CheckInDate,
		&res.CheckOutDate,
		&res.CreatedAt,
		&res.CreatedBy,
		&res.LastUpdatedAt,
		&res.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation by ID %s: %w", reservationID, err)
	}
	return &res, nil
}

// UpdateReservationStatus advances the stay lifecycle.
func (r *PgxReservationRepository) UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, updatedBy string) error {
	query := `
		UPDATE reservations
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE reservation_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, reservationID, status, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s status: %w", reservationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
