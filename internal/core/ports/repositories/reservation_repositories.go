package repositories

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// ReservationRepositoryFacade persists the minimal stay records folios bill
// against.
type ReservationRepositoryFacade interface {
	// SaveReservation persists a new reservation.
	SaveReservation(ctx context.Context, r domain.Reservation) error

	// FindReservationByID retrieves a reservation.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// UpdateReservationStatus advances the stay lifecycle (e.g. checked_out at
	// settlement).
	UpdateReservationStatus(ctx context.Context, reservationID string, status domain.ReservationStatus, updatedBy string) error
}
