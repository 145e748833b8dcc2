package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// ReservationSvcFacade exposes the minimal stay operations the billing core
// depends on.
type ReservationSvcFacade interface {
	// CreateReservation records a stay.
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest, actorID string) (*domain.Reservation, error)

	// GetReservation retrieves a stay.
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// Checkout advances the stay to checked_out.
	Checkout(ctx context.Context, reservationID string, actorID string) error
}
