package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
)

// reservationService implements the minimal stay operations the billing core
// depends on.
type reservationService struct {
	reservationRepo portsrepo.ReservationRepositoryFacade
}

// NewReservationService creates a new ReservationService.
func NewReservationService(reservationRepo portsrepo.ReservationRepositoryFacade) portssvc.ReservationSvcFacade {
	return &reservationService{reservationRepo: reservationRepo}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

// CreateReservation records a stay.
func (s *reservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest, actorID string) (*domain.Reservation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fields := map[string]string{}
	if strings.TrimSpace(req.GuestName) == "" {
		fields["guestName"] = "guest name is required"
	}
	if strings.TrimSpace(req.RoomNumber) == "" {
		fields["roomNumber"] = "room number is required"
	}
	if !req.CheckOutDate.After(req.CheckInDate) {
		fields["checkOutDate"] = "check-out must be after check-in"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	now := time.Now().UTC()
	reservation := domain.Reservation{
		ReservationID: uuid.NewString(),
		GuestName:     strings.TrimSpace(req.GuestName),
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		Status:        domain.ResConfirmed,
		CheckInDate:   req.CheckInDate.UTC(),
		CheckOutDate:  req.CheckOutDate.UTC(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.reservationRepo.SaveReservation(ctx, reservation); err != nil {
		logger.Error("Failed to create reservation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	logger.Info("Reservation created", slog.String("reservation_id", reservation.ReservationID), slog.String("room", reservation.RoomNumber))
	return &reservation, nil
}

// GetReservation retrieves a stay.
func (s *reservationService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.reservationRepo.FindReservationByID(ctx, reservationID)
}

// Checkout advances the stay to checked_out.
func (s *reservationService) Checkout(ctx context.Context, reservationID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation.Status == domain.ResCheckedOut {
		return fmt.Errorf("%w: reservation %s is already checked out", apperrors.ErrStateConflict, reservationID)
	}

	if err := s.reservationRepo.UpdateReservationStatus(ctx, reservationID, domain.ResCheckedOut, actorID); err != nil {
		logger.Error("Failed to check out reservation", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return fmt.Errorf("failed to check out reservation %s: %w", reservationID, err)
	}

	logger.Info("Reservation checked out", slog.String("reservation_id", reservationID))
	return nil
}
