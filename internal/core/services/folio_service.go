package services

import (
	"context"
	"errors"
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
	"github.com/hoteldesk/folio-backend/internal/utils"
	"github.com/hoteldesk/folio-backend/internal/utils/ledger"
)

// folioService implements folio lifecycle operations.
type folioService struct {
	folioRepo       portsrepo.FolioRepositoryFacade
	txnRepo         portsrepo.TransactionReader
	reservationRepo portsrepo.ReservationRepositoryFacade
}

// NewFolioService creates a new FolioService.
func NewFolioService(folioRepo portsrepo.FolioRepositoryFacade, txnRepo portsrepo.TransactionReader, reservationRepo portsrepo.ReservationRepositoryFacade) portssvc.FolioSvcFacade {
	return &folioService{
		folioRepo:       folioRepo,
		txnRepo:         txnRepo,
		reservationRepo: reservationRepo,
	}
}

var _ portssvc.FolioSvcFacade = (*folioService)(nil)

// GetOrCreateMasterFolio returns the master folio for a reservation, opening
// one lazily the first time the reservation needs billing.
func (s *folioService) GetOrCreateMasterFolio(ctx context.Context, reservationID string, actorID string) (*domain.Folio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.reservationRepo.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.folioRepo.FindMasterFolio(ctx, reservationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up master folio for reservation %s: %w", reservationID, err)
	}

	now := time.Now().UTC()
	folio := domain.Folio{
		FolioID:       uuid.NewString(),
		FolioNumber:   utils.NewFolioNumber(now),
		ReservationID: reservationID,
		Type:          domain.FolioMaster,
		Name:          fmt.Sprintf("Master folio - %s", reservation.GuestName),
		Status:        domain.FolioOpen,
		OpenedAt:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.folioRepo.SaveFolio(ctx, folio); err != nil {
		logger.Error("Failed to create master folio", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return nil, fmt.Errorf("failed to create master folio: %w", err)
	}

	logger.Info("Master folio opened", slog.String("folio_id", folio.FolioID), slog.String("reservation_id", reservationID))
	return &folio, nil
}

// CreateFolio opens an additional room/guest folio on a reservation.
func (s *folioService) CreateFolio(ctx context.Context, reservationID string, req dto.CreateFolioRequest, actorID string) (*domain.Folio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError(map[string]string{"name": "folio name is required"})
	}
	if req.Type != domain.FolioRoom && req.Type != domain.FolioGuest {
		return nil, apperrors.NewValidationError(map[string]string{"type": "additional folios must be of type room or guest"})
	}

	if _, err := s.reservationRepo.FindReservationByID(ctx, reservationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folio := domain.Folio{
		FolioID:       uuid.NewString(),
		FolioNumber:   utils.NewFolioNumber(now),
		ReservationID: reservationID,
		Type:          req.Type,
		Name:          strings.TrimSpace(req.Name),
		Status:        domain.FolioOpen,
		Notes:         req.Notes,
		OpenedAt:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.folioRepo.SaveFolio(ctx, folio); err != nil {
		logger.Error("Failed to create folio", slog.String("error", err.Error()), slog.String("reservation_id", reservationID))
		return nil, fmt.Errorf("failed to create folio: %w", err)
	}

	logger.Info("Folio opened", slog.String("folio_id", folio.FolioID), slog.String("type", string(folio.Type)))
	return &folio, nil
}

// GetFolio retrieves a folio with totals recomputed from its live transaction
// set. Totals are never cached beyond this read.
func (s *folioService) GetFolio(ctx context.Context, folioID string) (*domain.Folio, *domain.FolioTotals, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, nil, err
	}
	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions for folio %s: %w", folioID, err)
	}
	totals := ledger.Aggregate(txns)
	return folio, &totals, nil
}

// ListFolios retrieves every folio on a reservation.
func (s *folioService) ListFolios(ctx context.Context, reservationID string) ([]domain.Folio, error) {
	if _, err := s.reservationRepo.FindReservationByID(ctx, reservationID); err != nil {
		return nil, err
	}
	return s.folioRepo.ListFoliosByReservation(ctx, reservationID)
}

// UpdateFolio edits name/notes of an open folio.
func (s *folioService) UpdateFolio(ctx context.Context, folioID string, req dto.UpdateFolioRequest, actorID string) (*domain.Folio, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if !folio.IsOpen() {
		return nil, fmt.Errorf("%w: folio %s is settled", apperrors.ErrStateConflict, folioID)
	}

	updated := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		folio.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Notes != nil {
		folio.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return folio, nil
	}

	folio.LastUpdatedAt = time.Now().UTC()
	folio.LastUpdatedBy = actorID
	if err := s.folioRepo.UpdateFolio(ctx, *folio); err != nil {
		return nil, fmt.Errorf("failed to update folio %s: %w", folioID, err)
	}
	return folio, nil
}

// ReopenFolio flips a settled folio back to open. Independent of the wizard,
// no balance side effects.
func (s *folioService) ReopenFolio(ctx context.Context, folioID string, actorID string) (*domain.Folio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if folio.Status != domain.FolioSettled {
		return nil, fmt.Errorf("%w: only settled folios can be reopened", apperrors.ErrStateConflict)
	}

	now := time.Now().UTC()
	folio.Status = domain.FolioOpen
	folio.SettledAt = nil
	folio.SettledBy = nil
	folio.LastUpdatedAt = now
	folio.LastUpdatedBy = actorID

	if err := s.folioRepo.UpdateFolio(ctx, *folio); err != nil {
		logger.Error("Failed to reopen folio", slog.String("error", err.Error()), slog.String("folio_id", folioID))
		return nil, fmt.Errorf("failed to reopen folio: %w", err)
	}

	logger.Info("Folio reopened", slog.String("folio_id", folioID), slog.String("actor", actorID))
	return folio, nil
}
