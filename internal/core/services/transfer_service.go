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
	"github.com/hoteldesk/folio-backend/internal/utils"
)

// transferService relocates transactions between folios.
type transferService struct {
	folioRepo    portsrepo.FolioRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	transferRepo portsrepo.TransferRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(folioRepo portsrepo.FolioRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, transferRepo portsrepo.TransferRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		folioRepo:    folioRepo,
		txnRepo:      txnRepo,
		transferRepo: transferRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// resolveTarget returns the destination folio, creating it first when a
// NewFolio spec was supplied. Folio creation is the all-or-nothing boundary:
// if it fails, no transaction has moved yet and the whole transfer aborts.
func (s *transferService) resolveTarget(ctx context.Context, req dto.TransferRequest, actorID string, now time.Time) (*domain.Folio, error) {
	if req.NewFolio != nil {
		if strings.TrimSpace(req.NewFolio.Name) == "" {
			return nil, apperrors.NewValidationError(map[string]string{"newFolio.name": "folio name is required"})
		}
		if req.NewFolio.Type != domain.FolioRoom && req.NewFolio.Type != domain.FolioGuest {
			return nil, apperrors.NewValidationError(map[string]string{"newFolio.type": "new folios must be of type room or guest"})
		}
		return nil, nil // reservation scope is taken from the source folio below
	}

	if req.TargetFolioID == nil || *req.TargetFolioID == "" {
		return nil, apperrors.NewValidationError(map[string]string{"targetFolioID": "either targetFolioID or newFolio must be supplied"})
	}

	target, err := s.folioRepo.FindFolioByID(ctx, *req.TargetFolioID)
	if err != nil {
		return nil, fmt.Errorf("target folio %s: %w", *req.TargetFolioID, err)
	}
	if !target.IsOpen() {
		return nil, fmt.Errorf("%w: cannot transfer into settled folio %s", apperrors.ErrStateConflict, target.FolioID)
	}
	return target, nil
}

// Transfer moves the selected transactions. Each move is applied independently
// by the store, so a failing item does not roll back the ones already moved; a
// TransferRecord capturing every attempted item is always emitted.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, actorID string) (*domain.TransferRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.TransactionIDs) == 0 {
		return nil, apperrors.NewValidationError(map[string]string{"transactionIDs": "at least one transaction must be selected"})
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError(map[string]string{"reason": "a transfer reason is required"})
	}

	now := time.Now().UTC()

	target, err := s.resolveTarget(ctx, req, actorID, now)
	if err != nil {
		return nil, err
	}

	// Resolve what we can of the selection up front; individual misses are
	// per-item failures, not an abort.
	found, err := s.txnRepo.FindTransactionsByIDs(ctx, req.TransactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve selected transactions: %w", err)
	}

	// The source folio is taken from the first resolvable transaction. All
	// selected entries are expected to sit on the same folio; strays fail
	// per item.
	var source *domain.Folio
	for _, id := range req.TransactionIDs {
		if txn, ok := found[id]; ok {
			src, err := s.folioRepo.FindFolioByID(ctx, txn.FolioID)
			if err != nil {
				return nil, fmt.Errorf("source folio %s: %w", txn.FolioID, err)
			}
			source = src
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("%w: none of the selected transactions exist", apperrors.ErrNotFound)
	}
	if !source.IsOpen() {
		return nil, fmt.Errorf("%w: cannot transfer out of settled folio %s", apperrors.ErrStateConflict, source.FolioID)
	}

	// Create the on-the-fly destination inside the source's reservation.
	if target == nil {
		newFolio := domain.Folio{
			FolioID:       uuid.NewString(),
			FolioNumber:   utils.NewFolioNumber(now),
			ReservationID: source.ReservationID,
			Type:          req.NewFolio.Type,
			Name:          strings.TrimSpace(req.NewFolio.Name),
			Status:        domain.FolioOpen,
			OpenedAt:      now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.folioRepo.SaveFolio(ctx, newFolio); err != nil {
			logger.Error("Destination folio creation failed, transfer aborted", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to create destination folio: %w", err)
		}
		target = &newFolio
	}

	if target.FolioID == source.FolioID {
		return nil, fmt.Errorf("%w: source and destination folio are the same", apperrors.ErrStateConflict)
	}

	record := domain.TransferRecord{
		TransferID:     uuid.NewString(),
		FromFolioID:    source.FolioID,
		ToFolioID:      target.FolioID,
		TransactionIDs: req.TransactionIDs,
		Items:          make([]domain.TransferItemResult, 0, len(req.TransactionIDs)),
		Reason:         strings.TrimSpace(req.Reason),
		Actor:          actorID,
		Timestamp:      now,
	}

	failures := 0
	for _, id := range req.TransactionIDs {
		item := domain.TransferItemResult{TransactionID: id}

		txn, ok := found[id]
		switch {
		case !ok:
			item.FailureReason = "transaction no longer exists"
		case txn.IsVoided():
			item.Description = txn.Description
			item.FailureReason = "voided transactions cannot be transferred"
		case txn.FolioID != source.FolioID:
			item.Description = txn.Description
			item.FailureReason = fmt.Sprintf("transaction belongs to folio %s, not the transfer source", txn.FolioID)
		default:
			item.Description = txn.Description
			if err := s.txnRepo.ReassignFolio(ctx, id, target.FolioID, source.FolioID, actorID, now); err != nil {
				item.FailureReason = err.Error()
			} else {
				item.Moved = true
			}
		}

		if !item.Moved {
			failures++
		}
		record.Items = append(record.Items, item)
	}

	if err := s.transferRepo.SaveTransferRecord(ctx, record); err != nil {
		// The moves already applied stand; losing the record is logged, not
		// rolled back.
		logger.Error("Failed to persist transfer record", slog.String("error", err.Error()), slog.String("transfer_id", record.TransferID))
	}

	logger.Info("Transfer completed",
		slog.String("transfer_id", record.TransferID),
		slog.String("from_folio", record.FromFolioID),
		slog.String("to_folio", record.ToFolioID),
		slog.Int("moved", record.MovedCount()),
		slog.Int("failed", failures))

	if failures > 0 {
		names := make([]string, 0, failures)
		for _, it := range record.FailedItems() {
			names = append(names, it.TransactionID)
		}
		return &record, fmt.Errorf("%w: %d of %d transactions failed (%s)",
			apperrors.ErrPartialFailure, failures, len(req.TransactionIDs), strings.Join(names, ", "))
	}
	return &record, nil
}

// ListTransfers retrieves the transfer log touching a folio.
func (s *transferService) ListTransfers(ctx context.Context, folioID string) ([]domain.TransferRecord, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, err
	}
	return s.transferRepo.ListTransfersByFolio(ctx, folioID)
}
