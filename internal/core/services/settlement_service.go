package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/hoteldesk/folio-backend/internal/middleware"
	"github.com/hoteldesk/folio-backend/internal/utils"
	"github.com/hoteldesk/folio-backend/internal/utils/ledger"
)

// ReceiptRenderer turns a completed settlement summary into a downloadable
// document.
type ReceiptRenderer interface {
	Render(summary domain.SettlementSummary) ([]byte, error)
}

// settlementService drives the settlement wizard for a folio.
type settlementService struct {
	settlementRepo  portsrepo.SettlementRepositoryFacade
	folioRepo       portsrepo.FolioRepositoryFacade
	txnRepo         portsrepo.TransactionReader
	reservationRepo portsrepo.ReservationRepositoryFacade
	txnSvc          portssvc.TransactionSvcFacade
	receipts        ReceiptRenderer
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	settlementRepo portsrepo.SettlementRepositoryFacade,
	folioRepo portsrepo.FolioRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	reservationRepo portsrepo.ReservationRepositoryFacade,
	txnSvc portssvc.TransactionSvcFacade,
	receipts ReceiptRenderer,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo:  settlementRepo,
		folioRepo:       folioRepo,
		txnRepo:         txnRepo,
		reservationRepo: reservationRepo,
		txnSvc:          txnSvc,
		receipts:        receipts,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// liveTotals recomputes the folio balance from its full transaction set.
func (s *settlementService) liveTotals(ctx context.Context, folioID string) (domain.FolioTotals, error) {
	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return domain.FolioTotals{}, fmt.Errorf("failed to load transactions for folio %s: %w", folioID, err)
	}
	return ledger.Aggregate(txns), nil
}

// StartSettlement opens a wizard run on an open folio. The review stage is
// transient: a positive balance lands the run in payment, anything else skips
// straight to confirm.
func (s *settlementService) StartSettlement(ctx context.Context, req dto.StartSettlementRequest, actorID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	folio, err := s.folioRepo.FindFolioByID(ctx, req.FolioID)
	if err != nil {
		return nil, err
	}
	if !folio.IsOpen() {
		return nil, fmt.Errorf("%w: folio %s is already settled", apperrors.ErrStateConflict, folio.FolioID)
	}

	if active, err := s.settlementRepo.FindActiveSettlementByFolio(ctx, req.FolioID); err == nil {
		// Resume rather than stack concurrent runs on one folio.
		return active, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active settlement: %w", err)
	}

	totals, err := s.liveTotals(ctx, req.FolioID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	settlement := domain.Settlement{
		SettlementID:  uuid.NewString(),
		FolioID:       folio.FolioID,
		ReservationID: folio.ReservationID,
		Stage:         domain.StagePayment,
		TotalAmount:   totals.TotalCharges.Add(totals.TotalFees).Add(totals.TotalTaxes).Sub(totals.TotalDiscounts),
		PaidAmount:    totals.TotalPayments.Sub(totals.TotalRefunds),
		BalanceAmount: totals.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if totals.Balance.Sign() <= 0 {
		settlement.Stage = domain.StageConfirm
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		logger.Error("Failed to start settlement", slog.String("error", err.Error()), slog.String("folio_id", req.FolioID))
		return nil, fmt.Errorf("failed to start settlement: %w", err)
	}

	logger.Info("Settlement started",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("folio_id", settlement.FolioID),
		slog.String("stage", string(settlement.Stage)),
		slog.String("balance", settlement.BalanceAmount.String()))
	return &settlement, nil
}

// CollectPayment posts a payment transaction against the folio and moves the
// run to confirm. A posting failure leaves the run parked in payment.
func (s *settlementService) CollectPayment(ctx context.Context, settlementID string, req dto.SettlementPaymentRequest, actorID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Stage != domain.StagePayment {
		return nil, fmt.Errorf("%w: settlement %s is in stage %s, payments are only collected in the payment stage",
			apperrors.ErrStateConflict, settlementID, settlement.Stage)
	}

	if req.Amount.Sign() <= 0 {
		return nil, apperrors.NewValidationError(map[string]string{"amount": "payment amount must be positive"})
	}

	// Cap against the live balance, not the snapshot taken at start: postings
	// may have landed on the folio since the run opened.
	current, err := s.liveTotals(ctx, settlement.FolioID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(current.Balance) {
		return nil, apperrors.NewValidationError(map[string]string{
			"amount": fmt.Sprintf("payment of %s exceeds the outstanding balance of %s",
				req.Amount.String(), current.Balance.String()),
		})
	}

	postDate := time.Now().UTC()
	if req.PostDate != nil {
		postDate = req.PostDate.UTC()
	}

	one := decimal.NewFromInt(1)
	txnReq := dto.CreateTransactionRequest{
		Type:        domain.TxnPayment,
		Category:    domain.CategoryPayment,
		Description: "Settlement payment",
		Quantity:    one,
		Rate:        &req.Amount,
		PostDate:    postDate,
		Notes:       req.Notes,
		Payment:     &req.Payment,
	}
	if _, err := s.txnSvc.PostTransaction(ctx, settlement.FolioID, txnReq, actorID); err != nil {
		logger.Error("Settlement payment failed", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
		return nil, err
	}

	totals, err := s.liveTotals(ctx, settlement.FolioID)
	if err != nil {
		return nil, err
	}

	settlement.Stage = domain.StageConfirm
	settlement.PaidAmount = totals.TotalPayments.Sub(totals.TotalRefunds)
	settlement.BalanceAmount = totals.Balance
	settlement.LastUpdatedAt = time.Now().UTC()
	settlement.LastUpdatedBy = actorID

	if err := s.settlementRepo.UpdateSettlement(ctx, *settlement); err != nil {
		return nil, fmt.Errorf("failed to advance settlement %s: %w", settlementID, err)
	}

	logger.Info("Settlement payment collected",
		slog.String("settlement_id", settlementID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", settlement.BalanceAmount.String()))
	return settlement, nil
}

// Settle completes the run: the folio flips to settled, the snapshot is frozen
// with an invoice number, and the reservation is optionally checked out. The
// checkout is best effort; its failure is surfaced on the summary while the
// folio stays settled.
func (s *settlementService) Settle(ctx context.Context, settlementID string, req dto.SettleRequest, actorID string) (*domain.SettlementSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Stage != domain.StageConfirm {
		return nil, fmt.Errorf("%w: settlement %s is in stage %s, settling requires the confirm stage",
			apperrors.ErrStateConflict, settlementID, settlement.Stage)
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, settlement.FolioID)
	if err != nil {
		return nil, err
	}
	if !folio.IsOpen() {
		return nil, fmt.Errorf("%w: folio %s is already settled", apperrors.ErrStateConflict, folio.FolioID)
	}

	totals, err := s.liveTotals(ctx, settlement.FolioID)
	if err != nil {
		return nil, err
	}
	if totals.Balance.Sign() > 0 && !req.AcknowledgeBalance {
		return nil, fmt.Errorf("%w: folio %s carries an outstanding balance of %s, set acknowledgeBalance to settle anyway",
			apperrors.ErrStateConflict, folio.FolioID, totals.Balance.String())
	}

	now := time.Now().UTC()

	folio.Status = domain.FolioSettled
	folio.SettledAt = &now
	folio.SettledBy = &actorID
	folio.LastUpdatedAt = now
	folio.LastUpdatedBy = actorID
	if err := s.folioRepo.UpdateFolio(ctx, *folio); err != nil {
		logger.Error("Failed to settle folio", slog.String("error", err.Error()), slog.String("folio_id", folio.FolioID))
		return nil, fmt.Errorf("failed to settle folio %s: %w", folio.FolioID, err)
	}

	settlement.Stage = domain.StageComplete
	settlement.InvoiceNumber = utils.NewInvoiceNumber(now)
	settlement.TotalAmount = totals.TotalCharges.Add(totals.TotalFees).Add(totals.TotalTaxes).Sub(totals.TotalDiscounts)
	settlement.PaidAmount = totals.TotalPayments.Sub(totals.TotalRefunds)
	settlement.BalanceAmount = totals.Balance
	settlement.MarkCheckedOut = req.MarkCheckedOut
	settlement.SettledAt = &now
	settlement.SettledBy = actorID
	settlement.LastUpdatedAt = now
	settlement.LastUpdatedBy = actorID
	if err := s.settlementRepo.UpdateSettlement(ctx, *settlement); err != nil {
		// Folio is settled either way; the stale run is recoverable by hand.
		logger.Error("Failed to complete settlement record", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
	}

	summary := domain.SettlementSummary{
		FolioNumber:    folio.FolioNumber,
		InvoiceNumber:  settlement.InvoiceNumber,
		SettlementDate: now,
		TotalAmount:    settlement.TotalAmount,
		PaidAmount:     settlement.PaidAmount,
		BalanceAmount:  settlement.BalanceAmount,
	}

	if reservation, err := s.reservationRepo.FindReservationByID(ctx, settlement.ReservationID); err == nil {
		summary.GuestName = reservation.GuestName
		summary.RoomNumber = reservation.RoomNumber
	}

	if req.MarkCheckedOut {
		if err := s.reservationRepo.UpdateReservationStatus(ctx, settlement.ReservationID, domain.ResCheckedOut, actorID); err != nil {
			logger.Error("Checkout failed after settlement", slog.String("error", err.Error()), slog.String("reservation_id", settlement.ReservationID))
			summary.CheckoutFailed = true
		}
	}

	logger.Info("Folio settled",
		slog.String("settlement_id", settlementID),
		slog.String("folio_id", folio.FolioID),
		slog.String("invoice_number", settlement.InvoiceNumber),
		slog.Bool("checked_out", req.MarkCheckedOut && !summary.CheckoutFailed))
	return &summary, nil
}

// GetSettlement retrieves a wizard run.
func (s *settlementService) GetSettlement(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	return s.settlementRepo.FindSettlementByID(ctx, settlementID)
}

// RenderReceipt renders the completed settlement's summary as a PDF.
func (s *settlementService) RenderReceipt(ctx context.Context, settlementID string) ([]byte, error) {
	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Stage != domain.StageComplete {
		return nil, fmt.Errorf("%w: receipts are only available for completed settlements", apperrors.ErrStateConflict)
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, settlement.FolioID)
	if err != nil {
		return nil, err
	}

	summary := domain.SettlementSummary{
		FolioNumber:    folio.FolioNumber,
		InvoiceNumber:  settlement.InvoiceNumber,
		SettlementDate: settlement.LastUpdatedAt,
		TotalAmount:    settlement.TotalAmount,
		PaidAmount:     settlement.PaidAmount,
		BalanceAmount:  settlement.BalanceAmount,
	}
	if settlement.SettledAt != nil {
		summary.SettlementDate = *settlement.SettledAt
	}
	if reservation, err := s.reservationRepo.FindReservationByID(ctx, settlement.ReservationID); err == nil {
		summary.GuestName = reservation.GuestName
		summary.RoomNumber = reservation.RoomNumber
	}

	return s.receipts.Render(summary)
}
