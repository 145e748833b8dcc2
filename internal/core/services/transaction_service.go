package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
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

// transactionService implements posting, voiding and ledger reads.
type transactionService struct {
	txnRepo        portsrepo.TransactionRepositoryFacade
	folioRepo      portsrepo.FolioReader
	gateway        portssvc.PaymentGateway
	defaultTaxRate decimal.Decimal
}

// NewTransactionService creates a new TransactionService. gateway verifies
// online payment signatures before they post. defaultTaxRate is the configured
// GST rate applied when a room charge does not override it.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, folioRepo portsrepo.FolioReader, gateway portssvc.PaymentGateway, defaultTaxRate decimal.Decimal) portssvc.TransactionSvcFacade {
	if defaultTaxRate.IsZero() {
		defaultTaxRate = ledger.DefaultTaxRate
	}
	return &transactionService{
		txnRepo:        txnRepo,
		folioRepo:      folioRepo,
		gateway:        gateway,
		defaultTaxRate: defaultTaxRate,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func isValidType(t domain.TransactionType) bool {
	for _, v := range domain.TransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

func isValidCategory(c domain.Category) bool {
	for _, v := range domain.Categories {
		if c == v {
			return true
		}
	}
	return false
}

// validatePayment enforces the method-specific required field groups.
func validatePayment(p *dto.PaymentDetailsRequest, fields map[string]string) {
	switch p.Method {
	case domain.MethodCard:
		if p.Card == nil || strings.TrimSpace(p.Card.LastFour) == "" {
			fields["payment.card.lastFour"] = "last four digits are required for card payments"
		}
		if p.Card == nil || strings.TrimSpace(p.Card.CardType) == "" {
			fields["payment.card.cardType"] = "card type is required for card payments"
		}
	case domain.MethodUPI:
		if p.UPI == nil || strings.TrimSpace(p.UPI.UPIID) == "" {
			fields["payment.upi.upiID"] = "UPI id is required for UPI payments"
		}
	case domain.MethodBankTransfer:
		if p.BankTransfer == nil || strings.TrimSpace(p.BankTransfer.BankName) == "" {
			fields["payment.bankTransfer.bankName"] = "bank name is required for bank transfers"
		}
	case domain.MethodCheque:
		if p.Cheque == nil || strings.TrimSpace(p.Cheque.ChequeNumber) == "" {
			fields["payment.cheque.chequeNumber"] = "cheque number is required for cheque payments"
		}
		if p.Cheque == nil || p.Cheque.ChequeDate.IsZero() {
			fields["payment.cheque.chequeDate"] = "cheque date is required for cheque payments"
		}
		if p.Cheque == nil || strings.TrimSpace(p.Cheque.BankName) == "" {
			fields["payment.cheque.bankName"] = "bank name is required for cheque payments"
		}
	case domain.MethodCash, domain.MethodOnline, domain.MethodOther:
		// no extra required fields
	default:
		fields["payment.method"] = "unknown payment method"
	}
}

// validatePosting enforces the posting validation contract. No partial
// transaction is ever created: all violations are collected and returned at
// once so the caller can render field-specific messages.
func validatePosting(req dto.CreateTransactionRequest) error {
	fields := map[string]string{}

	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "description must not be empty"
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		fields["quantity"] = "quantity must be greater than zero"
	}
	if req.Rate == nil {
		fields["rate"] = "rate is required (zero is allowed, absent is not)"
	}
	if req.PostDate.IsZero() {
		fields["postDate"] = "post date is required"
	}
	if !isValidType(req.Type) {
		fields["type"] = fmt.Sprintf("unknown transaction type %q", req.Type)
	}
	if !isValidCategory(req.Category) {
		fields["category"] = fmt.Sprintf("unknown category %q", req.Category)
	}

	needsPayment := req.Type == domain.TxnPayment || req.Type == domain.TxnDeposit || req.Type == domain.TxnRefund
	if needsPayment && req.Payment == nil {
		fields["payment"] = "payment details are required for payment, deposit and refund entries"
	}
	if req.Payment != nil {
		validatePayment(req.Payment, fields)
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

func paymentDetailsFromReq(p *dto.PaymentDetailsRequest) *domain.PaymentDetails {
	if p == nil {
		return nil
	}
	return &domain.PaymentDetails{
		Method:       p.Method,
		Card:         p.Card,
		UPI:          p.UPI,
		BankTransfer: p.BankTransfer,
		Cheque:       p.Cheque,
		Gateway:      p.Gateway,
	}
}

// openFolio loads a folio and rejects postings into a settled one.
func (s *transactionService) openFolio(ctx context.Context, folioID string) (*domain.Folio, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if !folio.IsOpen() {
		return nil, fmt.Errorf("%w: folio %s is settled", apperrors.ErrStateConflict, folioID)
	}
	return folio, nil
}

// PostTransaction validates and posts one transaction.
func (s *transactionService) PostTransaction(ctx context.Context, folioID string, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePosting(req); err != nil {
		return nil, err
	}

	folio, err := s.openFolio(ctx, folioID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: utils.NewTransactionNumber(now),
		FolioID:           folio.FolioID,
		ReservationID:     folio.ReservationID,
		Type:              req.Type,
		Category:          req.Category,
		Description:       strings.TrimSpace(req.Description),
		Quantity:          req.Quantity,
		Rate:              *req.Rate,
		Amount:            ledger.SignedAmount(req.Type, req.Quantity, *req.Rate),
		PostDate:          req.PostDate,
		Status:            domain.TxnPosted,
		Tags:              req.Tags,
		Notes:             req.Notes,
		ReferenceNumber:   req.ReferenceNumber,
		Payment:           paymentDetailsFromReq(req.Payment),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	// Online payments post only after the provider signature checks out.
	// Incomplete gateway details leave the entry pending; the client completes
	// the checkout and re-submits with the verified ids.
	if txn.Payment != nil && txn.Payment.Method == domain.MethodOnline {
		g := txn.Payment.Gateway
		switch {
		case g == nil || g.OrderID == "" || g.PaymentID == "" || g.Signature == "":
			txn.Status = domain.TxnPending
		case s.gateway == nil || !s.gateway.VerifySignature(g.OrderID, g.PaymentID, g.Signature):
			logger.Warn("Rejected online payment with invalid gateway signature",
				slog.String("folio_id", folioID),
				slog.String("order_id", g.OrderID))
			return nil, apperrors.NewValidationError(map[string]string{
				"payment.gateway.signature": "gateway signature verification failed",
			})
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("folio_id", folioID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("folio_id", folioID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// PostRoomCharge posts a nightly room charge and, when requested, its GST line
// in one atomic batch.
func (s *transactionService) PostRoomCharge(ctx context.Context, folioID string, req dto.RoomChargeRequest, actorID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fields := map[string]string{}
	if req.Nights.LessThanOrEqual(decimal.Zero) {
		fields["nights"] = "nights must be greater than zero"
	}
	if req.Rate == nil {
		fields["rate"] = "rate is required"
	}
	if req.PostDate.IsZero() {
		fields["postDate"] = "post date is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}

	folio, err := s.openFolio(ctx, folioID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Room charge (%s night(s))", req.Nights.String())
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	charge := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: utils.NewTransactionNumber(now),
		FolioID:           folio.FolioID,
		ReservationID:     folio.ReservationID,
		Type:              domain.TxnRoomCharge,
		Category:          domain.CategoryRoom,
		Description:       description,
		Quantity:          req.Nights,
		Rate:              *req.Rate,
		Amount:            ledger.SignedAmount(domain.TxnRoomCharge, req.Nights, *req.Rate),
		PostDate:          req.PostDate,
		Status:            domain.TxnPosted,
		AuditFields:       audit,
	}

	txns := []domain.Transaction{charge}

	if req.WithTax {
		rate := s.defaultTaxRate
		if req.TaxRate != nil {
			rate = *req.TaxRate
		}
		taxAmount := ledger.ApplyTax(charge.Amount, rate)
		txns = append(txns, domain.Transaction{
			TransactionID:     uuid.NewString(),
			TransactionNumber: utils.NewTransactionNumber(now),
			FolioID:           folio.FolioID,
			ReservationID:     folio.ReservationID,
			Type:              domain.TxnTax,
			Category:          domain.CategoryRoom,
			Description:       fmt.Sprintf("GST @ %s%% on %s", rate.Mul(decimal.NewFromInt(100)).String(), description),
			Quantity:          decimal.NewFromInt(1),
			Rate:              taxAmount,
			Amount:            taxAmount,
			PostDate:          req.PostDate,
			Status:            domain.TxnPosted,
			AuditFields:       audit,
		})
	}

	if err := s.txnRepo.SaveTransactions(ctx, txns); err != nil {
		logger.Error("Failed to save room charge batch", slog.String("error", err.Error()), slog.String("folio_id", folioID))
		return nil, fmt.Errorf("failed to save room charge: %w", err)
	}

	logger.Info("Room charge posted", slog.String("folio_id", folioID), slog.Int("entries", len(txns)))
	return txns, nil
}

// VoidTransaction soft-deletes a posted transaction. Voided entries stay
// visible in history but are excluded from balance math.
func (s *transactionService) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError(map[string]string{"reason": "void reason is required"})
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TxnPosted {
		return nil, fmt.Errorf("%w: cannot void a %s transaction", apperrors.ErrStateConflict, txn.Status)
	}

	now := time.Now().UTC()
	txn.Status = domain.TxnVoided
	txn.VoidReason = strings.TrimSpace(reason)
	txn.VoidedAt = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actorID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to void transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to void transaction: %w", err)
	}

	logger.Info("Transaction voided", slog.String("transaction_id", transactionID), slog.String("reason", txn.VoidReason))
	return txn, nil
}

// DeleteDraft hard-deletes a pending transaction. Posted entries can only be
// voided; there is no delete path for them.
func (s *transactionService) DeleteDraft(ctx context.Context, transactionID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.TxnPending {
		return fmt.Errorf("%w: only pending drafts can be deleted, this transaction is %s", apperrors.ErrStateConflict, txn.Status)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete draft", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	logger.Info("Draft deleted", slog.String("transaction_id", transactionID), slog.String("actor", actorID))
	return nil
}

// UpdateTransaction edits notes/tags; everything else is immutable after post.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actorID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Notes != nil {
		txn.Notes = *req.Notes
		updated = true
	}
	if req.Tags != nil {
		txn.Tags = *req.Tags
		updated = true
	}
	if !updated {
		return txn, nil
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = actorID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions returns a filtered view of a folio's ledger. Unfiltered
// reads use keyset pagination; filtered reads run over the full set, matching
// how the history view recomputes everything from a fresh load.
func (s *transactionService) ListTransactions(ctx context.Context, folioID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, nil, err
	}

	hasFilter := params.Type != nil || params.Search != nil || params.StartDate != nil || params.EndDate != nil
	if !hasFilter {
		limit := params.Limit
		if limit <= 0 {
			limit = 50
		}
		return s.txnRepo.ListTransactionsByFolioID(ctx, folioID, limit, params.NextToken)
	}

	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return nil, nil, err
	}

	if params.Type != nil && *params.Type != "" {
		wanted := domain.TransactionType(*params.Type)
		filtered := txns[:0:0]
		for _, t := range txns {
			if t.Type == wanted {
				filtered = append(filtered, t)
			}
		}
		txns = filtered
	}

	if params.StartDate != nil || params.EndDate != nil {
		start, end, err := parseDateRange(params.StartDate, params.EndDate)
		if err != nil {
			return nil, nil, err
		}
		txns = ledger.FilterByDateRange(txns, start, end)
	}

	if params.Search != nil {
		txns = ledger.Search(txns, *params.Search)
	}

	return txns, nil, nil
}

// GetTotals recomputes FolioTotals from the folio's live transaction set.
func (s *transactionService) GetTotals(ctx context.Context, folioID string) (*domain.FolioTotals, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for folio %s: %w", folioID, err)
	}
	totals := ledger.Aggregate(txns)
	return &totals, nil
}

// RevenueBreakdown sums charge revenue per category.
func (s *transactionService) RevenueBreakdown(ctx context.Context, folioID string) (map[domain.Category]decimal.Decimal, error) {
	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for folio %s: %w", folioID, err)
	}
	return ledger.RevenueBreakdown(txns), nil
}

// parseDateRange turns optional yyyy-mm-dd bounds into an inclusive range,
// defaulting missing ends to the distant past/future.
func parseDateRange(startStr, endStr *string) (time.Time, time.Time, error) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if startStr != nil && *startStr != "" {
		parsed, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError(map[string]string{"startDate": "must be yyyy-mm-dd"})
		}
		start = parsed
	}
	if endStr != nil && *endStr != "" {
		parsed, err := time.Parse("2006-01-02", *endStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError(map[string]string{"endDate": "must be yyyy-mm-dd"})
		}
		end = parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError(map[string]string{"endDate": "must not precede startDate"})
	}
	return start, end, nil
}
