package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionSvcFacade exposes posting and ledger read operations.
type TransactionSvcFacade interface {
	// PostTransaction validates and posts one transaction to a folio.
	PostTransaction(ctx context.Context, folioID string, req dto.CreateTransactionRequest, actorID string) (*domain.Transaction, error)

	// PostRoomCharge posts a nightly room charge and, when requested, its GST
	// line in the same batch.
	PostRoomCharge(ctx context.Context, folioID string, req dto.RoomChargeRequest, actorID string) ([]domain.Transaction, error)

	// VoidTransaction soft-deletes a posted transaction with a mandatory reason.
	VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.Transaction, error)

	// DeleteDraft hard-deletes a pending transaction. Posted entries can only
	// be voided.
	DeleteDraft(ctx context.Context, transactionID string, actorID string) error

	// UpdateTransaction edits notes/tags of a transaction.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actorID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated view of a folio's ledger.
	ListTransactions(ctx context.Context, folioID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)

	// GetTotals recomputes FolioTotals from the folio's live transaction set.
	GetTotals(ctx context.Context, folioID string) (*domain.FolioTotals, error)

	// RevenueBreakdown sums charge revenue per category for a folio.
	RevenueBreakdown(ctx context.Context, folioID string) (map[domain.Category]decimal.Decimal, error)
}
