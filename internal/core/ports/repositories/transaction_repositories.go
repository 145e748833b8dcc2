package repositories

import (
	"context"
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByIDs retrieves multiple transactions keyed by ID.
	// Missing IDs are simply absent from the map, not an error.
	FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error)

	// FindTransactionsByFolioID retrieves the complete transaction set of a
	// folio, post date ascending. Aggregation always runs over this full set.
	FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.Transaction, error)

	// ListTransactionsByFolioID retrieves a paginated page using token-based
	// keyset pagination over (post_date, created_at).
	ListTransactionsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists a batch of transactions atomically (used for
	// charge+tax pairs).
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction updates the mutable fields (notes, tags, status, void
	// fields, payment details) of a transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// ReassignFolio moves one transaction to another folio, recording the
	// provenance folio in transferred_from_id. Each call is applied
	// independently by the store.
	ReassignFolio(ctx context.Context, transactionID, toFolioID, fromFolioID, updatedBy string, updatedAt time.Time) error

	// DeleteTransaction hard-deletes a transaction. Reserved for pending
	// drafts; posted entries are voided, never deleted.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
