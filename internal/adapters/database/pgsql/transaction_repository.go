package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoteldesk/folio-backend/internal/apperrors"
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	portsrepo "github.com/hoteldesk/folio-backend/internal/core/ports/repositories"
	"github.com/hoteldesk/folio-backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

const txnColumns = `transaction_id, transaction_number, folio_id, reservation_id, txn_type, category, description,
	quantity, rate, amount, post_date, status, tags, notes, reference_number, payment_details,
	void_reason, voided_at, transferred_from_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var paymentJSON []byte
	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionNumber,
		&txn.FolioID,
		&txn.ReservationID,
		&txn.Type,
		&txn.Category,
		&txn.Description,
		&txn.Quantity,
		&txn.Rate,
		&txn.Amount,
		&txn.PostDate,
		&txn.Status,
		&txn.Tags,
		&txn.Notes,
		&txn.ReferenceNumber,
		&paymentJSON,
		&txn.VoidReason,
		&txn.VoidedAt,
		&txn.TransferredFromID,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(paymentJSON) > 0 {
		var details domain.PaymentDetails
		if err := json.Unmarshal(paymentJSON, &details); err != nil {
			return nil, fmt.Errorf("failed to decode payment details for transaction %s: %w", txn.TransactionID, err)
		}
		txn.Payment = &details
	}
	return &txn, nil
}

func paymentJSON(txn *domain.Transaction) ([]byte, error) {
	if txn.Payment == nil {
		return nil, nil
	}
	data, err := json.Marshal(txn.Payment)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment details for transaction %s: %w", txn.TransactionID, err)
	}
	return data, nil
}

const insertTxnQuery = `
	INSERT INTO transactions (` + txnColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
`

func insertArgs(txn *domain.Transaction, payment []byte) []interface{} {
	return []interface{}{
		txn.TransactionID,
		txn.TransactionNumber,
		txn.FolioID,
		txn.ReservationID,
		txn.Type,
		txn.Category,
		txn.Description,
		txn.Quantity,
		txn.Rate,
		txn.Amount,
		txn.PostDate,
		txn.Status,
		txn.Tags,
		txn.Notes,
		txn.ReferenceNumber,
		payment,
		txn.VoidReason,
		txn.VoidedAt,
		txn.TransferredFromID,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	}
}

// SaveTransaction persists a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	payment, err := paymentJSON(&txn)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, insertTxnQuery, insertArgs(&txn, payment)...); err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveTransactions persists a batch of transactions atomically. Used for
// charge+tax pairs which must land together.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for i := range txns {
		payment, err := paymentJSON(&txns[i])
		if err != nil {
			return err
		}
		batch.Queue(insertTxnQuery, insertArgs(&txns[i], payment)...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute transaction insert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction insert batch: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionsByIDs retrieves multiple transactions keyed by ID. Missing
// IDs are simply absent from the map.
func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) (map[string]domain.Transaction, error) {
	result := make(map[string]domain.Transaction, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + txnColumns + ` FROM transactions WHERE transaction_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		result[txn.TransactionID] = *txn
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return result, nil
}

// FindTransactionsByFolioID retrieves the complete transaction set of a folio,
// post date ascending. Aggregation always runs over this full set.
func (r *PgxTransactionRepository) FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM transactions
		WHERE folio_id = $1
		ORDER BY post_date, created_at;
	`
	rows, err := r.pool.Query(ctx, query, folioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for folio %s: %w", folioID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for folio %s: %w", folioID, err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for folio %s: %w", folioID, err)
	}
	return txns, nil
}

// ListTransactionsByFolioID retrieves one page of a folio's ledger using keyset
// pagination over (post_date, created_at), newest first.
func (r *PgxTransactionRepository) ListTransactionsByFolioID(ctx context.Context, folioID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + txnColumns + ` FROM transactions WHERE folio_id = $1`
	// Ordering must be stable for the cursor to work.
	orderByClause := `ORDER BY post_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		lastPostDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		// Tuple comparison is concise and efficient in Postgres.
		query := baseQuery + ` AND (post_date, created_at) < ($2, $3) ` + orderByClause + ` LIMIT $4;`
		rows, err = r.pool.Query(ctx, query, folioID, lastPostDate, lastCreatedAt, fetchLimit)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $2;`
		rows, err = r.pool.Query(ctx, query, folioID, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transaction page for folio %s: %w", folioID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for folio %s: %w", folioID, err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for folio %s: %w", folioID, err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		last := txns[limit-1]
		token := pagination.EncodeToken(last.PostDate, last.CreatedAt)
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return txns, nextTokenVal, nil
}

// UpdateTransaction updates the mutable fields of a transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	payment, err := paymentJSON(&txn)
	if err != nil {
		return err
	}
	query := `
		UPDATE transactions
		SET status = $2, tags = $3, notes = $4, payment_details = $5,
		    void_reason = $6, voided_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Status,
		txn.Tags,
		txn.Notes,
		payment,
		txn.VoidReason,
		txn.VoidedAt,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReassignFolio moves one transaction to another folio, recording the folio it
// came from. Each call commits independently, which is what makes transfers
// best effort per item.
func (r *PgxTransactionRepository) ReassignFolio(ctx context.Context, transactionID, toFolioID, fromFolioID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET folio_id = $2, transferred_from_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND folio_id = $3;
	`
	tag, err := r.pool.Exec(ctx, query, transactionID, toFolioID, fromFolioID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to reassign transaction %s to folio %s: %w", transactionID, toFolioID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the transaction vanished or it already left the source folio.
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction hard-deletes a transaction. Reserved for pending drafts.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
