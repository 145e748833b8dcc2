package dto

import (
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentDetailsRequest carries the method-specific field groups for a
// payment/deposit/refund posting. Only the group matching Method is consulted;
// per-method required fields are enforced by the service validation contract.
type PaymentDetailsRequest struct {
	Method       domain.PaymentMethod        `json:"method" binding:"required,oneof=cash card upi bank_transfer cheque online other"`
	Card         *domain.CardDetails         `json:"card,omitempty"`
	UPI          *domain.UPIDetails          `json:"upi,omitempty"`
	BankTransfer *domain.BankTransferDetails `json:"bankTransfer,omitempty"`
	Cheque       *domain.ChequeDetails       `json:"cheque,omitempty"`
	Gateway      *domain.GatewayDetails      `json:"gateway,omitempty"`
}

// CreateTransactionRequest defines the data needed to post a transaction.
// Rate is a pointer so "present but zero" can be told apart from "missing".
type CreateTransactionRequest struct {
	Type            domain.TransactionType `json:"type" binding:"required"`
	Category        domain.Category        `json:"category" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	Quantity        decimal.Decimal        `json:"quantity" binding:"required"`
	Rate            *decimal.Decimal       `json:"rate" binding:"required"`
	PostDate        time.Time              `json:"postDate" binding:"required"`
	Tags            []string               `json:"tags,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	ReferenceNumber string                 `json:"referenceNumber,omitempty"`
	Payment         *PaymentDetailsRequest `json:"payment,omitempty"`
}

// RoomChargeRequest posts a nightly room charge, optionally with its GST line.
type RoomChargeRequest struct {
	Description string           `json:"description"`
	Nights      decimal.Decimal  `json:"nights" binding:"required"`
	Rate        *decimal.Decimal `json:"rate" binding:"required"`
	PostDate    time.Time        `json:"postDate" binding:"required"`
	WithTax     bool             `json:"withTax"`
	TaxRate     *decimal.Decimal `json:"taxRate,omitempty"` // overrides the configured GST rate
}

// VoidTransactionRequest soft-deletes a posted transaction.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateTransactionRequest edits the mutable fields of a transaction.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateTransactionRequest struct {
	Notes *string   `json:"notes,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// ListTransactionsParams defines query parameters for listing folio transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
	Type      *string `form:"type"`
	Search    *string `form:"search"`
	StartDate *string `form:"startDate"` // yyyy-mm-dd, inclusive
	EndDate   *string `form:"endDate"`   // yyyy-mm-dd, inclusive
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	TransactionNumber string                   `json:"transactionNumber"`
	FolioID           string                   `json:"folioID"`
	ReservationID     string                   `json:"reservationID"`
	Type              domain.TransactionType   `json:"type"`
	Category          domain.Category          `json:"category"`
	Description       string                   `json:"description"`
	Quantity          decimal.Decimal          `json:"quantity"`
	Rate              decimal.Decimal          `json:"rate"`
	Amount            decimal.Decimal          `json:"amount"`
	AmountFormatted   string                   `json:"amountFormatted"`
	PostDate          time.Time                `json:"postDate"`
	Status            domain.TransactionStatus `json:"status"`
	Tags              []string                 `json:"tags,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	ReferenceNumber   string                   `json:"referenceNumber,omitempty"`
	Payment           *domain.PaymentDetails   `json:"payment,omitempty"`
	VoidReason        string                   `json:"voidReason,omitempty"`
	VoidedAt          *time.Time               `json:"voidedAt,omitempty"`
	TransferredFromID *string                  `json:"transferredFromID,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
}

// ListTransactionsResponse is a page of transactions plus the pagination token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// FolioTotalsResponse mirrors domain.FolioTotals with formatted figures.
type FolioTotalsResponse struct {
	TotalCharges     decimal.Decimal `json:"totalCharges"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	TotalTaxes       decimal.Decimal `json:"totalTaxes"`
	TotalDiscounts   decimal.Decimal `json:"totalDiscounts"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	TotalRefunds     decimal.Decimal `json:"totalRefunds"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balanceFormatted"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
// formatted is the display rendering of the amount, computed by the caller so
// the formatting configuration stays in one place.
func ToTransactionResponse(txn *domain.Transaction, formatted string) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		FolioID:           txn.FolioID,
		ReservationID:     txn.ReservationID,
		Type:              txn.Type,
		Category:          txn.Category,
		Description:       txn.Description,
		Quantity:          txn.Quantity,
		Rate:              txn.Rate,
		Amount:            txn.Amount,
		AmountFormatted:   formatted,
		PostDate:          txn.PostDate,
		Status:            txn.Status,
		Tags:              txn.Tags,
		Notes:             txn.Notes,
		ReferenceNumber:   txn.ReferenceNumber,
		Payment:           txn.Payment,
		VoidReason:        txn.VoidReason,
		VoidedAt:          txn.VoidedAt,
		TransferredFromID: txn.TransferredFromID,
		CreatedAt:         txn.CreatedAt,
		CreatedBy:         txn.CreatedBy,
	}
}
