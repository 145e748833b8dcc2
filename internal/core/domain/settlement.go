package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStage is the step of the settlement wizard a folio is on.
// The wizard's initial review step never persists: a run is stored at
// payment (or confirm, when nothing is owed). complete is terminal.
type SettlementStage string

const (
	StagePayment  SettlementStage = "payment"
	StageConfirm  SettlementStage = "confirm"
	StageComplete SettlementStage = "complete"
)

// Settlement is one run of the settlement workflow for a folio. The totals
// fields are a snapshot taken at the moment of settling, for receipt rendering;
// live balances are always recomputed from the transaction set.
type Settlement struct {
	SettlementID   string          `json:"settlementID"`
	FolioID        string          `json:"folioID"`
	ReservationID  string          `json:"reservationID"`
	Stage          SettlementStage `json:"stage"`
	InvoiceNumber  string          `json:"invoiceNumber,omitempty"` // assigned on completion
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
	MarkCheckedOut bool            `json:"markCheckedOut"`
	SettledAt      *time.Time      `json:"settledAt,omitempty"`
	SettledBy      string          `json:"settledBy,omitempty"`
	AuditFields
}

// SettlementSummary is the receipt-facing projection of a completed settlement.
type SettlementSummary struct {
	FolioNumber    string          `json:"folioNumber"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	SettlementDate time.Time       `json:"settlementDate"`
	GuestName      string          `json:"guestName,omitempty"`
	RoomNumber     string          `json:"roomNumber,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
	CheckoutFailed bool            `json:"checkoutFailed,omitempty"` // reservation update failed after settle succeeded
}
