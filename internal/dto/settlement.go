package dto

import (
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StartSettlementRequest begins the settlement wizard for a folio.
type StartSettlementRequest struct {
	FolioID string `json:"folioID" binding:"required"`
}

// SettlementPaymentRequest collects an outstanding balance during the payment
// stage. Amount must not exceed the balance at the time of entry.
type SettlementPaymentRequest struct {
	Amount   decimal.Decimal       `json:"amount" binding:"required"`
	Payment  PaymentDetailsRequest `json:"payment" binding:"required"`
	PostDate *time.Time            `json:"postDate,omitempty"` // defaults to now
	Notes    string                `json:"notes,omitempty"`
}

// SettleRequest completes the wizard from the confirm stage.
// AcknowledgeBalance must be set to settle a folio with a residual balance;
// MarkCheckedOut additionally advances the reservation to checked_out.
type SettleRequest struct {
	AcknowledgeBalance bool `json:"acknowledgeBalance"`
	MarkCheckedOut     bool `json:"markCheckedOut"`
}

// SettlementResponse reports the wizard state after a transition.
type SettlementResponse struct {
	SettlementID  string                 `json:"settlementID"`
	FolioID       string                 `json:"folioID"`
	ReservationID string                 `json:"reservationID"`
	Stage         domain.SettlementStage `json:"stage"`
	InvoiceNumber string                 `json:"invoiceNumber,omitempty"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	PaidAmount    decimal.Decimal        `json:"paidAmount"`
	BalanceAmount decimal.Decimal        `json:"balanceAmount"`
	SettledAt     *time.Time             `json:"settledAt,omitempty"`
	SettledBy     string                 `json:"settledBy,omitempty"`
}

// SettlementSummaryResponse is the receipt-facing projection of a completed
// settlement.
type SettlementSummaryResponse struct {
	FolioNumber    string          `json:"folioNumber"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	SettlementDate time.Time       `json:"settlementDate"`
	GuestName      string          `json:"guestName,omitempty"`
	RoomNumber     string          `json:"roomNumber,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
	CheckoutFailed bool            `json:"checkoutFailed,omitempty"`
}

// ToSettlementResponse converts a domain.Settlement to its response DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID:  s.SettlementID,
		FolioID:       s.FolioID,
		ReservationID: s.ReservationID,
		Stage:         s.Stage,
		InvoiceNumber: s.InvoiceNumber,
		TotalAmount:   s.TotalAmount,
		PaidAmount:    s.PaidAmount,
		BalanceAmount: s.BalanceAmount,
		SettledAt:     s.SettledAt,
		SettledBy:     s.SettledBy,
	}
}

// ToSettlementSummaryResponse converts a domain.SettlementSummary to its
// response DTO.
func ToSettlementSummaryResponse(s *domain.SettlementSummary) SettlementSummaryResponse {
	return SettlementSummaryResponse{
		FolioNumber:    s.FolioNumber,
		InvoiceNumber:  s.InvoiceNumber,
		SettlementDate: s.SettlementDate,
		GuestName:      s.GuestName,
		RoomNumber:     s.RoomNumber,
		TotalAmount:    s.TotalAmount,
		PaidAmount:     s.PaidAmount,
		BalanceAmount:  s.BalanceAmount,
		CheckoutFailed: s.CheckoutFailed,
	}
}
