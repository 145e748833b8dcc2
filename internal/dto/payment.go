package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest registers an online payment order with the gateway.
type CreateOrderRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Receipt string          `json:"receipt"`
}

// GatewayOrderResponse defines the data returned for a gateway order.
type GatewayOrderResponse struct {
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Receipt  string          `json:"receipt,omitempty"`
}

// VerifyPaymentRequest carries the gateway callback fields to verify.
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}
