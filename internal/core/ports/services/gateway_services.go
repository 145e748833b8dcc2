package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayOrder is the provider-side order an online payment is collected
// against.
type GatewayOrder struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

// PaymentGateway abstracts the online payment provider (Razorpay in this
// deployment).
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount (in rupees; the
	// provider receives paise).
	CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*GatewayOrder, error)

	// VerifySignature checks the provider's HMAC over orderID|paymentID.
	VerifySignature(orderID, paymentID, signature string) bool
}
