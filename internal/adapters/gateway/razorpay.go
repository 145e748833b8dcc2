package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"

	portssvc "github.com/hoteldesk/folio-backend/internal/core/ports/services"
)

// razorpayGateway collects online payments through Razorpay.
type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

// NewRazorpayGateway creates a PaymentGateway backed by Razorpay.
func NewRazorpayGateway(keyID, keySecret string) portssvc.PaymentGateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

var _ portssvc.PaymentGateway = (*razorpayGateway)(nil)

// CreateOrder registers an order for the given rupee amount. Razorpay takes
// amounts in paise.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*portssvc.GatewayOrder, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %s", amount.String())
	}

	paise := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	orderData := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	return &portssvc.GatewayOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

// VerifySignature checks Razorpay's HMAC-SHA256 over "orderID|paymentID".
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if g.keySecret == "" || signature == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(g.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
