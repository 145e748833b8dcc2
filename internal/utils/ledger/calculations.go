// Package ledger holds the pure money math and aggregation rules shared by
// services and repositories. Everything here is a function of its inputs.
package ledger

import (
	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the GST rate applied when no override is configured.
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// LineTotal computes quantity * rate. Inputs are assumed to have passed the
// posting validation contract; this function only computes.
func LineTotal(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate)
}

// ApplyTax computes the tax on a subtotal at the given rate.
func ApplyTax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate)
}

// SignedAmount derives the stored amount for a transaction from its type,
// quantity and rate.
//
// Discounts and refunds always store a negative amount: the input magnitude is
// coerced to negative regardless of the raw sign. Every other type stores
// quantity*rate verbatim; a charge with a negative rate is NOT re-signed. The
// asymmetry is intentional and load-bearing for balance math.
func SignedAmount(txnType domain.TransactionType, quantity, rate decimal.Decimal) decimal.Decimal {
	total := quantity.Mul(rate)
	switch txnType {
	case domain.TxnDiscount, domain.TxnRefund:
		return total.Abs().Neg()
	default:
		return total
	}
}
