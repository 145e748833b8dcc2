package domain

import (
	"github.com/shopspring/decimal"
)

// FolioTotals is the aggregation result over a folio's live transaction set.
// It is derived on demand and never persisted or cached.
type FolioTotals struct {
	TotalCharges   decimal.Decimal `json:"totalCharges"`
	TotalFees      decimal.Decimal `json:"totalFees"`
	TotalTaxes     decimal.Decimal `json:"totalTaxes"`
	TotalDiscounts decimal.Decimal `json:"totalDiscounts"` // magnitude
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	TotalRefunds   decimal.Decimal `json:"totalRefunds"` // magnitude
	Balance        decimal.Decimal `json:"balance"`
}
