package ledger

import (
	"strings"
	"time"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Aggregate folds a transaction list into FolioTotals.
//
// Voided transactions are excluded entirely. The balance is computed directly
// from stored amounts: entries in the payment and refund buckets form the
// offset side (refunds carry a negative stored amount, so they naturally net
// against payments), everything else is the owed side. Discounts arrive
// already negative and reduce the owed side on their own. The bucketed
// subtotals exist purely for display and are summed separately so a re-signing
// bug in one cannot corrupt the other.
//
// Aggregate is a pure function of its input: malformed records degrade
// (unknown type lands in the other bucket, a zero-value amount contributes
// nothing) rather than aborting a read path.
func Aggregate(txns []domain.Transaction) domain.FolioTotals {
	totals := domain.FolioTotals{
		TotalCharges:   decimal.Zero,
		TotalFees:      decimal.Zero,
		TotalTaxes:     decimal.Zero,
		TotalDiscounts: decimal.Zero,
		TotalPayments:  decimal.Zero,
		TotalRefunds:   decimal.Zero,
		Balance:        decimal.Zero,
	}

	for _, txn := range txns {
		if txn.IsVoided() {
			continue
		}

		switch domain.Classify(txn.Type) {
		case domain.BucketCharge:
			if txn.Type == domain.TxnFee {
				totals.TotalFees = totals.TotalFees.Add(txn.Amount)
			} else {
				totals.TotalCharges = totals.TotalCharges.Add(txn.Amount)
			}
			totals.Balance = totals.Balance.Add(txn.Amount)
		case domain.BucketTax:
			totals.TotalTaxes = totals.TotalTaxes.Add(txn.Amount)
			totals.Balance = totals.Balance.Add(txn.Amount)
		case domain.BucketDiscount:
			totals.TotalDiscounts = totals.TotalDiscounts.Add(txn.Amount.Abs())
			totals.Balance = totals.Balance.Add(txn.Amount) // stored negative
		case domain.BucketPayment:
			totals.TotalPayments = totals.TotalPayments.Add(txn.Amount)
			totals.Balance = totals.Balance.Sub(txn.Amount)
		case domain.BucketRefund:
			totals.TotalRefunds = totals.TotalRefunds.Add(txn.Amount.Abs())
			// Stored negative: subtracting restores what the refund handed back.
			totals.Balance = totals.Balance.Sub(txn.Amount)
		default:
			totals.Balance = totals.Balance.Add(txn.Amount)
		}
	}

	return totals
}

// GroupByType partitions transactions by type, preserving input order within
// each group.
func GroupByType(txns []domain.Transaction) map[domain.TransactionType][]domain.Transaction {
	groups := make(map[domain.TransactionType][]domain.Transaction)
	for _, txn := range txns {
		groups[txn.Type] = append(groups[txn.Type], txn)
	}
	return groups
}

// RevenueBreakdown sums non-voided charge-bucket amounts per category. The
// category is taken verbatim from the record.
func RevenueBreakdown(txns []domain.Transaction) map[domain.Category]decimal.Decimal {
	breakdown := make(map[domain.Category]decimal.Decimal)
	for _, txn := range txns {
		if txn.IsVoided() || domain.Classify(txn.Type) != domain.BucketCharge {
			continue
		}
		breakdown[txn.Category] = breakdown[txn.Category].Add(txn.Amount)
	}
	return breakdown
}

// FilterByDateRange returns the transactions whose post date falls within
// [start, end], inclusive on both bounds and compared date-only.
func FilterByDateRange(txns []domain.Transaction, start, end time.Time) []domain.Transaction {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	out := []domain.Transaction{}
	for _, txn := range txns {
		day := truncateToDay(txn.PostDate)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// Search returns transactions whose description, transaction number, reference
// number or category contains the term, case-insensitively. An empty term
// returns the input unchanged.
func Search(txns []domain.Transaction, term string) []domain.Transaction {
	term = strings.TrimSpace(term)
	if term == "" {
		return txns
	}
	needle := strings.ToLower(term)
	out := []domain.Transaction{}
	for _, txn := range txns {
		if strings.Contains(strings.ToLower(txn.Description), needle) ||
			strings.Contains(strings.ToLower(txn.TransactionNumber), needle) ||
			strings.Contains(strings.ToLower(txn.ReferenceNumber), needle) ||
			strings.Contains(strings.ToLower(string(txn.Category)), needle) {
			out = append(out, txn)
		}
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
