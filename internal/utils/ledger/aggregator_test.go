package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(txnType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		Type:   txnType,
		Amount: d(amount),
		Status: domain.TxnPosted,
	}
}

func TestAggregate_EmptyLedger(t *testing.T) {
	totals := Aggregate(nil)
	assert.True(t, totals.Balance.IsZero())
	assert.True(t, totals.TotalCharges.IsZero())
	assert.True(t, totals.TotalPayments.IsZero())
}

func TestAggregate_ChargesPaymentsAndBalance(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "5000"),
		txn(domain.TxnAddonCharge, "1200"),
		txn(domain.TxnFee, "300"),
		txn(domain.TxnTax, "1170"),
		txn(domain.TxnDiscount, "-500"), // stored negative
		txn(domain.TxnPayment, "4000"),
		txn(domain.TxnRefund, "-1000"), // stored negative
	}

	totals := Aggregate(txns)

	assert.True(t, totals.TotalCharges.Equal(d("6200")), "charges: %s", totals.TotalCharges)
	assert.True(t, totals.TotalFees.Equal(d("300")))
	assert.True(t, totals.TotalTaxes.Equal(d("1170")))
	assert.True(t, totals.TotalDiscounts.Equal(d("500")), "discounts reported as magnitude")
	assert.True(t, totals.TotalPayments.Equal(d("4000")))
	assert.True(t, totals.TotalRefunds.Equal(d("1000")), "refunds reported as magnitude")

	// 6200 + 300 + 1170 - 500 - (4000 - 1000) = 4170
	assert.True(t, totals.Balance.Equal(d("4170")), "balance: %s", totals.Balance)
}

func TestAggregate_VoidedExcluded(t *testing.T) {
	voided := txn(domain.TxnRoomCharge, "9999")
	voided.Status = domain.TxnVoided

	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "2000"),
		voided,
	}

	totals := Aggregate(txns)
	assert.True(t, totals.TotalCharges.Equal(d("2000")))
	assert.True(t, totals.Balance.Equal(d("2000")))
}

func TestAggregate_RefundRestoresBalance(t *testing.T) {
	// A full refund of the only payment brings the balance back to the charge.
	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "3000"),
		txn(domain.TxnPayment, "3000"),
		txn(domain.TxnRefund, "-3000"),
	}
	totals := Aggregate(txns)
	assert.True(t, totals.Balance.Equal(d("3000")), "balance: %s", totals.Balance)
}

func TestAggregate_CreditBalance(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "1000"),
		txn(domain.TxnDeposit, "2500"),
	}
	totals := Aggregate(txns)
	assert.True(t, totals.Balance.Equal(d("-1500")), "overpayment yields a credit balance")
	assert.True(t, totals.TotalPayments.Equal(d("2500")), "deposits count as payments")
}

func TestAggregate_UnknownTypeDegrades(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.TxnAdjustment, "-200"),
		txn(domain.TransactionType("mystery"), "50"),
	}
	totals := Aggregate(txns)
	assert.True(t, totals.Balance.Equal(d("-150")), "other-bucket amounts land on the owed side verbatim")
}

func TestAggregate_Idempotent(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "2000"),
		txn(domain.TxnPayment, "500"),
	}
	first := Aggregate(txns)
	second := Aggregate(txns)
	assert.True(t, first.Balance.Equal(second.Balance))
	assert.True(t, first.TotalCharges.Equal(second.TotalCharges))
}

func TestSignedAmount(t *testing.T) {
	// Discounts and refunds are coerced negative regardless of input sign.
	assert.True(t, SignedAmount(domain.TxnDiscount, d("1"), d("500")).Equal(d("-500")))
	assert.True(t, SignedAmount(domain.TxnDiscount, d("1"), d("-500")).Equal(d("-500")))
	assert.True(t, SignedAmount(domain.TxnRefund, d("1"), d("250")).Equal(d("-250")))

	// Everything else stores quantity*rate verbatim, negative rates included.
	assert.True(t, SignedAmount(domain.TxnRoomCharge, d("2"), d("1500")).Equal(d("3000")))
	assert.True(t, SignedAmount(domain.TxnAdjustment, d("1"), d("-75")).Equal(d("-75")))
}

func TestApplyTax(t *testing.T) {
	assert.True(t, ApplyTax(d("1000"), d("0.18")).Equal(d("180")))
}

func TestRevenueBreakdown(t *testing.T) {
	room := txn(domain.TxnRoomCharge, "5000")
	room.Category = domain.CategoryRoom
	dinner := txn(domain.TxnAddonCharge, "1200")
	dinner.Category = domain.CategoryFood
	drinks := txn(domain.TxnAddonCharge, "800")
	drinks.Category = domain.CategoryFood
	payment := txn(domain.TxnPayment, "4000")
	payment.Category = domain.CategoryPayment
	voided := txn(domain.TxnAddonCharge, "999")
	voided.Category = domain.CategorySpa
	voided.Status = domain.TxnVoided

	breakdown := RevenueBreakdown([]domain.Transaction{room, dinner, drinks, payment, voided})

	assert.Len(t, breakdown, 2, "payments and voided entries are not revenue")
	assert.True(t, breakdown[domain.CategoryRoom].Equal(d("5000")))
	assert.True(t, breakdown[domain.CategoryFood].Equal(d("2000")))
}

func TestFilterByDateRange_Inclusive(t *testing.T) {
	day := func(dd int) time.Time { return time.Date(2026, 3, dd, 11, 0, 0, 0, time.UTC) }

	txns := []domain.Transaction{
		{TransactionID: "a", PostDate: day(10)},
		{TransactionID: "b", PostDate: day(12)},
		{TransactionID: "c", PostDate: day(15)},
		{TransactionID: "d", PostDate: day(16)},
	}

	got := FilterByDateRange(txns, day(10), day(15))
	ids := make([]string, len(got))
	for i, txn := range got {
		ids[i] = txn.TransactionID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids, "both bounds are inclusive")
}

func TestSearch(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "a", Description: "Room service dinner"},
		{TransactionID: "b", Description: "Laundry", Category: domain.CategoryLaundry},
		{TransactionID: "c", ReferenceNumber: "INV-2026-042"},
	}

	assert.Len(t, Search(txns, "DINNER"), 1, "search is case-insensitive")
	assert.Len(t, Search(txns, "laundry"), 1)
	assert.Len(t, Search(txns, "2026-042"), 1, "reference numbers are searchable")
	assert.Len(t, Search(txns, ""), 3, "empty term returns everything")
	assert.Empty(t, Search(txns, "spa"))
}

func TestGroupByType(t *testing.T) {
	txns := []domain.Transaction{
		txn(domain.TxnRoomCharge, "1000"),
		txn(domain.TxnPayment, "500"),
		txn(domain.TxnRoomCharge, "1000"),
	}
	groups := GroupByType(txns)
	assert.Len(t, groups[domain.TxnRoomCharge], 2)
	assert.Len(t, groups[domain.TxnPayment], 1)
}
