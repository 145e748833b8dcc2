package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol is the rupee symbol used when configuration does not
// override it.
const DefaultCurrencySymbol = "₹"

// FormatCurrency renders an amount with the given symbol, two decimal places
// and Indian digit grouping (₹2,000.00 / ₹1,00,000.00). Rounding is banker's
// rounding via decimal.RoundBank; every display path goes through this one
// routine so totals and line items can never disagree on rounding.
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	rounded := amount.RoundBank(2)
	negative := rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(2)

	intPart := fixed
	fracPart := "00"
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart = fixed[:dot]
		fracPart = fixed[dot+1:]
	}

	grouped := groupIndian(intPart)
	out := symbol + grouped + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatINR renders an amount with the default rupee symbol.
func FormatINR(amount decimal.Decimal) string {
	return FormatCurrency(amount, DefaultCurrencySymbol)
}

// groupIndian inserts separators in the Indian numbering style: the last three
// digits form one group, everything before that is grouped in pairs.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	groups := []string{}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
