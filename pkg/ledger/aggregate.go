package ledger

import (
	"github.com/shopspring/decimal"
)

// Totals is the aggregated view of a bill's items and adjustments.
type Totals struct {
	Lines          []PricedLine    `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Aggregate recomputes every line total and the bill totals from scratch.
//
// The total is subtotal + tax − discount and is never clamped: a negative
// total is returned as is and rejected by Bill.Validate.
func Aggregate(items []LineItem, taxAmount, discountAmount decimal.Decimal) Totals {
	lines := make([]PricedLine, 0, len(items))
	sum := decimal.Zero
	for _, item := range items {
		priced := item.Priced()
		sum = sum.Add(priced.TotalPrice)
		lines = append(lines, priced)
	}

	subtotal := Round2(sum)
	return Totals{
		Lines:          lines,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		TotalAmount:    Round2(subtotal.Add(taxAmount).Sub(discountAmount)),
	}
}

// SumPayments adds up payment amounts.
func SumPayments(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return Round2(sum)
}
