// Package ledger holds the billing arithmetic shared by bills, orders,
// invoices and debts: line totals, bill aggregation, and the append-only
// payment ledger with its status classification.
//
// All amounts are fixed-point decimals rounded to two places at every
// derivation step. Nothing here performs I/O.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds an amount to currency precision, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// LineItem is one authored row of a bill. Its total is always derived.
type LineItem struct {
	ProductID       string          `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	ProductNameEn   string          `json:"product_name_en,omitempty"`
	ProductNameAr   string          `json:"product_name_ar,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// PricedLine is a LineItem together with its derived total.
type PricedLine struct {
	LineItem
	TotalPrice decimal.Decimal `json:"total_price"`
}

// TotalPrice derives the line total from the item's current fields.
func (l LineItem) TotalPrice() decimal.Decimal {
	return ComputeLineTotal(l.Quantity, l.UnitPrice, l.DiscountPercent)
}

// Priced pairs the item with its derived total.
func (l LineItem) Priced() PricedLine {
	return PricedLine{LineItem: l, TotalPrice: l.TotalPrice()}
}

// ComputeLineTotal returns round2(quantity × unitPrice × (1 − discountPercent/100)).
// The discount percent is not clamped; callers validate it before submission.
func ComputeLineTotal(quantity int, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	gross := decimal.NewFromInt(int64(quantity)).Mul(unitPrice)
	return Round2(gross.Mul(hundred.Sub(discountPercent)).Div(hundred))
}

// MaxQuantity bounds a single line's quantity.
const MaxQuantity = 1_000_000

// CoerceQuantity parses a raw quantity field. Empty, unparsable, non-positive
// and out-of-range input becomes 1; fractional input is truncated.
func CoerceQuantity(raw string) int {
	d, ok := parseDecimal(raw)
	if !ok || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThanOrEqual(decimal.NewFromInt(MaxQuantity+1)) {
		return 1
	}
	return int(d.IntPart())
}

// CoerceUnitPrice parses a raw price field. Unparsable input becomes 0 and
// negative prices are floored at 0.
func CoerceUnitPrice(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// CoerceDiscountPercent parses a raw discount field. Unparsable input becomes
// 0. Out-of-range values are kept so validation can report them.
func CoerceDiscountPercent(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return d
}

// CoerceAmount parses a raw tax, discount or payment amount. Unparsable input
// becomes 0; the sign is kept.
func CoerceAmount(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return d
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
