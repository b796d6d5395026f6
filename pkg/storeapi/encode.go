package storeapi

import (
	"github.com/shopspring/decimal"

	"github.com/sangkips/backoffice-api/pkg/ledger"
)

// wireAmount is sent as a bare JSON number with exactly two decimals.
type wireAmount decimal.Decimal

func (a wireAmount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

// wirePercent is sent as a bare JSON number without rounding, so the store
// sees the same rate the line total was computed from.
type wirePercent decimal.Decimal

func (p wirePercent) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).String()), nil
}

type wireItem struct {
	ProductID       string     `json:"product_id,omitempty"`
	Description     string     `json:"description"`
	ProductNameEn   string     `json:"product_name_en,omitempty"`
	ProductNameAr   string     `json:"product_name_ar,omitempty"`
	Quantity        int        `json:"quantity"`
	UnitPrice       wireAmount `json:"unit_price"`
	DiscountPercent wirePercent `json:"discount_percent"`
	TotalPrice      wireAmount `json:"total_price"`
}

type wirePayment struct {
	Amount        wireAmount `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentDate   string     `json:"payment_date"`
	Notes         string     `json:"notes,omitempty"`
}

// encodeBill builds the request body for a bill. The counterparty keys are
// named after the kind's role (customer_name, trader_name, ...) and the store
// receives the locally aggregated totals alongside the items.
func encodeBill(b ledger.Bill) map[string]interface{} {
	totals := b.Totals()
	role := b.Kind.PartyRole()

	items := make([]wireItem, 0, len(totals.Lines))
	for _, l := range totals.Lines {
		items = append(items, wireItem{
			ProductID:       l.ProductID,
			Description:     l.Description,
			ProductNameEn:   l.ProductNameEn,
			ProductNameAr:   l.ProductNameAr,
			Quantity:        l.Quantity,
			UnitPrice:       wireAmount(l.UnitPrice),
			DiscountPercent: wirePercent(l.DiscountPercent),
			TotalPrice:      wireAmount(l.TotalPrice),
		})
	}

	out := map[string]interface{}{
		role + "_name":    b.Party.Name,
		"items":           items,
		"subtotal":        wireAmount(totals.Subtotal),
		"tax_amount":      wireAmount(totals.TaxAmount),
		"discount_amount": wireAmount(totals.DiscountAmount),
		"total_amount":    wireAmount(totals.TotalAmount),
	}
	if b.Party.ID != "" {
		out[role+"_id"] = b.Party.ID
	}
	if b.Party.Phone != "" {
		out[role+"_phone"] = b.Party.Phone
	}
	if !b.IssueDate.IsZero() {
		out["bill_date"] = b.IssueDate.Format("2006-01-02")
	}
	if b.Number != "" {
		out["bill_number"] = b.Number
	}
	if b.Notes != "" {
		out["notes"] = b.Notes
	}
	return out
}

func encodePayment(p ledger.Payment) wirePayment {
	return wirePayment{
		Amount:        wireAmount(p.Amount),
		PaymentMethod: string(p.Method),
		PaymentDate:   p.PaymentDate.Format("2006-01-02"),
		Notes:         p.Notes,
	}
}
