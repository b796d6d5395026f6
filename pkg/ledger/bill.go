package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/backoffice-api/pkg/apperror"
)

// Kind names a family of bills that share the same arithmetic.
type Kind string

const (
	KindCustomerBill    Kind = "customer_bills"
	KindTraderBill      Kind = "trader_bills"
	KindWholesalerOrder Kind = "wholesaler_orders"
	KindInvoice         Kind = "invoices"
)

// Kinds lists every bill kind.
var Kinds = []Kind{KindCustomerBill, KindTraderBill, KindWholesalerOrder, KindInvoice}

// ParseKind accepts the kind name with either '-' or '_' separators.
func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	switch k {
	case KindCustomerBill, KindTraderBill, KindWholesalerOrder, KindInvoice:
		return k, true
	}
	return "", false
}

// PartyRole is the counterparty of this kind of bill.
func (k Kind) PartyRole() string {
	switch k {
	case KindTraderBill:
		return "trader"
	case KindWholesalerOrder:
		return "wholesaler"
	default:
		return "customer"
	}
}

// Party is the counterparty a bill or debt is issued to.
type Party struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Bill generalizes customer bills, trader bills, wholesaler orders and
// invoices. Only authored fields live here; totals are derived.
type Bill struct {
	ID             string          `json:"id,omitempty"`
	Number         string          `json:"number,omitempty"`
	Kind           Kind            `json:"kind"`
	Party          Party           `json:"party"`
	IssueDate      time.Time       `json:"issue_date"`
	Notes          string          `json:"notes,omitempty"`
	Items          []LineItem      `json:"items"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// Totals aggregates the bill's items and adjustments.
func (b Bill) Totals() Totals {
	return Aggregate(b.Items, b.TaxAmount, b.DiscountAmount)
}

// Statement is a bill's totals together with its payment position.
type Statement struct {
	Totals  Totals  `json:"totals"`
	Balance Balance `json:"balance"`
}

// Statement derives totals and balance from the items and payments.
func (b Bill) Statement(payments []Payment) Statement {
	return NewStatement(b.Totals(), SumPayments(payments))
}

// NewStatement combines already aggregated totals with an amount paid.
func NewStatement(t Totals, paid decimal.Decimal) Statement {
	return Statement{Totals: t, Balance: NewBalance(t.TotalAmount, paid)}
}

// Validate reports every problem that blocks submission of the bill.
func (b Bill) Validate() error {
	var errs []apperror.FieldError

	if strings.TrimSpace(b.Party.Name) == "" {
		role := b.Kind.PartyRole()
		errs = append(errs, apperror.FieldError{
			Field:   "party.name",
			Message: strings.ToUpper(role[:1]) + role[1:] + " name is required",
		})
	}
	if len(b.Items) == 0 {
		errs = append(errs, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	for i, item := range b.Items {
		errs = append(errs, item.validate(fmt.Sprintf("items[%d]", i))...)
	}
	if b.TaxAmount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "tax_amount", Message: "Tax amount cannot be negative"})
	}
	if b.DiscountAmount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "discount_amount", Message: "Discount amount cannot be negative"})
	}
	if len(errs) == 0 && b.Totals().TotalAmount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "discount_amount", Message: "Discount exceeds subtotal plus tax"})
	}

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func (l LineItem) validate(prefix string) []apperror.FieldError {
	var errs []apperror.FieldError
	if strings.TrimSpace(l.Description) == "" {
		errs = append(errs, apperror.FieldError{Field: prefix + ".description", Message: "Description is required"})
	}
	if l.Quantity < 1 {
		errs = append(errs, apperror.FieldError{Field: prefix + ".quantity", Message: "Quantity must be at least 1"})
	}
	if !l.UnitPrice.IsPositive() {
		errs = append(errs, apperror.FieldError{Field: prefix + ".unit_price", Message: "Unit price must be greater than zero"})
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(hundred) {
		errs = append(errs, apperror.FieldError{Field: prefix + ".discount_percent", Message: "Discount must be between 0 and 100"})
	}
	return errs
}

// Debt is a bill without items: the total is entered directly.
type Debt struct {
	ID        string          `json:"id,omitempty"`
	Party     Party           `json:"party"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	IssueDate time.Time       `json:"issue_date"`
	Notes     string          `json:"notes,omitempty"`
}

// Balance derives the debt's payment position.
func (d Debt) Balance(payments []Payment) Balance {
	return NewBalance(d.TotalDebt, SumPayments(payments))
}
