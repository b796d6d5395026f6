package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies how much of a bill has been paid.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// IsValid reports whether s is one of the three canonical statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPartial, StatusPaid:
		return true
	}
	return false
}

// DeriveStatus classifies a bill from its total and the amount paid so far.
// A zero total with nothing paid is unpaid; any payment reaching the total,
// including overpayment, is paid.
func DeriveStatus(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return StatusUnpaid
	case paid.LessThan(total):
		return StatusPartial
	default:
		return StatusPaid
	}
}

// AmountDue returns max(total − paid, 0).
func AmountDue(total, paid decimal.Decimal) decimal.Decimal {
	due := Round2(total.Sub(paid))
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// ParsePaymentStatus reads the status spellings used by the store API.
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch s {
	case "unpaid", "pending", "not_paid", "due":
		return StatusUnpaid, true
	case "partial", "partially_paid", "partial_paid", "partly_paid":
		return StatusPartial, true
	case "paid", "fully_paid", "complete", "completed", "settled":
		return StatusPaid, true
	}
	return "", false
}

// Balance is the derived payment position of one bill or debt.
type Balance struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	Status      PaymentStatus   `json:"payment_status"`
}

// NewBalance derives due and status from a total and the amount paid.
func NewBalance(total, paid decimal.Decimal) Balance {
	paid = Round2(paid)
	return Balance{
		TotalAmount: total,
		AmountPaid:  paid,
		AmountDue:   AmountDue(total, paid),
		Status:      DeriveStatus(total, paid),
	}
}
