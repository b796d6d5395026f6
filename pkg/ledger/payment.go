package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/backoffice-api/pkg/apperror"
)

// PaymentMethod is how a payment was tendered.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheck        PaymentMethod = "check"
	MethodOther        PaymentMethod = "other"
)

// PaymentMethods lists the accepted methods in display order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodCard, MethodBankTransfer, MethodCheck, MethodOther}

// IsValid reports whether m is one of the accepted methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodCheck, MethodOther:
		return true
	}
	return false
}

// ParsePaymentMethod normalizes the spellings the store API and forms use.
// Empty input defaults to cash.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch s {
	case "":
		return MethodCash, true
	case "bank", "transfer", "banktransfer":
		return MethodBankTransfer, true
	case "cheque":
		return MethodCheck, true
	case "credit_card", "debit_card":
		return MethodCard, true
	}
	m := PaymentMethod(s)
	return m, m.IsValid()
}

// Payment is one immutable entry in a bill's or debt's ledger.
type Payment struct {
	ID          string          `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"payment_method"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// Payment validation errors
var (
	ErrNonPositivePayment = apperror.NewValidationError([]apperror.FieldError{
		{Field: "amount", Message: "Payment amount must be greater than zero"},
	})
	ErrUnknownPaymentMethod = apperror.NewValidationError([]apperror.FieldError{
		{Field: "payment_method", Message: "Payment method must be one of cash, card, bank_transfer, check, other"},
	})
)

// Validate rejects non-positive amounts and unknown methods.
func (p Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return ErrNonPositivePayment
	}
	if !p.Method.IsValid() {
		return ErrUnknownPaymentMethod
	}
	return nil
}
