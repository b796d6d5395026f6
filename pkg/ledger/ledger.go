package ledger

import (
	"github.com/shopspring/decimal"
)

// Ledger is the append-only payment history of one bill or debt.
// It is not safe for concurrent use; payments are recorded one at a time.
type Ledger struct {
	total    decimal.Decimal
	paid     decimal.Decimal
	payments []Payment
}

// Receipt describes the effect of one recorded payment.
type Receipt struct {
	Payment Payment `json:"payment"`
	Balance Balance `json:"balance"`
	// Overpaid is set when the payment exceeded the amount due before it was
	// recorded. Overpayment is allowed.
	Overpaid bool            `json:"overpaid"`
	Excess   decimal.Decimal `json:"excess"`
}

// NewLedger starts a ledger for total with any existing payments.
func NewLedger(total decimal.Decimal, payments ...Payment) *Ledger {
	l := &Ledger{total: total}
	l.payments = append(l.payments, payments...)
	l.paid = SumPayments(l.payments)
	return l
}

// OpenLedger starts a ledger for total from an amount already paid whose
// individual payments are not at hand.
func OpenLedger(total, paid decimal.Decimal) *Ledger {
	return &Ledger{total: total, paid: Round2(paid)}
}

// Record validates and appends a payment, then re-derives the balance.
func (l *Ledger) Record(p Payment) (Receipt, error) {
	if err := p.Validate(); err != nil {
		return Receipt{}, err
	}

	overpaid, excess := CheckPayment(l.Balance(), p.Amount)

	l.payments = append(l.payments, p)
	l.paid = Round2(l.paid.Add(p.Amount))

	return Receipt{
		Payment:  p,
		Balance:  l.Balance(),
		Overpaid: overpaid,
		Excess:   excess,
	}, nil
}

// Balance returns the current derived position.
func (l *Ledger) Balance() Balance {
	return NewBalance(l.total, l.paid)
}

// Payments returns a copy of the recorded payments in order.
func (l *Ledger) Payments() []Payment {
	out := make([]Payment, len(l.payments))
	copy(out, l.payments)
	return out
}

// CheckPayment previews the effect of paying amount against a balance
// without recording anything.
func CheckPayment(b Balance, amount decimal.Decimal) (overpaid bool, excess decimal.Decimal) {
	if amount.GreaterThan(b.AmountDue) {
		return true, Round2(amount.Sub(b.AmountDue))
	}
	return false, decimal.Zero
}
