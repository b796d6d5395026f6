package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/backoffice-api/pkg/apperror"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  PaymentStatus
	}{
		{"nothing paid", "100", "0", StatusUnpaid},
		{"just below total", "100", "99.99", StatusPartial},
		{"exactly total", "100", "100", StatusPaid},
		{"overpaid", "100", "150", StatusPaid},
		{"zero total zero paid", "0", "0", StatusUnpaid},
		{"zero total some paid", "0", "5", StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(dec(tt.total), dec(tt.paid)))
		})
	}
}

func TestAmountDue(t *testing.T) {
	assert.Equal(t, "30.00", AmountDue(dec("100"), dec("70")).StringFixed(2))
	assert.True(t, AmountDue(dec("100"), dec("150")).IsZero())
	assert.True(t, AmountDue(dec("100"), dec("100")).IsZero())
}

func payment(amount string) Payment {
	return Payment{
		Amount:      dec(amount),
		Method:      MethodCash,
		PaymentDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestLedgerRecord(t *testing.T) {
	l := NewLedger(dec("100.00"))
	assert.Equal(t, StatusUnpaid, l.Balance().Status)

	r, err := l.Record(payment("40"))
	require.NoError(t, err)
	assert.Equal(t, StatusPartial, r.Balance.Status)

	r, err = l.Record(payment("30"))
	require.NoError(t, err)
	assert.Equal(t, "70.00", r.Balance.AmountPaid.StringFixed(2))
	assert.Equal(t, "30.00", r.Balance.AmountDue.StringFixed(2))
	assert.Equal(t, StatusPartial, r.Balance.Status)
	assert.False(t, r.Overpaid)

	r, err = l.Record(payment("30"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", r.Balance.AmountPaid.StringFixed(2))
	assert.True(t, r.Balance.AmountDue.IsZero())
	assert.Equal(t, StatusPaid, r.Balance.Status)
	assert.Len(t, l.Payments(), 3)
}

func TestLedgerRecordRejectsNonPositive(t *testing.T) {
	for _, amount := range []string{"0", "-10"} {
		l := NewLedger(dec("50"))
		_, err := l.Record(payment(amount))
		require.ErrorIs(t, err, ErrNonPositivePayment)

		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
		assert.Empty(t, l.Payments())
		assert.True(t, l.Balance().AmountPaid.IsZero())
	}
}

func TestLedgerRecordRejectsUnknownMethod(t *testing.T) {
	l := NewLedger(dec("50"))
	p := payment("10")
	p.Method = "barter"
	_, err := l.Record(p)
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
}

func TestLedgerOverpaymentIsWarning(t *testing.T) {
	l := NewLedger(dec("100"), payment("80"))

	r, err := l.Record(payment("50"))
	require.NoError(t, err)
	assert.True(t, r.Overpaid)
	assert.Equal(t, "30.00", r.Excess.StringFixed(2))
	assert.Equal(t, StatusPaid, r.Balance.Status)
	assert.True(t, r.Balance.AmountDue.IsZero())
}

func TestOpenLedgerRecordsAgainstOpeningBalance(t *testing.T) {
	l := OpenLedger(dec("100"), dec("70"))

	r, err := l.Record(payment("50"))
	require.NoError(t, err)
	assert.True(t, r.Overpaid)
	assert.Equal(t, "20.00", r.Excess.StringFixed(2))
	assert.Equal(t, "120.00", r.Balance.AmountPaid.StringFixed(2))
	assert.Len(t, l.Payments(), 1)

	_, err = OpenLedger(dec("100"), dec("0")).Record(payment("-1"))
	assert.Error(t, err)
}

func TestLedgerPaymentsIsCopy(t *testing.T) {
	l := NewLedger(dec("10"), payment("1"))
	ps := l.Payments()
	ps[0].Amount = dec("9")
	assert.Equal(t, "1.00", l.Payments()[0].Amount.StringFixed(2))
}

func TestCheckPayment(t *testing.T) {
	b := NewBalance(dec("100"), dec("90"))
	over, excess := CheckPayment(b, dec("15"))
	assert.True(t, over)
	assert.Equal(t, "5.00", excess.StringFixed(2))

	over, excess = CheckPayment(b, dec("10"))
	assert.False(t, over)
	assert.True(t, excess.IsZero())
}

func TestParsePaymentStatus(t *testing.T) {
	for raw, want := range map[string]PaymentStatus{
		"Partial Paid":   StatusPartial,
		"partially-paid": StatusPartial,
		"PAID":           StatusPaid,
		"pending":        StatusUnpaid,
	} {
		got, ok := ParsePaymentStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParsePaymentStatus("refunded")
	assert.False(t, ok)
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, StatusPartial.IsValid())
	assert.False(t, PaymentStatus("settled").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("")
	assert.True(t, ok)
	assert.Equal(t, MethodCash, m)

	m, ok = ParsePaymentMethod("Bank Transfer")
	assert.True(t, ok)
	assert.Equal(t, MethodBankTransfer, m)

	m, ok = ParsePaymentMethod("cheque")
	assert.True(t, ok)
	assert.Equal(t, MethodCheck, m)

	_, ok = ParsePaymentMethod("crypto")
	assert.False(t, ok)
}

func TestDebtBalance(t *testing.T) {
	d := Debt{Party: Party{Name: "Samir"}, TotalDebt: dec("250")}
	b := d.Balance([]Payment{payment("100"), payment("25.50")})
	assert.Equal(t, "124.50", b.AmountDue.StringFixed(2))
	assert.Equal(t, StatusPartial, b.Status)
	assert.Equal(t, StatusUnpaid, d.Balance(nil).Status)
	assert.True(t, decimal.Zero.Equal(d.Balance(nil).AmountPaid))
}
