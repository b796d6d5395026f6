package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/backoffice-api/pkg/apperror"
)

func validBill() Bill {
	return Bill{
		Kind:           KindCustomerBill,
		Party:          Party{Name: "Layla Haddad"},
		Items:          sampleItems(),
		TaxAmount:      dec("2"),
		DiscountAmount: dec("1"),
	}
}

func fields(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	out := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestBillValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Bill)
		want   []string
	}{
		{"when_bill_is_complete_should_pass", func(b *Bill) {}, nil},
		{"when_party_missing_should_fail", func(b *Bill) { b.Party.Name = "  " }, []string{"party.name"}},
		{"when_no_items_should_fail", func(b *Bill) { b.Items = nil }, []string{"items"}},
		{"when_description_empty_should_fail", func(b *Bill) { b.Items[1].Description = "" }, []string{"items[1].description"}},
		{"when_price_zero_should_fail", func(b *Bill) { b.Items[0].UnitPrice = decimal.Zero }, []string{"items[0].unit_price"}},
		{"when_quantity_zero_should_fail", func(b *Bill) { b.Items[0].Quantity = 0 }, []string{"items[0].quantity"}},
		{"when_discount_over_hundred_should_fail", func(b *Bill) { b.Items[0].DiscountPercent = dec("101") }, []string{"items[0].discount_percent"}},
		{"when_tax_negative_should_fail", func(b *Bill) { b.TaxAmount = dec("-1") }, []string{"tax_amount"}},
		{"when_total_negative_should_fail", func(b *Bill) { b.DiscountAmount = dec("40") }, []string{"discount_amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBill()
			b.Items = append([]LineItem{}, b.Items...)
			tt.mutate(&b)
			err := b.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fields(t, err))
		})
	}
}

func TestBillValidatePartyLabel(t *testing.T) {
	b := validBill()
	b.Kind = KindTraderBill
	b.Party.Name = ""
	appErr := apperror.GetAppError(b.Validate())
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "Trader name is required", appErr.Errors[0].Message)
}

func TestBillStatement(t *testing.T) {
	b := validBill()
	b.TaxAmount = decimal.Zero
	b.DiscountAmount = decimal.Zero
	b.Items = []LineItem{{Description: "Sack", Quantity: 1, UnitPrice: dec("100")}}

	s := b.Statement([]Payment{payment("40"), payment("30")})
	assert.Equal(t, "70.00", s.Balance.AmountPaid.StringFixed(2))
	assert.Equal(t, "30.00", s.Balance.AmountDue.StringFixed(2))
	assert.Equal(t, StatusPartial, s.Balance.Status)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("customer-bills")
	assert.True(t, ok)
	assert.Equal(t, KindCustomerBill, k)

	k, ok = ParseKind("WHOLESALER_ORDERS")
	assert.True(t, ok)
	assert.Equal(t, KindWholesalerOrder, k)

	_, ok = ParseKind("quotations")
	assert.False(t, ok)
}
