package storeapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sangkips/backoffice-api/pkg/ledger"
)

const camelBill = `{
  "data": {
    "id": "b-1",
    "billNumber": "CB-7",
    "customerName": "Layla",
    "customerPhone": "0599",
    "billDate": "2024-03-05T10:00:00Z",
    "items": [
      {"description": "rice", "productNameEn": "Rice", "productNameAr": "أرز", "quantity": 2, "unitPrice": 10, "discountPercent": 10},
      {"description": "oil", "quantity": "1", "unitPrice": "5.00", "discountPercent": 0}
    ],
    "subtotal": 23, "taxAmount": 2, "discountAmount": 1, "totalAmount": 24,
    "amountPaid": 10, "amountDue": 14, "paymentStatus": "partial",
    "payments": [{"id": "p1", "amount": 10, "paymentMethod": "cash", "paymentDate": "2024-03-06"}]
  }
}`

const snakeBill = `{
  "id": "b-1",
  "bill_number": "CB-7",
  "customer": {"id": "c-9", "name": "Layla", "phone": "0599"},
  "bill_date": "2024-03-05",
  "line_items": [
    {"description": "rice", "product": {"name_en": "Rice", "name_ar": "أرز"}, "qty": 2, "unit_price": "10.00", "discount_percent": "10"},
    {"name": "oil", "quantity": 1, "price": 5}
  ],
  "sub_total": "23.00", "tax_amount": "2.00", "discount_amount": "1.00", "total_amount": "24.00",
  "payment_history": [{"amount": "10.00", "payment_method": "Bank Transfer", "payment_date": "2024-03-06"}]
}`

func TestDecodeBillAcceptsBothNamings(t *testing.T) {
	for name, body := range map[string]string{"camel": camelBill, "snake": snakeBill} {
		t.Run(name, func(t *testing.T) {
			rec := decodeBill(gjson.Parse(body), ledger.KindCustomerBill)

			assert.Equal(t, "b-1", rec.Bill.ID)
			assert.Equal(t, "CB-7", rec.Bill.Number)
			assert.Equal(t, "Layla", rec.Bill.Party.Name)
			assert.Equal(t, "0599", rec.Bill.Party.Phone)
			assert.Equal(t, "05/03/2024", rec.Bill.IssueDate.Format("02/01/2006"))

			require.Len(t, rec.Bill.Items, 2)
			assert.Equal(t, "Rice", rec.Bill.Items[0].ProductNameEn)
			assert.Equal(t, "أرز", rec.Bill.Items[0].ProductNameAr)
			assert.Equal(t, 2, rec.Bill.Items[0].Quantity)
			assert.Equal(t, "oil", rec.Bill.Items[1].Description)

			totals := rec.Bill.Totals()
			assert.Equal(t, "23.00", totals.Subtotal.StringFixed(2))
			assert.Equal(t, "24.00", totals.TotalAmount.StringFixed(2))

			assert.Equal(t, "24.00", rec.Server.TotalAmount.StringFixed(2))
			assert.Equal(t, "10.00", rec.Server.AmountPaid.StringFixed(2))
			assert.Equal(t, "14.00", rec.Server.AmountDue.StringFixed(2))
			assert.Equal(t, ledger.StatusPartial, rec.Server.Status)

			require.Len(t, rec.Payments, 1)
			assert.Equal(t, "10.00", rec.Payments[0].Amount.StringFixed(2))
		})
	}
}

func TestDecodeBillNestedParty(t *testing.T) {
	rec := decodeBill(gjson.Parse(snakeBill), ledger.KindCustomerBill)
	assert.Equal(t, "c-9", rec.Bill.Party.ID)
	assert.Equal(t, ledger.MethodBankTransfer, rec.Payments[0].Method)
}

func TestDecodeBillTraderRole(t *testing.T) {
	body := `{"id": "t-1", "trader_name": "Abu Ali", "items": [], "total_amount": 0}`
	rec := decodeBill(gjson.Parse(body), ledger.KindTraderBill)
	assert.Equal(t, "Abu Ali", rec.Bill.Party.Name)
	assert.Equal(t, ledger.StatusUnpaid, rec.Server.Status)
}

func TestDecodeBillDerivesMissingServerFigures(t *testing.T) {
	body := `{"id": "x", "items": [{"description": "a", "quantity": 1, "unit_price": 100}],
	          "payments": [{"amount": 40}, {"amount": 60}]}`
	rec := decodeBill(gjson.Parse(body), ledger.KindInvoice)

	assert.Equal(t, "100.00", rec.Server.TotalAmount.StringFixed(2))
	assert.Equal(t, "100.00", rec.Server.AmountPaid.StringFixed(2))
	assert.True(t, rec.Server.AmountDue.IsZero())
	assert.Equal(t, ledger.StatusPaid, rec.Server.Status)
	assert.Equal(t, ledger.MethodCash, rec.Payments[0].Method)
}

func TestDecodeDebt(t *testing.T) {
	body := `{"debt": {"id": "d-1", "customerName": "Samir", "totalDebt": "250.50", "createdAt": "2024-01-02T08:00:00Z",
	          "payments": [{"amount": 50, "method": "card", "date": "2024-02-01"}]}}`
	rec := decodeDebt(gjson.Parse(body))

	assert.Equal(t, "d-1", rec.Debt.ID)
	assert.Equal(t, "Samir", rec.Debt.Party.Name)
	assert.Equal(t, "250.50", rec.Debt.TotalDebt.StringFixed(2))
	assert.Equal(t, time.January, rec.Debt.IssueDate.Month())
	assert.Equal(t, "200.50", rec.Server.AmountDue.StringFixed(2))
	assert.Equal(t, ledger.MethodCard, rec.Payments[0].Method)
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
		total int64
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2, 2},
		{"data array with meta", `{"data":[{"id":1}],"meta":{"total":40}}`, 1, 40},
		{"nested data items", `{"data":{"items":[{"id":1},{"id":2}],"pagination":{"total":12}}}`, 2, 12},
		{"items and total", `{"items":[{"id":1}],"total":"9"}`, 1, 1},
		{"not a list", `{"message":"ok"}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, total := decodeList(gjson.Parse(tt.body))
			assert.Len(t, rows, tt.count)
			assert.Equal(t, tt.total, total)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Customer not found", errorMessage([]byte(`{"message":"Customer not found"}`)))
	assert.Equal(t, "bad total", errorMessage([]byte(`{"error":{"message":"bad total"}}`)))
	assert.Equal(t, "qty", errorMessage([]byte(`{"errors":[{"message":"qty"}]}`)))
	assert.Equal(t, "", errorMessage([]byte(`<html>502</html>`)))
}
